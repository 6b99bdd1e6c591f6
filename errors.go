package datagen

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrNoFont is returned when rendering or shaping without a font.
	ErrNoFont = errors.New("datagen: no font loaded")

	// ErrNoText is returned when rendering an empty text.
	ErrNoText = errors.New("datagen: no text set")
)

// ModeError reports an unusable render mode.
type ModeError struct {
	// Mode is the mode's name, or "" for a nil mode.
	Mode string

	// Reason describes the problem.
	Reason string
}

func (e *ModeError) Error() string {
	if e.Mode == "" {
		return fmt.Sprintf("datagen: invalid mode: %s", e.Reason)
	}
	return fmt.Sprintf("datagen: invalid %s mode: %s", e.Mode, e.Reason)
}
