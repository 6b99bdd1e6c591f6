package datagen

import "github.com/ztaaha/basic-text-datagen/backend/remote"

// Mode selects the backend of a render call. It is implemented by
// LocalMode and RemoteMode only.
type Mode interface {
	String() string
	validate() error
}

// LocalMode renders glyph outlines locally.
type LocalMode struct{}

func (LocalMode) String() string { return "local" }

func (LocalMode) validate() error { return nil }

// RemoteMode renders through the remote rendering service. Create one
// with Remote; the zero value is rejected by Render.
type RemoteMode struct {
	serviceID string
}

// Remote returns the remote mode for the service font serviceID.
func Remote(serviceID string) (RemoteMode, error) {
	m := RemoteMode{serviceID: serviceID}
	if err := m.validate(); err != nil {
		return RemoteMode{}, err
	}
	return m, nil
}

// ServiceID returns the service font id.
func (m RemoteMode) ServiceID() string { return m.serviceID }

func (RemoteMode) String() string { return remote.Name }

func (m RemoteMode) validate() error {
	if m.serviceID == "" {
		return &ModeError{Mode: remote.Name, Reason: "missing service font id"}
	}
	return nil
}
