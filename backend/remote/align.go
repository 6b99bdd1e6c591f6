package remote

import (
	"fmt"
	"image"

	"github.com/ztaaha/basic-text-datagen/backend"
	imgutil "github.com/ztaaha/basic-text-datagen/internal/image"
	"github.com/ztaaha/basic-text-datagen/internal/match"
	"github.com/ztaaha/basic-text-datagen/tensor"
	"github.com/ztaaha/basic-text-datagen/text"
)

// clusterJob aligns one cluster. It writes only its own mask channel.
type clusterJob struct {
	text    string
	channel int
	window  text.ClusterWindow
	solo    []byte
	pair    []byte
}

// align finds the cluster on surface, the inverted canvas, and marks its
// ink in out.
func (c *clusterJob) align(surface *image.Gray, out *tensor.Tensor) (backend.Alignment, error) {
	solo, err := decode(c.text, c.solo)
	if err != nil {
		return backend.Alignment{}, err
	}

	boundary := solo.Rect.Dx()
	if c.pair != nil {
		pair, err := decode(c.text, c.pair)
		if err != nil {
			return backend.Alignment{}, err
		}
		boundary = match.Boundary(imgutil.Invert(solo), imgutil.Invert(pair))
	}

	tmpl, ok := template(solo, boundary)
	if !ok {
		if blankAllowed(c.text) {
			return backend.Alignment{Boundary: boundary, X: max(c.window.X, 0)}, nil
		}
		return backend.Alignment{}, fmt.Errorf("%w: cluster %q", ErrBlankImage, c.text)
	}

	ws, we := c.window.X, c.window.End
	if we <= ws {
		we = ws + tmpl.Rect.Dx()
	}
	res := match.Search(surface, tmpl, ws, we)

	tw, th := tmpl.Rect.Dx(), tmpl.Rect.Dy()
	for ty := range th {
		for tx := range tw {
			if tmpl.Pix[ty*tmpl.Stride+tx] == 0 {
				continue
			}
			col, row := res.X+tx, res.Y+ty
			if col < 0 || row < 0 || col >= out.Width() || row >= out.Height() {
				continue
			}
			// A mask pixel always has ink under it.
			if out.At(0, row, col) == tensor.Background {
				continue
			}
			out.Set(c.channel, row, col, 1)
		}
	}

	return backend.Alignment{
		Boundary: boundary,
		X:        res.X,
		Y:        res.Y,
		Width:    tw,
		Height:   th,
		SSD:      res.SSD,
		Clamped:  res.Clamped,
	}, nil
}

// template cuts the columns before boundary out of a solo render, crops
// them to their ink and inverts the result. If nothing is left of the
// restricted render, the whole solo render is used.
func template(solo *image.Gray, boundary int) (*image.Gray, bool) {
	r := solo.Rect
	restricted := imgutil.Crop(solo, image.Rect(r.Min.X, r.Min.Y, r.Min.X+boundary, r.Max.Y))
	cropped, ok := imgutil.CropInk(restricted)
	if !ok {
		cropped, ok = imgutil.CropInk(solo)
		if !ok {
			return nil, false
		}
	}
	return imgutil.Invert(cropped), true
}
