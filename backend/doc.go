// Package backend turns shaped text into multi-channel training tensors.
//
// A Backend receives a Job (a shaped text.Layout plus a glyph rasterizer at
// the layout's pixel size) and returns a Result whose tensor holds one
// grayscale canvas channel followed by one binary occupancy mask per
// shaping cluster. All channels share one canvas.
//
// # Local Backend
//
// The local backend rasterizes every glyph itself and therefore knows the
// exact pixels of every cluster:
//
//	b := backend.NewLocal(nil)
//	res, err := b.Render(ctx, &backend.Job{
//		Layout:     layout,
//		Rasterizer: rasterizer,
//		Size:       32,
//	})
//
// # Remote Backend
//
// The remote backend in package backend/remote asks a rendering service
// for images of the whole text and of each cluster, and recovers where
// each cluster landed by template matching.
//
// # Canvas Contract
//
// Channel 0 is white (255) background with dark ink for every backend.
// Mask channels hold 0 or 1. A set mask pixel always lies on the canvas and
// has ink in channel 0.
package backend
