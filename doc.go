// Package datagen renders shaped text into per-cluster training tensors.
//
// # Overview
//
// A cluster is the smallest unit a shaper positions as a whole: a base
// character with its marks, or a ligature. For a given font and text,
// datagen produces a tensor whose channel 0 is the grayscale rendering of
// the text and whose channels 1..C are binary masks, one per cluster,
// telling which canvas pixels each cluster inked.
//
// # Quick Start
//
//	r := datagen.New()
//	defer r.Close()
//
//	if err := r.LoadFont("NotoSans-Regular.ttf"); err != nil {
//	    return err
//	}
//	r.SetText("Hello")
//
//	res, err := r.Render(ctx, 32, datagen.LocalMode{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Tensor.Shape())
//
// # Modes
//
// LocalMode rasterizes glyph outlines itself and knows exactly where every
// cluster lands. RemoteMode asks an external rendering service for images
// of the whole text and of every cluster, then recovers each cluster's
// position by template matching. A RemoteMode can only be created with a
// service font id, see Remote.
//
// # Canvas
//
// Both modes return a canvas cropped to the ink of the text, white
// background (255) with dark ink. A set mask pixel always lies on ink.
//
// # Architecture
//
// The library is organized into:
//   - text: font sources, HarfBuzz shaping, clusters, glyph rasterization, outlines
//   - tensor: the output tensor and the canvas geometry
//   - backend: the backend interface and the local backend
//   - backend/remote: the remote alignment backend
//
// # Logging
//
// datagen is silent by default. See SetLogger and WithLogger.
package datagen
