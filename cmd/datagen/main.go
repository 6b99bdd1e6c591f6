// Command datagen renders a text with a font and writes the canvas and
// every cluster mask as PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	xlanguage "golang.org/x/text/language"

	datagen "github.com/ztaaha/basic-text-datagen"
	imgutil "github.com/ztaaha/basic-text-datagen/internal/image"
)

func main() {
	var (
		fontPath  = flag.String("font", "", "font file (TTF or OTF)")
		txt       = flag.String("text", "Hello", "text to render")
		size      = flag.Float64("size", 32, "font size in points")
		serviceID = flag.String("remote", "", "render through the remote service with this font id")
		service   = flag.String("service-url", "", "remote service base URL")
		lang      = flag.String("lang", "en", "BCP 47 language tag")
		output    = flag.String("output", "out", "output directory")
		paths     = flag.Bool("paths", false, "print cluster outlines as SVG path data")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *fontPath == "" {
		log.Fatal("missing -font")
	}
	tag, err := xlanguage.Parse(*lang)
	if err != nil {
		log.Fatalf("Invalid language %q: %v", *lang, err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	datagen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts := []datagen.Option{datagen.WithLanguage(tag)}
	if *service != "" {
		opts = append(opts, datagen.WithServiceURL(*service))
	}
	r := datagen.New(opts...)
	defer func() { _ = r.Close() }()

	if err := r.LoadFont(*fontPath); err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	r.SetText(*txt)

	if *paths {
		if err := printPaths(r); err != nil {
			log.Fatalf("Failed to extract paths: %v", err)
		}
	}

	var mode datagen.Mode = datagen.LocalMode{}
	if *serviceID != "" {
		m, err := datagen.Remote(*serviceID)
		if err != nil {
			log.Fatal(err)
		}
		mode = m
	}

	res, err := r.Render(context.Background(), *size, mode)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := os.MkdirAll(*output, 0o750); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	ts := res.Tensor
	for c := range ts.Channels() {
		name := "canvas.png"
		if c > 0 {
			name = fmt.Sprintf("mask-%03d.png", c)
		}
		if err := imgutil.SavePNG(filepath.Join(*output, name), ts.Gray(c)); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
	}

	log.Printf("Rendered %d clusters to %s (%dx%d)\n", ts.Channels()-1, *output, ts.Width(), ts.Height())
}

func printPaths(r *datagen.Renderer) error {
	paths, advances, err := r.TextPaths()
	if err != nil {
		return err
	}
	strs, err := r.ClusterStrings()
	if err != nil {
		return err
	}
	for i, p := range paths {
		adv := 0.0
		if i < len(advances) {
			adv = advances[i]
		}
		fmt.Printf("%q\tadvance=%g\t%s\n", strs[i], adv, p.Relative())
	}
	return nil
}
