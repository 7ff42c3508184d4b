/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"gopagebuilder/internal/render"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls batch export across multiple formats in one call.
//
// Path semantics:
//   - Files are written under OutDir as page.(svg|png|pdf) plus thumb.png,
//     grouped flat since a canvas is a single page.
//   - Formats empty means the preset defaults.
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset    PresetName
	Formats   []string // allowed: pdf, png, svg, thumb; empty means preset defaults
	OutDir    string
	Scale     float64 // raster scale for png
	ThumbSize int     // square bound for thumb; default 256
	Base      Options
}

// BatchExport renders the paint list in every requested format.
func BatchExport(items []render.PaintItem, opt BatchOptions) error {
	if opt.OutDir == "" {
		return fmt.Errorf("output directory is required")
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	if err := os.MkdirAll(opt.OutDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	thumb := opt.ThumbSize
	if thumb <= 0 {
		thumb = 256
	}

	for _, f := range formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "pdf":
			out := filepath.Join(opt.OutDir, "page.pdf")
			if err := PDF(items, out, PDFOptions{Options: opt.Base}); err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
		case "png":
			out := filepath.Join(opt.OutDir, "page.png")
			if err := WritePNG(items, out, PNGOptions{Options: opt.Base, Scale: opt.Scale}); err != nil {
				return fmt.Errorf("png: %w", err)
			}
		case "svg":
			out := filepath.Join(opt.OutDir, "page.svg")
			if err := WriteSVG(items, out, opt.Base); err != nil {
				return fmt.Errorf("svg: %w", err)
			}
		case "thumb":
			img, err := Thumbnail(items, thumb, thumb, PNGOptions{Options: opt.Base, Scale: opt.Scale})
			if err != nil {
				return fmt.Errorf("thumb: %w", err)
			}
			fh, err := os.Create(filepath.Join(opt.OutDir, "thumb.png"))
			if err != nil {
				return fmt.Errorf("create thumb: %w", err)
			}
			if err := png.Encode(fh, img); err != nil {
				_ = fh.Close()
				return fmt.Errorf("encode thumb: %w", err)
			}
			if err := fh.Close(); err != nil {
				return fmt.Errorf("close thumb: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "svg", "thumb"}
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"pdf"}
	}
}
