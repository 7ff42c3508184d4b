/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"gopagebuilder/internal/render"
)

// PNGOptions adds a raster scale on top of the shared options: output pixels
// per logical unit.
type PNGOptions struct {
	Options
	Scale float64 // <= 0 means 1.0
}

// PNG rasterizes the paint list into an RGBA image.
func PNG(items []render.PaintItem, opt PNGOptions) (*image.RGBA, error) {
	opt.Options = opt.Options.withDefaults()
	if opt.Scale <= 0 {
		opt.Scale = 1
	}
	pg := resolvePage(items, opt.Options)

	pixW := int(math.Round(pg.W * opt.Scale))
	pixH := int(math.Round(pg.H * opt.Scale))
	if pixW < 1 {
		pixW = 1
	}
	if pixH < 1 {
		pixH = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: toRGBA(opt.Background)}, image.Point{}, draw.Src)

	for _, it := range items {
		if it.Hidden && !opt.IncludeHidden {
			continue
		}
		x0 := int(math.Round((float64(it.Bounds.X) - pg.X) * opt.Scale))
		y0 := int(math.Round((float64(it.Bounds.Y) - pg.Y) * opt.Scale))
		x1 := x0 + int(math.Round(float64(it.Bounds.W)*opt.Scale)) - 1
		y1 := y0 + int(math.Round(float64(it.Bounds.H)*opt.Scale)) - 1
		fillRect(img, x0, y0, x1, y1, toRGBA(itemFill(it, opt.Options)))
		strokeRect(img, x0, y0, x1, y1, toRGBA(itemStroke(it, opt.Options).Color))
	}
	return img, nil
}

// WritePNG rasterizes and writes the image to path.
func WritePNG(items []render.PaintItem, path string, opt PNGOptions) error {
	img, err := PNG(items, opt)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// Thumbnail downscales the rendered page to fit within maxW x maxH pixels,
// preserving the aspect ratio.
func Thumbnail(items []render.PaintItem, maxW, maxH int, opt PNGOptions) (*image.RGBA, error) {
	if maxW < 1 || maxH < 1 {
		return nil, fmt.Errorf("thumbnail bounds must be positive, got %dx%d", maxW, maxH)
	}
	img, err := PNG(items, opt)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	scale := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	if scale >= 1 {
		return img, nil
	}
	w := int(math.Max(1, math.Round(float64(b.Dx())*scale)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst, nil
}

func toRGBA(c Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 || y1 < y0 {
		return
	}
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
