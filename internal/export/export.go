/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a paint list to SVG, PNG or PDF. Components are
// drawn as plain rectangles; what a component type renders as on a real page
// is outside the editor's scope, so the exporters only show layout.
package export

import (
	"fmt"
	"strings"

	"gopagebuilder/internal/geom"
	"gopagebuilder/internal/render"
)

// Color is an sRGB color with alpha.
type Color struct{ R, G, B, A uint8 }

// Stroke pairs a color with a line width in logical units.
type Stroke struct {
	Color Color
	Width float64
}

// Options is shared by all exporters.
// The page covers the paint list bounds plus Padding logical units on each
// side; an explicit PageSize overrides that.
//
//nolint:revive // keep fields explicit for clarity
type Options struct {
	Padding       float64
	PageSize      geom.Size // zero = derive from content bounds
	Background    Color     // zero value = white
	DefaultFill   Color     // zero value = light gray
	DefaultStroke Stroke    // zero width = 1pt black
	IncludeHidden bool      // hidden instances are skipped unless set
}

func (o Options) withDefaults() Options {
	if o.Background == (Color{}) {
		o.Background = Color{255, 255, 255, 255}
	}
	if o.DefaultFill == (Color{}) {
		o.DefaultFill = Color{230, 230, 230, 255}
	}
	if o.DefaultStroke.Width == 0 {
		o.DefaultStroke = Stroke{Color: Color{0, 0, 0, 255}, Width: 1}
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	return o
}

// page is the resolved page rect in logical units: items are drawn offset by
// (-X, -Y).
type page struct {
	X, Y, W, H float64
}

func resolvePage(items []render.PaintItem, o Options) page {
	if o.PageSize.W > 0 && o.PageSize.H > 0 {
		return page{W: float64(o.PageSize.W), H: float64(o.PageSize.H)}
	}
	rects := make([]geom.Rect, 0, len(items))
	for _, it := range items {
		if it.Hidden && !o.IncludeHidden {
			continue
		}
		rects = append(rects, it.Bounds)
	}
	b, ok := geom.BoundsOf(rects)
	if !ok {
		return page{W: 2 * o.Padding, H: 2 * o.Padding}
	}
	return page{
		X: float64(b.X) - o.Padding,
		Y: float64(b.Y) - o.Padding,
		W: float64(b.W) + 2*o.Padding,
		H: float64(b.H) + 2*o.Padding,
	}
}

// itemFill resolves the fill color from the instance styles ("fill" as
// #rrggbb), falling back to the option default. Hidden items keep their
// editor translucency.
func itemFill(it render.PaintItem, o Options) Color {
	c := o.DefaultFill
	if v, ok := it.Styles["fill"].(string); ok {
		if parsed, err := ParseHexColor(v); err == nil {
			c = parsed
		}
	}
	if it.Hidden {
		c.A = uint8(float32(c.A) * render.HiddenAlpha)
	}
	return c
}

func itemStroke(it render.PaintItem, o Options) Stroke {
	s := o.DefaultStroke
	if v, ok := it.Styles["stroke"].(string); ok {
		if parsed, err := ParseHexColor(v); err == nil {
			s.Color = parsed
		}
	}
	return s
}

// ParseHexColor parses "#rgb" or "#rrggbb".
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("hex color must start with #: %q", s)
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("parse hex color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("parse hex color %q: %w", s, err)
		}
	default:
		return Color{}, fmt.Errorf("hex color %q must be 3 or 6 digits", s)
	}
	return Color{R: r, G: g, B: b, A: 255}, nil
}

func hexColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
