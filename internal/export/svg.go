/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"os"

	"gopagebuilder/internal/render"
)

// SVG renders the paint list as a standalone SVG document. Coordinates map
// 1:1 from logical units to SVG user units.
func SVG(items []render.PaintItem, opt Options) ([]byte, error) {
	opt = opt.withDefaults()
	pg := resolvePage(items, opt)

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", pg.W, pg.H, pg.W, pg.H)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", pg.W, pg.H, hexColor(opt.Background))

	for _, it := range items {
		if it.Hidden && !opt.IncludeHidden {
			continue
		}
		fill := itemFill(it, opt)
		stroke := itemStroke(it, opt)
		x := float64(it.Bounds.X) - pg.X
		y := float64(it.Bounds.Y) - pg.Y
		opacity := ""
		if fill.A < 255 {
			opacity = fmt.Sprintf(" fill-opacity=\"%.3g\"", float64(fill.A)/255)
		}
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"%s stroke=\"%s\" stroke-width=\"%g\" data-type=\"%s\"/>\n",
			x, y, float64(it.Bounds.W), float64(it.Bounds.H), hexColor(fill), opacity, hexColor(stroke.Color), stroke.Width, escAttr(it.Type))
	}

	wf("</svg>\n")
	if werr != nil {
		return nil, fmt.Errorf("build svg: %w", werr)
	}
	return buf.Bytes(), nil
}

// WriteSVG renders and writes the document to path.
func WriteSVG(items []render.PaintItem, path string, opt Options) error {
	data, err := SVG(items, opt)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func escAttr(s string) string {
	// naive escaping sufficient for our simple usage
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '\n', '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
