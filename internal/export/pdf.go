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

	"github.com/jung-kurt/gofpdf"

	"gopagebuilder/internal/render"
)

// PDFOptions controls PDF export behavior.
// Logical units map 1:1 to points; the page origin is top-left like the
// canvas, so no y-flip is needed.
type PDFOptions struct {
	Options
	Title string
}

// PDF writes the paint list as a single-page PDF at outPath.
func PDF(items []render.PaintItem, outPath string, opt PDFOptions) error {
	opt.Options = opt.Options.withDefaults()
	pg := resolvePage(items, opt.Options)
	if pg.W <= 0 || pg.H <= 0 {
		return fmt.Errorf("empty page, nothing to export")
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pg.W, Ht: pg.H},
		OrientationStr: "",
	})
	title := opt.Title
	if title == "" {
		title = "Page Export"
	}
	pdf.SetTitle(title, false)
	pdf.SetAuthor("Go Page Builder", false)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pg.W, Ht: pg.H})

	bg := opt.Background
	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	pdf.Rect(0, 0, pg.W, pg.H, "F")

	for _, it := range items {
		if it.Hidden && !opt.IncludeHidden {
			continue
		}
		fill := itemFill(it, opt.Options)
		stroke := itemStroke(it, opt.Options)
		pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
		pdf.SetDrawColor(int(stroke.Color.R), int(stroke.Color.G), int(stroke.Color.B))
		pdf.SetLineWidth(stroke.Width)
		if fill.A < 255 {
			pdf.SetAlpha(float64(fill.A)/255, "Normal")
		}
		pdf.Rect(float64(it.Bounds.X)-pg.X, float64(it.Bounds.Y)-pg.Y,
			float64(it.Bounds.W), float64(it.Bounds.H), "FD")
		if fill.A < 255 {
			pdf.SetAlpha(1, "Normal")
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
