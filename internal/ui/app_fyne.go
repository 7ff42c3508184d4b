//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"gopagebuilder/internal/config"
	"gopagebuilder/internal/crash"
	"gopagebuilder/internal/editor"
	"gopagebuilder/internal/export"
	applog "gopagebuilder/internal/log"
	"gopagebuilder/internal/render"
	"gopagebuilder/internal/telemetry"
	"gopagebuilder/internal/version"
)

// Run starts the Fyne-based desktop UI: a palette list on the left, the
// interactive canvas in the center and a status bar at the bottom.
// paletteFile overrides the configured palette catalog when non-empty.
func Run(paletteFile string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	defer crash.Recover()

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", "err", err)
		cfg = config.Defaults()
	}
	if paletteFile != "" {
		cfg.Editor.PalettePath = paletteFile
	}
	telemetry.InitDefault()
	telemetry.Event("ui_started", nil)

	session := editor.NewSession(cfg.Editor)
	defer session.Close()

	fyneApp := app.NewWithID("gopagebuilder")
	w := fyneApp.NewWindow("Go Page Builder " + version.String())
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	canvasWidget := NewCanvasWidget(session)
	canvasWidget.OnStatus = func(msg string) { status.SetText(msg) }

	catalog := session.Catalog()
	paletteList := widget.NewList(
		func() int { return len(catalog) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && int(i) < len(catalog) {
				o.(*widget.Label).SetText(catalog[i].Name)
			}
		},
	)
	paletteList.OnSelected = func(i widget.ListItemID) {
		if i < 0 || int(i) >= len(catalog) {
			return
		}
		canvasWidget.ArmPaletteItem(catalog[i])
		status.SetText("drag onto the canvas: " + catalog[i].Name)
		paletteList.UnselectAll()
	}

	zoomLabel := widget.NewLabel("100%")
	updateZoom := func() {
		zoomLabel.SetText(fmt.Sprintf("%d%%", int(session.Viewport().State().Zoom*100+0.5)))
	}
	toolbar := container.NewHBox(
		widget.NewButton("-", func() {
			session.HandleKey(editor.KeyEvent{Key: "-", CtrlOrCmd: true})
			updateZoom()
			canvasWidget.Refresh()
		}),
		zoomLabel,
		widget.NewButton("+", func() {
			session.HandleKey(editor.KeyEvent{Key: "+", CtrlOrCmd: true})
			updateZoom()
			canvasWidget.Refresh()
		}),
		widget.NewButton("Reset View", func() {
			session.HandleKey(editor.KeyEvent{Key: "0", CtrlOrCmd: true})
			updateZoom()
			canvasWidget.Refresh()
		}),
		widget.NewCheck("Snap to grid", func(on bool) {
			session.Viewport().SetSnapToGrid(on)
		}),
		widget.NewButton("Export…", func() {
			items := render.BuildPaintList(session.Snapshot(), nil)
			dir := filepath.Join(".", "exports")
			if err := export.BatchExport(items, export.BatchOptions{Preset: export.PresetWeb, OutDir: dir}); err != nil {
				status.SetText("export failed: " + err.Error())
				return
			}
			status.SetText("exported to " + dir)
			telemetry.Event("export", map[string]any{"preset": "web"})
		}),
	)

	w.SetContent(container.NewBorder(toolbar, status, paletteList, nil, canvasWidget))
	w.Canvas().Focus(canvasWidget)

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	w.ShowAndRun()
	return nil
}
