/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor wires one editing session together: a component store, a
// viewport, a selection engine and a drag controller, constructed explicitly
// and torn down with Close. Sessions are independent; nothing in this package
// is shared between two sessions.
package editor

import (
	"log/slog"
	"time"

	"gopagebuilder/internal/config"
	"gopagebuilder/internal/dragdrop"
	"gopagebuilder/internal/geom"
	applog "gopagebuilder/internal/log"
	"gopagebuilder/internal/palette"
	"gopagebuilder/internal/selection"
	"gopagebuilder/internal/store"
	"gopagebuilder/internal/viewport"
)

// Session bundles the interaction engines for one open canvas.
type Session struct {
	store     *store.Store
	view      *viewport.Engine
	selection *selection.Engine
	drag      *dragdrop.Controller
	catalog   []palette.Descriptor
	log       *slog.Logger
	closed    bool
}

// NewSession builds a session seeded from the editor configuration. A zero
// config falls back to the application defaults.
func NewSession(cfg config.EditorConfig) *Session {
	if cfg.GridSize <= 0 {
		cfg = config.Defaults().Editor
	}
	s := store.New()
	v := viewport.New()
	v.SetGridSize(cfg.GridSize)
	v.SetSnapToGrid(cfg.SnapToGrid)
	if !cfg.ShowGrid {
		v.ToggleGrid()
	}

	dcfg := dragdrop.Config{ActivationDistance: cfg.DragActivationPixels}
	if cfg.TouchHoldDelayMs > 0 {
		dcfg.TouchHoldDelay = time.Duration(cfg.TouchHoldDelayMs) * time.Millisecond
	}

	catalog, err := palette.Load(cfg.PalettePath)
	if err != nil {
		applog.WithComponent("editor").Warn("palette catalog rejected, using built-ins", slog.String("path", cfg.PalettePath), slog.String("err", err.Error()))
		catalog = palette.Default()
	}

	return &Session{
		store:     s,
		view:      v,
		selection: selection.New(s, v),
		drag:      dragdrop.New(s, v, dcfg),
		catalog:   catalog,
		log:       applog.WithComponent("editor"),
	}
}

// Close cancels any live gesture and marks the session dead. Input delivered
// after Close is dropped.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.drag.Cancel()
	s.selection.CancelResize()
	s.closed = true
	s.log.Debug("session closed")
}

// Store exposes the component tree.
func (s *Session) Store() *store.Store { return s.store }

// Viewport exposes the zoom/pan/grid engine.
func (s *Session) Viewport() *viewport.Engine { return s.view }

// Selection exposes selection and resize state.
func (s *Session) Selection() *selection.Engine { return s.selection }

// Drag exposes the drag-and-drop controller.
func (s *Session) Drag() *dragdrop.Controller { return s.drag }

// Catalog returns the palette descriptors available to this session.
func (s *Session) Catalog() []palette.Descriptor {
	return append([]palette.Descriptor(nil), s.catalog...)
}

// Snapshot returns an immutable copy of the tree for a render pass.
func (s *Session) Snapshot() store.Snapshot { return s.store.Snapshot() }

// ArrowPanStep is the pan distance in screen pixels per arrow key press.
const ArrowPanStep = 24

// KeyEvent is a normalized keyboard event; Key uses the fyne key names for
// the ones we care about ("Up", "Down", "Left", "Right", "Escape", "+", "-",
// "0", "'").
type KeyEvent struct {
	Key       string
	CtrlOrCmd bool
	Shift     bool
}

// HandleKey dispatches a keyboard event. Returns true when the event was
// consumed.
func (s *Session) HandleKey(ev KeyEvent) bool {
	if s.closed {
		return false
	}
	switch {
	case ev.Key == "Escape":
		consumed := s.drag.Active() || s.selection.Resizing()
		s.drag.Cancel()
		s.selection.CancelResize()
		return consumed
	case ev.CtrlOrCmd && (ev.Key == "+" || ev.Key == "="):
		s.view.ZoomBy(viewport.ZoomWheelStep)
		return true
	case ev.CtrlOrCmd && ev.Key == "-":
		s.view.ZoomBy(-viewport.ZoomWheelStep)
		return true
	case ev.CtrlOrCmd && ev.Key == "0":
		s.view.Reset()
		return true
	case ev.CtrlOrCmd && ev.Key == "'":
		if ev.Shift {
			s.view.ToggleSnapToGrid()
		} else {
			s.view.ToggleGrid()
		}
		return true
	case ev.Key == "Up":
		s.view.PanBy(geom.ScreenDelta{DY: ArrowPanStep})
		return true
	case ev.Key == "Down":
		s.view.PanBy(geom.ScreenDelta{DY: -ArrowPanStep})
		return true
	case ev.Key == "Left":
		s.view.PanBy(geom.ScreenDelta{DX: ArrowPanStep})
		return true
	case ev.Key == "Right":
		s.view.PanBy(geom.ScreenDelta{DX: -ArrowPanStep})
		return true
	}
	return false
}

// SelectionBounds is the selection bounding box in logical units.
func (s *Session) SelectionBounds() (geom.Rect, bool) { return s.selection.BoundingBox() }
