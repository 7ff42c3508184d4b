/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"testing"

	"gopagebuilder/internal/config"
	"gopagebuilder/internal/geom"
	"gopagebuilder/internal/selection"
	"gopagebuilder/internal/store"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(config.Defaults().Editor)
	t.Cleanup(s.Close)
	return s
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newSession(t)
	b := newSession(t)

	if _, err := a.Store().AddComponent(store.Descriptor{
		Type: "text", Position: geom.LogicalPoint{X: 1, Y: 1}, Size: geom.Size{W: 30, H: 30},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	a.Viewport().SetZoom(3)

	if len(b.Store().ListRootComponents()) != 0 {
		t.Fatalf("second session saw first session's components")
	}
	if b.Viewport().State().Zoom != 1 {
		t.Fatalf("second session saw first session's zoom")
	}
}

func TestSessionSeedsGridFromConfig(t *testing.T) {
	cfg := config.Defaults().Editor
	cfg.GridSize = 8
	cfg.SnapToGrid = true
	s := NewSession(cfg)
	defer s.Close()
	g := s.Viewport().Grid()
	if g.Size != 8 || !g.SnapToGrid {
		t.Fatalf("grid not seeded from config: %+v", g)
	}
}

func TestKeyZoomAndReset(t *testing.T) {
	s := newSession(t)
	if !s.HandleKey(KeyEvent{Key: "+", CtrlOrCmd: true}) {
		t.Fatalf("zoom-in key not consumed")
	}
	if got := s.Viewport().State().Zoom; got != 1.1 {
		t.Fatalf("expected zoom 1.1, got %v", got)
	}
	s.HandleKey(KeyEvent{Key: "-", CtrlOrCmd: true})
	s.Viewport().SetPan(50, 50)
	if !s.HandleKey(KeyEvent{Key: "0", CtrlOrCmd: true}) {
		t.Fatalf("reset key not consumed")
	}
	st := s.Viewport().State()
	if st.Zoom != 1 || st.PanX != 0 || st.PanY != 0 {
		t.Fatalf("reset failed: %+v", st)
	}
}

func TestKeyArrowsPan(t *testing.T) {
	s := newSession(t)
	s.HandleKey(KeyEvent{Key: "Left"})
	s.HandleKey(KeyEvent{Key: "Up"})
	st := s.Viewport().State()
	if st.PanX != ArrowPanStep || st.PanY != ArrowPanStep {
		t.Fatalf("unexpected pan after arrows: %+v", st)
	}
}

func TestKeyGridAndSnapToggles(t *testing.T) {
	s := newSession(t)
	wasGrid := s.Viewport().Grid().Enabled
	s.HandleKey(KeyEvent{Key: "'", CtrlOrCmd: true})
	if s.Viewport().Grid().Enabled == wasGrid {
		t.Fatalf("grid toggle had no effect")
	}
	wasSnap := s.Viewport().Grid().SnapToGrid
	s.HandleKey(KeyEvent{Key: "'", CtrlOrCmd: true, Shift: true})
	if s.Viewport().Grid().SnapToGrid == wasSnap {
		t.Fatalf("snap toggle had no effect")
	}
}

func TestEscapeCancelsLiveGestures(t *testing.T) {
	s := newSession(t)
	id, err := s.Store().AddComponent(store.Descriptor{
		Type: "button", Position: geom.LogicalPoint{X: 10, Y: 10}, Size: geom.Size{W: 60, H: 30},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.Drag().BeginCanvasDrag(id, geom.ScreenPoint{X: 0, Y: 0}, false); err != nil {
		t.Fatalf("begin drag: %v", err)
	}
	s.Drag().Move(geom.ScreenPoint{X: 50, Y: 50})
	if !s.HandleKey(KeyEvent{Key: "Escape"}) {
		t.Fatalf("escape must consume while dragging")
	}
	if s.Drag().Active() {
		t.Fatalf("escape must cancel the drag")
	}
	if pos := s.Store().Component(id).Position; pos != (geom.LogicalPoint{X: 10, Y: 10}) {
		t.Fatalf("cancelled drag mutated the store: %+v", pos)
	}

	s.Selection().Select(id, false)
	if err := s.Selection().BeginResize(selection.HandleSE, geom.ScreenPoint{X: 70, Y: 40}); err != nil {
		t.Fatalf("begin resize: %v", err)
	}
	s.Selection().ResizeMove(geom.ScreenPoint{X: 150, Y: 150})
	s.HandleKey(KeyEvent{Key: "Escape"})
	if s.Selection().Resizing() {
		t.Fatalf("escape must cancel the resize")
	}
	if size := s.Store().Component(id).Size; size != (geom.Size{W: 60, H: 30}) {
		t.Fatalf("cancelled resize left interim geometry: %+v", size)
	}

	if s.HandleKey(KeyEvent{Key: "Escape"}) {
		t.Fatalf("escape with nothing live must not be consumed")
	}
}

func TestClosedSessionDropsInput(t *testing.T) {
	s := NewSession(config.Defaults().Editor)
	s.Close()
	if s.HandleKey(KeyEvent{Key: "+", CtrlOrCmd: true}) {
		t.Fatalf("closed session must drop key events")
	}
}

func TestCatalogCopyIsDetached(t *testing.T) {
	s := newSession(t)
	c := s.Catalog()
	if len(c) == 0 {
		t.Fatalf("built-in catalog expected")
	}
	c[0].ComponentType = "mutated"
	if s.Catalog()[0].ComponentType == "mutated" {
		t.Fatalf("catalog must be returned by copy")
	}
}
