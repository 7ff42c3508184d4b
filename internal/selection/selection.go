/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package selection tracks the selected-id set and hover state, derives the
// selection bounding box, and drives live resize of a single instance through
// the eight handles on the box. Interim resize frames hit the store with
// commit=false; the operation boundary fires on pointer-up.
package selection

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gopagebuilder/internal/geom"
	applog "gopagebuilder/internal/log"
	"gopagebuilder/internal/store"
	"gopagebuilder/internal/viewport"
)

// MinComponentSize is the smallest width/height in logical units a resize can
// produce; a dimension never collapses to zero or negative.
const MinComponentSize = 20

var (
	// ErrNotResizable is returned when resize is requested without exactly
	// one unlocked instance selected.
	ErrNotResizable = errors.New("resize requires a single unlocked selection")
	// ErrResizeActive is returned when a resize begins while one is running.
	ErrResizeActive = errors.New("a resize gesture is active")
)

// Engine owns SelectionState and the resize state machine.
type Engine struct {
	store *store.Store
	view  *viewport.Engine
	log   *slog.Logger

	selected []string // most-recently-added last, no duplicates
	hovered  string

	resizing bool
	handle   Handle
	targetID string
	start    geom.ScreenPoint
	orig     geom.Rect
}

func New(s *store.Store, v *viewport.Engine) *Engine {
	return &Engine{store: s, view: v, log: applog.WithComponent("selection")}
}

// Select replaces the selection with {id}, or toggles membership when
// additive. Unknown ids are ignored. Locked instances may be selected for
// inspection. A running resize is cancelled by any selection change.
func (e *Engine) Select(id string, additive bool) {
	if e.store.Component(id) == nil {
		return
	}
	if !additive {
		if len(e.selected) == 1 && e.selected[0] == id {
			return
		}
		e.cancelResizeOnChange()
		e.selected = []string{id}
		return
	}
	for i, sel := range e.selected {
		if sel == id {
			e.cancelResizeOnChange()
			e.selected = append(e.selected[:i], e.selected[i+1:]...)
			return
		}
	}
	e.cancelResizeOnChange()
	e.selected = append(e.selected, id)
}

// Clear empties the selection (click on empty canvas background).
func (e *Engine) Clear() {
	if len(e.selected) == 0 {
		return
	}
	e.cancelResizeOnChange()
	e.selected = nil
}

// Selected returns the ordered selected ids.
func (e *Engine) Selected() []string { return append([]string(nil), e.selected...) }

func (e *Engine) IsSelected(id string) bool {
	for _, sel := range e.selected {
		if sel == id {
			return true
		}
	}
	return false
}

// SetHovered updates hover state. Locked and hidden instances never hover;
// unknown ids clear it.
func (e *Engine) SetHovered(id string) {
	if id == "" {
		e.hovered = ""
		return
	}
	inst := e.store.Component(id)
	if inst == nil || inst.Locked || inst.Hidden {
		e.hovered = ""
		return
	}
	e.hovered = id
}

func (e *Engine) Hovered() string { return e.hovered }

// BoundingBox returns the minimal axis-aligned box covering the selection in
// logical units; ok is false for an empty selection.
func (e *Engine) BoundingBox() (geom.Rect, bool) {
	rects := make([]geom.Rect, 0, len(e.selected))
	for _, id := range e.selected {
		if inst := e.store.Component(id); inst != nil {
			rects = append(rects, inst.Rect())
		}
	}
	return geom.BoundsOf(rects)
}

// resizeTarget returns the single unlocked selected instance, if any.
func (e *Engine) resizeTarget() (*store.Instance, bool) {
	if len(e.selected) != 1 {
		return nil, false
	}
	inst := e.store.Component(e.selected[0])
	if inst == nil || inst.Locked {
		return nil, false
	}
	return inst, true
}

// Resizing reports whether a resize gesture is live.
func (e *Engine) Resizing() bool { return e.resizing }

// BeginResize enters Resizing(handle). Only permitted with exactly one
// unlocked instance selected.
func (e *Engine) BeginResize(h Handle, at geom.ScreenPoint) error {
	if e.resizing {
		return ErrResizeActive
	}
	inst, ok := e.resizeTarget()
	if !ok {
		return ErrNotResizable
	}
	e.resizing = true
	e.handle = h
	e.targetID = inst.ID
	e.start = at
	e.orig = inst.Rect()
	e.log.Debug("resize begin", slog.String("id", inst.ID), slog.String("handle", h.String()))
	return nil
}

// candidateRect applies the pointer delta along the handle's permitted axes,
// clamps to the minimum size keeping the anchored edge fixed, then snaps.
func (e *Engine) candidateRect(p geom.ScreenPoint) (geom.Rect, bool) {
	d := p.Sub(e.start).Div(e.view.State().Zoom)
	r := e.orig
	if e.handle.movesLeft() {
		r.X += d.DX
		r.W -= d.DX
	}
	if e.handle.movesRight() {
		r.W += d.DX
	}
	if e.handle.movesTop() {
		r.Y += d.DY
		r.H -= d.DY
	}
	if e.handle.movesBottom() {
		r.H += d.DY
	}
	// Clamp against the anchored edge so it never drifts.
	if r.W < MinComponentSize {
		if e.handle.movesLeft() {
			r.X = e.orig.X + e.orig.W - MinComponentSize
		}
		r.W = MinComponentSize
	}
	if r.H < MinComponentSize {
		if e.handle.movesTop() {
			r.Y = e.orig.Y + e.orig.H - MinComponentSize
		}
		r.H = MinComponentSize
	}
	pos := e.view.Snap(geom.LogicalPoint{X: r.X, Y: r.Y})
	size := e.view.SnapSize(geom.Size{W: r.W, H: r.H})
	r = geom.R(pos.X, pos.Y, size.W, size.H)
	// A degenerate frame is skipped, never applied.
	if r.W <= 0 || r.H <= 0 || !geom.Finite(r.X) || !geom.Finite(r.Y) {
		return geom.Rect{}, false
	}
	return r, true
}

// ResizeMove streams a pointer position during Resizing. Stale or non-finite
// events are dropped; each valid frame writes an interim (commit=false)
// update.
func (e *Engine) ResizeMove(p geom.ScreenPoint) {
	if !e.resizing || !p.Finite() {
		return
	}
	r, ok := e.candidateRect(p)
	if !ok {
		return
	}
	e.applyRect(r, false)
}

// EndResize commits the final geometry and returns to Idle.
func (e *Engine) EndResize(p geom.ScreenPoint) error {
	if !e.resizing {
		return nil // stale event
	}
	defer e.resetResize()
	if !p.Finite() {
		p = e.start
	}
	r, ok := e.candidateRect(p)
	if !ok {
		r = e.orig
	}
	if err := e.applyRect(r, true); err != nil {
		return err
	}
	e.log.Debug("resize commit", slog.String("id", e.targetID),
		slog.String("size", fmt.Sprintf("%gx%g", r.W, r.H)))
	return nil
}

// CancelResize aborts the gesture and restores the pre-gesture geometry
// without an operation boundary. Used for Escape and selection changes.
func (e *Engine) CancelResize() {
	if !e.resizing {
		return
	}
	_ = e.applyRect(e.orig, false)
	e.log.Debug("resize cancel", slog.String("id", e.targetID))
	e.resetResize()
}

func (e *Engine) cancelResizeOnChange() {
	if e.resizing {
		e.CancelResize()
	}
}

func (e *Engine) applyRect(r geom.Rect, commit bool) error {
	pos := geom.LogicalPoint{X: r.X, Y: r.Y}
	size := geom.Size{W: r.W, H: r.H}
	return e.store.UpdateComponent(e.targetID, store.Patch{Position: &pos, Size: &size}, commit)
}

func (e *Engine) resetResize() {
	e.resizing = false
	e.targetID = ""
}

// DimensionLabel is the live "W × H" readout shown during resize, rounded to
// whole logical units. Empty when no resize is running.
func (e *Engine) DimensionLabel() string {
	if !e.resizing {
		return ""
	}
	inst := e.store.Component(e.targetID)
	if inst == nil {
		return ""
	}
	w := int(math.Round(float64(inst.Size.W)))
	h := int(math.Round(float64(inst.Size.H)))
	return fmt.Sprintf("%d × %d", w, h)
}
