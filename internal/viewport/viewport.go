/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package viewport owns the zoom/pan transform and the grid/snap model.
// The render transform is screen = logical*zoom + pan; ScreenToLogical is its
// exact inverse. Zoom pivots at the canvas origin. All inputs are clamped or
// ignored rather than rejected; a visual tool must never fail mid-gesture.
package viewport

import (
	"math"

	"gopagebuilder/internal/geom"
)

const (
	MinZoom = 0.1
	MaxZoom = 5.0

	// DefaultGridSize is in logical units.
	DefaultGridSize = 20

	// ZoomWheelStep is the zoom increment per scroll notch used by UI hosts.
	ZoomWheelStep = 0.1
)

// State is the viewport transform. Zoom is always within [MinZoom, MaxZoom].
type State struct {
	Zoom float32 `json:"zoom"`
	PanX float32 `json:"panX"`
	PanY float32 `json:"panY"`
}

// Grid is the grid/snap model. Size is in logical units and always > 0.
type Grid struct {
	Enabled    bool `json:"enabled"`
	Size       int  `json:"size"`
	SnapToGrid bool `json:"snapToGrid"`
}

// Engine converts between screen and logical coordinates and applies
// snapping. It owns its State and Grid exclusively.
type Engine struct {
	state State
	grid  Grid
}

func New() *Engine {
	return &Engine{
		state: State{Zoom: 1},
		grid:  Grid{Enabled: true, Size: DefaultGridSize, SnapToGrid: false},
	}
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Grid() Grid   { return e.grid }

// SetZoom clamps z into [MinZoom, MaxZoom] and leaves pan untouched.
// Non-finite input is ignored.
func (e *Engine) SetZoom(z float32) {
	if !geom.Finite(z) {
		return
	}
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	e.state.Zoom = z
}

// ZoomBy applies a wheel-style increment with the same clamp.
func (e *Engine) ZoomBy(step float32) { e.SetZoom(e.state.Zoom + step) }

// SetPan is unconstrained apart from the finiteness guard.
func (e *Engine) SetPan(x, y float32) {
	if !geom.Finite(x) || !geom.Finite(y) {
		return
	}
	e.state.PanX = x
	e.state.PanY = y
}

// PanBy offsets the pan by a screen-space delta.
func (e *Engine) PanBy(d geom.ScreenDelta) {
	if !d.Finite() {
		return
	}
	e.state.PanX += d.DX
	e.state.PanY += d.DY
}

// Reset restores zoom 1.0 and pan (0,0).
func (e *Engine) Reset() { e.state = State{Zoom: 1} }

// ScreenToLogical applies logical = (screen - pan) / zoom.
func (e *Engine) ScreenToLogical(p geom.ScreenPoint) geom.LogicalPoint {
	return geom.LogicalPoint{
		X: (p.X - e.state.PanX) / e.state.Zoom,
		Y: (p.Y - e.state.PanY) / e.state.Zoom,
	}
}

// LogicalToScreen applies the forward render transform screen = logical*zoom + pan.
func (e *Engine) LogicalToScreen(p geom.LogicalPoint) geom.ScreenPoint {
	return geom.ScreenPoint{
		X: p.X*e.state.Zoom + e.state.PanX,
		Y: p.Y*e.state.Zoom + e.state.PanY,
	}
}

// RectToScreen transforms a logical rect's corners into screen space and
// returns min corner plus size, for overlay drawing.
func (e *Engine) RectToScreen(r geom.Rect) (geom.ScreenPoint, geom.Size) {
	p0 := e.LogicalToScreen(r.Min())
	p1 := e.LogicalToScreen(r.Max())
	return p0, geom.Size{W: p1.X - p0.X, H: p1.Y - p0.Y}
}

func (e *Engine) ToggleGrid()       { e.grid.Enabled = !e.grid.Enabled }
func (e *Engine) ToggleSnapToGrid() { e.grid.SnapToGrid = !e.grid.SnapToGrid }

// SetGridSize ignores non-positive sizes.
func (e *Engine) SetGridSize(size int) {
	if size <= 0 {
		return
	}
	e.grid.Size = size
}

// SetSnapToGrid sets the snap flag directly (config-driven default).
func (e *Engine) SetSnapToGrid(on bool) { e.grid.SnapToGrid = on }

// SnapLength rounds a logical length to the nearest grid multiple when
// snapping is on; identity otherwise.
func (e *Engine) SnapLength(v float32) float32 {
	if !e.grid.SnapToGrid {
		return v
	}
	size := float64(e.grid.Size)
	return float32(math.Round(float64(v)/size) * size)
}

// Snap rounds each axis independently to the nearest grid multiple.
func (e *Engine) Snap(p geom.LogicalPoint) geom.LogicalPoint {
	return geom.LogicalPoint{X: e.SnapLength(p.X), Y: e.SnapLength(p.Y)}
}

// SnapDelta snaps a logical movement, used for ghost previews.
func (e *Engine) SnapDelta(d geom.LogicalDelta) geom.LogicalDelta {
	return geom.LogicalDelta{DX: e.SnapLength(d.DX), DY: e.SnapLength(d.DY)}
}

// SnapSize snaps both dimensions, keeping each at least one grid cell so a
// snapped size cannot collapse to zero.
func (e *Engine) SnapSize(s geom.Size) geom.Size {
	if !e.grid.SnapToGrid {
		return s
	}
	w := e.SnapLength(s.W)
	h := e.SnapLength(s.H)
	cell := float32(e.grid.Size)
	if w < cell {
		w = cell
	}
	if h < cell {
		h = cell
	}
	return geom.Size{W: w, H: h}
}
