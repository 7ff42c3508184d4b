/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom defines the coordinate spaces of the canvas editor as distinct
// types. Screen coordinates are device pixels as seen by the pointer; logical
// coordinates are the zoom/pan independent space component geometry is stored
// in. Conversions between the two are explicit calls on the viewport engine,
// never silent numeric reuse.
// Float values use float32 for compactness and to align with many UI libs.

package geom

import "math"

// ScreenPoint is a point in device pixels, before the inverse viewport transform.
type ScreenPoint struct{ X, Y float32 }

// LogicalPoint is a point in canvas-logical units, relative to the canvas origin.
type LogicalPoint struct{ X, Y float32 }

// ScreenDelta is a pointer movement in device pixels.
type ScreenDelta struct{ DX, DY float32 }

// LogicalDelta is a movement in canvas-logical units.
type LogicalDelta struct{ DX, DY float32 }

// Sub returns the screen-space movement from o to p.
func (p ScreenPoint) Sub(o ScreenPoint) ScreenDelta {
	return ScreenDelta{DX: p.X - o.X, DY: p.Y - o.Y}
}

// Div converts a screen delta into logical units at the given zoom factor.
// A non-positive zoom yields a zero delta rather than a division blow-up.
func (d ScreenDelta) Div(zoom float32) LogicalDelta {
	if zoom <= 0 {
		return LogicalDelta{}
	}
	return LogicalDelta{DX: d.DX / zoom, DY: d.DY / zoom}
}

// Len returns the euclidean length of the delta in pixels.
func (d ScreenDelta) Len() float32 {
	return float32(math.Hypot(float64(d.DX), float64(d.DY)))
}

// Add offsets the point by a logical delta.
func (p LogicalPoint) Add(d LogicalDelta) LogicalPoint {
	return LogicalPoint{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Size is a width/height pair in logical units.
type Size struct{ W, H float32 }

// Rect is an axis-aligned rectangle in logical units, min corner plus size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() LogicalPoint { return LogicalPoint{r.X, r.Y} }
func (r Rect) Max() LogicalPoint { return LogicalPoint{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p LogicalPoint) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := minf(r.X, o.X)
	minY := minf(r.Y, o.Y)
	maxX := maxf(r.X+r.W, o.X+o.W)
	maxY := maxf(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// BoundsOf returns the minimal rect covering all given rects.
// ok is false for an empty input.
func BoundsOf(rects []Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	b := rects[0]
	for _, r := range rects[1:] {
		b = b.Union(r)
	}
	return b, true
}

// Finite reports whether v is neither NaN nor infinite. Gesture engines use
// this to drop malformed input frames instead of propagating them.
func Finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (p ScreenPoint) Finite() bool  { return Finite(p.X) && Finite(p.Y) }
func (p LogicalPoint) Finite() bool { return Finite(p.X) && Finite(p.Y) }
func (d ScreenDelta) Finite() bool  { return Finite(d.DX) && Finite(d.DY) }

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float32, places int) float32 {
	if places < 0 {
		return v
	}
	pow := float32(math.Pow(10, float64(places)))
	return float32(math.Round(float64(v*pow))) / pow
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
