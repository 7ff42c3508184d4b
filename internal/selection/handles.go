/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package selection

import "gopagebuilder/internal/geom"

// Handle identifies one of the eight resize handles at the corners and edge
// midpoints of the selection bounding box. Corner handles scale from the
// opposite corner; edge handles scale a single axis.
type Handle int

const (
	HandleNW Handle = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

// HandleCount is the number of resize handles on a bounding box.
const HandleCount = 8

// HandleHitSize is the edge length in screen pixels of a handle's hit box.
const HandleHitSize = 8

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleN:
		return "n"
	case HandleNE:
		return "ne"
	case HandleE:
		return "e"
	case HandleSE:
		return "se"
	case HandleS:
		return "s"
	case HandleSW:
		return "sw"
	case HandleW:
		return "w"
	default:
		return "?"
	}
}

func (h Handle) movesLeft() bool   { return h == HandleNW || h == HandleW || h == HandleSW }
func (h Handle) movesRight() bool  { return h == HandleNE || h == HandleE || h == HandleSE }
func (h Handle) movesTop() bool    { return h == HandleNW || h == HandleN || h == HandleNE }
func (h Handle) movesBottom() bool { return h == HandleSW || h == HandleS || h == HandleSE }

// HandleBox is a handle's hit box in screen coordinates.
type HandleBox struct {
	Handle Handle
	X, Y   float32
	W, H   float32
}

func (b HandleBox) contains(p geom.ScreenPoint) bool {
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// anchorFactors places each handle on the bounding box: fractions of width
// and height from the min corner.
func (h Handle) anchorFactors() (fx, fy float32) {
	switch h {
	case HandleNW:
		return 0, 0
	case HandleN:
		return 0.5, 0
	case HandleNE:
		return 1, 0
	case HandleE:
		return 1, 0.5
	case HandleSE:
		return 1, 1
	case HandleS:
		return 0.5, 1
	case HandleSW:
		return 0, 1
	default: // HandleW
		return 0, 0.5
	}
}

// HandleRects returns the selection outline and the eight handle hit boxes in
// screen coordinates, for the host renderer. ok is false when resize is not
// currently permitted (no single unlocked selection).
func (e *Engine) HandleRects() (outline geom.Rect, boxes [HandleCount]HandleBox, ok bool) {
	inst, can := e.resizeTarget()
	if !can {
		return geom.Rect{}, boxes, false
	}
	b := inst.Rect()
	p0, sz := e.view.RectToScreen(b)
	outline = geom.R(p0.X, p0.Y, sz.W, sz.H)
	const hs = float32(HandleHitSize)
	for h := HandleNW; h <= HandleW; h++ {
		fx, fy := h.anchorFactors()
		cx := p0.X + sz.W*fx
		cy := p0.Y + sz.H*fy
		boxes[h] = HandleBox{Handle: h, X: cx - hs/2, Y: cy - hs/2, W: hs, H: hs}
	}
	return outline, boxes, true
}

// HandleAt hit-tests the handle boxes at a screen point.
func (e *Engine) HandleAt(p geom.ScreenPoint) (Handle, bool) {
	_, boxes, ok := e.HandleRects()
	if !ok {
		return 0, false
	}
	for _, b := range boxes {
		if b.contains(p) {
			return b.Handle, true
		}
	}
	return 0, false
}
