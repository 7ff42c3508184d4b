/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"gopagebuilder/internal/dragdrop"
	"gopagebuilder/internal/geom"
	"gopagebuilder/internal/selection"
	"gopagebuilder/internal/viewport"
)

// Overlay is the screen-space chrome drawn above the paint list: selection
// outline, resize handles, multi-select bounding box and the drag ghost.
type Overlay struct {
	Outline    geom.Rect // resize outline, valid when HasOutline
	HasOutline bool
	Handles    [selection.HandleCount]selection.HandleBox
	Bounds     geom.Rect // selection bounding box, valid when HasBounds
	HasBounds  bool
	Ghost      geom.Rect // drag ghost, valid when HasGhost
	HasGhost   bool
	Label      string // live dimension readout, empty when idle
}

// BuildOverlay computes the overlay for one frame.
func BuildOverlay(sel *selection.Engine, drag *dragdrop.Controller, view *viewport.Engine) Overlay {
	var o Overlay
	if outline, boxes, ok := sel.HandleRects(); ok {
		o.Outline = outline
		o.Handles = boxes
		o.HasOutline = true
	}
	if b, ok := sel.BoundingBox(); ok {
		p0, sz := view.RectToScreen(b)
		o.Bounds = geom.R(p0.X, p0.Y, sz.W, sz.H)
		o.HasBounds = true
	}
	if g, ok := drag.Ghost(); ok {
		p0, sz := view.RectToScreen(geom.R(g.Position.X, g.Position.Y, g.Size.W, g.Size.H))
		o.Ghost = geom.R(p0.X, p0.Y, sz.W, sz.H)
		o.HasGhost = true
	}
	o.Label = sel.DimensionLabel()
	return o
}
