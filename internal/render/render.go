/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns a store snapshot into a flat paint list the UI host
// and the exporters consume. Paint order is depth-first, parent before child,
// siblings in ChildIDs order; the last item paints on top.
package render

import (
	"gopagebuilder/internal/geom"
	"gopagebuilder/internal/store"
)

// HiddenAlpha is the translucency hidden instances are painted with in the
// editor so they stay discoverable without reading as part of the page.
const HiddenAlpha = 0.25

// PaintItem is one rectangle of the paint pass, in logical units.
type PaintItem struct {
	ID       string
	Type     string
	Bounds   geom.Rect
	Depth    int
	Alpha    float32 // 1.0 opaque, HiddenAlpha for hidden instances
	Locked   bool
	Hidden   bool
	Styles   map[string]any
	Selected bool
}

// BuildPaintList flattens the snapshot into paint order. selected may be nil.
func BuildPaintList(snap store.Snapshot, selected []string) []PaintItem {
	sel := make(map[string]bool, len(selected))
	for _, id := range selected {
		sel[id] = true
	}
	items := make([]PaintItem, 0, snap.Len())
	snap.Walk(func(c store.Instance, depth int) {
		alpha := float32(1)
		if c.Hidden {
			alpha = HiddenAlpha
		}
		items = append(items, PaintItem{
			ID:       c.ID,
			Type:     c.Type,
			Bounds:   c.Rect(),
			Depth:    depth,
			Alpha:    alpha,
			Locked:   c.Locked,
			Hidden:   c.Hidden,
			Styles:   c.Styles,
			Selected: sel[c.ID],
		})
	})
	return items
}

// HitTest returns the top-most visible instance at a logical point, walking
// the paint list back to front. Hidden instances are painted but never hit;
// locked ones are hit (they can be selected, just not moved).
func HitTest(snap store.Snapshot, p geom.LogicalPoint) (string, bool) {
	items := BuildPaintList(snap, nil)
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if it.Hidden {
			continue
		}
		if it.Bounds.Contains(p) {
			return it.ID, true
		}
	}
	return "", false
}
