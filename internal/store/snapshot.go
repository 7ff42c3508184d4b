/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

// Snapshot is an immutable copy of the component tree at one moment. The
// render pass consumes snapshots so that "does the data change" is decoupled
// from "when do we redraw".
type Snapshot struct {
	byID    map[string]Instance
	rootIDs []string
}

// Snapshot deep-copies the current tree.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		byID:    make(map[string]Instance, len(s.byID)),
		rootIDs: append([]string(nil), s.rootIDs...),
	}
	for id, inst := range s.byID {
		c := *inst
		c.ChildIDs = append([]string(nil), inst.ChildIDs...)
		// Properties/Styles are opaque to the engine; a shallow copy of the
		// maps keeps the snapshot detached from later key writes.
		if inst.Properties != nil {
			c.Properties = make(map[string]any, len(inst.Properties))
			for k, v := range inst.Properties {
				c.Properties[k] = v
			}
		}
		if inst.Styles != nil {
			c.Styles = make(map[string]any, len(inst.Styles))
			for k, v := range inst.Styles {
				c.Styles[k] = v
			}
		}
		snap.byID[id] = c
	}
	return snap
}

// Component returns a copy of the instance, ok=false when unknown.
func (n Snapshot) Component(id string) (Instance, bool) {
	c, ok := n.byID[id]
	return c, ok
}

// RootIDs returns root ids in z-order.
func (n Snapshot) RootIDs() []string { return append([]string(nil), n.rootIDs...) }

// Len reports the number of instances in the snapshot.
func (n Snapshot) Len() int { return len(n.byID) }

// Walk visits every instance depth-first in parent-before-child order,
// siblings in z-order. depth is 0 for roots.
func (n Snapshot) Walk(visit func(c Instance, depth int)) {
	var rec func(id string, depth int)
	rec = func(id string, depth int) {
		c, ok := n.byID[id]
		if !ok {
			return
		}
		visit(c, depth)
		for _, child := range c.ChildIDs {
			rec(child, depth+1)
		}
	}
	for _, id := range n.rootIDs {
		rec(id, 0)
	}
}
