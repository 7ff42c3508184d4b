/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package store holds the authoritative, normalized tree of placed component
// instances. It is the single shared mutable resource of the editor; the
// gesture engines write into it and the render pass reads immutable snapshots
// out of it. Persistence of the tree is owned by an external collaborator;
// this package only inserts and mutates instances.
package store

import (
	"errors"
	"fmt"

	"gopagebuilder/internal/geom"
)

var (
	// ErrParentNotFound is returned when a parent id does not reference an
	// existing instance. The store is left unchanged.
	ErrParentNotFound = errors.New("parent component not found")
	// ErrNotFound is returned by mutating operations for unknown ids.
	ErrNotFound = errors.New("component not found")
	// ErrInvalidGeometry is returned when a size would be non-positive.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrCycle is returned when a move would make a node its own ancestor.
	ErrCycle = errors.New("re-parent would create a cycle")
)

// Instance is one placed element. Position is relative to the canvas origin,
// not to the parent. Properties and Styles are opaque payloads owned by
// collaborators outside this engine.
type Instance struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Name       string            `json:"name"`
	ParentID   string            `json:"parentId,omitempty"` // empty means root-level
	ChildIDs   []string          `json:"childIds,omitempty"` // sibling paint/z order
	Position   geom.LogicalPoint `json:"position"`
	Size       geom.Size         `json:"size"`
	Properties map[string]any    `json:"properties,omitempty"`
	Styles     map[string]any    `json:"styles,omitempty"`
	Locked     bool              `json:"locked,omitempty"`
	Hidden     bool              `json:"hidden,omitempty"`
}

// Rect returns the instance's box in logical units.
func (c *Instance) Rect() geom.Rect {
	return geom.R(c.Position.X, c.Position.Y, c.Size.W, c.Size.H)
}

// Descriptor carries the fields for a new instance.
type Descriptor struct {
	Type       string
	Name       string
	ParentID   string
	Position   geom.LogicalPoint
	Size       geom.Size
	Properties map[string]any
	Styles     map[string]any
}

// CommitEvent marks an operation boundary, the point at which an interim
// mutation becomes final and eligible for external history tracking.
// Undo/redo itself lives outside this engine; this is its interface boundary.
type CommitEvent struct {
	Op string // "add", "update", "move"
	ID string
}

// Store is the normalized component tree. All access is single-threaded by
// construction (UI event loop); no internal locking.
type Store struct {
	byID     map[string]*Instance
	rootIDs  []string
	seq      int
	onCommit func(CommitEvent)
}

func New() *Store {
	return &Store{byID: make(map[string]*Instance)}
}

// OnCommit registers the external history collaborator's callback. Only one
// listener is supported; a nil fn detaches it.
func (s *Store) OnCommit(fn func(CommitEvent)) { s.onCommit = fn }

func (s *Store) commit(op, id string) {
	if s.onCommit != nil {
		s.onCommit(CommitEvent{Op: op, ID: id})
	}
}

// nextID assigns a fresh opaque identifier.
func (s *Store) nextID() string {
	for {
		s.seq++
		id := fmt.Sprintf("c-%04d", s.seq)
		if _, exists := s.byID[id]; !exists {
			return id
		}
	}
}

// AddComponent inserts a new root-or-child instance and returns its id.
// It fails only when the parent id is set but unknown, or the size is
// non-positive; in both cases the store is unchanged.
func (s *Store) AddComponent(d Descriptor) (string, error) {
	if d.Size.W <= 0 || d.Size.H <= 0 {
		return "", fmt.Errorf("%w: size %gx%g", ErrInvalidGeometry, d.Size.W, d.Size.H)
	}
	var parent *Instance
	if d.ParentID != "" {
		parent = s.byID[d.ParentID]
		if parent == nil {
			return "", fmt.Errorf("%w: %q", ErrParentNotFound, d.ParentID)
		}
	}
	id := s.nextID()
	name := d.Name
	if name == "" {
		name = fmt.Sprintf("%s %d", d.Type, s.seq)
	}
	inst := &Instance{
		ID:         id,
		Type:       d.Type,
		Name:       name,
		ParentID:   d.ParentID,
		Position:   d.Position,
		Size:       d.Size,
		Properties: d.Properties,
		Styles:     d.Styles,
	}
	s.byID[id] = inst
	if parent != nil {
		parent.ChildIDs = append(parent.ChildIDs, id)
	} else {
		s.rootIDs = append(s.rootIDs, id)
	}
	s.commit("add", id)
	return id, nil
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Name       *string
	Position   *geom.LogicalPoint
	Size       *geom.Size
	Locked     *bool
	Hidden     *bool
	Properties map[string]any
	Styles     map[string]any
}

// UpdateComponent merges the patch into the instance. commit=false marks an
// interim frame of an in-progress gesture: visible to readers but not yet an
// operation boundary. commit=true fires the commit listener.
func (s *Store) UpdateComponent(id string, p Patch, commit bool) error {
	inst := s.byID[id]
	if inst == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if p.Size != nil && (p.Size.W <= 0 || p.Size.H <= 0) {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidGeometry, p.Size.W, p.Size.H)
	}
	if p.Name != nil {
		inst.Name = *p.Name
	}
	if p.Position != nil {
		inst.Position = *p.Position
	}
	if p.Size != nil {
		inst.Size = *p.Size
	}
	if p.Locked != nil {
		inst.Locked = *p.Locked
	}
	if p.Hidden != nil {
		inst.Hidden = *p.Hidden
	}
	if p.Properties != nil {
		if inst.Properties == nil {
			inst.Properties = make(map[string]any, len(p.Properties))
		}
		for k, v := range p.Properties {
			inst.Properties[k] = v
		}
	}
	if p.Styles != nil {
		if inst.Styles == nil {
			inst.Styles = make(map[string]any, len(p.Styles))
		}
		for k, v := range p.Styles {
			inst.Styles[k] = v
		}
	}
	if commit {
		s.commit("update", id)
	}
	return nil
}

// MoveComponent re-parents and repositions atomically. The old and new
// parents' child lists are updated in the same operation so the tree is never
// observed inconsistent.
func (s *Store) MoveComponent(id, newParentID string, pos geom.LogicalPoint) error {
	inst := s.byID[id]
	if inst == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if newParentID != "" {
		if s.byID[newParentID] == nil {
			return fmt.Errorf("%w: %q", ErrParentNotFound, newParentID)
		}
		if newParentID == id || s.isDescendant(newParentID, id) {
			return fmt.Errorf("%w: %q under %q", ErrCycle, id, newParentID)
		}
	}
	if inst.ParentID != newParentID {
		s.detach(inst)
		inst.ParentID = newParentID
		if newParentID != "" {
			p := s.byID[newParentID]
			p.ChildIDs = append(p.ChildIDs, id)
		} else {
			s.rootIDs = append(s.rootIDs, id)
		}
	}
	inst.Position = pos
	s.commit("move", id)
	return nil
}

// detach removes the instance from its current parent's child list or the
// root list. The instance stays in byID.
func (s *Store) detach(inst *Instance) {
	if inst.ParentID == "" {
		s.rootIDs = removeID(s.rootIDs, inst.ID)
		return
	}
	if p := s.byID[inst.ParentID]; p != nil {
		p.ChildIDs = removeID(p.ChildIDs, inst.ID)
	}
}

// isDescendant reports whether candidate is in the subtree rooted at ancestor.
func (s *Store) isDescendant(candidate, ancestor string) bool {
	root := s.byID[ancestor]
	if root == nil {
		return false
	}
	stack := append([]string(nil), root.ChildIDs...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == candidate {
			return true
		}
		if c := s.byID[id]; c != nil {
			stack = append(stack, c.ChildIDs...)
		}
	}
	return false
}

// Component returns the instance for id, or nil when unknown. Never panics.
func (s *Store) Component(id string) *Instance { return s.byID[id] }

// ListRootComponents returns root instances in z-order.
func (s *Store) ListRootComponents() []*Instance {
	out := make([]*Instance, 0, len(s.rootIDs))
	for _, id := range s.rootIDs {
		out = append(out, s.byID[id])
	}
	return out
}

// Len reports the number of instances in the tree.
func (s *Store) Len() int { return len(s.byID) }

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
