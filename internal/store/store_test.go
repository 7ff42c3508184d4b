/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"errors"
	"testing"

	"gopagebuilder/internal/geom"
)

func mustAdd(t *testing.T, s *Store, d Descriptor) string {
	t.Helper()
	id, err := s.AddComponent(d)
	if err != nil {
		t.Fatalf("AddComponent(%+v) failed: %v", d, err)
	}
	return id
}

// checkTree asserts the parent/child symmetry invariant: c.ParentID == p iff
// p.ChildIDs contains c.ID, and roots appear in no child list.
func checkTree(t *testing.T, s *Store) {
	t.Helper()
	seenAsChild := map[string]string{}
	for _, root := range s.ListRootComponents() {
		if root.ParentID != "" {
			t.Fatalf("root %s has parent %q", root.ID, root.ParentID)
		}
	}
	for id, inst := range s.byID {
		for _, child := range inst.ChildIDs {
			c := s.Component(child)
			if c == nil {
				t.Fatalf("%s lists unknown child %s", id, child)
			}
			if c.ParentID != id {
				t.Fatalf("child %s of %s claims parent %q", child, id, c.ParentID)
			}
			if prev, dup := seenAsChild[child]; dup {
				t.Fatalf("%s is child of both %s and %s", child, prev, id)
			}
			seenAsChild[child] = id
		}
	}
	for id, inst := range s.byID {
		if inst.ParentID == "" {
			continue
		}
		if seenAsChild[id] != inst.ParentID {
			t.Fatalf("%s has parent %q but is not in its child list", id, inst.ParentID)
		}
	}
}

func TestAddComponentRootsAndChildren(t *testing.T) {
	s := New()
	a := mustAdd(t, s, Descriptor{Type: "container", Size: geom.Size{W: 200, H: 100}})
	b := mustAdd(t, s, Descriptor{Type: "button", ParentID: a, Position: geom.LogicalPoint{X: 10, Y: 10}, Size: geom.Size{W: 80, H: 30}})
	checkTree(t, s)

	if got := s.Component(a); got == nil || len(got.ChildIDs) != 1 || got.ChildIDs[0] != b {
		t.Fatalf("parent child list wrong: %+v", got)
	}
	if roots := s.ListRootComponents(); len(roots) != 1 || roots[0].ID != a {
		t.Fatalf("expected single root %s, got %v", a, roots)
	}
}

func TestAddComponentParentNotFound(t *testing.T) {
	s := New()
	_, err := s.AddComponent(Descriptor{Type: "text", ParentID: "nope", Size: geom.Size{W: 10, H: 10}})
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("store must be unchanged after rejected add")
	}
}

func TestAddComponentRejectsNonPositiveSize(t *testing.T) {
	s := New()
	_, err := s.AddComponent(Descriptor{Type: "image", Size: geom.Size{W: 0, H: 10}})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestComponentUnknownIDReturnsNil(t *testing.T) {
	s := New()
	if c := s.Component("missing"); c != nil {
		t.Fatalf("unknown id must return nil, got %+v", c)
	}
}

func TestUpdateComponentPartialMergeAndCommit(t *testing.T) {
	s := New()
	var events []CommitEvent
	s.OnCommit(func(e CommitEvent) { events = append(events, e) })

	id := mustAdd(t, s, Descriptor{Type: "button", Name: "ok", Size: geom.Size{W: 80, H: 30}})
	events = nil

	pos := geom.LogicalPoint{X: 5, Y: 6}
	if err := s.UpdateComponent(id, Patch{Position: &pos}, false); err != nil {
		t.Fatalf("interim update failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("interim update must not fire commit, got %v", events)
	}
	if got := s.Component(id).Position; got != pos {
		t.Fatalf("interim update must still be visible to readers, got %+v", got)
	}

	sz := geom.Size{W: 100, H: 40}
	if err := s.UpdateComponent(id, Patch{Size: &sz}, true); err != nil {
		t.Fatalf("commit update failed: %v", err)
	}
	if len(events) != 1 || events[0].Op != "update" || events[0].ID != id {
		t.Fatalf("expected one update commit, got %v", events)
	}
	if got := s.Component(id).Name; got != "ok" {
		t.Fatalf("unpatched field must stay, got %q", got)
	}
}

func TestMoveComponentReparentsAtomically(t *testing.T) {
	s := New()
	a := mustAdd(t, s, Descriptor{Type: "container", Size: geom.Size{W: 300, H: 300}})
	b := mustAdd(t, s, Descriptor{Type: "container", Size: geom.Size{W: 300, H: 300}})
	c := mustAdd(t, s, Descriptor{Type: "button", ParentID: a, Size: geom.Size{W: 50, H: 20}})

	if err := s.MoveComponent(c, b, geom.LogicalPoint{X: 7, Y: 8}); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	checkTree(t, s)
	if len(s.Component(a).ChildIDs) != 0 {
		t.Fatalf("old parent still lists moved child")
	}
	if got := s.Component(b).ChildIDs; len(got) != 1 || got[0] != c {
		t.Fatalf("new parent child list wrong: %v", got)
	}
	if got := s.Component(c).Position; got != (geom.LogicalPoint{X: 7, Y: 8}) {
		t.Fatalf("position not applied: %+v", got)
	}

	// to root
	if err := s.MoveComponent(c, "", geom.LogicalPoint{X: 1, Y: 1}); err != nil {
		t.Fatalf("move to root failed: %v", err)
	}
	checkTree(t, s)
	if len(s.ListRootComponents()) != 3 {
		t.Fatalf("expected 3 roots after move to root")
	}
}

func TestMoveComponentRejectsCycles(t *testing.T) {
	s := New()
	a := mustAdd(t, s, Descriptor{Type: "container", Size: geom.Size{W: 300, H: 300}})
	b := mustAdd(t, s, Descriptor{Type: "container", ParentID: a, Size: geom.Size{W: 200, H: 200}})
	c := mustAdd(t, s, Descriptor{Type: "container", ParentID: b, Size: geom.Size{W: 100, H: 100}})

	if err := s.MoveComponent(a, c, geom.LogicalPoint{}); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if err := s.MoveComponent(a, a, geom.LogicalPoint{}); !errors.Is(err, ErrCycle) {
		t.Fatalf("self-parent must be ErrCycle, got %v", err)
	}
	checkTree(t, s)
}

func TestMoveComponentParentNotFoundLeavesTreeIntact(t *testing.T) {
	s := New()
	a := mustAdd(t, s, Descriptor{Type: "button", Size: geom.Size{W: 50, H: 20}})
	if err := s.MoveComponent(a, "ghost", geom.LogicalPoint{X: 9, Y: 9}); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
	if got := s.Component(a).Position; got != (geom.LogicalPoint{}) {
		t.Fatalf("rejected move must not reposition, got %+v", got)
	}
	checkTree(t, s)
}

func TestTreeConsistencyAfterRandomishSequence(t *testing.T) {
	s := New()
	ids := make([]string, 0, 8)
	for i := 0; i < 4; i++ {
		ids = append(ids, mustAdd(t, s, Descriptor{Type: "container", Size: geom.Size{W: 100, H: 100}}))
	}
	ids = append(ids, mustAdd(t, s, Descriptor{Type: "button", ParentID: ids[0], Size: geom.Size{W: 10, H: 10}}))
	ids = append(ids, mustAdd(t, s, Descriptor{Type: "text", ParentID: ids[1], Size: geom.Size{W: 10, H: 10}}))
	moves := []struct {
		id, parent string
	}{
		{ids[4], ids[2]},
		{ids[5], ids[0]},
		{ids[2], ids[3]},
		{ids[4], ""},
		{ids[0], ids[4]},
	}
	for _, m := range moves {
		if err := s.MoveComponent(m.id, m.parent, geom.LogicalPoint{X: 1, Y: 2}); err != nil {
			t.Fatalf("move %s under %q failed: %v", m.id, m.parent, err)
		}
		checkTree(t, s)
	}
}

func TestSnapshotIsDetachedFromLaterMutation(t *testing.T) {
	s := New()
	a := mustAdd(t, s, Descriptor{Type: "container", Size: geom.Size{W: 100, H: 100}})
	b := mustAdd(t, s, Descriptor{Type: "button", ParentID: a, Size: geom.Size{W: 10, H: 10}})

	snap := s.Snapshot()
	pos := geom.LogicalPoint{X: 99, Y: 99}
	if err := s.UpdateComponent(b, Patch{Position: &pos}, true); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if c, _ := snap.Component(b); c.Position == pos {
		t.Fatalf("snapshot observed a later mutation")
	}

	var order []string
	snap.Walk(func(c Instance, depth int) { order = append(order, c.ID) })
	if len(order) != 2 || order[0] != a || order[1] != b {
		t.Fatalf("walk must be parent-before-child, got %v", order)
	}
}
