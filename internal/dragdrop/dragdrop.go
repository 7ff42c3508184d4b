/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package dragdrop implements the pointer-driven state machine that moves an
// existing instance or materializes a palette descriptor at a drop point.
// While a drag is live the store is never touched; only the local ghost
// offset updates. The single commit happens on Drop.
package dragdrop

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gopagebuilder/internal/geom"
	applog "gopagebuilder/internal/log"
	"gopagebuilder/internal/palette"
	"gopagebuilder/internal/store"
	"gopagebuilder/internal/viewport"
)

var (
	// ErrLocked is returned when a drag is attempted on a locked instance.
	ErrLocked = errors.New("component is locked")
	// ErrHidden is returned when a drag is attempted on a hidden instance.
	ErrHidden = errors.New("component is hidden")
	// ErrGestureActive is returned when a second gesture starts before the
	// first ended. The active gesture is kept.
	ErrGestureActive = errors.New("another gesture is active")
)

// Source identifies where the dragged payload came from.
type Source int

const (
	SourceNone Source = iota
	SourcePalette
	SourceCanvas
)

func (s Source) String() string {
	switch s {
	case SourcePalette:
		return "palette"
	case SourceCanvas:
		return "canvas"
	default:
		return "none"
	}
}

const (
	// DefaultActivationDistance is the minimum pointer travel in screen
	// pixels before a press becomes a drag. Keeps plain clicks from being
	// hijacked.
	DefaultActivationDistance = 4.0
	// DefaultTouchHoldDelay is how long a touch press must be held before it
	// may activate a drag; faster movement is treated as a scroll.
	DefaultTouchHoldDelay = 250 * time.Millisecond
)

// Config tunes gesture activation. Now is injectable for tests.
type Config struct {
	ActivationDistance float32
	TouchHoldDelay     time.Duration
	Now                func() time.Time
}

// Ghost is the live preview the host renderer displays during a drag.
type Ghost struct {
	Source   Source
	ID       string // empty for palette drags
	Position geom.LogicalPoint
	Size     geom.Size
}

// Controller is the drag state machine. Idle -> Dragging -> Idle; a cancel is
// Idle with no store mutation.
type Controller struct {
	store *store.Store
	view  *viewport.Engine
	cfg   Config
	log   *slog.Logger

	source    Source
	activeID  string
	parentID  string
	startPos  geom.LogicalPoint
	desc      palette.Descriptor
	start     geom.ScreenPoint
	last      geom.ScreenPoint
	pressedAt time.Time
	touch     bool
	activated bool
	moved     bool
}

func New(s *store.Store, v *viewport.Engine, cfg Config) *Controller {
	if cfg.ActivationDistance <= 0 {
		cfg.ActivationDistance = DefaultActivationDistance
	}
	if cfg.TouchHoldDelay <= 0 {
		cfg.TouchHoldDelay = DefaultTouchHoldDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Controller{store: s, view: v, cfg: cfg, log: applog.WithComponent("dragdrop")}
}

// Active reports whether a gesture is in progress (pending or live).
func (c *Controller) Active() bool { return c.source != SourceNone }

// Dragging reports whether the gesture passed the activation threshold.
func (c *Controller) Dragging() bool { return c.activated }

// ActiveID returns the instance being dragged, empty for palette drags.
func (c *Controller) ActiveID() string { return c.activeID }

// BeginCanvasDrag starts a gesture on an existing instance. Locked and hidden
// instances never enter Dragging.
func (c *Controller) BeginCanvasDrag(id string, at geom.ScreenPoint, touch bool) error {
	if c.source != SourceNone {
		return ErrGestureActive
	}
	inst := c.store.Component(id)
	if inst == nil {
		return fmt.Errorf("%w: %q", store.ErrNotFound, id)
	}
	if inst.Locked {
		return fmt.Errorf("%w: %q", ErrLocked, id)
	}
	if inst.Hidden {
		return fmt.Errorf("%w: %q", ErrHidden, id)
	}
	c.source = SourceCanvas
	c.activeID = id
	c.parentID = inst.ParentID
	c.startPos = inst.Position
	c.beginCommon(at, touch)
	c.log.Debug("canvas drag begin", slog.String("id", id))
	return nil
}

// BeginPaletteDrag starts a gesture from a palette descriptor. The instance
// is only created on Drop.
func (c *Controller) BeginPaletteDrag(d palette.Descriptor, at geom.ScreenPoint, touch bool) error {
	if c.source != SourceNone {
		return ErrGestureActive
	}
	if d.DefaultSize.W <= 0 || d.DefaultSize.H <= 0 {
		return fmt.Errorf("%w: default size %gx%g", store.ErrInvalidGeometry, d.DefaultSize.W, d.DefaultSize.H)
	}
	c.source = SourcePalette
	c.desc = d
	c.beginCommon(at, touch)
	c.log.Debug("palette drag begin", slog.String("type", d.ComponentType))
	return nil
}

func (c *Controller) beginCommon(at geom.ScreenPoint, touch bool) {
	c.start = at
	c.last = at
	c.touch = touch
	c.pressedAt = c.cfg.Now()
	c.activated = false
	c.moved = false
}

// Move streams a pointer position. Stale events (no gesture) and non-finite
// coordinates are dropped silently; the store is never mutated here.
func (c *Controller) Move(p geom.ScreenPoint) {
	if c.source == SourceNone || !p.Finite() {
		return
	}
	c.last = p
	c.moved = true
	if c.activated {
		return
	}
	dist := p.Sub(c.start).Len()
	if dist < c.cfg.ActivationDistance {
		return
	}
	if c.touch && c.cfg.Now().Sub(c.pressedAt) < c.cfg.TouchHoldDelay {
		// Fast touch movement is a scroll, not a drag.
		c.reset()
		return
	}
	c.activated = true
}

// delta returns the current logical movement, snapped when the grid asks.
func (c *Controller) dropPoint() geom.LogicalPoint {
	switch c.source {
	case SourcePalette:
		return c.view.Snap(c.view.ScreenToLogical(c.last))
	default:
		d := c.last.Sub(c.start).Div(c.view.State().Zoom)
		return c.view.Snap(c.startPos.Add(d))
	}
}

// Ghost exposes the preview geometry for the renderer; ok is false unless a
// drag is live.
func (c *Controller) Ghost() (Ghost, bool) {
	if !c.activated {
		return Ghost{}, false
	}
	g := Ghost{Source: c.source, ID: c.activeID, Position: c.dropPoint()}
	switch c.source {
	case SourcePalette:
		g.Size = c.desc.DefaultSize
	case SourceCanvas:
		if inst := c.store.Component(c.activeID); inst != nil {
			g.Size = inst.Size
		}
	}
	return g, true
}

// Drop commits the gesture at p. A press that never activated is a plain
// click: no mutation. Returns the affected/created id when committed.
func (c *Controller) Drop(p geom.ScreenPoint) (string, bool, error) {
	if c.source == SourceNone {
		return "", false, nil // stale event
	}
	defer c.reset()
	if p.Finite() {
		c.last = p
	}
	if !c.activated || !c.moved {
		c.log.Debug("drag cancelled", slog.String("source", c.source.String()))
		return "", false, nil
	}
	pos := c.dropPoint()
	switch c.source {
	case SourcePalette:
		id, err := c.store.AddComponent(store.Descriptor{
			Type:     c.desc.ComponentType,
			Name:     c.desc.Name,
			Position: pos,
			Size:     c.desc.DefaultSize,
		})
		if err != nil {
			return "", false, err
		}
		c.log.Info("palette drop", slog.String("id", id), slog.String("type", c.desc.ComponentType))
		return id, true, nil
	case SourceCanvas:
		if c.store.Component(c.activeID) == nil {
			// Instance vanished mid-gesture (external delete); drop silently.
			return "", false, nil
		}
		if err := c.store.MoveComponent(c.activeID, c.parentID, pos); err != nil {
			return "", false, err
		}
		c.log.Info("drag commit", slog.String("id", c.activeID))
		return c.activeID, true, nil
	}
	return "", false, nil
}

// Cancel aborts the gesture without committing, restoring the pre-gesture
// visual state. Used for Escape and pointer-leave.
func (c *Controller) Cancel() {
	if c.source == SourceNone {
		return
	}
	c.log.Debug("drag cancel", slog.String("source", c.source.String()))
	c.reset()
}

func (c *Controller) reset() {
	c.source = SourceNone
	c.activeID = ""
	c.parentID = ""
	c.desc = palette.Descriptor{}
	c.activated = false
	c.moved = false
	c.touch = false
}
