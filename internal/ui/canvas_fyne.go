//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"gopagebuilder/internal/editor"
	"gopagebuilder/internal/geom"
	"gopagebuilder/internal/palette"
	"gopagebuilder/internal/render"
	"gopagebuilder/internal/selection"
)

// CanvasWidget is the interactive page canvas. It draws the paint list as
// positioned rectangles and routes pointer/keyboard input into the session's
// engines. All geometry flows screen -> engines -> paint list -> screen; the
// widget itself holds no document state.
type CanvasWidget struct {
	widget.BaseWidget
	session *editor.Session

	// gesture bookkeeping for the current fyne drag
	mode      canvasDragMode
	lastDrag  geom.ScreenPoint
	armed     *palette.Descriptor // next canvas tap places this descriptor
	ctrlDown  bool
	shiftDown bool

	OnStatus func(msg string)
}

type canvasDragMode int

const (
	canvasDragNone canvasDragMode = iota
	canvasDragPan
	canvasDragMove
	canvasDragResize
	canvasDragPalette
)

func NewCanvasWidget(s *editor.Session) *CanvasWidget {
	c := &CanvasWidget{session: s}
	c.ExtendBaseWidget(c)
	return c
}

// ArmPaletteItem makes the next drag (or tap) on the canvas place d.
func (c *CanvasWidget) ArmPaletteItem(d palette.Descriptor) {
	c.armed = &d
}

func (c *CanvasWidget) status(msg string) {
	if c.OnStatus != nil {
		c.OnStatus(msg)
	}
}

func (c *CanvasWidget) screenPoint(pos fyne.Position) geom.ScreenPoint {
	return geom.ScreenPoint{X: pos.X, Y: pos.Y}
}

// Tapped selects the top-most instance under the pointer, or clears the
// selection on empty canvas. An armed palette item is placed instead.
func (c *CanvasWidget) Tapped(e *fyne.PointEvent) {
	sp := c.screenPoint(e.Position)
	if c.armed != nil {
		d := *c.armed
		c.armed = nil
		drag := c.session.Drag()
		if err := drag.BeginPaletteDrag(d, sp, false); err == nil {
			drag.Move(geom.ScreenPoint{X: sp.X + 5, Y: sp.Y + 5})
			drag.Move(sp)
			if id, ok, err := drag.Drop(sp); err == nil && ok {
				c.session.Selection().Select(id, false)
				c.status("placed " + d.ComponentType)
			}
		}
		c.Refresh()
		return
	}
	lp := c.session.Viewport().ScreenToLogical(sp)
	if id, ok := render.HitTest(c.session.Snapshot(), lp); ok {
		c.session.Selection().Select(id, c.ctrlDown)
	} else {
		c.session.Selection().Clear()
	}
	c.Refresh()
}

// Dragged begins or continues a gesture. The first event decides the mode:
// resize when a handle is under the press point, move when an instance is,
// pan otherwise.
func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	sp := c.screenPoint(e.Position)
	start := geom.ScreenPoint{X: sp.X - e.Dragged.DX, Y: sp.Y - e.Dragged.DY}

	if c.mode == canvasDragNone {
		c.beginGesture(start)
	}
	c.lastDrag = sp
	switch c.mode {
	case canvasDragResize:
		c.session.Selection().ResizeMove(sp)
	case canvasDragMove, canvasDragPalette:
		c.session.Drag().Move(sp)
	case canvasDragPan:
		c.session.Viewport().PanBy(geom.ScreenDelta{DX: e.Dragged.DX, DY: e.Dragged.DY})
	}
	c.Refresh()
}

func (c *CanvasWidget) beginGesture(start geom.ScreenPoint) {
	sel := c.session.Selection()
	if c.armed != nil {
		d := *c.armed
		c.armed = nil
		if err := c.session.Drag().BeginPaletteDrag(d, start, false); err == nil {
			c.mode = canvasDragPalette
			return
		}
	}
	if h, ok := sel.HandleAt(start); ok {
		if err := sel.BeginResize(h, start); err == nil {
			c.mode = canvasDragResize
			return
		}
	}
	lp := c.session.Viewport().ScreenToLogical(start)
	if id, ok := render.HitTest(c.session.Snapshot(), lp); ok {
		if err := c.session.Drag().BeginCanvasDrag(id, start, false); err == nil {
			sel.Select(id, false)
			c.mode = canvasDragMove
			return
		}
		c.status("component is locked")
	}
	c.mode = canvasDragPan
}

// DragEnd commits the gesture at the last pointer position.
func (c *CanvasWidget) DragEnd() {
	switch c.mode {
	case canvasDragResize:
		if err := c.session.Selection().EndResize(c.lastDrag); err != nil {
			c.status("resize failed: " + err.Error())
		}
	case canvasDragMove, canvasDragPalette:
		if id, committed, err := c.session.Drag().Drop(c.lastDrag); err != nil {
			c.status("drop failed: " + err.Error())
		} else if committed && c.mode == canvasDragPalette {
			c.session.Selection().Select(id, false)
		}
	}
	c.mode = canvasDragNone
	c.Refresh()
}

// Scrolled zooms with Ctrl+wheel and pans otherwise.
func (c *CanvasWidget) Scrolled(e *fyne.ScrollEvent) {
	if c.ctrlDown {
		step := float32(0)
		if e.Scrolled.DY > 0 {
			step = 0.1
		} else if e.Scrolled.DY < 0 {
			step = -0.1
		}
		c.session.Viewport().ZoomBy(step)
	} else {
		c.session.Viewport().PanBy(geom.ScreenDelta{DX: e.Scrolled.DX, DY: e.Scrolled.DY})
	}
	c.Refresh()
}

// MouseMoved drives hover state.
func (c *CanvasWidget) MouseMoved(e *desktop.MouseEvent) {
	lp := c.session.Viewport().ScreenToLogical(c.screenPoint(e.Position))
	if id, ok := render.HitTest(c.session.Snapshot(), lp); ok {
		c.session.Selection().SetHovered(id)
	} else {
		c.session.Selection().SetHovered("")
	}
}

func (c *CanvasWidget) MouseIn(_ *desktop.MouseEvent) {}
func (c *CanvasWidget) MouseOut() {
	c.session.Selection().SetHovered("")
	// pointer left the canvas mid-gesture: cancel without committing
	if c.mode != canvasDragNone {
		c.session.Drag().Cancel()
		c.session.Selection().CancelResize()
		c.mode = canvasDragNone
		c.Refresh()
	}
}

// Keyboard focus plumbing.
func (c *CanvasWidget) FocusGained() {}
func (c *CanvasWidget) FocusLost()   { c.ctrlDown = false; c.shiftDown = false }
func (c *CanvasWidget) TypedRune(r rune) {
	switch r {
	case '+', '=':
		c.session.HandleKey(editor.KeyEvent{Key: "+", CtrlOrCmd: true})
	case '-':
		c.session.HandleKey(editor.KeyEvent{Key: "-", CtrlOrCmd: true})
	}
	c.Refresh()
}

func (c *CanvasWidget) TypedKey(e *fyne.KeyEvent) {
	ev := editor.KeyEvent{Key: string(e.Name), CtrlOrCmd: c.ctrlDown, Shift: c.shiftDown}
	switch e.Name {
	case fyne.KeyEscape:
		ev.Key = "Escape"
	case fyne.KeyUp:
		ev.Key = "Up"
	case fyne.KeyDown:
		ev.Key = "Down"
	case fyne.KeyLeft:
		ev.Key = "Left"
	case fyne.KeyRight:
		ev.Key = "Right"
	}
	if c.session.HandleKey(ev) {
		c.Refresh()
	}
}

// KeyDown/KeyUp track modifiers through the desktop driver.
func (c *CanvasWidget) KeyDown(e *fyne.KeyEvent) { c.setModifier(e.Name, true) }
func (c *CanvasWidget) KeyUp(e *fyne.KeyEvent)   { c.setModifier(e.Name, false) }

func (c *CanvasWidget) setModifier(name fyne.KeyName, down bool) {
	switch name {
	case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeySuperLeft, desktop.KeySuperRight:
		c.ctrlDown = down
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		c.shiftDown = down
	}
}

func (c *CanvasWidget) MinSize() fyne.Size { return fyne.NewSize(800, 600) }

// CreateRenderer positions one canvas.Rectangle per paint item plus the
// selection/drag overlay on top.
func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 30, G: 30, B: 34, A: 255})

	bbox := canvas.NewRectangle(color.RGBA{})
	bbox.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
	bbox.StrokeWidth = 1
	bbox.Hide()

	var handles [selection.HandleCount]*canvas.Rectangle
	for i := range handles {
		h := canvas.NewRectangle(color.RGBA{R: 0, G: 170, B: 255, A: 255})
		h.Hide()
		handles[i] = h
	}

	ghost := canvas.NewRectangle(color.RGBA{R: 0, G: 170, B: 255, A: 60})
	ghost.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 200}
	ghost.StrokeWidth = 1
	ghost.Hide()

	label := canvas.NewText("", color.White)
	label.TextSize = 12
	label.Hide()

	return &canvasRenderer{
		cw:      c,
		bg:      bg,
		bbox:    bbox,
		handles: handles,
		ghost:   ghost,
		label:   label,
	}
}

type canvasRenderer struct {
	cw      *CanvasWidget
	bg      *canvas.Rectangle
	items   []*canvas.Rectangle
	bbox    *canvas.Rectangle
	handles [selection.HandleCount]*canvas.Rectangle
	ghost   *canvas.Rectangle
	label   *canvas.Text
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	r.Refresh()
}

func (r *canvasRenderer) MinSize() fyne.Size { return r.cw.MinSize() }

func (r *canvasRenderer) Refresh() {
	sess := r.cw.session
	view := sess.Viewport()
	items := render.BuildPaintList(sess.Snapshot(), sess.Selection().Selected())

	// Grow/shrink the rectangle pool to match the paint list.
	for len(r.items) < len(items) {
		rect := canvas.NewRectangle(color.RGBA{R: 230, G: 230, B: 230, A: 255})
		rect.StrokeColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
		rect.StrokeWidth = 1
		r.items = append(r.items, rect)
	}
	r.items = r.items[:len(items)]

	hovered := sess.Selection().Hovered()
	for i, it := range items {
		rect := r.items[i]
		p0, sz := view.RectToScreen(it.Bounds)
		rect.Move(fyne.NewPos(p0.X, p0.Y))
		rect.Resize(fyne.NewSize(sz.W, sz.H))
		alpha := uint8(it.Alpha * 255)
		rect.FillColor = color.RGBA{R: 230, G: 230, B: 230, A: alpha}
		switch {
		case it.Selected:
			rect.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
			rect.StrokeWidth = 2
		case it.ID == hovered:
			rect.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 150}
			rect.StrokeWidth = 1
		default:
			rect.StrokeColor = color.RGBA{R: 40, G: 40, B: 40, A: alpha}
			rect.StrokeWidth = 1
		}
		rect.Refresh()
	}

	o := render.BuildOverlay(sess.Selection(), sess.Drag(), view)
	if o.HasOutline {
		r.bbox.Move(fyne.NewPos(o.Outline.X, o.Outline.Y))
		r.bbox.Resize(fyne.NewSize(o.Outline.W, o.Outline.H))
		r.bbox.Show()
		for i, hb := range o.Handles {
			r.handles[i].Move(fyne.NewPos(hb.X, hb.Y))
			r.handles[i].Resize(fyne.NewSize(hb.W, hb.H))
			r.handles[i].Show()
		}
	} else {
		r.bbox.Hide()
		for _, h := range r.handles {
			h.Hide()
		}
	}
	if o.HasGhost {
		r.ghost.Move(fyne.NewPos(o.Ghost.X, o.Ghost.Y))
		r.ghost.Resize(fyne.NewSize(o.Ghost.W, o.Ghost.H))
		r.ghost.Show()
	} else {
		r.ghost.Hide()
	}
	if o.Label != "" && o.HasOutline {
		r.label.Text = o.Label
		r.label.Move(fyne.NewPos(o.Outline.X, o.Outline.Y+o.Outline.H+4))
		r.label.Show()
		r.label.Refresh()
	} else {
		r.label.Hide()
	}
	canvas.Refresh(r.cw)
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	objs := []fyne.CanvasObject{r.bg}
	for _, it := range r.items {
		objs = append(objs, it)
	}
	objs = append(objs, r.ghost, r.bbox)
	for _, h := range r.handles {
		objs = append(objs, h)
	}
	objs = append(objs, r.label)
	return objs
}

func (r *canvasRenderer) Destroy() {}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Tappable = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ fyne.Scrollable = (*CanvasWidget)(nil)
var _ fyne.Focusable = (*CanvasWidget)(nil)
var _ desktop.Hoverable = (*CanvasWidget)(nil)
var _ desktop.Keyable = (*CanvasWidget)(nil)
