// SPDX-License-Identifier: MIT

package viewer

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// Move is one scripted user action on a MemorySurface: slide control
// Control to Position.
type Move struct {
	Control  int
	Position int
}

// MemorySurface is a headless Surface. Each Wait applies the next scripted
// Move and delivers its callback; once the script is exhausted (or Quit was
// called) Wait reports quit. Shown frames are kept in order.
type MemorySurface struct {
	mu       sync.Mutex
	controls []*MemoryControl
	frames   []image.Image
	script   []Move
	quit     bool

	// ShowErr, when set, is returned by Show and the frame is dropped.
	ShowErr error
}

// NewMemorySurface returns a surface that will replay moves in order.
func NewMemorySurface(moves ...Move) *MemorySurface {
	return &MemorySurface{script: append([]Move(nil), moves...)}
}

// NewControl implements Surface.
func (s *MemorySurface) NewControl(label string, initial, max int, onChange func(pos int)) (Control, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quit {
		return nil, viewerErrorf("MemorySurface.NewControl", ErrSurfaceClosed)
	}
	c := &MemoryControl{label: label, max: max, onChange: onChange}
	c.pos = c.clip(initial)
	s.controls = append(s.controls, c)

	return c, nil
}

// Show implements Surface.
func (s *MemorySurface) Show(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ShowErr != nil {
		return s.ShowErr
	}
	s.frames = append(s.frames, img)

	return nil
}

// Wait implements Surface. The callback runs without the surface lock held,
// so it may call Show.
func (s *MemorySurface) Wait(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.quit || len(s.script) == 0 {
		s.quit = true
		s.mu.Unlock()
		return false, nil
	}
	m := s.script[0]
	s.script = s.script[1:]
	if m.Control < 0 || m.Control >= len(s.controls) {
		s.mu.Unlock()
		return false, viewerErrorf("MemorySurface.Wait", fmt.Errorf("no control %d", m.Control))
	}
	c := s.controls[m.Control]
	s.mu.Unlock()

	c.Slide(m.Position)

	return true, nil
}

// Enqueue appends moves to the script.
func (s *MemorySurface) Enqueue(moves ...Move) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.script = append(s.script, moves...)
}

// Quit makes the next Wait report quit.
func (s *MemorySurface) Quit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quit = true
}

// Frames returns the shown images in order.
func (s *MemorySurface) Frames() []image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]image.Image(nil), s.frames...)
}

// Control returns the i-th control created on the surface.
func (s *MemorySurface) Control(i int) *MemoryControl {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.controls[i]
}

// Len returns the number of controls created on the surface.
func (s *MemorySurface) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.controls)
}

// MemoryControl is the Control of a MemorySurface.
type MemoryControl struct {
	mu       sync.Mutex
	label    string
	max      int
	pos      int
	onChange func(pos int)
}

// Label returns the label given at creation.
func (c *MemoryControl) Label() string { return c.label }

// Max returns the upper end of the position range.
func (c *MemoryControl) Max() int { return c.max }

// Position implements Control.
func (c *MemoryControl) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pos
}

// SetPosition implements Control. It does not fire the callback.
func (c *MemoryControl) SetPosition(pos int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pos = c.clip(pos)
}

// Slide moves the control the way a user would and fires the callback.
func (c *MemoryControl) Slide(pos int) {
	c.SetPosition(pos)
	if c.onChange != nil {
		c.onChange(c.Position())
	}
}

func (c *MemoryControl) clip(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > c.max {
		return c.max
	}

	return pos
}
