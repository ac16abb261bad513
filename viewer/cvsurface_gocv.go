// SPDX-License-Identifier: MIT

//go:build gocv

package viewer

import (
	"context"
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

const (
	keyEscape = 27
	keyQuit   = 'q'
)

// CVSurface is an OpenCV window with one trackbar per control.
// Trackbars are polled between WaitKey calls; a moved trackbar fires its
// callback once per poll. All methods must run on the thread that created
// the window (OpenCV highgui requirement).
type CVSurface struct {
	mu       sync.Mutex
	window   *gocv.Window
	controls []*cvControl
	pollMs   int
	closed   bool
}

type cvControl struct {
	bar      *gocv.Trackbar
	last     int
	onChange func(pos int)
}

// Position implements Control.
func (c *cvControl) Position() int { return c.bar.GetPos() }

// SetPosition implements Control.
func (c *cvControl) SetPosition(pos int) {
	c.bar.SetPos(pos)
	c.last = pos
}

// NewCVSurface opens a window titled title; poll is the WaitKey delay.
func NewCVSurface(title string, poll time.Duration) (*CVSurface, error) {
	ms := int(poll / time.Millisecond)
	if ms < 1 {
		ms = 1
	}

	return &CVSurface{window: gocv.NewWindow(title), pollMs: ms}, nil
}

// NewControl implements Surface.
func (s *CVSurface) NewControl(label string, initial, max int, onChange func(pos int)) (Control, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, viewerErrorf("CVSurface.NewControl", ErrSurfaceClosed)
	}
	c := &cvControl{bar: s.window.CreateTrackbar(label, max), onChange: onChange}
	c.SetPosition(initial)
	s.controls = append(s.controls, c)

	return c, nil
}

// Show implements Surface.
func (s *CVSurface) Show(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return viewerErrorf("CVSurface.Show", ErrSurfaceClosed)
	}

	var (
		m   gocv.Mat
		err error
	)
	if g, ok := img.(*image.Gray); ok {
		m, err = gocv.ImageGrayToMatGray(g)
	} else {
		m, err = gocv.ImageToMatRGB(img)
	}
	if err != nil {
		return viewerErrorf("CVSurface.Show", err)
	}
	defer m.Close()

	s.window.IMShow(m)

	return nil
}

// Wait implements Surface: one WaitKey round plus one trackbar poll.
// 'q' or Escape quits, as does closing the window.
func (s *CVSurface) Wait(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	key := s.window.WaitKey(s.pollMs)
	if key == keyQuit || key == keyEscape || !s.window.IsOpen() {
		return false, nil
	}

	s.mu.Lock()
	var fired []func()
	for _, c := range s.controls {
		if pos := c.bar.GetPos(); pos != c.last {
			c.last = pos
			cb, p := c.onChange, pos
			fired = append(fired, func() { cb(p) })
		}
	}
	s.mu.Unlock()

	for _, f := range fired {
		f()
	}

	return true, nil
}

// Close destroys the window.
func (s *CVSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.window.Close()
}
