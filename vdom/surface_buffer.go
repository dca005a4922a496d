package vdom

import "strings"

// BufferSurface keeps the latest tree and its HTML in memory. It is what the
// renderer draws into outside the browser: server-side rendering and tests.
type BufferSurface struct {
	current *VNode
	html    string
	err     error

	Mounts  int
	Patches int
}

// NewBufferSurface returns an empty surface.
func NewBufferSurface() *BufferSurface {
	return &BufferSurface{}
}

// Mount draws n as a fresh tree.
func (s *BufferSurface) Mount(n *VNode) {
	s.Mounts++
	s.draw(n)
}

// Patch draws next over prev.
func (s *BufferSurface) Patch(prev, next *VNode) {
	s.Patches++
	s.draw(next)
}

// Clear drops the current tree.
func (s *BufferSurface) Clear(prev *VNode) {
	s.current = nil
	s.html = ""
	s.err = nil
}

// Current returns the last drawn tree, nil after Clear.
func (s *BufferSurface) Current() *VNode {
	return s.current
}

// HTML returns the markup of the last drawn tree.
func (s *BufferSurface) HTML() string {
	return s.html
}

// Err returns the serialization error of the last draw, if any.
func (s *BufferSurface) Err() error {
	return s.err
}

func (s *BufferSurface) draw(n *VNode) {
	s.current = n
	s.html, s.err = "", nil
	if n == nil {
		return
	}

	var b strings.Builder
	if err := WriteHTML(&b, n); err != nil {
		s.err = err
		return
	}
	s.html = b.String()
}
