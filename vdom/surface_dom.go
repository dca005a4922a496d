//go:build js || wasm
// +build js wasm

package vdom

// DOMSurface draws VNode trees into the browser element matching Selector.
type DOMSurface struct {
	Selector string
}

// NewDOMSurface returns a surface bound to the given CSS selector.
func NewDOMSurface(selector string) *DOMSurface {
	return &DOMSurface{Selector: selector}
}

// Mount replaces whatever is under the selector with n.
func (s *DOMSurface) Mount(n *VNode) {
	Clear(s.Selector, nil)
	RenderToSelector(s.Selector, n)
}

// Patch applies the difference between prev and next to the live DOM.
func (s *DOMSurface) Patch(prev, next *VNode) {
	Patch(s.Selector, prev, next)
}

// Clear empties the mount element and releases prev's callbacks.
func (s *DOMSurface) Clear(prev *VNode) {
	Clear(s.Selector, prev)
}
