// Package testcomponents provides an in-memory renderer for component tests.
package testcomponents

import (
	"github.com/vcrobe/counter/runtime"
	"github.com/vcrobe/counter/vdom"
)

// TestRenderer is a minimal test harness that implements runtime.Renderer
// for in-memory testing without browser or WASM dependencies.
//
// It captures VDOM output from component renders and allows tests to:
// - Attach components to the renderer
// - Trigger re-renders via StateHasChanged()
// - Inspect the resulting VDOM tree
type TestRenderer struct {
	currentVDOM *vdom.VNode
	component   runtime.Component
	renders     int
}

// Compile-time assertion to ensure TestRenderer implements runtime.Renderer interface.
var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer attached to the given component.
func NewTestRenderer(comp runtime.Component) *TestRenderer {
	r := &TestRenderer{
		component: comp,
	}
	comp.SetRenderer(r)
	return r
}

// Mount runs OnMount (if the component has one) and the initial render.
func (r *TestRenderer) Mount() *vdom.VNode {
	if m, ok := r.component.(runtime.Mounter); ok {
		m.OnMount()
	}
	return r.RenderRoot()
}

// Unmount runs OnUnmount, if the component has one.
func (r *TestRenderer) Unmount() {
	if u, ok := r.component.(runtime.Unmounter); ok {
		u.OnUnmount()
	}
}

// RenderRoot performs the initial render of the component.
// This should be called at the start of a test to get the initial VDOM.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	r.ReRender()
	return r.currentVDOM
}

// ReRender performs a re-render of the component.
// This is called by StateHasChanged() when the component requests a re-render.
func (r *TestRenderer) ReRender() {
	r.renders++
	r.currentVDOM = r.component.Render(r)
}

// GetCurrentVDOM returns the most recently rendered VDOM tree.
// Tests use this to inspect the component's output after renders.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	return r.currentVDOM
}

// RenderCount returns how many times the component has been rendered.
func (r *TestRenderer) RenderCount() int {
	return r.renders
}

// RenderChild renders a child in place without tracking its instance.
func (r *TestRenderer) RenderChild(key string, child runtime.Component) *vdom.VNode {
	child.SetRenderer(r)
	return child.Render(r)
}
