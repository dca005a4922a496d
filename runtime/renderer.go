package runtime

import "github.com/vcrobe/counter/vdom"

// Renderer defines the minimal set of runtime operations used by Render() code.
// This interface has NO build tags, making it available to both WASM and native test builds.
type Renderer interface {
	// RenderChild is used to render child components.
	// The key parameter uniquely identifies the component instance for state preservation.
	RenderChild(key string, child Component) *vdom.VNode

	// ReRender requests that the renderer re-run the render cycle.
	// Used by StateHasChanged() when component state changes.
	ReRender()
}

// Surface is where a renderer puts its output: the browser DOM
// (vdom.DOMSurface) or an in-memory HTML buffer (vdom.BufferSurface).
type Surface interface {
	Mount(n *vdom.VNode)
	Patch(prev, next *vdom.VNode)
	Clear(prev *vdom.VNode)
}
