package runtime

import "github.com/vcrobe/counter/vdom"

// Component interface defines the structure for all components in the framework.
// This interface has NO build tags, making it available to both WASM and native test builds.
type Component interface {
	// Render generates the virtual DOM tree for this component.
	// The renderer parameter provides access to framework services like RenderChild.
	Render(r Renderer) *vdom.VNode

	// SetRenderer is called by the framework to attach the renderer to the component.
	// This enables StateHasChanged() to trigger re-renders.
	SetRenderer(r Renderer)
}

// Mounter is implemented by components that need setup (such as subscribing
// to a store) before their first render.
type Mounter interface {
	OnMount()
}

// ParameterReceiver is implemented by components that want a hook before
// every render, the first one included.
type ParameterReceiver interface {
	OnParametersSet()
}

// Unmounter is implemented by components that hold resources (subscriptions,
// timers) which must be released when they leave the tree.
type Unmounter interface {
	OnUnmount()
}
