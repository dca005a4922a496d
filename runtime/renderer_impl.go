package runtime

import "github.com/vcrobe/counter/vdom"

// Compile-time assertion to ensure the concrete RendererImpl implements the Renderer interface.
var _ Renderer = (*RendererImpl)(nil)

const rootKey = "__root__"

// RendererImpl is the concrete implementation of the Renderer interface.
// It manages the component instance tree, drives the lifecycle hooks and
// pushes every rendered tree to its Surface.
type RendererImpl struct {
	instances        map[string]Component
	mounted          map[string]bool // Track which components have had OnMount called
	activeKeys       map[string]bool // Track which components are active in the current render
	currentComponent Component       // The currently active root component
	surface          Surface
	prevVDOM         *vdom.VNode // Previous VDOM tree for patching

	rendering bool // a render cycle is in progress
	pending   bool // ReRender was requested during that cycle
}

// NewRenderer creates a new runtime renderer drawing into surface.
func NewRenderer(surface Surface) *RendererImpl {
	return &RendererImpl{
		instances:  make(map[string]Component),
		mounted:    make(map[string]bool),
		activeKeys: make(map[string]bool),
		surface:    surface,
	}
}

// SetCurrentComponent sets the component to be rendered. A previously set,
// different root is unmounted first.
func (r *RendererImpl) SetCurrentComponent(comp Component) {
	if r.currentComponent != nil && r.currentComponent != comp {
		r.Unmount()
	}
	r.currentComponent = comp
}

// CurrentVDOM returns the most recently rendered tree.
func (r *RendererImpl) CurrentVDOM() *vdom.VNode {
	return r.prevVDOM
}

// RenderRoot starts the rendering process for the entire application.
// Requests for a re-render made while a cycle is running (for example from
// OnMount) are folded into one extra cycle once the current one ends.
func (r *RendererImpl) RenderRoot() {
	if r.currentComponent == nil {
		return
	}
	if r.rendering {
		r.pending = true
		return
	}

	r.rendering = true
	defer func() { r.rendering = false }()

	for {
		r.pending = false
		r.renderOnce()
		if !r.pending {
			return
		}
	}
}

func (r *RendererImpl) renderOnce() {
	// Reset activeKeys for this render cycle
	r.activeKeys = make(map[string]bool)

	root := r.currentComponent
	root.SetRenderer(r)

	if !r.mounted[rootKey] {
		r.mounted[rootKey] = true
		if mounter, ok := root.(Mounter); ok {
			r.callOnMount(mounter, rootKey)
		}
	}
	if receiver, ok := root.(ParameterReceiver); ok {
		r.callOnParametersSet(receiver, rootKey)
	}

	newVDOM := root.Render(r)

	if r.prevVDOM == nil {
		r.surface.Mount(newVDOM)
	} else {
		r.surface.Patch(r.prevVDOM, newVDOM)
	}
	r.prevVDOM = newVDOM

	r.cleanupUnmountedComponents()
}

// RenderChild renders a child component, reusing the instance previously
// seen under key so its state survives re-renders.
func (r *RendererImpl) RenderChild(key string, child Component) *vdom.VNode {
	r.activeKeys[key] = true

	instance, exists := r.instances[key]
	if !exists {
		instance = child
		r.instances[key] = instance
	}
	instance.SetRenderer(r)

	if !r.mounted[key] {
		r.mounted[key] = true
		if mounter, ok := instance.(Mounter); ok {
			r.callOnMount(mounter, key)
		}
	}
	if receiver, ok := instance.(ParameterReceiver); ok {
		r.callOnParametersSet(receiver, key)
	}

	return instance.Render(r)
}

// cleanupUnmountedComponents removes children that were not rendered in the
// last cycle and calls their OnUnmount.
func (r *RendererImpl) cleanupUnmountedComponents() {
	for key, instance := range r.instances {
		if r.activeKeys[key] {
			continue
		}
		if unmounter, ok := instance.(Unmounter); ok {
			r.callOnUnmount(unmounter, key)
		}
		delete(r.instances, key)
		delete(r.mounted, key)
	}
}

// ReRender patches the surface with the current state.
func (r *RendererImpl) ReRender() {
	r.RenderRoot()
}

// Unmount tears the whole tree down: OnUnmount runs for every child and then
// the root, and the surface is cleared. Rendering again mounts afresh.
func (r *RendererImpl) Unmount() {
	r.activeKeys = make(map[string]bool)
	r.cleanupUnmountedComponents()

	if r.currentComponent != nil && r.mounted[rootKey] {
		if unmounter, ok := r.currentComponent.(Unmounter); ok {
			r.callOnUnmount(unmounter, rootKey)
		}
	}
	delete(r.mounted, rootKey)

	if r.prevVDOM != nil {
		r.surface.Clear(r.prevVDOM)
		r.prevVDOM = nil
	}
}
