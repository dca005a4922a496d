package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/counter/runtime"
	"github.com/vcrobe/counter/store"
	"github.com/vcrobe/counter/testcomponents"
	"github.com/vcrobe/counter/vdom"
)

func heading(t *testing.T, n *vdom.VNode) string {
	t.Helper()
	require.NotNil(t, n)
	require.Len(t, n.Children, 2)
	require.Equal(t, "h1", n.Children[0].Tag)
	return n.Children[0].Content
}

func button(t *testing.T, n *vdom.VNode) *vdom.VNode {
	t.Helper()
	require.Len(t, n.Children, 2)
	require.Equal(t, "button", n.Children[1].Tag)
	return n.Children[1]
}

// TestView_InitialRender verifies the view shows the store's value and the
// increment control on first render.
func TestView_InitialRender(t *testing.T) {
	// Arrange
	view := New(store.New())
	renderer := testcomponents.NewTestRenderer(view)

	// Act
	vnode := renderer.Mount()

	// Assert
	assert.Equal(t, "div", vnode.Tag)
	assert.Equal(t, "counter", vnode.Attributes["class"])
	assert.Equal(t, "0", heading(t, vnode))
	assert.Equal(t, DefaultLabel, button(t, vnode).Content)
	assert.NotNil(t, button(t, vnode).OnClick)
}

// TestView_ClickIncrements renders the view, activates the control once and
// checks the rendered value goes from 0 to 1.
func TestView_ClickIncrements(t *testing.T) {
	s := store.New()
	view := New(s)
	renderer := testcomponents.NewTestRenderer(view)
	vnode := renderer.Mount()
	require.Equal(t, "0", heading(t, vnode))

	require.True(t, button(t, vnode).Click())

	assert.Equal(t, "1", heading(t, renderer.GetCurrentVDOM()))
	assert.Equal(t, 1, s.Value())
	assert.Equal(t, 2, renderer.RenderCount())
}

func TestView_TracksStoreMutations(t *testing.T) {
	s := store.New()
	s.Increment()
	s.Increment()

	view := New(s)
	renderer := testcomponents.NewTestRenderer(view)
	require.Equal(t, "2", heading(t, renderer.Mount()))

	s.Increment()
	assert.Equal(t, "3", heading(t, renderer.GetCurrentVDOM()))

	s.Reset()
	assert.Equal(t, "0", heading(t, renderer.GetCurrentVDOM()))
}

func TestView_SharedStore(t *testing.T) {
	s := store.New()
	first := testcomponents.NewTestRenderer(New(s))
	second := testcomponents.NewTestRenderer(New(s))
	vnode := first.Mount()
	second.Mount()

	button(t, vnode).Click()
	button(t, vnode).Click()

	assert.Equal(t, "2", heading(t, first.GetCurrentVDOM()))
	assert.Equal(t, "2", heading(t, second.GetCurrentVDOM()))
}

func TestView_IndependentStores(t *testing.T) {
	a, b := store.New(), store.New()
	ra := testcomponents.NewTestRenderer(New(a))
	rb := testcomponents.NewTestRenderer(New(b))
	ra.Mount()
	rb.Mount()

	button(t, ra.GetCurrentVDOM()).Click()

	assert.Equal(t, "1", heading(t, ra.GetCurrentVDOM()))
	assert.Equal(t, "0", heading(t, rb.GetCurrentVDOM()))
}

func TestView_UnmountReleasesSubscription(t *testing.T) {
	s := store.New()
	view := New(s)
	renderer := testcomponents.NewTestRenderer(view)
	renderer.Mount()
	require.Equal(t, 1, s.Subscribers())

	renderer.Unmount()
	renderer.Unmount()
	s.Increment()

	assert.Equal(t, 0, s.Subscribers())
	assert.Equal(t, 1, renderer.RenderCount(), "no re-render after unmount")
	assert.Equal(t, "0", heading(t, renderer.GetCurrentVDOM()))
}

func TestView_UnmountWithoutMount(t *testing.T) {
	view := New(store.New())

	assert.NotPanics(t, view.OnUnmount)
}

func TestView_MountTwiceSubscribesOnce(t *testing.T) {
	s := store.New()
	view := New(s)

	view.OnMount()
	view.OnMount()

	assert.Equal(t, 1, s.Subscribers())
}

func TestView_CustomLabel(t *testing.T) {
	view := New(store.New())
	view.Label = "Добавить"

	vnode := testcomponents.NewTestRenderer(view).Mount()

	assert.Equal(t, "Добавить", button(t, vnode).Content)
}

// The view driven by the real renderer, drawing HTML.
func TestView_WithRuntimeRenderer(t *testing.T) {
	s := store.New()
	surface := vdom.NewBufferSurface()
	r := runtime.NewRenderer(surface)
	r.SetCurrentComponent(New(s))
	r.RenderRoot()

	assert.Equal(t, `<div class="counter"><h1>0</h1><button type="button">Add</button></div>`, surface.HTML())

	button(t, r.CurrentVDOM()).Click()
	assert.Equal(t, `<div class="counter"><h1>1</h1><button type="button">Add</button></div>`, surface.HTML())

	r.Unmount()
	assert.Equal(t, 0, s.Subscribers())
}

// A view unmounted by an earlier observer of the same change is not re-rendered.
func TestView_UnmountedDuringNotificationSkipsRender(t *testing.T) {
	s := store.New()
	second := testcomponents.NewTestRenderer(New(s))

	s.Subscribe(func(int) { second.Unmount() })
	second.Mount()

	s.Increment()

	assert.Equal(t, 1, second.RenderCount())
	assert.Equal(t, "0", heading(t, second.GetCurrentVDOM()))
	assert.Equal(t, 1, s.Subscribers())
}
