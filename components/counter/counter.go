// Package counter is the view of a store.Counter: the current count and a
// button that increments it.
package counter

import (
	"strconv"

	"github.com/vcrobe/counter/runtime"
	"github.com/vcrobe/counter/store"
	"github.com/vcrobe/counter/vdom"
)

// DefaultLabel is the text of the increment button.
const DefaultLabel = "Add"

// View renders a counter store. It never writes the count itself; clicks go
// through the store and come back as notifications.
type View struct {
	runtime.ComponentBase

	Label string

	store       *store.Counter
	value       int
	unsubscribe func()
}

// New returns a view bound to s.
func New(s *store.Counter) *View {
	return &View{Label: DefaultLabel, store: s}
}

// OnMount subscribes to the store and takes its current value.
func (v *View) OnMount() {
	if v.unsubscribe != nil {
		return
	}
	v.unsubscribe = v.store.Subscribe(v.onChange)
	v.value = v.store.Value()
}

// OnUnmount drops the store subscription.
func (v *View) OnUnmount() {
	if v.unsubscribe == nil {
		return
	}
	v.unsubscribe()
	v.unsubscribe = nil
}

// Increment is the button's click handler.
func (v *View) Increment() {
	v.store.Increment()
}

func (v *View) onChange(value int) {
	v.value = value
	v.StateHasChanged()
}

// Render implements runtime.Component.
func (v *View) Render(r runtime.Renderer) *vdom.VNode {
	label := v.Label
	if label == "" {
		label = DefaultLabel
	}
	return vdom.Div(map[string]any{"class": "counter"},
		vdom.Heading(1, strconv.Itoa(v.value), nil),
		vdom.Button(label, map[string]any{
			"type":    "button",
			"onClick": v.Increment,
		}),
	)
}
