package web

import (
	"fmt"

	"github.com/vcrobe/counter/components/counter"
	"github.com/vcrobe/counter/runtime"
	"github.com/vcrobe/counter/store"
	"github.com/vcrobe/counter/vdom"
)

// Prerender returns the markup of a freshly created counter, the same tree
// the WASM module draws on its first render.
func Prerender() (string, error) {
	surface := vdom.NewBufferSurface()
	r := runtime.NewRenderer(surface)
	r.SetCurrentComponent(counter.New(store.New()))
	r.RenderRoot()

	if err := surface.Err(); err != nil {
		return "", fmt.Errorf("prerender counter: %w", err)
	}
	out := surface.HTML()
	r.Unmount()
	return out, nil
}
