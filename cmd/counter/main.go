//go:build js || wasm

package main

import (
	"github.com/vcrobe/counter/components/counter"
	"github.com/vcrobe/counter/console"
	"github.com/vcrobe/counter/runtime"
	"github.com/vcrobe/counter/store"
	"github.com/vcrobe/counter/vdom"
)

func main() {
	// One store per page; the view gets it explicitly.
	count := store.New()

	renderer := runtime.NewRenderer(vdom.NewDOMSurface("#app"))
	renderer.SetCurrentComponent(counter.New(count))
	renderer.RenderRoot()

	console.Log("counter mounted")

	// Keep the Go program running
	select {}
}
