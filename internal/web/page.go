// Package web produces the HTML host page that loads the counter's WASM
// module, with the counter pre-rendered inside the mount element.
package web

//go:generate templ generate -f page.templ

// MountID is the id of the element the WASM module renders into.
const MountID = "app"

// PageData describes one host page; Page in page.templ renders it.
type PageData struct {
	Title string
	// AssetPrefix is prepended to wasm_exec.js and main.wasm, "/static/"
	// on the dev server and "" for a release directory.
	AssetPrefix string
	// Body is trusted pre-rendered markup placed inside the mount element.
	Body string
	// LiveReload adds the dev server's websocket reload client.
	LiveReload bool
}

func (d PageData) title() string {
	if d.Title == "" {
		return "Counter"
	}
	return d.Title
}

func (d PageData) asset(name string) string {
	return d.AssetPrefix + name
}
