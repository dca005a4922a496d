package web

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// StylesheetFile is the stylesheet name the host page links to.
const StylesheetFile = "counter.css"

//go:embed counter.css
var stylesheet []byte

// WriteAssets writes index.html and the stylesheet into dir, for serving
// the build output as plain static files.
func WriteAssets(ctx context.Context, dir string) error {
	body, err := Prerender()
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("create index.html: %w", err)
	}
	if err := Page(PageData{Body: body}).Render(ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("render index.html: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close index.html: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, StylesheetFile), stylesheet, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", StylesheetFile, err)
	}
	return nil
}
