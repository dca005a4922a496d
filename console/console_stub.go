//go:build !(js || wasm)

package console

import (
	"fmt"
	"log/slog"
	"strings"
)

// Outside the browser there is no JS console; messages go to the default
// slog logger so native tools and tests still see them.

// Log writes an info record.
func Log(args ...any) {
	slog.Info(join(args))
}

// Warn writes a warning record.
func Warn(args ...any) {
	slog.Warn(join(args))
}

// Error writes an error record.
func Error(args ...any) {
	slog.Error(join(args))
}

func join(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, " ")
}
