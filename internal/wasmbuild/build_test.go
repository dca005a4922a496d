package wasmbuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
	env  []string
}

// fakeGo pretends to be the go command: "build" writes the -o file,
// "env GOROOT" points at a fake GOROOT holding wasm_exec.js.
func fakeGo(t *testing.T, goroot string, buildErr error, calls *[]call) Runner {
	t.Helper()
	return func(_ context.Context, name string, args, env []string) ([]byte, error) {
		*calls = append(*calls, call{name: name, args: args, env: env})
		switch args[0] {
		case "build":
			if buildErr != nil {
				return []byte("./main.go:3:1: syntax error"), buildErr
			}
			for i, a := range args {
				if a == "-o" {
					require.NoError(t, os.WriteFile(args[i+1], []byte("\x00asm"), 0o644))
				}
			}
			return nil, nil
		case "env":
			return []byte(goroot + "\n"), nil
		}
		return nil, errors.New("unexpected command")
	}
}

func newGoroot(t *testing.T, sub string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, sub)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ExecJSFile), []byte("// go js"), 0o644))
	return root
}

func TestBuilder_DevBuild(t *testing.T) {
	out := filepath.Join(t.TempDir(), "build")
	var calls []call
	b := New(Config{OutDir: out}, fakeGo(t, newGoroot(t, "lib/wasm"), nil, &calls), nil)

	require.NoError(t, b.Build(context.Background()))

	require.Len(t, calls, 2)
	assert.Equal(t, "go", calls[0].name)
	assert.Equal(t, []string{"build", "-o", filepath.Join(out, WasmFile), "-tags", "dev", "./cmd/counter"}, calls[0].args)
	assert.Equal(t, []string{"GOOS=js", "GOARCH=wasm"}, calls[0].env)

	assert.FileExists(t, filepath.Join(out, WasmFile))
	js, err := os.ReadFile(filepath.Join(out, ExecJSFile))
	require.NoError(t, err)
	assert.Equal(t, "// go js", string(js))
}

func TestBuilder_ReleaseArgs(t *testing.T) {
	b := New(Config{Release: true, Tags: []string{"purego"}}, nil, nil)

	assert.Equal(t, ReleaseOutDir, b.OutDir())
	assert.Equal(t, []string{
		"build", "-o", filepath.Join(ReleaseOutDir, WasmFile),
		"-tags", "purego",
		"-trimpath", "-ldflags=-s -w",
		"./cmd/counter",
	}, b.Args())
}

func TestBuilder_OldGorootLayout(t *testing.T) {
	out := t.TempDir()
	var calls []call
	b := New(Config{OutDir: out}, fakeGo(t, newGoroot(t, "misc/wasm"), nil, &calls), nil)

	require.NoError(t, b.Build(context.Background()))
	assert.FileExists(t, filepath.Join(out, ExecJSFile))
}

func TestBuilder_CompileErrorKeepsOutput(t *testing.T) {
	var calls []call
	exit := errors.New("exit status 1")
	b := New(Config{OutDir: t.TempDir()}, fakeGo(t, "", exit, &calls), nil)

	err := b.Build(context.Background())

	var buildErr *Error
	require.ErrorAs(t, err, &buildErr)
	assert.ErrorIs(t, err, exit)
	assert.Contains(t, buildErr.Output, "syntax error")
	assert.True(t, strings.HasPrefix(err.Error(), "go build: exit status 1"))
	assert.Len(t, calls, 1, "no GOROOT lookup after a failed compile")
}

func TestBuilder_MissingExecJS(t *testing.T) {
	var calls []call
	b := New(Config{OutDir: t.TempDir()}, fakeGo(t, t.TempDir(), nil, &calls), nil)

	err := b.Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), ExecJSFile+" not found")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("COUNTER_BUILD_ENTRY", "./cmd/other")
	t.Setenv("COUNTER_BUILD_RELEASE", "true")
	t.Setenv("COUNTER_BUILD_TAGS", "a,b")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "./cmd/other", cfg.Entry)
	assert.True(t, cfg.Release)
	assert.Equal(t, []string{"a", "b"}, cfg.Tags)
	assert.Equal(t, "go", cfg.GoBin)
}
