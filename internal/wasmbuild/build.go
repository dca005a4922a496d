// Package wasmbuild compiles the counter for the browser.
package wasmbuild

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// WasmFile is the name of the compiled module inside OutDir.
	WasmFile = "main.wasm"
	// ExecJSFile is the name of Go's JS support script inside OutDir.
	ExecJSFile = "wasm_exec.js"

	DevOutDir     = "build"
	ReleaseOutDir = "dist"
)

// Config controls a build. Zero fields fall back to the env defaults.
type Config struct {
	Entry   string   `env:"ENTRY" envDefault:"./cmd/counter"`
	OutDir  string   `env:"OUT_DIR"`
	GoBin   string   `env:"GO" envDefault:"go"`
	Release bool     `env:"RELEASE"`
	Tags    []string `env:"TAGS" envSeparator:","`
}

// LoadConfig reads COUNTER_BUILD_* variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "COUNTER_BUILD_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Runner executes name with args and extra environment, returning combined
// output. It is swapped out in tests.
type Runner func(ctx context.Context, name string, args, env []string) ([]byte, error)

// ExecRunner runs the command through os/exec.
func ExecRunner(ctx context.Context, name string, args, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Error carries the compiler output of a failed build.
type Error struct {
	Output string
	Err    error
}

func (e *Error) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("go build: %v", e.Err)
	}
	return fmt.Sprintf("go build: %v\n%s", e.Err, e.Output)
}

func (e *Error) Unwrap() error { return e.Err }

// Builder turns the counter entry point into main.wasm plus wasm_exec.js.
type Builder struct {
	cfg    Config
	run    Runner
	logger *slog.Logger
}

// New returns a Builder. A nil runner means ExecRunner.
func New(cfg Config, run Runner, logger *slog.Logger) *Builder {
	if cfg.Entry == "" {
		cfg.Entry = "./cmd/counter"
	}
	if cfg.GoBin == "" {
		cfg.GoBin = "go"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DevOutDir
		if cfg.Release {
			cfg.OutDir = ReleaseOutDir
		}
	}
	if run == nil {
		run = ExecRunner
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{cfg: cfg, run: run, logger: logger}
}

// OutDir is where build output lands.
func (b *Builder) OutDir() string {
	return b.cfg.OutDir
}

// Args returns the go build arguments for the configured mode.
func (b *Builder) Args() []string {
	args := []string{"build", "-o", filepath.Join(b.cfg.OutDir, WasmFile)}
	tags := b.cfg.Tags
	if !b.cfg.Release {
		tags = append([]string{"dev"}, tags...)
	}
	if len(tags) > 0 {
		args = append(args, "-tags", strings.Join(tags, ","))
	}
	if b.cfg.Release {
		args = append(args, "-trimpath", "-ldflags=-s -w")
	}
	return append(args, b.cfg.Entry)
}

// Build compiles the entry point and copies wasm_exec.js next to it.
func (b *Builder) Build(ctx context.Context) error {
	start := time.Now()
	if err := os.MkdirAll(b.cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	out, err := b.run(ctx, b.cfg.GoBin, b.Args(), []string{"GOOS=js", "GOARCH=wasm"})
	if err != nil {
		return &Error{Output: strings.TrimSpace(string(out)), Err: err}
	}

	if err := b.copyExecJS(ctx); err != nil {
		return err
	}

	b.logger.Info("wasm build done",
		slog.String("out", b.cfg.OutDir),
		slog.Bool("release", b.cfg.Release),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

func (b *Builder) copyExecJS(ctx context.Context) error {
	out, err := b.run(ctx, b.cfg.GoBin, []string{"env", "GOROOT"}, nil)
	if err != nil {
		return fmt.Errorf("go env GOROOT: %w", err)
	}
	goroot := strings.TrimSpace(string(out))

	// Go 1.24 moved the script from misc/wasm to lib/wasm.
	var src string
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		candidate := filepath.Join(goroot, dir, ExecJSFile)
		if _, err := os.Stat(candidate); err == nil {
			src = candidate
			break
		}
	}
	if src == "" {
		return fmt.Errorf("%s not found under %s", ExecJSFile, goroot)
	}
	return copyFile(src, filepath.Join(b.cfg.OutDir, ExecJSFile))
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}
