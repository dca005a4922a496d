package devserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func newTestServer(t *testing.T, build BuildFunc) (*Server, *httptest.Server) {
	t.Helper()
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "main.wasm"), []byte("wasm"), 0o644))

	s := New(Config{StaticDir: static}, build, nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = s.Hub().Run(ctx)
		close(stopped)
	}()

	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-stopped
	})
	return s, ts
}

func dial(t *testing.T, s *Server, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	before := s.Hub().Len()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/connect"
	ws, err := websocket.Dial(url, "", ts.URL)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	require.Eventually(t, func() bool { return s.Hub().Len() == before+1 }, time.Second, 5*time.Millisecond)
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, websocket.JSON.Receive(ws, &msg))
	return msg
}

func TestServer_IndexServesPrerenderedCounter(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `<div id="app"><div class="counter"><h1>0</h1>`)
	assert.Contains(t, string(body), `/static/wasm_exec.js`)
	assert.Contains(t, string(body), `/connect`)
}

func TestServer_StaticFiles(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/static/main.wasm")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "wasm", string(body))
}

func TestServer_ReloadPushesToBrowsers(t *testing.T) {
	var builds atomic.Int32
	s, ts := newTestServer(t, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	ws := dial(t, s, ts)

	resp, err := http.Post(ts.URL+"/reload", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, Message{Type: MessageReload}, readMessage(t, ws))
	assert.Equal(t, int32(1), builds.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Rebuilds))
}

func TestServer_BuildFailureShowsError(t *testing.T) {
	s, ts := newTestServer(t, func(context.Context) error {
		return errors.New("main.go:1: expected 'package'")
	})
	ws := dial(t, s, ts)

	resp, err := http.Post(ts.URL+"/reload", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	msg := readMessage(t, ws)
	assert.Equal(t, MessageError, msg.Type)
	assert.Contains(t, msg.Message, "expected 'package'")
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.BuildErrors))
}

func TestServer_ErrorEndpoint(t *testing.T) {
	s, ts := newTestServer(t, nil)
	ws := dial(t, s, ts)

	resp, err := http.Post(ts.URL+"/error", "text/plain", strings.NewReader("sass: undefined variable\n"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, Message{Type: MessageError, Message: "sass: undefined variable"}, readMessage(t, ws))

	resp, err = http.Post(ts.URL+"/error", "text/plain", strings.NewReader("  "))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_DisconnectUnregisters(t *testing.T) {
	s, ts := newTestServer(t, nil)
	ws := dial(t, s, ts)

	require.NoError(t, ws.Close())

	require.Eventually(t, func() bool { return s.Hub().Len() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestServer_Metrics(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "counterdev_rebuilds_total")
	assert.Contains(t, string(body), "counterdev_connected_clients")
}

func TestServer_RunRequiresStaticDir(t *testing.T) {
	s := New(Config{StaticDir: filepath.Join(t.TempDir(), "missing")}, nil, nil)

	err := s.Run(context.Background())

	assert.ErrorIs(t, err, ErrNoStaticDir)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("COUNTER_DEV_PORT", "9090")
	t.Setenv("COUNTER_DEV_DEBOUNCE", "2s")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 2*time.Second, cfg.Debounce)
	assert.Equal(t, "build", cfg.StaticDir)
	assert.Equal(t, ".", cfg.WatchDir)
}

func TestServer_WatcherIgnoresStaticDir(t *testing.T) {
	dir := t.TempDir()
	static := filepath.Join(dir, "public")
	s := New(Config{StaticDir: static, WatchDir: dir, Debounce: time.Second}, nil, nil)

	w := s.newWatcher()
	require.NoError(t, w.resolveIgnore())

	assert.Equal(t, dir, w.Dir)
	assert.Equal(t, time.Second, w.Debounce)
	assert.True(t, w.skipped(filepath.Join(static, "index.html")))
	assert.False(t, w.skipped(filepath.Join(dir, "main.go")))
}
