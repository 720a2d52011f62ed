package serverrun

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	cfgpkg "github.com/rzbill/tuid/internal/config"
	logpkg "github.com/rzbill/tuid/pkg/log"
)

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

func TestRunServesUntilCancelled(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Journal.Enabled = true
	cfg.Journal.Fsync = "never"

	addr := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{
			DataDir:  t.TempDir(),
			HTTPAddr: addr,
			Config:   cfg,
			Logger:   logpkg.NewLogger(logpkg.WithLevel(logpkg.ErrorLevel)),
		})
	}()

	// Wait for the server to accept.
	var resp *http.Response
	var err error
	for i := 0; i < 100; i++ {
		resp, err = http.Get(fmt.Sprintf("http://%s/v1/healthz", addr))
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server never came up: %v", err)
	}
	var health map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if health["status"] != "ok" {
		t.Fatalf("health: %v", health)
	}

	// Mint through the running server, then shut down.
	resp, err = http.Post(fmt.Sprintf("http://%s/v1/ids/new", addr), "application/json", nil)
	if err != nil || resp.StatusCode != 200 {
		cancel()
		t.Fatalf("mint: %v %v", resp, err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

func TestRunRejectsBadFsync(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.Journal.Fsync = "sometimes"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := Run(ctx, Options{DataDir: t.TempDir(), HTTPAddr: "127.0.0.1:0", Config: cfg,
		Logger: logpkg.NewLogger(logpkg.WithLevel(logpkg.ErrorLevel))}); err == nil {
		t.Fatalf("expected fsync error")
	}
}
