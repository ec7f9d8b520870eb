package main

import (
	"net"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/6529-Collections/nftactions/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestNodeStartAndStop runs main(), then sends SIGTERM which triggers the
// graceful shutdown path.
func TestNodeStartAndStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find a free port: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	dir := t.TempDir()
	originalConfig := config.Get
	defer func() { config.Get = originalConfig }()
	config.Get = func() config.Config {
		return config.Config{
			RPCPort:                port,
			ResolveTimeoutSeconds:  5,
			MetadataTimeoutSeconds: 5,
			MetadataCachePath:      filepath.Join(dir, "badger"),
			SqlitePath:             filepath.Join(dir, "sqlite", "sqlite"),
		}
	}

	core, logs := observer.New(zap.InfoLevel)
	originalLogger := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(originalLogger)

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	time.Sleep(300 * time.Millisecond)

	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("failed to find our own process: %v", err)
	}
	_ = proc.Signal(syscall.SIGTERM)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("main() did not exit after sending SIGTERM")
	}

	for _, msg := range []string{
		"Node started successfully",
		"Received shutdown signal, initiating graceful shutdown...",
		"Node stopped.",
		"Shutdown complete",
	} {
		if logs.FilterMessage(msg).Len() == 0 {
			t.Errorf("expected log %q, got none", msg)
		}
	}
}
