package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/leapflow/internal/config"
	"github.com/leapstack-labs/leapflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppliesDefaults(t *testing.T) {
	s := New(Config{})
	assert.Equal(t, config.DefaultPort, s.cfg.Port)
	assert.Equal(t, config.DefaultShutdownTimeout, s.cfg.ShutdownTimeout)
	assert.NotNil(t, s.Handler())
}

func TestServeListener_ServesAndShutsDown(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	s := New(Config{Logger: logger, Version: "test"})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := fmt.Sprintf("http://%s", ln.Addr().String())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(base + "/health")
	require.NoError(t, err)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	_ = resp.Body.Close()
	assert.Equal(t, "healthy", health["status"])

	resp, err = client.Post(base+"/pipelines/parse", "application/json",
		strings.NewReader(`{"nodes":[{"id":"a","type":"input"}],"edges":[{"id":"e","source":"a","target":"a"}]}`))
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, res["is_dag"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Contains(t, logs.String(), "starting pipeline server")
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port
	s := New(Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: port}})

	err = s.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
