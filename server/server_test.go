package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojoconmipisto/superbot/pkg/domain"
	"github.com/ojoconmipisto/superbot/server/mocks"
)

func testServer(engine Engine) *httptest.Server {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return "localhost:0", time.Second },
	}
	s := New(cfg, engine, "test", false)
	return httptest.NewServer(s.router)
}

func TestServer_Webhook(t *testing.T) {
	engine := &mocks.EngineMock{
		HandleFunc: func(ctx context.Context, msg domain.InboundMessage) error { return nil },
	}
	ts := testServer(engine)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json",
		strings.NewReader(`{"from":"50255501234@c.us","body":"hola"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, engine.HandleCalls(), 1)
	msg := engine.HandleCalls()[0].Msg
	assert.Equal(t, "50255501234@c.us", msg.From)
	assert.Equal(t, "hola", msg.Body)
}

func TestServer_WebhookBadJSON(t *testing.T) {
	engine := &mocks.EngineMock{
		HandleFunc: func(ctx context.Context, msg domain.InboundMessage) error { return nil },
	}
	ts := testServer(engine)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json", strings.NewReader(`{broken`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, engine.HandleCalls())
}

func TestServer_WebhookMissingSender(t *testing.T) {
	engine := &mocks.EngineMock{
		HandleFunc: func(ctx context.Context, msg domain.InboundMessage) error { return nil },
	}
	ts := testServer(engine)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json", strings.NewReader(`{"body":"hola"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, engine.HandleCalls())
}

func TestServer_WebhookEngineError(t *testing.T) {
	engine := &mocks.EngineMock{
		HandleFunc: func(ctx context.Context, msg domain.InboundMessage) error {
			return fmt.Errorf("store unavailable")
		},
	}
	ts := testServer(engine)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json",
		strings.NewReader(`{"from":"1","body":"hola"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "handle message", body["error"], "internal details stay out of the response")
}

func TestServer_Status(t *testing.T) {
	ts := testServer(&mocks.EngineMock{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestServer_Ping(t *testing.T) {
	ts := testServer(&mocks.EngineMock{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_RunShutdown(t *testing.T) {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return "localhost:0", time.Second },
	}
	s := New(cfg, &mocks.EngineMock{}, "test", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
