package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojoconmipisto/superbot/pkg/config"
)

func newTestRewriter(t *testing.T, handler http.HandlerFunc) (*Rewriter, func()) {
	t.Helper()
	ts := httptest.NewServer(handler)
	cfg := config.LLMConfig{
		Enabled:     true,
		Endpoint:    ts.URL + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.8,
		MaxTokens:   120,
		Timeout:     5 * time.Second,
	}
	return NewRewriter(cfg), ts.Close
}

func TestRewriter_Rewrite(t *testing.T) {
	var gotBody map[string]interface{}
	rw, done := newTestRewriter(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "\"la muni gastó el doble en el puente\""}}]
		}`))
	})
	defer done()

	got := rw.Rewrite(context.Background(), "Municipalidad duplica gasto en puente")
	// quotes stripped from the model output
	assert.Equal(t, "la muni gastó el doble en el puente", got)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
}

func TestRewriter_Rewrite_FallsBackOnError(t *testing.T) {
	rw, done := newTestRewriter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})
	defer done()

	got := rw.Rewrite(context.Background(), "Titular original")
	assert.Equal(t, "Titular original", got)
}

func TestRewriter_Rewrite_FallsBackOnEmpty(t *testing.T) {
	rw, done := newTestRewriter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "  "}}]}`))
	})
	defer done()

	got := rw.Rewrite(context.Background(), "Titular original")
	assert.Equal(t, "Titular original", got)
}

func TestCleanQuotes(t *testing.T) {
	assert.Equal(t, "sin comillas", CleanQuotes(` "sin comillas" `))
	assert.Equal(t, "mixtas", CleanQuotes("«mixtas»"))
	assert.Equal(t, "ya limpio", CleanQuotes("ya limpio"))
}
