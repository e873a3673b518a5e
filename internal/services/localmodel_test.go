package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalModelServer(t *testing.T, reply string) (*httptest.Server, *int64) {
	t.Helper()

	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": reply},
					"finish_reason": "stop",
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestLocalModelTranslate(t *testing.T) {
	srv, _ := newLocalModelServer(t, "Bonjour le monde")
	backend := NewLocalModelBackend(srv.URL+"/v1", "test-model")

	result, err := backend.Translate(context.Background(), "Hello world", "fr-FR")
	require.NoError(t, err)

	assert.Equal(t, "Bonjour le monde", result.TranslatedText)
	assert.Equal(t, "auto-detected", result.SourceLanguage)
}

func TestLocalModelDetect(t *testing.T) {
	srv, _ := newLocalModelServer(t, "hi")
	backend := NewLocalModelBackend(srv.URL+"/v1", "test-model")

	code, err := backend.Detect(context.Background(), "Namaste")
	require.NoError(t, err)
	assert.Equal(t, "hi", code)
}

func TestLocalModelDetectSanitizesNoisyAnswers(t *testing.T) {
	srv, _ := newLocalModelServer(t, `"HI".`)
	backend := NewLocalModelBackend(srv.URL+"/v1", "test-model")

	code, err := backend.Detect(context.Background(), "Namaste")
	require.NoError(t, err)
	assert.Equal(t, "hi", code)
}

func TestLocalModelWarmsUpExactlyOnce(t *testing.T) {
	srv, requests := newLocalModelServer(t, "ok")
	backend := NewLocalModelBackend(srv.URL+"/v1", "test-model")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := backend.Translate(context.Background(), "Hello", "en-IN")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// One warm-up request plus one per translation.
	assert.Equal(t, int64(6), atomic.LoadInt64(requests))
}

func TestLocalModelWarmUpFailureIsSticky(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	backend := NewLocalModelBackend(srv.URL+"/v1", "missing-model")

	_, err := backend.Translate(context.Background(), "Hello", "en-IN")
	require.Error(t, err)

	// Later calls fail without reaching the server again.
	srv.Close()
	_, err = backend.Detect(context.Background(), "Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warm-up failed")
}

func TestLocalModelRejectsEmptyInput(t *testing.T) {
	backend := NewLocalModelBackend("http://localhost:0/v1", "test-model")

	_, err := backend.Translate(context.Background(), "  ", "en-IN")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = backend.Detect(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSanitizeLanguageCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "hi", want: "hi"},
		{in: "HI", want: "hi"},
		{in: "hin", want: "hin"},
		{in: `"en"`, want: "en"},
		{in: "en.", want: "en"},
		{in: "english", want: ""},
		{in: "", want: ""},
		{in: "a", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLanguageCode(tt.in), "input %q", tt.in)
	}
}
