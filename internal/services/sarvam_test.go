package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSarvamTestServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()

	requests := 0
	mux := http.NewServeMux()

	mux.HandleFunc("/text-lid", func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "test-key", r.Header.Get("api-subscription-key"))

		var req sarvamIdentifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Input)

		json.NewEncoder(w).Encode(sarvamIdentifyResponse{LanguageCode: "hi", ScriptCode: "Deva"})
	})

	mux.HandleFunc("/translate", func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req sarvamTranslateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, "hi-IN", req.SourceLanguageCode)
		assert.Equal(t, "en-IN", req.TargetLanguageCode)
		assert.Equal(t, sarvamTranslateModel, req.Model)

		json.NewEncoder(w).Encode(sarvamTranslateResponse{TranslatedText: "Hello brother, how are you?"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestSarvamTranslate(t *testing.T) {
	srv, _ := newSarvamTestServer(t)
	backend := NewSarvamBackend(srv.URL, "test-key")

	result, err := backend.Translate(context.Background(), "Haan bhai kya haal hai?", "en-IN")
	require.NoError(t, err)

	assert.Equal(t, "Hello brother, how are you?", result.TranslatedText)
	assert.Equal(t, "hi-IN", result.SourceLanguage)
}

func TestSarvamTranslateDefaultsTargetLanguage(t *testing.T) {
	srv, _ := newSarvamTestServer(t)
	backend := NewSarvamBackend(srv.URL, "test-key")

	// The /translate fake asserts the target is en-IN.
	_, err := backend.Translate(context.Background(), "Namaste", "")
	require.NoError(t, err)
}

func TestSarvamDetect(t *testing.T) {
	srv, _ := newSarvamTestServer(t)
	backend := NewSarvamBackend(srv.URL, "test-key")

	code, err := backend.Detect(context.Background(), "Namaste")
	require.NoError(t, err)
	assert.Equal(t, "hi", code)
}

func TestSarvamRejectsEmptyInputWithoutHTTPCall(t *testing.T) {
	srv, requests := newSarvamTestServer(t)
	backend := NewSarvamBackend(srv.URL, "test-key")

	_, err := backend.Translate(context.Background(), "   ", "en-IN")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = backend.Detect(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, *requests)
}

func TestSarvamSurfacesBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	backend := NewSarvamBackend(srv.URL, "test-key")

	_, err := backend.Translate(context.Background(), "Namaste", "en-IN")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "502")
}

func TestSarvamRejectsEmptyTranslation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/text-lid", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sarvamIdentifyResponse{LanguageCode: "hi"})
	})
	mux.HandleFunc("/translate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sarvamTranslateResponse{TranslatedText: "   "})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	backend := NewSarvamBackend(srv.URL, "test-key")

	_, err := backend.Translate(context.Background(), "Namaste", "en-IN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty result")
}

func TestNormalizeLanguageCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: DefaultTargetLanguage},
		{in: "hi", want: "hi-IN"},
		{in: "ta", want: "ta-IN"},
		{in: "en-IN", want: "en-IN"},
		{in: "  hi  ", want: "hi-IN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeLanguageCode(tt.in), "input %q", tt.in)
	}
}
