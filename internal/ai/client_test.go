package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeminiClientGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"suggestedMovies\": [\"Arrival\"]}"}]}}]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient("test-key", "gemini-2.0-flash", WithBaseURL(srv.URL))

	text, err := client.Generate(context.Background(), "recommend something")
	require.NoError(t, err)
	require.Equal(t, `{"suggestedMovies": ["Arrival"]}`, text)

	require.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	require.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Equal(t, "recommend something", gotBody.Contents[0].Parts[0].Text)
	require.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)
}

func TestGeminiClientNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "quota exceeded"}`))
	}))
	defer srv.Close()

	client := NewGeminiClient("test-key", "gemini-2.0-flash", WithBaseURL(srv.URL))

	_, err := client.Generate(context.Background(), "recommend something")
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-2xx status")
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiClientNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := NewGeminiClient("test-key", "gemini-2.0-flash", WithBaseURL(srv.URL))

	_, err := client.Generate(context.Background(), "recommend something")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no candidates")
}
