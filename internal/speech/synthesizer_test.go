package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ttsServer(t *testing.T, audio []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate_tts", r.URL.Path)
		require.Equal(t, "hello there", r.URL.Query().Get("q"))
		require.Equal(t, "en", r.URL.Query().Get("tl"))
		w.Write(audio)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSynthesize_WritesArtifact(t *testing.T) {
	srv := ttsServer(t, []byte("mp3-bytes"))

	path, err := NewSynthesizer(srv.URL).Synthesize(context.Background(), "hello there", "en")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
	assert.Contains(t, path, "drtara-voice-")
}

func TestSynthesize_UniquePathPerRequest(t *testing.T) {
	srv := ttsServer(t, []byte("mp3-bytes"))
	s := NewSynthesizer(srv.URL)

	first, err := s.Synthesize(context.Background(), "hello there", "en")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(first) })

	second, err := s.Synthesize(context.Background(), "hello there", "en")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(second) })

	assert.NotEqual(t, first, second)
}

func TestSynthesize_EmptyPayload(t *testing.T) {
	srv := ttsServer(t, nil)

	_, err := NewSynthesizer(srv.URL).Synthesize(context.Background(), "hello there", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty audio payload")
}

func TestSynthesize_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewSynthesizer(srv.URL).Synthesize(context.Background(), "hello there", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
