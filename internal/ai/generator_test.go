package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shrezz2001/dr-tara-core-api/internal/catalog"
)

func testGenerator(srv *httptest.Server) *Generator {
	g := NewGenerator("test-key")
	g.endpoint = srv.URL
	return g
}

func completionJSON(content string) string {
	resp := chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}}}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestGenerate_BuildsOrderedDirectives(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(completionJSON("We stock digital thermometers!")))
	}))
	defer srv.Close()

	products := []catalog.Product{{ID: 1, Title: "Thermometer", Content: "Digital thermometer", Link: "https://store.example/product/1"}}

	reply, err := testGenerator(srv).Generate(context.Background(), "I need a thermometer please", products)
	require.NoError(t, err)
	assert.Equal(t, "We stock digital thermometers!", reply)

	assert.Equal(t, groqModel, got.Model)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Dr Tara AI")
	assert.Equal(t, "system", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "Thermometer")
	assert.Equal(t, "user", got.Messages[2].Role)
	assert.Equal(t, "I need a thermometer please", got.Messages[2].Content)
}

func TestGenerate_NoMatchedProducts(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(completionJSON("Happy to help!")))
	}))
	defer srv.Close()

	_, err := testGenerator(srv).Generate(context.Background(), "hello", nil)
	require.NoError(t, err)

	require.Len(t, got.Messages, 3)
	assert.Contains(t, got.Messages[1].Content, "No catalog products matched")
}

func TestGenerate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := testGenerator(srv).Generate(context.Background(), "hello", nil)
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestGenerate_WhitespaceReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionJSON("   \n")))
	}))
	defer srv.Close()

	_, err := testGenerator(srv).Generate(context.Background(), "hello", nil)
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestGenerate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testGenerator(srv).Generate(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestBuildContextPrompt_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("x", 500)
	prompt := BuildContextPrompt([]catalog.Product{{Title: "Thermometer", Content: long, Link: "https://store.example/p/1"}})

	assert.NotContains(t, prompt, long)
	assert.Contains(t, prompt, "Thermometer")
}
