package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Shrezz2001/dr-tara-core-api/internal/catalog"
)

const (
	groqModel    = "llama-3.1-8b-instant"
	groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

	maxReplyTokens = 256
	temperature    = 0.3
)

// ErrEmptyReply is returned when the model produced no usable text. The caller
// must skip delivery for that message.
var ErrEmptyReply = errors.New("model returned an empty reply")

// Generator produces replies via the Groq OpenAI-compatible chat completions
// API.
type Generator struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

func NewGenerator(apiKey string) *Generator {
	return &Generator{
		apiKey:   apiKey,
		endpoint: groqEndpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// --- Groq (OpenAI-compatible) API types ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Generate builds the three ordered directives (persona, product context,
// user text), invokes the model, and returns the first completion's text.
// There is no retry: any failure aborts reply generation for this message.
func (g *Generator) Generate(ctx context.Context, userText string, products []catalog.Product) (string, error) {
	reqBody := chatRequest{
		Model: groqModel,
		Messages: []chatMessage{
			{Role: "system", Content: BuildSystemPrompt()},
			{Role: "system", Content: BuildContextPrompt(products)},
			{Role: "user", Content: userText},
		},
		MaxTokens:   maxReplyTokens,
		Temperature: temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq: status %d: %s", resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("groq: unmarshal: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", ErrEmptyReply
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
