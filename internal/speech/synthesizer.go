package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Synthesizer converts reply text into spoken audio via the Google Translate
// TTS endpoint (the same one the gTTS tooling wraps).
type Synthesizer struct {
	baseURL string
	http    *http.Client
}

func NewSynthesizer(baseURL string) *Synthesizer {
	return &Synthesizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Synthesize converts text into an mp3 artifact in the system temp directory
// and returns its path. The file name is unique per request so concurrent
// voice replies never share an artifact. The caller owns removal after the
// send attempt.
func (s *Synthesizer) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", languageCode)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("synthesis API status %d: %s", resp.StatusCode, body)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading audio payload: %w", err)
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("synthesis API returned an empty audio payload")
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("drtara-voice-%s.mp3", uuid.NewString()))
	if err := os.WriteFile(path, audio, 0600); err != nil {
		return "", fmt.Errorf("writing audio artifact: %w", err)
	}
	return path, nil
}
