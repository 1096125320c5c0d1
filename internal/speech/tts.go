package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aravindms/newspulse/internal/infra"
)

// DefaultTTSBaseURL is the public Google text-to-speech endpoint used
// when no override is configured.
const DefaultTTSBaseURL = "https://translate.google.com"

// ttsChunkLimit is the maximum text length the endpoint accepts per
// request; longer inputs are split on word boundaries and the MP3
// responses concatenated.
const ttsChunkLimit = 200

// Synthesizer produces spoken audio (MP3 bytes) from text in the
// given language.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// GoogleSynthesizer calls the free web text-to-speech endpoint (the
// same one gTTS-style tools wrap).
type GoogleSynthesizer struct {
	baseURL string
	client  *http.Client
}

// NewGoogleSynthesizer builds a synthesizer. baseURL is optional;
// tests point it at an httptest server.
func NewGoogleSynthesizer(baseURL string) *GoogleSynthesizer {
	if baseURL == "" {
		baseURL = DefaultTTSBaseURL
	}
	return &GoogleSynthesizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Synthesize implements Synthesizer. MP3 frames are self-delimiting,
// so chunked responses can be joined byte-wise into one playable file.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := chunkText(text, ttsChunkLimit)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("synthesize: empty text")
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		endpoint := fmt.Sprintf("%s/translate_tts?ie=UTF-8&client=tw-ob&tl=%s&q=%s",
			g.baseURL, url.QueryEscape(lang), url.QueryEscape(chunk))

		body, err := infra.Get(ctx, g.client, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("synthesize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if _, err := io.Copy(&audio, body); err != nil {
			body.Close()
			return nil, fmt.Errorf("read audio chunk %d/%d: %w", i+1, len(chunks), err)
		}
		body.Close()
	}

	return audio.Bytes(), nil
}

// chunkText splits text into pieces of at most limit runes, breaking
// on spaces where possible so words stay intact.
func chunkText(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))
		if currentLen > 0 && currentLen+1+wordLen > limit {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		// A single word longer than the limit is split hard.
		for wordLen > limit {
			runes := []rune(word)
			chunks = append(chunks, string(runes[:limit]))
			word = string(runes[limit:])
			wordLen = len([]rune(word))
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
