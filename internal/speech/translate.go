// Package speech turns article text into narrated audio: translation
// into the configured target language followed by speech synthesis.
package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/aravindms/newspulse/internal/infra"
)

// DefaultTranslateBaseURL is the public Google translate endpoint used
// when no override is configured.
const DefaultTranslateBaseURL = "https://translate.googleapis.com"

// Translator converts text into a target language. Source language is
// detected by the service.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// GoogleTranslator calls the free web translation endpoint. No API
// key needed, but the endpoint is undocumented and rate limited.
type GoogleTranslator struct {
	baseURL string
	client  *http.Client
}

// NewGoogleTranslator builds a translator. baseURL is optional; tests
// point it at an httptest server.
func NewGoogleTranslator(baseURL string) *GoogleTranslator {
	if baseURL == "" {
		baseURL = DefaultTranslateBaseURL
	}
	return &GoogleTranslator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Translate implements Translator. The endpoint returns a nested JSON
// array whose first element lists translated segments; those are
// concatenated into the final text.
func (g *GoogleTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	endpoint := fmt.Sprintf("%s/translate_a/single?client=gtx&sl=auto&tl=%s&dt=t&q=%s",
		g.baseURL, url.QueryEscape(target), url.QueryEscape(text))

	body, err := infra.Get(ctx, g.client, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read translation: %w", err)
	}

	var sb strings.Builder
	for _, segment := range gjson.GetBytes(raw, "0.#.0").Array() {
		sb.WriteString(segment.String())
	}

	translated := sb.String()
	if translated == "" {
		return "", fmt.Errorf("translate: empty response for target %q", target)
	}
	return translated, nil
}
