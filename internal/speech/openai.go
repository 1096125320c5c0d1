package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAISynthesizer produces speech through the OpenAI audio API.
// Preferred over the free web endpoint when an API key is configured:
// better voices and no undocumented rate limits.
type OpenAISynthesizer struct {
	client *openai.Client
}

// NewOpenAISynthesizer builds a synthesizer authenticated with apiKey.
func NewOpenAISynthesizer(apiKey string) *OpenAISynthesizer {
	return &OpenAISynthesizer{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Synthesize implements Synthesizer. The lang parameter is advisory:
// the model voices whatever language the input text is written in.
func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	res, err := o.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.F(openai.SpeechModelTTS1),
		Input:          openai.F(text),
		Voice:          openai.F(openai.AudioSpeechNewParamsVoiceAlloy),
		ResponseFormat: openai.F(openai.AudioSpeechNewParamsResponseFormatMP3),
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer res.Body.Close()

	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai audio: %w", err)
	}
	return audio, nil
}
