package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputFile is used when the caller does not name the audio
// file.
const DefaultOutputFile = "output.mp3"

// Renderer translates text into the target language and writes the
// synthesized narration to disk.
type Renderer struct {
	translator Translator
	synth      Synthesizer
	targetLang string
	outDir     string
}

// NewRenderer wires a renderer. targetLang defaults to Hindi; outDir
// defaults to the working directory.
func NewRenderer(translator Translator, synth Synthesizer, targetLang, outDir string) *Renderer {
	if targetLang == "" {
		targetLang = "hi"
	}
	if outDir == "" {
		outDir = "."
	}
	return &Renderer{
		translator: translator,
		synth:      synth,
		targetLang: targetLang,
		outDir:     outDir,
	}
}

// OutputDir returns the directory audio files are written to.
func (r *Renderer) OutputDir() string { return r.outDir }

// Render translates text and writes the narration MP3 under the
// renderer's output directory, returning the written path. Empty text
// is a logged no-op returning an empty path. Repeated renders to the
// same filename overwrite freely.
func (r *Renderer) Render(ctx context.Context, text, filename string) (string, error) {
	if strings.TrimSpace(text) == "" {
		slog.Warn("no text provided for speech rendering")
		return "", nil
	}
	if filename == "" {
		filename = DefaultOutputFile
	}

	translated, err := r.translator.Translate(ctx, text, r.targetLang)
	if err != nil {
		slog.Error("translation failed", "error", err)
		return "", fmt.Errorf("translate: %w", err)
	}

	audio, err := r.synth.Synthesize(ctx, translated, r.targetLang)
	if err != nil {
		slog.Error("speech synthesis failed", "error", err)
		return "", fmt.Errorf("synthesize: %w", err)
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(r.outDir, filepath.Base(filename))
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	slog.Info("speech saved", "path", path, "bytes", len(audio))
	return path, nil
}
