// Package api provides the HTTP server for newspulse.
//
// It exposes endpoints for fetching company news, running comparative
// sentiment analysis, and converting text to narrated speech, and it
// serves the embedded dashboard UI.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aravindms/newspulse/internal/analysis"
	"github.com/aravindms/newspulse/internal/config"
	"github.com/aravindms/newspulse/internal/fetcher"
	"github.com/aravindms/newspulse/internal/sentiment"
	"github.com/aravindms/newspulse/internal/speech"
	"github.com/aravindms/newspulse/internal/topics"
	"github.com/aravindms/newspulse/pkg/models"
	"github.com/aravindms/newspulse/web"
)

// NewsFetcher retrieves the articles for a company. Satisfied by the
// fetcher sources.
type NewsFetcher interface {
	Fetch(ctx context.Context, company string) ([]models.Article, error)
}

// SpeechRenderer writes narrated audio for text and returns the file
// path. Satisfied by speech.Renderer.
type SpeechRenderer interface {
	Render(ctx context.Context, text, filename string) (string, error)
}

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	fetcher  NewsFetcher
	engine   *analysis.Engine
	renderer SpeechRenderer
	audioDir string
	wsHub    *WSHub
	serveUI  bool // when true, serve the embedded dashboard at /
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) (*Server, error) {
	scorer := sentiment.NewAnalyzer()
	extractor := topics.NewExtractor()

	src, err := buildSource(cfg, scorer, extractor)
	if err != nil {
		return nil, err
	}

	translator := speech.NewGoogleTranslator(cfg.Speech.TranslateBaseURL)
	synth, err := buildSynthesizer(cfg)
	if err != nil {
		return nil, err
	}
	renderer := speech.NewRenderer(translator, synth, cfg.Speech.TargetLanguage, cfg.Speech.OutputDir)

	srv := &Server{
		cfg:      cfg,
		fetcher:  src,
		engine:   analysis.NewEngine(extractor),
		renderer: renderer,
		audioDir: renderer.OutputDir(),
		wsHub:    NewWSHub(),
		serveUI:  true,
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// buildSource assembles the configured news source.
func buildSource(cfg *config.Config, scorer fetcher.Scorer, enricher fetcher.Enricher) (fetcher.Source, error) {
	bingCfg := fetcher.BingConfig{
		BaseURL:     cfg.Fetcher.BingBaseURL,
		Timeout:     time.Duration(cfg.Fetcher.TimeoutSec) * time.Second,
		MaxArticles: cfg.Fetcher.MaxArticles,
	}
	rssCfg := fetcher.RSSConfig{
		BaseURL:     cfg.Fetcher.RSSBaseURL,
		MaxArticles: cfg.Fetcher.MaxArticles,
	}

	switch cfg.Fetcher.Source {
	case "", "bing":
		return fetcher.NewBingSource(bingCfg, scorer, enricher), nil
	case "rss":
		return fetcher.NewRSSSource(rssCfg, scorer, enricher), nil
	case "both":
		return fetcher.NewFanout(cfg.Fetcher.MaxArticles,
			fetcher.NewBingSource(bingCfg, scorer, enricher),
			fetcher.NewRSSSource(rssCfg, scorer, enricher),
		), nil
	default:
		return nil, fmt.Errorf("unknown fetcher source %q", cfg.Fetcher.Source)
	}
}

// buildSynthesizer picks the speech backend.
func buildSynthesizer(cfg *config.Config) (speech.Synthesizer, error) {
	switch cfg.Speech.Backend {
	case "", "google":
		return speech.NewGoogleSynthesizer(cfg.Speech.TTSBaseURL), nil
	case "openai":
		if cfg.Speech.OpenAIKey == "" {
			return nil, fmt.Errorf("speech backend %q requires an API key", cfg.Speech.Backend)
		}
		return speech.NewOpenAISynthesizer(cfg.Speech.OpenAIKey), nil
	default:
		return nil, fmt.Errorf("unknown speech backend %q", cfg.Speech.Backend)
	}
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.wsHub.Run()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/fetch_news", s.handleFetchNews)
	r.Get("/analyze", s.handleAnalyze)
	r.Post("/convert_text_to_speech", s.handleTextToSpeech)
	r.Get("/audio/{file}", s.handleAudio)
	r.Get("/ws", s.handleWebSocket)

	if s.serveUI {
		s.mountUI(r, web.DistFS())
	}

	return r
}

// mountUI serves the embedded dashboard, falling back to index.html
// for unknown paths.
func (s *Server) mountUI(r chi.Router, distFS fs.FS) {
	fileServer := http.FileServer(http.FS(distFS))

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		rPath := strings.TrimPrefix(req.URL.Path, "/")
		if rPath == "" {
			rPath = "index.html"
		}

		if f, err := distFS.Open(rPath); err == nil {
			f.Close()
			fileServer.ServeHTTP(w, req)
			return
		}

		data, err := fs.ReadFile(distFS, "index.html")
		if err != nil {
			http.Error(w, "dashboard not available", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(data) //nolint:errcheck
	})
}

// ============================================================
// Request / Response types
// ============================================================

// errorResponse is the JSON error body: {"error": "..."}.
type errorResponse struct {
	Error string `json:"error"`
}

// TTSRequest is the body for POST /convert_text_to_speech.
type TTSRequest struct {
	Text string `json:"text"`
}

// TTSResponse is the reply for POST /convert_text_to_speech.
type TTSResponse struct {
	AudioFile string `json:"audio_file"`
}

// AnalyzeResponse is the reply for GET /analyze.
type AnalyzeResponse struct {
	SentimentDistribution models.Tally            `json:"sentiment_distribution"`
	SentimentTrends       map[string]models.Tally `json:"sentiment_trends"`
	KeywordFrequency      map[string]int          `json:"keyword_frequency"`
	NewsList              []models.Article        `json:"news_list"`
	AnalysisSummary       models.Report           `json:"analysis_summary"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFetchNews returns the raw article list for a company.
func (s *Server) handleFetchNews(w http.ResponseWriter, r *http.Request) {
	company := strings.TrimSpace(r.URL.Query().Get("company"))
	if company == "" {
		writeError(w, http.StatusBadRequest, "Company name is required")
		return
	}

	articles := s.fetchArticles(r.Context(), company)
	if len(articles) == 0 {
		writeError(w, http.StatusNotFound, "No news found for this company")
		return
	}

	writeJSON(w, http.StatusOK, articles)
}

// handleAnalyze fetches the company's news and returns the full
// comparative analysis payload.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	company := strings.TrimSpace(r.URL.Query().Get("company"))
	if company == "" {
		writeError(w, http.StatusBadRequest, "Company name is required")
		return
	}

	articles := s.fetchArticles(r.Context(), company)
	if len(articles) == 0 {
		writeError(w, http.StatusNotFound, "No news found for this company")
		return
	}

	report := s.engine.Aggregate(articles)

	var distribution models.Tally
	for _, a := range articles {
		distribution.Add(a.Sentiment)
	}

	resp := AnalyzeResponse{
		SentimentDistribution: distribution,
		SentimentTrends:       analysis.Trends(articles),
		KeywordFrequency:      analysis.TopKeywords(articles, 10),
		NewsList:              articles,
		AnalysisSummary:       report,
	}

	s.wsHub.Broadcast(WSMessage{
		Type: "analysis_complete",
		Data: map[string]any{
			"company":  company,
			"majority": report.MajoritySentiment,
			"articles": len(articles),
		},
	})

	writeJSON(w, http.StatusOK, resp)
}

// handleTextToSpeech converts posted text into a narrated audio file.
func (s *Server) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	path, err := s.renderer.Render(r.Context(), req.Text, speech.DefaultOutputFile)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Speech rendering failed")
		return
	}

	writeJSON(w, http.StatusOK, TTSResponse{AudioFile: path})
}

// handleAudio serves a previously rendered audio file.
func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "file"))
	if name == "." || name == "/" || !strings.HasSuffix(name, ".mp3") {
		writeError(w, http.StatusBadRequest, "Invalid audio file name")
		return
	}
	http.ServeFile(w, r, filepath.Join(s.audioDir, name))
}

// fetchArticles runs the fetch and degrades failures to an empty list,
// logging the cause. "No news" and "fetch broke" look the same to API
// consumers but not in the logs.
func (s *Server) fetchArticles(ctx context.Context, company string) []models.Article {
	articles, err := s.fetcher.Fetch(ctx, company)
	if err != nil {
		slog.Error("fetch degraded to empty result", "company", company, "error", err)
		return nil
	}
	return articles
}

// ============================================================
// JSON helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
