package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aravindms/newspulse/internal/analysis"
	"github.com/aravindms/newspulse/internal/config"
	"github.com/aravindms/newspulse/internal/topics"
	"github.com/aravindms/newspulse/pkg/models"
)

type stubFetcher struct {
	articles []models.Article
	err      error
}

func (s *stubFetcher) Fetch(ctx context.Context, company string) ([]models.Article, error) {
	return s.articles, s.err
}

type stubRenderer struct {
	path string
	err  error
	got  string
}

func (s *stubRenderer) Render(ctx context.Context, text, filename string) (string, error) {
	s.got = text
	return s.path, s.err
}

func newTestServer(t *testing.T, f NewsFetcher, r SpeechRenderer) *Server {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	srv := &Server{
		cfg:      cfg,
		fetcher:  f,
		engine:   analysis.NewEngine(topics.NewExtractor()),
		renderer: r,
		audioDir: t.TempDir(),
		wsHub:    NewWSHub(),
		serveUI:  false,
	}
	srv.router = srv.buildRouter()
	go srv.wsHub.Run()
	return srv
}

func sampleArticles() []models.Article {
	return []models.Article{
		{
			Title:     "Acme posts record quarterly profit",
			Summary:   "Acme reported excellent results and strong growth this quarter.",
			URL:       "https://example.com/a",
			Timestamp: "2026-08-27T10:00:00Z",
			Sentiment: models.SentimentPositive,
			Topics:    []string{"acme", "profit", "growth"},
			Keywords:  []string{"acme", "profit"},
		},
		{
			Title:     "Acme faces regulatory probe",
			Summary:   "Regulators opened a terrible investigation into Acme practices.",
			URL:       "https://example.com/b",
			Timestamp: "2026-08-27T12:00:00Z",
			Sentiment: models.SentimentNegative,
			Topics:    []string{"acme", "regulation", "probe"},
			Keywords:  []string{"acme", "probe"},
		},
	}
}

func TestFetchNewsRequiresCompany(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{}, &stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/fetch_news", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error != "Company name is required" {
		t.Errorf("error = %q, want %q", resp.Error, "Company name is required")
	}
}

func TestFetchNewsNoResults(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{}, &stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/fetch_news?company=Acme", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error != "No news found for this company" {
		t.Errorf("error = %q, want %q", resp.Error, "No news found for this company")
	}
}

func TestFetchNewsDegradesFetchErrorTo404(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{err: context.DeadlineExceeded}, &stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/fetch_news?company=Acme", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestFetchNewsReturnsArticles(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{articles: sampleArticles()}, &stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/fetch_news?company=Acme", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got []models.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "Acme posts record quarterly profit" {
		t.Errorf("first title = %q", got[0].Title)
	}
	if got[1].Sentiment != models.SentimentNegative {
		t.Errorf("second sentiment = %q, want %q", got[1].Sentiment, models.SentimentNegative)
	}
}

func TestAnalyzeRequiresCompany(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{}, &stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAnalyzeResponseShape(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{articles: sampleArticles()}, &stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/analyze?company=Acme", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.SentimentDistribution.Positive != 1 || resp.SentimentDistribution.Negative != 1 || resp.SentimentDistribution.Neutral != 0 {
		t.Errorf("distribution = %+v, want 1/1/0", resp.SentimentDistribution)
	}
	if len(resp.NewsList) != 2 {
		t.Errorf("news_list len = %d, want 2", len(resp.NewsList))
	}
	if got := resp.SentimentTrends["2026-08-27"]; got.Positive != 1 || got.Negative != 1 {
		t.Errorf("trends[2026-08-27] = %+v, want 1 positive, 1 negative", got)
	}
	if resp.KeywordFrequency["acme"] != 2 {
		t.Errorf("keyword_frequency[acme] = %d, want 2", resp.KeywordFrequency["acme"])
	}
	if len(resp.AnalysisSummary.SentimentShifts) != 1 {
		t.Errorf("shifts = %v, want 1 entry", resp.AnalysisSummary.SentimentShifts)
	}
	if len(resp.AnalysisSummary.CoverageDifferences) != 1 {
		t.Errorf("coverage differences = %d, want 1", len(resp.AnalysisSummary.CoverageDifferences))
	}
	if resp.AnalysisSummary.TopicOverlap.CommonTopics == nil {
		t.Error("topic_overlap.common_topics is nil, want at least empty slice")
	}
}

func TestAnalyzeRawDistributionCountsAllLabels(t *testing.T) {
	articles := sampleArticles()
	articles[1].Sentiment = models.SentimentPositive
	srv := newTestServer(t, &stubFetcher{articles: articles}, &stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/analyze?company=Acme", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// The raw distribution always carries all three labels, even at zero.
	if resp.SentimentDistribution.Negative != 0 || resp.SentimentDistribution.Neutral != 0 {
		t.Errorf("distribution = %+v, want zero negative and neutral", resp.SentimentDistribution)
	}
	if !strings.Contains(rec.Body.String(), `"Neutral":0`) {
		t.Errorf("body missing zero Neutral tally: %s", rec.Body.String())
	}
}

func TestTextToSpeechRequiresText(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{}, &stubRenderer{})

	for _, body := range []string{``, `{}`, `{"text": "  "}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/convert_text_to_speech", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestTextToSpeechReturnsAudioPath(t *testing.T) {
	renderer := &stubRenderer{path: "audio/output.mp3"}
	srv := newTestServer(t, &stubFetcher{}, renderer)

	req := httptest.NewRequest(http.MethodPost, "/convert_text_to_speech", strings.NewReader(`{"text": "The outlook is strong."}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp TTSResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.AudioFile != "audio/output.mp3" {
		t.Errorf("audio_file = %q, want %q", resp.AudioFile, "audio/output.mp3")
	}
	if renderer.got != "The outlook is strong." {
		t.Errorf("renderer received %q", renderer.got)
	}
}

func TestTextToSpeechBackendFailure(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{}, &stubRenderer{err: context.DeadlineExceeded})

	req := httptest.NewRequest(http.MethodPost, "/convert_text_to_speech", strings.NewReader(`{"text": "hello"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestAudioRejectsBadNames(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{}, &stubRenderer{})

	for _, name := range []string{"notes.txt", "..", "x.wav"} {
		req := httptest.NewRequest(http.MethodGet, "/audio/"+name, nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("name %q: status = %d, want %d", name, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{}, &stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
