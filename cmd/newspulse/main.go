// NewsPulse — company news sentiment analysis and narration.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aravindms/newspulse/api"
	"github.com/aravindms/newspulse/internal/analysis"
	"github.com/aravindms/newspulse/internal/config"
	"github.com/aravindms/newspulse/internal/fetcher"
	"github.com/aravindms/newspulse/internal/logging"
	"github.com/aravindms/newspulse/internal/sentiment"
	"github.com/aravindms/newspulse/internal/speech"
	"github.com/aravindms/newspulse/internal/topics"
	"github.com/aravindms/newspulse/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newspulse",
	Short: "NewsPulse — company news sentiment analysis and narration",
	Long: `NewsPulse fetches recent news for a company, scores each article's
sentiment, extracts topics and keywords, builds a comparative report
across articles, and can narrate the findings as translated speech.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if override, _ := cmd.Flags().GetString("log-level"); override != "" {
			level = override
		}
		logging.Init(level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(speakCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("NewsPulse %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return fmt.Errorf("failed to build server: %w", err)
		}
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		return srv.ListenAndServe(addr)
	},
}

// --- Fetch Command ---

var fetchCmd = &cobra.Command{
	Use:   "fetch [company]",
	Short: "Fetch and score recent news for a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		articles, err := fetchArticles(cmd, args[0])
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			fmt.Printf("No news found for %q\n", args[0])
			return nil
		}
		return printJSON(cmd, articles)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [company]",
	Short: "Fetch news and print the comparative sentiment report",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("provide a company name")
		}
		articles, err := fetchArticles(cmd, args[0])
		if err != nil {
			return err
		}

		engine := analysis.NewEngine(topics.NewExtractor())
		report := engine.Aggregate(articles)

		full, _ := cmd.Flags().GetBool("full")
		if !full {
			return printJSON(cmd, report)
		}

		var distribution models.Tally
		for _, a := range articles {
			distribution.Add(a.Sentiment)
		}
		return printJSON(cmd, map[string]any{
			"sentiment_distribution": distribution,
			"sentiment_trends":       analysis.Trends(articles),
			"keyword_frequency":      analysis.TopKeywords(articles, 10),
			"news_list":              articles,
			"analysis_summary":       report,
		})
	},
}

func init() {
	analyzeCmd.Flags().Bool("full", false, "include article list, trends and keyword frequencies")
	analyzeCmd.Flags().String("source", "", "news source override (bing, rss, both)")
	fetchCmd.Flags().String("source", "", "news source override (bing, rss, both)")
}

// --- Speak Command ---

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Translate text and render it as speech",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		translator := speech.NewGoogleTranslator(cfg.Speech.TranslateBaseURL)
		var synth speech.Synthesizer
		if cfg.Speech.Backend == "openai" {
			synth = speech.NewOpenAISynthesizer(cfg.Speech.OpenAIKey)
		} else {
			synth = speech.NewGoogleSynthesizer(cfg.Speech.TTSBaseURL)
		}
		renderer := speech.NewRenderer(translator, synth, cfg.Speech.TargetLanguage, cfg.Speech.OutputDir)

		path, err := renderer.Render(cmd.Context(), args[0], speech.DefaultOutputFile)
		if err != nil {
			return fmt.Errorf("speech rendering failed: %w", err)
		}
		fmt.Printf("Audio written to %s\n", path)
		return nil
	},
}

// --- Helpers ---

func fetchArticles(cmd *cobra.Command, company string) ([]models.Article, error) {
	scorer := sentiment.NewAnalyzer()
	extractor := topics.NewExtractor()

	source := cfg.Fetcher.Source
	if override, _ := cmd.Flags().GetString("source"); override != "" {
		source = override
	}

	bingCfg := fetcher.BingConfig{
		BaseURL:     cfg.Fetcher.BingBaseURL,
		MaxArticles: cfg.Fetcher.MaxArticles,
	}
	rssCfg := fetcher.RSSConfig{
		BaseURL:     cfg.Fetcher.RSSBaseURL,
		MaxArticles: cfg.Fetcher.MaxArticles,
	}

	var src fetcher.Source
	switch source {
	case "", "bing":
		src = fetcher.NewBingSource(bingCfg, scorer, extractor)
	case "rss":
		src = fetcher.NewRSSSource(rssCfg, scorer, extractor)
	case "both":
		src = fetcher.NewFanout(cfg.Fetcher.MaxArticles,
			fetcher.NewBingSource(bingCfg, scorer, extractor),
			fetcher.NewRSSSource(rssCfg, scorer, extractor),
		)
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}

	return src.Fetch(cmd.Context(), company)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
