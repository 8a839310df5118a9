package main

import (
	"context"
	"flag"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"simlab"
	"simlab/internal/config"
	"simlab/internal/tui"
	"simlab/keywords"
	"simlab/options"
	"simlab/providers"
	"simlab/similarity"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config YAML (default: simlab.yaml, then ~/.config/simlab/config.yaml)")
	flag.Parse()

	// Missing .env is fine; keys may come from the environment directly.
	_ = godotenv.Load()

	var cfg *config.AppConfig
	var err error
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to build engine: %v", err)
	}
	defer engine.Close()

	model := tui.New(engine, cfg.MatchThreshold)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}

func buildEngine(ctx context.Context, cfg *config.AppConfig) (*simlab.Engine, error) {
	provider, err := providers.New(ctx, providers.ProviderType(cfg.Provider.Type), providers.Config{
		APIKey:  os.Getenv(cfg.Provider.APIKeyEnv),
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.Model,
	})
	if err != nil {
		return nil, err
	}

	opts := []options.Option{
		options.WithProvider(provider),
		options.WithMetric(similarity.MetricKind(cfg.Metric)),
		options.WithPreprocessing(cfg.Preprocess.Lowercase, cfg.Preprocess.StripPunctuation),
		options.WithHistoryCapacity(cfg.HistoryCapacity),
	}

	if cfg.Keywords.Enabled {
		switch cfg.Keywords.Type {
		case "anthropic":
			extractor, err := keywords.NewAnthropicExtractor(keywords.AnthropicConfig{
				APIKey: os.Getenv(cfg.Keywords.APIKeyEnv),
				Model:  cfg.Keywords.Model,
			})
			if err != nil {
				return nil, err
			}
			opts = append(opts, options.WithKeywordExtractor(extractor, cfg.Keywords.TopK))
		default:
			opts = append(opts, options.WithEmbedRankKeywords(cfg.Keywords.TopK))
		}
	}

	switch cfg.Cache.Type {
	case "lru":
		opts = append(opts, options.WithLRUCache(cfg.Cache.Capacity))
	case "redis":
		opts = append(opts, options.WithRedisCache(cfg.Cache.Addr, cfg.Cache.Database))
	}

	return simlab.New(opts...)
}
