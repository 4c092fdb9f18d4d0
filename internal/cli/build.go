package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/factly/internal/cache"
	"github.com/ppiankov/factly/internal/directverify"
	"github.com/ppiankov/factly/internal/evidence"
	"github.com/ppiankov/factly/internal/extract"
	"github.com/ppiankov/factly/internal/model"
	"github.com/ppiankov/factly/internal/pipeline"
	"github.com/ppiankov/factly/internal/source"
	"github.com/ppiankov/factly/internal/worker"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// loadConfig builds the effective configuration: defaults, overlaid with the
// config file viper found, overlaid with API keys from the environment
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		raw, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configFile, err)
		}
	}

	if cfg.Sources.FactCheck.APIKey == "" {
		cfg.Sources.FactCheck.APIKey = os.Getenv("GOOGLE_FACT_CHECK_API_KEY")
	}
	if cfg.Sources.NewsAPI.APIKey == "" {
		cfg.Sources.NewsAPI.APIKey = os.Getenv("NEWSAPI_API_KEY")
	}
	if cfg.Sources.NewsLdr.APIKey == "" {
		cfg.Sources.NewsLdr.APIKey = os.Getenv("NEWSLDR_API_KEY")
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}

// buildClients constructs every enabled source client. A client whose
// credentials are missing is skipped silently; verification proceeds with
// whatever sources remain.
func buildClients(cfg *model.Config) []source.Client {
	userAgent := cfg.HTTP.UserAgent
	var clients []source.Client

	add := func(client source.Client, err error) {
		if err != nil {
			if !errors.Is(err, source.ErrUnavailable) && verbose {
				fmt.Fprintf(os.Stderr, "source skipped: %v\n", err)
			}
			return
		}
		clients = append(clients, client)
	}

	add(source.NewFactCheckClient(cfg.Sources.FactCheck, userAgent))
	add(source.NewNewsAPIClient(cfg.Sources.NewsAPI, userAgent))
	add(source.NewNewsLdrClient(cfg.Sources.NewsLdr, userAgent))
	add(source.NewOfficialClient(cfg.Sources.Official))
	add(source.NewRSSClient(cfg.Sources.RSS, userAgent))

	return clients
}

// sourceCallTimeout returns the aggregator's per-call timeout: wide enough
// for the slowest enabled source, with a floor for misconfigured zeros
func sourceCallTimeout(cfg *model.Config) time.Duration {
	timeout := 10 * time.Second
	consider := func(enabled bool, t time.Duration) {
		if enabled && t > timeout {
			timeout = t
		}
	}
	consider(cfg.Sources.FactCheck.Enabled, cfg.Sources.FactCheck.Timeout)
	consider(cfg.Sources.NewsAPI.Enabled, cfg.Sources.NewsAPI.Timeout)
	consider(cfg.Sources.NewsLdr.Enabled, cfg.Sources.NewsLdr.Timeout)
	consider(cfg.Sources.Official.Enabled, cfg.Sources.Official.Timeout)
	consider(cfg.Sources.RSS.Enabled, cfg.Sources.RSS.Timeout)
	return timeout
}

// buildOrchestrator wires the full verification pipeline from configuration
func buildOrchestrator(cfg *model.Config, opts pipeline.Options) *pipeline.Orchestrator {
	store := cache.NewMemoryStore(cfg.Cache.Categories)
	if !cfg.Cache.Enabled {
		opts.ForceRefresh = true
	}

	governor := worker.NewGovernor(cfg.Sources.FactCheck.MinInterval)
	governor.SetInterval("factcheck", cfg.Sources.FactCheck.MinInterval)
	governor.SetInterval("newsapi", cfg.Sources.NewsAPI.MinInterval)
	governor.SetInterval("newsldr", cfg.Sources.NewsLdr.MinInterval)
	governor.SetInterval("official", cfg.Sources.Official.MinInterval)
	governor.SetInterval("rss", cfg.Sources.RSS.MinInterval)
	governor.SetInterval("directverify", cfg.Sources.Official.MinInterval)

	clients := buildClients(cfg)
	aggregator := evidence.NewAggregator(clients, store, governor,
		cfg.Concurrency.MaxConcurrentSources, sourceCallTimeout(cfg))

	extractor := extract.NewExtractor(cfg.Extract)

	var direct *directverify.Verifier
	if cfg.DirectVerify.Enabled {
		direct = directverify.NewVerifier(cfg.DirectVerify, governor, cfg.HTTP.UserAgent)
	}

	if opts.MinConfidence <= 0 {
		opts.MinConfidence = cfg.Extract.MinConfidence
	}
	return pipeline.NewOrchestrator(extractor, aggregator, direct, opts)
}
