package model

import "time"

// Config is the complete factly configuration
type Config struct {
	Sources      SourcesConfig      `yaml:"sources"`
	Cache        CacheConfig        `yaml:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	Extract      ExtractConfig      `yaml:"extract"`
	DirectVerify DirectVerifyConfig `yaml:"direct_verify"`
	HTTP         HTTPConfig         `yaml:"http"`
	LLM          LLMConfig          `yaml:"llm"`
}

// SourceConfig configures one upstream source client
type SourceConfig struct {
	Enabled        bool          `yaml:"enabled"`
	APIKey         string        `yaml:"api_key,omitempty"`
	BaseURL        string        `yaml:"base_url,omitempty"`
	Timeout        time.Duration `yaml:"timeout"` // Total per-call timeout
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	MinInterval    time.Duration `yaml:"min_interval"` // Rate governor spacing
	MaxResults     int           `yaml:"max_results"`
}

// SourcesConfig holds per-upstream client settings
type SourcesConfig struct {
	FactCheck SourceConfig `yaml:"fact_check"`
	NewsAPI   SourceConfig `yaml:"newsapi"`
	NewsLdr   SourceConfig `yaml:"newsldr"`
	Official  SourceConfig `yaml:"official"`
	RSS       RSSConfig    `yaml:"rss"`
}

// RSSConfig configures the credential-free RSS source client
type RSSConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Feeds       []string      `yaml:"feeds"`
	Timeout     time.Duration `yaml:"timeout"`
	MinInterval time.Duration `yaml:"min_interval"`
	MaxResults  int           `yaml:"max_results"`
}

// CacheCategoryConfig bounds one cache category
type CacheCategoryConfig struct {
	TTL      time.Duration `yaml:"ttl"`
	MaxItems int           `yaml:"max_items"`
}

// CacheConfig holds per-category cache settings
type CacheConfig struct {
	Enabled    bool                           `yaml:"enabled"`
	Categories map[string]CacheCategoryConfig `yaml:"categories"`
}

// ConcurrencyConfig bounds fan-out and batch work
type ConcurrencyConfig struct {
	MaxConcurrentSources int `yaml:"max_concurrent_sources"` // Semaphore for the evidence fan-out
	BatchWorkers         int `yaml:"batch_workers"`          // Worker pool for batch verification
}

// ExtractConfig tunes claim extraction
type ExtractConfig struct {
	MinConfidence        float64 `yaml:"min_confidence"`
	PrimaryMinConfidence float64 `yaml:"primary_min_confidence"` // Lower floor for Primary()
	MaxTextBytes         int     `yaml:"max_text_bytes"`
}

// DirectVerifyConfig tunes the direct-source verification pass
type DirectVerifyConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxSources    int           `yaml:"max_sources"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// HTTPConfig holds shared HTTP client settings
type HTTPConfig struct {
	UserAgent string `yaml:"user_agent"`
}

// LLMConfig configures the optional narrative summarizer. The LLM output is
// attached to the summary only and never affects scoring.
type LLMConfig struct {
	Provider       string `yaml:"provider"` // "" disables, "openai" enables
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key,omitempty"`
	BaseURL        string `yaml:"base_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxTokens      int    `yaml:"max_tokens"`
	StrictEvidence bool   `yaml:"strict_evidence"`
}

// Cache category names. evidence_collection holds whole aggregation results;
// the remaining categories cache raw per-source lookups.
const (
	CacheCategoryFactCheck  = "fact_check"
	CacheCategoryNews       = "news"
	CacheCategoryOfficial   = "official"
	CacheCategoryAcademic   = "academic"
	CacheCategoryRealtime   = "realtime"
	CacheCategoryCollection = "evidence_collection"
)

// DefaultConfig returns the standard factly configuration
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			FactCheck: SourceConfig{
				Enabled:        true,
				BaseURL:        "https://factchecktools.googleapis.com/v1alpha1/claims:search",
				Timeout:        10 * time.Second,
				ConnectTimeout: 5 * time.Second,
				MinInterval:    time.Second,
				MaxResults:     10,
			},
			NewsAPI: SourceConfig{
				Enabled:        true,
				BaseURL:        "https://newsapi.org/v2/everything",
				Timeout:        10 * time.Second,
				ConnectTimeout: 5 * time.Second,
				MinInterval:    time.Second,
				MaxResults:     10,
			},
			NewsLdr: SourceConfig{
				Enabled:        true,
				BaseURL:        "https://api.newsldr.com/v1/news/search",
				Timeout:        15 * time.Second,
				ConnectTimeout: 5 * time.Second,
				MinInterval:    500 * time.Millisecond,
				MaxResults:     10,
			},
			Official: SourceConfig{
				Enabled:        true,
				Timeout:        10 * time.Second,
				ConnectTimeout: 5 * time.Second,
				MinInterval:    time.Second,
				MaxResults:     5,
			},
			RSS: RSSConfig{
				Enabled:     false,
				Timeout:     15 * time.Second,
				MinInterval: 2 * time.Second,
				MaxResults:  10,
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Categories: map[string]CacheCategoryConfig{
				CacheCategoryFactCheck:  {TTL: time.Hour, MaxItems: 1000},
				CacheCategoryNews:       {TTL: 30 * time.Minute, MaxItems: 1000},
				CacheCategoryOfficial:   {TTL: 6 * time.Hour, MaxItems: 500},
				CacheCategoryAcademic:   {TTL: 12 * time.Hour, MaxItems: 500},
				CacheCategoryRealtime:   {TTL: 5 * time.Minute, MaxItems: 500},
				CacheCategoryCollection: {TTL: time.Hour, MaxItems: 500},
			},
		},
		Concurrency: ConcurrencyConfig{
			MaxConcurrentSources: 5,
			BatchWorkers:         4,
		},
		Extract: ExtractConfig{
			MinConfidence:        0.4,
			PrimaryMinConfidence: 0.3,
			MaxTextBytes:         50000,
		},
		DirectVerify: DirectVerifyConfig{
			Enabled:       true,
			Timeout:       10 * time.Second,
			MaxSources:    6,
			RespectRobots: true,
		},
		HTTP: HTTPConfig{
			UserAgent: "Factly/1.0 (+https://github.com/ppiankov/factly)",
		},
		LLM: LLMConfig{
			Provider:       "",
			TimeoutSeconds: 30,
			MaxTokens:      800,
			StrictEvidence: true,
		},
	}
}
