package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete runtime configuration for a negaposi run.
// Every policy value the pipeline depends on (page size, caps, politeness
// interval, bar width) lives here rather than in package constants.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Cache      CacheConfig      `yaml:"cache"`
	Output     OutputConfig     `yaml:"output"`
}

// HTTPConfig controls the HTTP client used against the search endpoint
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// FetchConfig controls pagination against the proceedings search API
type FetchConfig struct {
	// BaseURL is the speech search endpoint
	BaseURL string `yaml:"base_url"`

	// PageSize is the number of records requested per page
	PageSize int `yaml:"page_size"`

	// Interval is the minimum spacing between consecutive requests.
	// The endpoint is public but rate-sensitive; one request per second
	// is the documented politeness floor.
	Interval time.Duration `yaml:"interval"`

	// LexiconCap and ModelCap bound the number of records processed per
	// run. Model inference costs one call per sentence, hence the far
	// lower cap in that mode.
	LexiconCap int `yaml:"lexicon_cap"`
	ModelCap   int `yaml:"model_cap"`

	// CheckRobots consults robots.txt on the endpoint host once before
	// a bulk fetch begins
	CheckRobots bool `yaml:"check_robots"`
}

// LexiconConfig locates the polarity dictionary for the lexicon strategy
type LexiconConfig struct {
	Path string `yaml:"path"`
}

// ClassifierConfig configures the sentence classifier for the model strategy
type ClassifierConfig struct {
	// Provider name: "openai" or "ollama"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey is read from the environment, never from the config file
	APIKey string `yaml:"-"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout per classification request, in seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens bounds each classification response
	MaxTokens int `yaml:"max_tokens"`
}

// CacheConfig controls the classifier verdict cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`

	// BarWidth is the half-width of the proportional score bar
	BarWidth int `yaml:"bar_width"`

	// GroupTopWords caps the evidence word list printed per group
	GroupTopWords int `yaml:"group_top_words"`

	// OverallTopWords caps the run-level evidence word lists
	OverallTopWords int `yaml:"overall_top_words"`
}

// DefaultConfig returns the documented defaults
func DefaultConfig() *Config {
	cacheDir := ".negaposi/cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".negaposi", "cache")
	}

	return &Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "negaposi/0.1 (+https://github.com/stakahama/negaposi)",
		},
		Fetch: FetchConfig{
			BaseURL:     "https://kokkai.ndl.go.jp/api/speech",
			PageSize:    100,
			Interval:    time.Second,
			LexiconCap:  30000,
			ModelCap:    1000,
			CheckRobots: true,
		},
		Lexicon: LexiconConfig{
			Path: "pn_ja.dic.txt",
		},
		Classifier: ClassifierConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 50,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     cacheDir,
			TTL:     7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			BarWidth:        20,
			GroupTopWords:   10,
			OverallTopWords: 20,
		},
	}
}
