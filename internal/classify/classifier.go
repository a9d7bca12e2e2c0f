// Package classify provides the sentence-level sentiment classifier
// capability consumed by the model scoring strategy.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Label is a binary sentiment class
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
)

// Verdict is one classification result
type Verdict struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Signed converts the verdict to a signed score in [-1, 1]
func (v Verdict) Signed() float64 {
	if v.Label == LabelPositive {
		return v.Confidence
	}
	return -v.Confidence
}

// Classifier defines the interface for sentence classifiers
type Classifier interface {
	// Name returns the provider name
	Name() string

	// Classify labels a single sentence with a confidence in [0, 1]
	Classify(ctx context.Context, sentence string) (Verdict, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds classifier provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 50,
	}
}

// systemPrompt constrains providers to a machine-readable verdict.
// Confidence is the model's own certainty, not a calibrated probability.
const systemPrompt = `You are a binary sentiment classifier for Japanese parliamentary speech.
Classify the sentiment of the sentence you are given.
Respond with ONLY a JSON object of the form {"label":"positive","confidence":0.87}
where label is "positive" or "negative" and confidence is a number between 0 and 1.
No explanation, no extra text.`

// verdictObject matches the first JSON object in a response, for
// providers that wrap the verdict in prose or code fences
var verdictObject = regexp.MustCompile(`\{[^{}]*\}`)

// parseVerdict extracts and validates a verdict from raw model output
func parseVerdict(raw string) (Verdict, error) {
	raw = strings.TrimSpace(raw)

	var v Verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		obj := verdictObject.FindString(raw)
		if obj == "" {
			return Verdict{}, fmt.Errorf("no verdict object in response: %q", raw)
		}
		if err := json.Unmarshal([]byte(obj), &v); err != nil {
			return Verdict{}, fmt.Errorf("unmarshal verdict: %w", err)
		}
	}

	if v.Label != LabelPositive && v.Label != LabelNegative {
		return Verdict{}, fmt.Errorf("unknown label: %q", v.Label)
	}
	if v.Confidence < 0 || v.Confidence > 1 {
		return Verdict{}, fmt.Errorf("confidence out of range: %v", v.Confidence)
	}

	return v, nil
}
