package classify

import (
	"fmt"
	"strings"
)

// NewClassifier creates a classifier based on configuration
func NewClassifier(config Config) (Classifier, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIClassifier(config)

	case "ollama":
		return NewOllamaClassifier(config)

	case "":
		// No provider configured - return nil (model strategy disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: openai, ollama)", config.Provider)
	}
}
