// Package tokenize provides the morphological tokenizer capability
// consumed by the lexicon scoring strategy.
package tokenize

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Tokenizer segments text into surface-form tokens
type Tokenizer interface {
	Surfaces(text string) []string
}

// KagomeTokenizer segments Japanese text with the kagome morphological
// analyzer and its bundled IPA dictionary.
type KagomeTokenizer struct {
	t *tokenizer.Tokenizer
}

// NewKagomeTokenizer builds a tokenizer over the IPA dictionary
func NewKagomeTokenizer() (*KagomeTokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("initialize tokenizer: %w", err)
	}
	return &KagomeTokenizer{t: t}, nil
}

// Surfaces returns the surface forms of text in order
func (k *KagomeTokenizer) Surfaces(text string) []string {
	tokens := k.t.Tokenize(text)
	surfaces := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		surfaces = append(surfaces, tok.Surface)
	}
	return surfaces
}
