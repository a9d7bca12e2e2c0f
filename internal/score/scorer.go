// Package score implements the two sentiment scoring strategies. Both
// consume a group of speeches and reduce them to a single signed score;
// they differ in how a unit of text earns its sign.
package score

import (
	"context"
	"strings"
)

// Scoring mode identifiers as they appear on the CLI and in reports.
const (
	ModeLexicon = "lexicon"
	ModeModel   = "model"
)

// Minimum sentence length, in runes, for model-based classification.
// Shorter fragments are interjections and markup noise.
const minSentenceRunes = 5

// GroupScore holds the scored result for one affiliation group.
type GroupScore struct {
	Affiliation string
	Score       float64

	// Lexicon strategy: matched words ordered by descending hit count,
	// ties by first appearance, with per-word counts alongside.
	Positive     []string
	Negative     []string
	PositiveHits map[string]int
	NegativeHits map[string]int

	// Model strategy: how many speeches the group average covers.
	Speeches int
	Analyzed int
}

// Scorer scores all speeches of one affiliation group. A nil result
// with a nil error means the group carried no scorable signal and
// should be left out of the report.
type Scorer interface {
	Mode() string
	ScoreGroup(ctx context.Context, affiliation string, speeches []string) (*GroupScore, error)
}

// splitSentences splits Japanese text on the ideographic full stop and
// drops fragments too short to classify.
func splitSentences(text string) []string {
	var sentences []string
	for _, part := range strings.Split(text, "。") {
		part = strings.TrimSpace(part)
		if len([]rune(part)) < minSentenceRunes {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}
