package score

import (
	"context"
	"sort"
	"strings"

	"github.com/stakahama/negaposi/internal/lexicon"
	"github.com/stakahama/negaposi/internal/tokenize"
)

// LexiconScorer counts polarity-dictionary hits over the morphological
// tokens of a group's combined speech text. Every hit moves the score
// by ±1, so repeated words weigh in proportion to their frequency.
type LexiconScorer struct {
	lex *lexicon.Lexicon
	tok tokenize.Tokenizer
}

// NewLexiconScorer creates a lexicon-based scorer
func NewLexiconScorer(lex *lexicon.Lexicon, tok tokenize.Tokenizer) *LexiconScorer {
	return &LexiconScorer{lex: lex, tok: tok}
}

// Mode returns the scoring mode identifier
func (s *LexiconScorer) Mode() string {
	return ModeLexicon
}

// ScoreGroup tokenizes the group's speeches as one document and sums
// dictionary polarities. Groups with no dictionary hit yield (nil, nil).
func (s *LexiconScorer) ScoreGroup(ctx context.Context, affiliation string, speeches []string) (*GroupScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := strings.Join(speeches, "\n")

	var total float64
	positiveHits := make(map[string]int)
	negativeHits := make(map[string]int)
	var positive, negative []string

	for _, surface := range s.tok.Surfaces(text) {
		polarity, ok := s.lex.Polarity(surface)
		if !ok {
			continue
		}
		total += float64(polarity)
		switch polarity {
		case lexicon.Positive:
			if positiveHits[surface] == 0 {
				positive = append(positive, surface)
			}
			positiveHits[surface]++
		case lexicon.Negative:
			if negativeHits[surface] == 0 {
				negative = append(negative, surface)
			}
			negativeHits[surface]++
		}
	}

	if len(positive) == 0 && len(negative) == 0 {
		return nil, nil
	}

	sortByHits(positive, positiveHits)
	sortByHits(negative, negativeHits)

	return &GroupScore{
		Affiliation:  affiliation,
		Score:        total,
		Positive:     positive,
		Negative:     negative,
		PositiveHits: positiveHits,
		NegativeHits: negativeHits,
		Speeches:     len(speeches),
	}, nil
}

// sortByHits reorders first-seen word order into descending hit counts.
// The stable sort keeps first appearance as the tie-break.
func sortByHits(words []string, hits map[string]int) {
	sort.SliceStable(words, func(i, j int) bool {
		return hits[words[i]] > hits[words[j]]
	})
}
