package score

import (
	"context"
	"fmt"
	"os"

	"github.com/stakahama/negaposi/internal/classify"
)

// ModelScorer averages classifier verdicts per speech, then per group.
// A verdict contributes its confidence signed by its label, so a group
// score lands in [-1, 1].
type ModelScorer struct {
	classifier classify.Classifier
}

// NewModelScorer creates a classifier-based scorer
func NewModelScorer(classifier classify.Classifier) *ModelScorer {
	return &ModelScorer{classifier: classifier}
}

// Mode returns the scoring mode identifier
func (s *ModelScorer) Mode() string {
	return ModeModel
}

// ScoreGroup classifies every sentence of every speech. Sentence-level
// failures are skipped with a warning; only cancellation aborts the
// group. Speeches with no classified sentence are excluded from the
// average, and a group with no such speech yields (nil, nil).
func (s *ModelScorer) ScoreGroup(ctx context.Context, affiliation string, speeches []string) (*GroupScore, error) {
	var speechScores []float64

	for _, speech := range speeches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var sum float64
		classified := 0
		for _, sentence := range splitSentences(speech) {
			verdict, err := s.classifier.Classify(ctx, sentence)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				fmt.Fprintf(os.Stderr, "Warning: classification failed for %s: %v\n", affiliation, err)
				continue
			}
			sum += verdict.Signed()
			classified++
		}

		if classified > 0 {
			speechScores = append(speechScores, sum/float64(classified))
		}
	}

	if len(speechScores) == 0 {
		return nil, nil
	}

	var total float64
	for _, score := range speechScores {
		total += score
	}

	return &GroupScore{
		Affiliation: affiliation,
		Score:       total / float64(len(speechScores)),
		Speeches:    len(speeches),
		Analyzed:    len(speechScores),
	}, nil
}
