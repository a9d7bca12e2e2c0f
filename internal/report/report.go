// Package report ranks scored affiliation groups and renders the final
// plain-text report.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/stakahama/negaposi/internal/model"
	"github.com/stakahama/negaposi/internal/score"
)

// Reporter renders ranked group scores
type Reporter struct {
	barWidth        int
	groupTopWords   int
	overallTopWords int
}

// NewReporter creates a reporter from output configuration
func NewReporter(cfg model.OutputConfig) *Reporter {
	return &Reporter{
		barWidth:        cfg.BarWidth,
		groupTopWords:   cfg.GroupTopWords,
		overallTopWords: cfg.OverallTopWords,
	}
}

// Rank sorts group scores descending by score. Ties are broken by
// ascending affiliation key so output stays deterministic.
func Rank(results []*score.GroupScore) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Affiliation < results[j].Affiliation
	})
}

// Render writes the ranked report for the given scoring mode
func (r *Reporter) Render(w io.Writer, mode string, results []*score.GroupScore) {
	fmt.Fprintf(w, "Sentiment by affiliation (%s mode, %d groups)\n", mode, len(results))
	fmt.Fprintln(w, strings.Repeat("=", 60))

	for rank, g := range results {
		fmt.Fprintf(w, "%2d. %s\n", rank+1, g.Affiliation)
		switch mode {
		case score.ModeModel:
			fmt.Fprintf(w, "    score %+.3f  %s\n", g.Score, r.bar(g.Score))
			fmt.Fprintf(w, "    analyzed %d of %d speeches\n", g.Analyzed, g.Speeches)
		default:
			fmt.Fprintf(w, "    score %+.0f (%d speeches)\n", g.Score, g.Speeches)
			if words := topWords(g.Positive, r.groupTopWords); len(words) > 0 {
				fmt.Fprintf(w, "    positive: %s\n", joinWithHits(words, g.PositiveHits))
			}
			if words := topWords(g.Negative, r.groupTopWords); len(words) > 0 {
				fmt.Fprintf(w, "    negative: %s\n", joinWithHits(words, g.NegativeHits))
			}
		}
	}

	if mode == score.ModeLexicon {
		r.renderOverall(w, results)
	}
}

// renderOverall aggregates word hits across all groups and prints the
// corpus-wide top words plus an overall verdict line.
func (r *Reporter) renderOverall(w io.Writer, results []*score.GroupScore) {
	positiveHits := make(map[string]int)
	negativeHits := make(map[string]int)
	var total float64
	for _, g := range results {
		total += g.Score
		for word, n := range g.PositiveHits {
			positiveHits[word] += n
		}
		for word, n := range g.NegativeHits {
			negativeHits[word] += n
		}
	}

	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Overall top positive words: %s\n", formatTopHits(positiveHits, r.overallTopWords))
	fmt.Fprintf(w, "Overall top negative words: %s\n", formatTopHits(negativeHits, r.overallTopWords))

	verdict := "neutral"
	if total > 0 {
		verdict = "positive"
	} else if total < 0 {
		verdict = "negative"
	}
	fmt.Fprintf(w, "Overall verdict: %s (%+.0f)\n", verdict, total)
}

// bar renders a proportional indicator for scores in [-1, 1]. Negative
// scores fill leftward from the center, positive scores rightward.
func (r *Reporter) bar(s float64) string {
	fill := int(math.Round(math.Abs(s) * float64(r.barWidth)))
	if fill > r.barWidth {
		fill = r.barWidth
	}
	marks := strings.Repeat("#", fill)
	if s < 0 {
		return fmt.Sprintf("[%*s|%*s]", r.barWidth, marks, r.barWidth, "")
	}
	return fmt.Sprintf("[%*s|%-*s]", r.barWidth, "", r.barWidth, marks)
}

func topWords(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}

func joinWithHits(words []string, hits map[string]int) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, fmt.Sprintf("%s(%d)", w, hits[w]))
	}
	return strings.Join(parts, " ")
}

// formatTopHits orders a hit map by descending count, ties by word, and
// formats the top n entries.
func formatTopHits(hits map[string]int, n int) string {
	if len(hits) == 0 {
		return "(none)"
	}
	words := make([]string, 0, len(hits))
	for w := range hits {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if hits[words[i]] != hits[words[j]] {
			return hits[words[i]] > hits[words[j]]
		}
		return words[i] < words[j]
	})
	return joinWithHits(topWords(words, n), hits)
}
