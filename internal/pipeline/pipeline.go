// Package pipeline orchestrates one analysis run: normalize the query,
// probe and fetch the corpus, score each affiliation group, and render
// the ranked report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/stakahama/negaposi/internal/kokkai"
	"github.com/stakahama/negaposi/internal/model"
	"github.com/stakahama/negaposi/internal/report"
	"github.com/stakahama/negaposi/internal/score"
)

// Pipeline wires the fetch, score, and report stages together.
// Optional fields degrade gracefully: a nil Robots skips the robots.txt
// gate, a nil Confirm auto-confirms, nil writers default to the
// standard streams.
type Pipeline struct {
	Config   *model.Config
	Client   *kokkai.Client
	Robots   *kokkai.RobotsGate
	Scorer   score.Scorer
	Reporter *report.Reporter

	// Confirm is consulted with the matched record count before any bulk
	// fetch. Returning false cancels the run without error.
	Confirm func(total int) bool

	// Now is swappable for deterministic date defaults in tests
	Now func() time.Time

	Out io.Writer
	Err io.Writer
}

// Run executes the full pipeline for one search query. Transport and
// scoring failures are fatal; empty results at any stage end the run
// gracefully with an explanatory message.
func (p *Pipeline) Run(ctx context.Context, q model.SearchQuery) error {
	out, errw := p.writers()

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	q, notices, err := q.Normalize(now())
	if err != nil {
		return err
	}
	for _, n := range notices {
		fmt.Fprintf(errw, "Notice: %s\n", n)
	}

	if p.Robots != nil {
		allowed, crawlDelay, err := p.Robots.Allowed(ctx, p.Config.Fetch.BaseURL)
		if err != nil {
			return fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return fmt.Errorf("robots.txt disallows fetching %s", p.Config.Fetch.BaseURL)
		}
		if crawlDelay > p.Config.Fetch.Interval {
			fmt.Fprintf(errw, "Notice: honoring robots.txt crawl delay of %s\n", crawlDelay)
			p.Client.ApplyCrawlDelay(crawlDelay)
		}
	}

	total, err := p.Client.Count(ctx, q)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(out, "No speeches matched %q between %s and %s.\n", q.Keyword, q.From, q.Until)
		return nil
	}

	fmt.Fprintf(errw, "Found %d speeches for %q (%s to %s)\n", total, q.Keyword, q.From, q.Until)

	if p.Confirm != nil && !p.Confirm(total) {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	if limit := p.recordCap(); total > limit {
		fmt.Fprintf(errw, "Notice: limiting run to the first %d of %d records\n", limit, total)
		total = limit
	}

	corpus, err := p.Client.FetchAll(ctx, q, total, func(page, pages int) {
		fmt.Fprintf(errw, "Fetched page %d/%d\n", page, pages)
	})
	if err != nil {
		return fmt.Errorf("fetch speeches: %w", err)
	}

	if !corpus.HasText() {
		fmt.Fprintln(out, "Matched speeches contain no analyzable text.")
		return nil
	}

	var results []*score.GroupScore
	for _, affiliation := range corpus.Affiliations() {
		gs, err := p.Scorer.ScoreGroup(ctx, affiliation, corpus.Speeches(affiliation))
		if err != nil {
			return fmt.Errorf("score %s: %w", affiliation, err)
		}
		if gs != nil {
			results = append(results, gs)
		}
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No affiliation group carried scorable sentiment.")
		return nil
	}

	report.Rank(results)
	p.Reporter.Render(out, p.Scorer.Mode(), results)
	return nil
}

// recordCap returns the per-run record bound for the active scoring mode
func (p *Pipeline) recordCap() int {
	if p.Scorer.Mode() == score.ModeModel {
		return p.Config.Fetch.ModelCap
	}
	return p.Config.Fetch.LexiconCap
}

func (p *Pipeline) writers() (io.Writer, io.Writer) {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errw := p.Err
	if errw == nil {
		errw = os.Stderr
	}
	return out, errw
}
