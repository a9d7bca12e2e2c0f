package model

import (
	"fmt"
	"regexp"
	"time"
)

// datePattern is the strict 4-2-2 form the search API accepts.
// Anything else is replaced by a computed default, not rejected.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SearchQuery describes one search against the proceedings API.
// From/Until ordering is the caller's responsibility; the API itself
// tolerates inverted ranges by returning zero records.
type SearchQuery struct {
	Keyword string
	Speaker string
	From    string
	Until   string
}

// Normalize validates the query and fills date defaults.
// The keyword is mandatory; a missing or malformed date is silently
// replaced (from = now-365d, until = now) and reported via a notice so
// the operator can see what was substituted.
func (q SearchQuery) Normalize(now time.Time) (SearchQuery, []string, error) {
	if q.Keyword == "" {
		return SearchQuery{}, nil, fmt.Errorf("search keyword is required")
	}

	var notices []string

	if !datePattern.MatchString(q.From) {
		def := now.AddDate(0, 0, -365).Format("2006-01-02")
		if q.From != "" {
			notices = append(notices, fmt.Sprintf("start date %q is not YYYY-MM-DD, using %s", q.From, def))
		} else {
			notices = append(notices, fmt.Sprintf("no start date given, using %s", def))
		}
		q.From = def
	}

	if !datePattern.MatchString(q.Until) {
		def := now.Format("2006-01-02")
		if q.Until != "" {
			notices = append(notices, fmt.Sprintf("end date %q is not YYYY-MM-DD, using %s", q.Until, def))
		} else {
			notices = append(notices, fmt.Sprintf("no end date given, using %s", def))
		}
		q.Until = def
	}

	return q, notices, nil
}
