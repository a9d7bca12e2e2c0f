package kokkai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/stakahama/negaposi/internal/model"
)

// maxFetchAttempts bounds retries per request. Exhaustion is still
// fatal for the run; no partial result is ever used.
const maxFetchAttempts = 3

// fetchSleepFunc is swappable for fast retry tests
var fetchSleepFunc = time.Sleep

// Client fetches speech records from the proceedings search endpoint
// in fixed-size pages. A token-bucket limiter spaces consecutive
// requests: the token is taken before each request, so a run of N
// pages pauses N-1 times and ends immediately after the last response.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	pageSize   int
	limiter    *rate.Limiter

	// pace waits for request clearance; swappable in tests
	pace func(ctx context.Context) error
}

// NewClient creates a client from the HTTP and fetch configuration
func NewClient(httpCfg model.HTTPConfig, fetchCfg model.FetchConfig) *Client {
	pageSize := fetchCfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	var limiter *rate.Limiter
	if fetchCfg.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(fetchCfg.Interval), 1)
	} else {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		baseURL:   fetchCfg.BaseURL,
		userAgent: httpCfg.UserAgent,
		pageSize:  pageSize,
		limiter:   limiter,
	}
	c.pace = func(ctx context.Context) error {
		return c.limiter.Wait(ctx)
	}
	return c
}

// ApplyCrawlDelay lowers the request rate when robots.txt asks for a
// spacing longer than the configured interval. A shorter delay never
// speeds the client up.
func (c *Client) ApplyCrawlDelay(d time.Duration) {
	if d <= 0 {
		return
	}
	if limit := rate.Every(d); limit < c.limiter.Limit() {
		c.limiter.SetLimit(limit)
	}
}

// searchResponse is the JSON shape of the speech search endpoint
type searchResponse struct {
	NumberOfRecords int            `json:"numberOfRecords"`
	SpeechRecords   []speechRecord `json:"speechRecord"`
}

type speechRecord struct {
	Speech       string `json:"speech"`
	SpeakerGroup string `json:"speakerGroup"`
}

// PageSize returns the configured page size
func (c *Client) PageSize() int {
	return c.pageSize
}

// Pages returns the number of page requests needed to cover total records
func (c *Client) Pages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + c.pageSize - 1) / c.pageSize
}

// Count probes the endpoint for the total number of matching records
// without fetching any of them (page size 1)
func (c *Client) Count(ctx context.Context, q model.SearchQuery) (int, error) {
	params := c.params(q)
	params.Set("maximumRecords", "1")

	resp, err := c.getWithRetry(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("count probe: %w", err)
	}
	return resp.NumberOfRecords, nil
}

// FetchAll retrieves total records page by page and folds them into a
// corpus grouped by speaker affiliation. progress, if non-nil, is
// called after each completed page. Any failure aborts the whole fetch.
func (c *Client) FetchAll(ctx context.Context, q model.SearchQuery, total int, progress func(page, pages int)) (*model.Corpus, error) {
	pages := c.Pages(total)
	corpus := model.NewCorpus()

	for i := 0; i < pages; i++ {
		offset := 1 + i*c.pageSize

		params := c.params(q)
		params.Set("maximumRecords", strconv.Itoa(c.pageSize))
		params.Set("startRecord", strconv.Itoa(offset))

		resp, err := c.getWithRetry(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("page %d/%d: %w", i+1, pages, err)
		}

		for _, rec := range resp.SpeechRecords {
			corpus.Add(model.SpeechRecord{
				Speech:       rec.Speech,
				SpeakerGroup: rec.SpeakerGroup,
			})
		}

		if progress != nil {
			progress(i+1, pages)
		}
	}

	return corpus, nil
}

// params builds the common query parameters for a search
func (c *Client) params(q model.SearchQuery) url.Values {
	params := url.Values{}
	params.Set("any", q.Keyword)
	if q.Speaker != "" {
		params.Set("speaker", q.Speaker)
	}
	params.Set("from", q.From)
	params.Set("until", q.Until)
	params.Set("recordPacking", "json")
	return params
}

// getWithRetry issues a request with bounded retry on transient
// failures. Non-retryable failures (4xx other than 429, malformed
// responses) fail immediately.
func (c *Client) getWithRetry(ctx context.Context, params url.Values) (*searchResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		resp, err := c.get(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) || attempt == maxFetchAttempts {
			return nil, lastErr
		}
		fetchSleepFunc(time.Duration(attempt) * time.Second)
	}
	return nil, lastErr
}

// get performs a single paced request against the endpoint
func (c *Client) get(ctx context.Context, params url.Values) (*searchResponse, error) {
	if err := c.pace(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// isRetryableFetchError reports whether a request failure is worth
// retrying: server-side statuses, rate limiting, and transport errors.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	if strings.Contains(msg, "unexpected status:") {
		for _, code := range []string{" 500 ", " 502 ", " 503 ", " 504 ", " 429 "} {
			if strings.Contains(msg+" ", code) {
				return true
			}
		}
		return false
	}

	return strings.HasPrefix(msg, "request: ")
}
