package kokkai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsGate checks robots.txt for the endpoint host before a bulk
// fetch begins. An unreachable or missing robots.txt allows the fetch;
// an explicit disallow blocks it.
type RobotsGate struct {
	httpClient *http.Client
	userAgent  string

	mu   sync.Mutex
	data map[string]*robotstxt.RobotsData
}

// NewRobotsGate creates a robots.txt gate
func NewRobotsGate(userAgent string, timeout time.Duration) *RobotsGate {
	return &RobotsGate{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		data:       make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether rawURL may be fetched, and any crawl delay
// robots.txt requests for this agent.
func (g *RobotsGate) Allowed(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}

	data, err := g.robotsData(ctx, parsed.Scheme, parsed.Host)
	if err != nil {
		// Endpoint policy is advisory: unreachable robots.txt allows
		return true, 0, nil
	}

	allowed := data.TestAgent(parsed.Path, g.userAgent)

	var crawlDelay time.Duration
	if group := data.FindGroup(g.userAgent); group != nil {
		crawlDelay = group.CrawlDelay
	}

	return allowed, crawlDelay, nil
}

// robotsData fetches and caches robots.txt per host
func (g *RobotsGate) robotsData(ctx context.Context, scheme, host string) (*robotstxt.RobotsData, error) {
	g.mu.Lock()
	data, ok := g.data[host]
	g.mu.Unlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	g.mu.Lock()
	g.data[host] = data
	g.mu.Unlock()

	return data, nil
}
