package classify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stakahama/negaposi/internal/cache"
)

// CachedClassifier wraps a classifier with a verdict cache. Short
// formulaic sentences recur constantly in parliamentary speech, and
// inference is the dominant cost of a model-mode run.
type CachedClassifier struct {
	inner Classifier
	store cache.Cache
	model string
	ttl   time.Duration
}

// WithCache wraps inner with a verdict cache
func WithCache(inner Classifier, store cache.Cache, model string, ttl time.Duration) *CachedClassifier {
	return &CachedClassifier{
		inner: inner,
		store: store,
		model: model,
		ttl:   ttl,
	}
}

// Name returns the wrapped provider name
func (c *CachedClassifier) Name() string {
	return c.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (c *CachedClassifier) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

// Classify serves cached verdicts when possible. Failures are never
// cached; only successful verdicts are stored.
func (c *CachedClassifier) Classify(ctx context.Context, sentence string) (Verdict, error) {
	key := cache.Key(c.inner.Name(), c.model, sentence)

	if data, found := c.store.Get(key); found {
		var v Verdict
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		// Corrupt entry: fall through to inference
		_ = c.store.Delete(key)
	}

	v, err := c.inner.Classify(ctx, sentence)
	if err != nil {
		return Verdict{}, err
	}

	if data, err := json.Marshal(v); err == nil {
		_ = c.store.Set(key, data, c.ttl)
	}

	return v, nil
}
