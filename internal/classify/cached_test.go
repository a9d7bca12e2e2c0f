package classify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stakahama/negaposi/internal/cache"
)

type countingClassifier struct {
	calls   int
	verdict Verdict
	err     error
}

func (c *countingClassifier) Name() string                       { return "counting" }
func (c *countingClassifier) IsAvailable(_ context.Context) bool { return true }

func (c *countingClassifier) Classify(_ context.Context, _ string) (Verdict, error) {
	c.calls++
	if c.err != nil {
		return Verdict{}, c.err
	}
	return c.verdict, nil
}

func TestCachedClassifier_SecondCallHitsCache(t *testing.T) {
	inner := &countingClassifier{verdict: Verdict{Label: LabelPositive, Confidence: 0.8}}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	classifier := WithCache(inner, store, "test-model", time.Minute)

	for i := 0; i < 2; i++ {
		v, err := classifier.Classify(context.Background(), "賛成です")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if v != inner.verdict {
			t.Errorf("Expected %+v, got %+v", inner.verdict, v)
		}
	}

	if inner.calls != 1 {
		t.Errorf("Expected exactly 1 inference call, got %d", inner.calls)
	}
}

func TestCachedClassifier_DistinctSentencesMiss(t *testing.T) {
	inner := &countingClassifier{verdict: Verdict{Label: LabelNegative, Confidence: 0.5}}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	classifier := WithCache(inner, store, "test-model", time.Minute)

	if _, err := classifier.Classify(context.Background(), "賛成です"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := classifier.Classify(context.Background(), "反対です"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if inner.calls != 2 {
		t.Errorf("Expected 2 inference calls, got %d", inner.calls)
	}
}

func TestCachedClassifier_FailuresNotCached(t *testing.T) {
	inner := &countingClassifier{err: fmt.Errorf("backend down")}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	classifier := WithCache(inner, store, "test-model", time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := classifier.Classify(context.Background(), "賛成です"); err == nil {
			t.Fatal("Expected error")
		}
	}

	if inner.calls != 2 {
		t.Errorf("Expected failures to bypass the cache, got %d calls", inner.calls)
	}
}

func TestCachedClassifier_CorruptEntryReinferred(t *testing.T) {
	inner := &countingClassifier{verdict: Verdict{Label: LabelPositive, Confidence: 0.9}}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	classifier := WithCache(inner, store, "test-model", time.Minute)

	key := cache.Key("counting", "test-model", "賛成です")
	if err := store.Set(key, []byte("not json"), time.Minute); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}

	v, err := classifier.Classify(context.Background(), "賛成です")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v != inner.verdict {
		t.Errorf("Expected %+v, got %+v", inner.verdict, v)
	}
	if inner.calls != 1 {
		t.Errorf("Expected corrupt entry to trigger re-inference, got %d calls", inner.calls)
	}
}
