package cache

import (
	"testing"
	"time"
)

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("openai", "gpt-4o-mini", "賛成です")
	b := Key("openai", "gpt-4o-mini", "賛成です")
	if a != b {
		t.Error("Expected identical parts to produce identical keys")
	}

	c := Key("ollama", "gpt-4o-mini", "賛成です")
	if a == c {
		t.Error("Expected provider change to change the key")
	}

	// The separator must keep part boundaries unambiguous
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("Expected shifted boundaries to produce distinct keys")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v, found := c.Get("k"); !found || string(v) != "v" {
		t.Errorf("Expected hit with v, got (%q, %v)", v, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	key := Key("test", "disk")
	if err := c.Set(key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if v, found := c.Get(key); !found || string(v) != "payload" {
		t.Errorf("Expected hit with payload, got (%q, %v)", v, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	key := Key("test", "expired")
	if err := c.Set(key, []byte("payload"), time.Millisecond); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get(key); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer through a separate handle so the layered
	// cache's memory layer starts cold.
	seed := NewDiskCache(dir, time.Minute)
	key := Key("test", "layered")
	if err := seed.Set(key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c := NewLayeredCache(time.Minute, dir, time.Minute)
	if v, found := c.Get(key); !found || string(v) != "payload" {
		t.Fatalf("Expected disk hit, got (%q, %v)", v, found)
	}

	// Remove the disk copy; a promoted entry still serves from memory
	if err := seed.Delete(key); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get(key); !found {
		t.Error("Expected promoted entry to hit from memory")
	}
}
