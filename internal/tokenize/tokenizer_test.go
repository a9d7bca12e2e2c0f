package tokenize

import "testing"

func TestKagomeTokenizer_Surfaces(t *testing.T) {
	tok, err := NewKagomeTokenizer()
	if err != nil {
		t.Fatalf("Expected tokenizer to initialize, got %v", err)
	}

	surfaces := tok.Surfaces("良い結果です")
	if len(surfaces) == 0 {
		t.Fatal("Expected tokens, got none")
	}

	found := false
	for _, s := range surfaces {
		if s == "良い" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected surface 良い in %v", surfaces)
	}
}

func TestKagomeTokenizer_EmptyText(t *testing.T) {
	tok, err := NewKagomeTokenizer()
	if err != nil {
		t.Fatalf("Expected tokenizer to initialize, got %v", err)
	}

	if surfaces := tok.Surfaces(""); len(surfaces) != 0 {
		t.Errorf("Expected no tokens for empty text, got %v", surfaces)
	}
}
