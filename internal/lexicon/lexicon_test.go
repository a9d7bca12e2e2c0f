package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLexicon(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pn_ja.dic.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeLexicon(t, ""+
		"良い:よい:形容詞:p\n"+
		"悪い:わるい:形容詞:n\n"+
		"机:つくえ:名詞:o\n"+ // neither p nor n: ignored
		"short:line\n"+ // too few fields: ignored
		"\n")

	lex, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if lex.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", lex.Len())
	}

	if p, ok := lex.Polarity("良い"); !ok || p != Positive {
		t.Errorf("Expected 良い to be positive, got (%v, %v)", p, ok)
	}
	if p, ok := lex.Polarity("悪い"); !ok || p != Negative {
		t.Errorf("Expected 悪い to be negative, got (%v, %v)", p, ok)
	}
	if _, ok := lex.Polarity("机"); ok {
		t.Error("Expected neutral entry to be absent")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("Expected error for missing lexicon, got nil")
	}
}
