package score

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/stakahama/negaposi/internal/lexicon"
)

// spaceTokenizer stands in for the morphological analyzer so polarity
// arithmetic can be tested with hand-picked token streams.
type spaceTokenizer struct{}

func (spaceTokenizer) Surfaces(text string) []string {
	return strings.Fields(text)
}

func TestLexiconScorer_ScoreGroup(t *testing.T) {
	lex := lexicon.New(map[string]lexicon.Polarity{
		"良い": lexicon.Positive,
		"悪い": lexicon.Negative,
	})
	scorer := NewLexiconScorer(lex, spaceTokenizer{})

	result, err := scorer.ScoreGroup(context.Background(), "与党", []string{"良い 悪い 良い です"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result == nil {
		t.Fatal("Expected a score, got nil")
	}

	if result.Score != 1 {
		t.Errorf("Expected score +1, got %v", result.Score)
	}
	if !reflect.DeepEqual(result.Positive, []string{"良い"}) {
		t.Errorf("Expected positive words [良い], got %v", result.Positive)
	}
	if !reflect.DeepEqual(result.Negative, []string{"悪い"}) {
		t.Errorf("Expected negative words [悪い], got %v", result.Negative)
	}
	if result.PositiveHits["良い"] != 2 || result.NegativeHits["悪い"] != 1 {
		t.Errorf("Expected hit counts 良い=2 悪い=1, got %v / %v", result.PositiveHits, result.NegativeHits)
	}
}

func TestLexiconScorer_WordsOrderedByFrequency(t *testing.T) {
	lex := lexicon.New(map[string]lexicon.Polarity{
		"賛成": lexicon.Positive,
		"評価": lexicon.Positive,
		"期待": lexicon.Positive,
	})
	scorer := NewLexiconScorer(lex, spaceTokenizer{})

	result, err := scorer.ScoreGroup(context.Background(), "与党", []string{
		"賛成 評価 評価 評価 期待 期待",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"評価", "期待", "賛成"}
	if !reflect.DeepEqual(result.Positive, want) {
		t.Errorf("Expected frequency order %v, got %v", want, result.Positive)
	}
}

func TestLexiconScorer_SpeechesJoined(t *testing.T) {
	lex := lexicon.New(map[string]lexicon.Polarity{"良い": lexicon.Positive})
	scorer := NewLexiconScorer(lex, spaceTokenizer{})

	result, err := scorer.ScoreGroup(context.Background(), "野党", []string{"良い", "良い"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Score != 2 {
		t.Errorf("Expected hits from every speech, got score %v", result.Score)
	}
	if result.Speeches != 2 {
		t.Errorf("Expected 2 speeches, got %d", result.Speeches)
	}
}

func TestLexiconScorer_NoHitsYieldsNil(t *testing.T) {
	lex := lexicon.New(map[string]lexicon.Polarity{"良い": lexicon.Positive})
	scorer := NewLexiconScorer(lex, spaceTokenizer{})

	result, err := scorer.ScoreGroup(context.Background(), "無所属", []string{"本日 は 晴天 です"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil for a signal-less group, got %+v", result)
	}
}

func TestLexiconScorer_Mode(t *testing.T) {
	scorer := NewLexiconScorer(lexicon.New(nil), spaceTokenizer{})
	if scorer.Mode() != ModeLexicon {
		t.Errorf("Expected mode %q, got %q", ModeLexicon, scorer.Mode())
	}
}
