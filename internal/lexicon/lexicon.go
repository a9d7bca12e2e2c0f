// Package lexicon loads the Japanese polarity dictionary (pn_ja.dic
// format) used by the discrete scoring strategy.
package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Polarity is the sign a lexicon entry contributes to a score
type Polarity int

const (
	Positive Polarity = 1
	Negative Polarity = -1
)

// Lexicon maps word surface forms to their polarity
type Lexicon struct {
	entries map[string]Polarity
}

// New builds a lexicon from an entry map
func New(entries map[string]Polarity) *Lexicon {
	return &Lexicon{entries: entries}
}

// Load reads a colon-delimited polarity dictionary. The 4th field is a
// single-character polarity flag (p or n); lines with fewer fields or
// any other flag are ignored. A missing file is a fatal condition for
// the caller.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries := make(map[string]Polarity)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		parts := strings.Split(strings.TrimSpace(sc.Text()), ":")
		if len(parts) < 4 {
			continue
		}
		switch parts[3] {
		case "p":
			entries[parts[0]] = Positive
		case "n":
			entries[parts[0]] = Negative
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	return New(entries), nil
}

// Polarity looks up the polarity of a surface form
func (l *Lexicon) Polarity(word string) (Polarity, bool) {
	p, ok := l.entries[word]
	return p, ok
}

// Len returns the number of registered entries
func (l *Lexicon) Len() int {
	return len(l.entries)
}
