package model

import "strings"

// DefaultAffiliation is the bucket for speakers whose party affiliation
// the source omits. The label matches what the proceedings API leaves
// blank for unaffiliated speakers.
const DefaultAffiliation = "所属なし"

// SpeechRecord is one speech as returned by the search endpoint
type SpeechRecord struct {
	Speech       string
	SpeakerGroup string
}

// Corpus groups fetched speeches by affiliation, preserving the order
// in which affiliations were first encountered. Affiliation spellings
// are not normalized: distinct spellings are distinct groups.
type Corpus struct {
	keys     []string
	speeches map[string][]string
}

// NewCorpus creates an empty corpus
func NewCorpus() *Corpus {
	return &Corpus{
		speeches: make(map[string][]string),
	}
}

// Add folds one record into the corpus. A missing affiliation maps to
// DefaultAffiliation.
func (c *Corpus) Add(rec SpeechRecord) {
	key := rec.SpeakerGroup
	if key == "" {
		key = DefaultAffiliation
	}

	if _, ok := c.speeches[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.speeches[key] = append(c.speeches[key], rec.Speech)
}

// Affiliations returns the group keys in first-encountered order
func (c *Corpus) Affiliations() []string {
	return c.keys
}

// Speeches returns the speech texts accumulated for an affiliation
func (c *Corpus) Speeches(affiliation string) []string {
	return c.speeches[affiliation]
}

// Groups returns the number of affiliation groups
func (c *Corpus) Groups() int {
	return len(c.keys)
}

// HasText reports whether any group holds non-whitespace speech text.
// A corpus of only empty speeches is treated as an empty result.
func (c *Corpus) HasText() bool {
	for _, texts := range c.speeches {
		for _, t := range texts {
			if strings.TrimSpace(t) != "" {
				return true
			}
		}
	}
	return false
}
