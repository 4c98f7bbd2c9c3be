// Package notes classifies the free-text annotations attached to book
// entries. An annotation is either a reading location ("Sydney") or a
// free-form note ("3. Fall 😐"); the two never mix, and notes pass
// through byte-for-byte.
package notes

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	seriesWordRe = regexp.MustCompile(`(?i)\b(Fall|Band)\b`)
	plainWordsRe = regexp.MustCompile(`^[A-Za-zäöüÄÖÜß\s-]{2,30}$`)
	digitDotRe   = regexp.MustCompile(`\d+\.`)

	lowerGerman = cases.Lower(language.German)
)

// notePhrases occur only in free-form notes in the source data, never
// in location annotations.
var notePhrases = []string{"zum ", "Esther"}

// Classifier decides whether an annotation names a known reading
// location. The allow-list comes from configuration so it can be
// extended alongside the data.
type Classifier struct {
	// canonical spelling keyed by folded name
	locations map[string]string
}

// NewClassifier builds a classifier over the given location allow-list.
func NewClassifier(locations []string) *Classifier {
	m := make(map[string]string, len(locations))
	for _, loc := range locations {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			continue
		}
		m[lowerGerman.String(loc)] = loc
	}
	return &Classifier{locations: m}
}

// Classify splits an annotation into an optional location and an
// optional residual note. Exactly one of the results is set for
// non-empty input; empty input yields (nil, nil). Known locations are
// returned in their allow-list spelling; everything else is returned
// unchanged as a note.
func (c *Classifier) Classify(raw string) (location, note *string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	// Series references are never locations, even when short.
	if seriesWordRe.MatchString(s) {
		return nil, &s
	}

	if canonical, ok := c.locations[lowerGerman.String(s)]; ok {
		return &canonical, nil
	}

	if hasEmoji(s) || digitDotRe.MatchString(s) || hasNotePhrase(s) {
		return nil, &s
	}

	// Short plain-letter annotations are most likely places we have not
	// listed yet.
	if plainWordsRe.MatchString(s) && len(strings.Fields(s)) <= 4 {
		return &s, nil
	}

	return nil, &s
}

func hasEmoji(s string) bool {
	for _, r := range s {
		if r >= 0x1F300 {
			return true
		}
	}
	return false
}

func hasNotePhrase(s string) bool {
	for _, p := range notePhrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
