// Package series extracts series volume markers from book titles,
// e.g. "Der Hypnotiseur (Band 1)" -> ("Der Hypnotiseur", 1).
package series

import (
	"regexp"
	"strconv"
	"strings"
)

// volumePatterns match the parenthesized volume markers seen in the
// source data. Parentheticals that match none of these ("Director's
// Cut", a date) are not series markers and stay in the title.
var volumePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(Band\s+(\d+)\)`),
	regexp.MustCompile(`(?i)\((\d+)\.\s*Fall\)`),
	regexp.MustCompile(`(?i)\(Fall\s+(\d+)\)`),
}

// Extract splits a raw title into a clean title and an optional series
// volume. Titles without a volume marker are returned trimmed with a
// nil volume.
func Extract(title string) (clean string, volume *int) {
	for _, re := range volumePatterns {
		if m := re.FindStringSubmatch(title); m != nil {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			clean = strings.TrimSpace(re.ReplaceAllString(title, ""))
			return clean, &v
		}
	}
	return strings.TrimSpace(title), nil
}
