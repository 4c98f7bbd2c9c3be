// Package sanitize cleans values arriving from external metadata
// sources before they are merged into records.
package sanitize

import (
	"net/url"
	"strings"
)

// CleanURL returns a validated http/https URL, upgraded to https, or
// an empty string when the input is not a usable link.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "https"
	case "https":
	default:
		return ""
	}
	return u.String()
}

// CleanCategories trims category names and drops empties and
// duplicates, preserving first-seen order.
func CleanCategories(cats []string) []string {
	if len(cats) == 0 {
		return nil
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
