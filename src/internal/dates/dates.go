// Package dates parses the informal reading-date strings found in the
// source book lists. Dates appear in several shapes ("2015-11-06",
// "Januar 2025", "Jan. 2014", "April 06") and in two languages, so
// parsing is best-effort: anything unrecognized yields nil values.
package dates

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// monthNames maps month names and abbreviations to month numbers.
// German first (the source data's language), then English display
// names. Ordered so matching is deterministic.
var monthNames = []struct {
	name  string
	month int
}{
	{"januar", 1}, {"january", 1}, {"jan", 1},
	{"februar", 2}, {"february", 2}, {"feb", 2},
	{"märz", 3}, {"mär", 3}, {"march", 3}, {"mar", 3},
	{"april", 4}, {"apr", 4},
	{"mai", 5}, {"may", 5},
	{"juni", 6}, {"june", 6}, {"jun", 6},
	{"juli", 7}, {"july", 7}, {"jul", 7},
	{"august", 8}, {"aug", 8},
	{"september", 9}, {"sept", 9}, {"sep", 9},
	{"oktober", 10}, {"october", 10}, {"okt", 10}, {"oct", 10},
	{"november", 11}, {"nov", 11},
	{"dezember", 12}, {"december", 12}, {"dez", 12}, {"dec", 12},
}

var (
	isoRe  = regexp.MustCompile(`^(\d{4})-(\d{2})(?:-\d{2})?\b`)
	yearRe = regexp.MustCompile(`\b(20\d{2}|\d{2})\b`)

	lowerGerman = cases.Lower(language.German)
)

// twoDigitPivot expands a two-digit year: values below the pivot are
// 2000s, the rest 1900s. The source data has no true day/month
// disambiguation, so a bare two-digit number after a month name is
// always read as a year.
const twoDigitPivot = 50

// ParseYearMonth extracts a (year, month) pair from a free-text date.
// Either value may be nil; unrecognized input yields (nil, nil).
func ParseYearMonth(s string) (year, month *int) {
	s = strings.TrimRight(strings.TrimSpace(s), ".")
	if s == "" {
		return nil, nil
	}
	lower := lowerGerman.String(s)

	if m := isoRe.FindStringSubmatch(lower); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if mo >= 1 && mo <= 12 {
			return &y, &mo
		}
		return &y, nil
	}

	if m := yearRe.FindStringSubmatch(lower); m != nil {
		y, _ := strconv.Atoi(m[1])
		if y < 100 {
			if y < twoDigitPivot {
				y += 2000
			} else {
				y += 1900
			}
		}
		year = &y
	}

	for _, mn := range monthNames {
		if strings.Contains(lower, mn.name) {
			mo := mn.month
			month = &mo
			break
		}
	}
	return year, month
}
