// Package bookfile reads the source book lists. Two formats exist:
// preparsed JSON arrays of raw entries, and the older free-text lists
// with one "Author: Title (date) notes" line per book.
package bookfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"bookshelf/src/internal/dates"
	"bookshelf/src/internal/schema"
	"bookshelf/src/internal/series"
)

// ErrNoInputs is returned when none of the configured input files exist.
var ErrNoInputs = errors.New("bookfile: no input files found")

// LoadAll reads every existing input file, skipping missing ones with
// a warning on stderr. It fails only when no input exists at all.
func LoadAll(paths []string) ([]schema.RawEntry, error) {
	var all []schema.RawEntry
	found := 0
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", p, err)
			continue
		}
		found++
		entries, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("bookfile: %s: %w", p, err)
		}
		all = append(all, entries...)
	}
	if found == 0 {
		return nil, ErrNoInputs
	}
	return all, nil
}

// parse picks the format by content: JSON arrays are preparsed files,
// everything else is the line format.
func parse(data []byte) ([]schema.RawEntry, error) {
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("[")) {
		var entries []schema.RawEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	}
	return parseLines(data)
}

func parseLines(data []byte) ([]schema.RawEntry, error) {
	var entries []schema.RawEntry
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if e, ok := ParseLine(sc.Text()); ok {
			entries = append(entries, e)
		}
	}
	return entries, sc.Err()
}

var lineNumberRe = regexp.MustCompile(`^\s*\d+→`)

// skipRes match prose lines (book descriptions, quotes) interleaved
// with the actual entries in the raw lists.
var skipRes = []*regexp.Regexp{
	regexp.MustCompile(`^>>`),
	regexp.MustCompile(`^\s*Als\s+`),
	regexp.MustCompile(`^\s*Ein\s+`),
	regexp.MustCompile(`^\s*In\s+`),
	regexp.MustCompile(`^\s*Sie\s+`),
	regexp.MustCompile(`^\s*Er\s+`),
	regexp.MustCompile(`^\s*Die\s+[A-Z][a-z]+\s+`),
	regexp.MustCompile(`^\s*Vom\s+`),
	regexp.MustCompile(`^\s*Mit\s+`),
	regexp.MustCompile(`^\s*Für\s+`),
	regexp.MustCompile(`^\s*Auf\s+`),
	regexp.MustCompile(`^\s*Seit\s+`),
	regexp.MustCompile(`^\s*Nach\s+`),
	regexp.MustCompile(`^\s*Während\s+`),
	regexp.MustCompile(`^\s*[A-Z][a-z]+,?\s+im\s+`),
}

// trailingNoteRes match the informal remarks tacked onto the end of a
// line ("TOP!", emoji, "-Heidi-").
var trailingNoteRes = []*regexp.Regexp{
	regexp.MustCompile(`\s+😐.*$`),
	regexp.MustCompile(`(?i)\s+TOP!.*$`),
	regexp.MustCompile(`(?i)\s+super!.*$`),
	regexp.MustCompile(`(?i)\s+nee!.*$`),
	regexp.MustCompile(`(?i)\s+zum heulen.*$`),
	regexp.MustCompile(`\s+-[^-]+-.*$`),
	regexp.MustCompile(`(?i)\s+selbst.*$`),
}

var (
	authorLocRe     = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)$`)
	parentheticalRe = regexp.MustCompile(`\(([^)]+)\)`)
)

const minLineLen = 15

// ParseLine parses one raw book line into a raw entry. The second
// return value is false for lines that are not book entries (prose,
// quotes, blanks).
func ParseLine(line string) (schema.RawEntry, bool) {
	line = strings.TrimSpace(lineNumberRe.ReplaceAllString(line, ""))
	if line == "" || len(line) < minLineLen {
		return schema.RawEntry{}, false
	}
	for _, re := range skipRes {
		if re.MatchString(line) {
			return schema.RawEntry{}, false
		}
	}
	author, rest, ok := strings.Cut(line, ":")
	if !ok {
		return schema.RawEntry{}, false
	}
	author = strings.TrimSpace(author)
	rest = strings.TrimSpace(rest)

	var entry schema.RawEntry

	// "Kepler, Lars (Bergisch Gladbach)" carries the reading location
	// on the author; it flows through the notes field so the classifier
	// sees it.
	if m := authorLocRe.FindStringSubmatch(author); m != nil {
		author = strings.TrimSpace(m[1])
		entry.Notes = strings.TrimSpace(m[2])
	}
	entry.Author = author

	// The date hides in one of the parentheticals; that one is removed
	// from the title, all others stay put. Volume markers like
	// "(Band 12)" would read as two-digit years, so they are excluded.
	title := rest
	for _, m := range parentheticalRe.FindAllStringSubmatch(rest, -1) {
		if _, vol := series.Extract(m[0]); vol != nil {
			continue
		}
		if y, mo := dates.ParseYearMonth(m[1]); y != nil || mo != nil {
			entry.DateRead = strings.TrimSpace(m[1])
			title = strings.TrimSpace(strings.Replace(title, m[0], "", 1))
			break
		}
	}

	for _, re := range trailingNoteRes {
		if m := re.FindString(title); m != "" {
			entry.Notes = strings.TrimSpace(m)
			title = strings.TrimSpace(re.ReplaceAllString(title, ""))
			break
		}
	}
	entry.Title = title

	// Some lines carry the date in the trailing remark instead of a
	// parenthetical.
	if entry.DateRead == "" && entry.Notes != "" {
		if y, mo := dates.ParseYearMonth(entry.Notes); y != nil || mo != nil {
			entry.DateRead = entry.Notes
		}
	}

	if len(entry.Title) < 2 {
		return schema.RawEntry{}, false
	}
	return entry, true
}
