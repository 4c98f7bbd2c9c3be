// Package normalize turns raw book entries into canonical records.
package normalize

import (
	"strings"

	"bookshelf/src/internal/dates"
	"bookshelf/src/internal/notes"
	"bookshelf/src/internal/schema"
	"bookshelf/src/internal/series"
)

// Normalizer converts raw entries into canonical records. It is pure:
// no I/O, deterministic, and never fails — unparseable fields stay nil.
type Normalizer struct {
	classifier *notes.Classifier
}

// New returns a Normalizer using the given location allow-list for
// note classification.
func New(locations []string) *Normalizer {
	return &Normalizer{classifier: notes.NewClassifier(locations)}
}

// Record normalizes one raw entry.
func (n *Normalizer) Record(raw schema.RawEntry) schema.Record {
	rec := schema.Record{
		Author:     strings.TrimSpace(raw.Author),
		Categories: []string{},
	}

	rec.Title, rec.SeriesVolume = series.Extract(raw.Title)
	rec.Year, rec.Month = dates.ParseYearMonth(raw.DateRead)
	rec.Location, rec.Notes = n.classifier.Classify(raw.Notes)

	if d := strings.TrimSpace(raw.Description); d != "" {
		rec.Description = &d
	}
	return rec
}

// All normalizes a batch of raw entries in input order.
func (n *Normalizer) All(raws []schema.RawEntry) []schema.Record {
	out := make([]schema.Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Record(raw))
	}
	return out
}
