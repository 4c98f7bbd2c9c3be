// Package store persists the normalized book database as a single
// JSON array, sorted by reading date.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"bookshelf/src/internal/schema"
)

// DefaultPath is the database file consumed by the display page.
const DefaultPath = "books_database.json"

// Sort orders records by reading date: year ascending, then month
// ascending, with unknown values after all known ones. The sort is
// stable so same-date records keep their input order.
func Sort(records []schema.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.SortYear() != b.SortYear() {
			return a.SortYear() < b.SortYear()
		}
		return a.SortMonth() < b.SortMonth()
	})
}

// Write sorts the records and writes them to path as an indented JSON
// array with explicit nulls for absent fields. A failure to persist is
// fatal to the batch and is returned wrapped.
func Write(path string, records []schema.Record) error {
	Sort(records)
	// keep the serialized schema uniform
	for i := range records {
		if records[i].Categories == nil {
			records[i].Categories = []string{}
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("store: encode database: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	return nil
}

// Read loads an existing database file.
func Read(path string) ([]schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	var records []schema.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", path, err)
	}
	return records, nil
}
