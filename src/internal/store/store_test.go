package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookshelf/src/internal/schema"
)

func intp(v int) *int { return &v }

func TestSortOrdersByYearThenMonthWithUnknownLast(t *testing.T) {
	records := []schema.Record{
		{Title: "undatiert"},
		{Title: "nur Jahr", Year: intp(2011)},
		{Title: "spät", Year: intp(2015), Month: intp(11)},
		{Title: "früh", Year: intp(2011), Month: intp(3)},
	}
	Sort(records)
	got := make([]string, len(records))
	for i, r := range records {
		got[i] = r.Title
	}
	want := []string{"früh", "nur Jahr", "spät", "undatiert"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: want %v, got %v", want, got)
		}
	}
}

func TestSortIsStable(t *testing.T) {
	records := []schema.Record{
		{Title: "a", Year: intp(2011), Month: intp(3)},
		{Title: "b", Year: intp(2011), Month: intp(3)},
	}
	Sort(records)
	if records[0].Title != "a" || records[1].Title != "b" {
		t.Fatalf("same-date records reordered: %+v", records)
	}
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books_database.json")
	loc := "Sydney"
	records := []schema.Record{
		{Author: "Kepler, Lars", Title: "Der Hypnotiseur", Year: intp(2015), Month: intp(11), Location: &loc},
		{Author: "Neuhaus, Nele", Title: "Schneewittchen muss sterben"},
	}
	if err := Write(path, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s := string(raw)
	if !strings.Contains(s, `"series_volume": null`) {
		t.Fatalf("optional fields must serialize as null:\n%s", s)
	}
	if !strings.Contains(s, `"categories": []`) {
		t.Fatalf("categories must serialize as empty array:\n%s", s)
	}
	if !strings.Contains(s, "Schneewittchen") {
		t.Fatalf("non-ascii title mangled:\n%s", s)
	}

	back, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(back) != 2 || back[0].Title != "Der Hypnotiseur" {
		t.Fatalf("round trip: %+v", back)
	}
	if back[0].Location == nil || *back[0].Location != "Sydney" {
		t.Fatalf("location lost: %+v", back[0])
	}
}

func TestWriteFailsOnUnwritablePath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "db.json"), nil)
	if err == nil {
		t.Fatal("expected write error for missing directory")
	}
	if !strings.Contains(err.Error(), "store: write") {
		t.Fatalf("error not wrapped: %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing database")
	}
}
