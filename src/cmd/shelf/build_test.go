package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bookshelf/src/internal/googlebooks"
	"bookshelf/src/internal/schema"
)

type fakeDoer struct {
	handler func(req *http.Request) (*http.Response, error)
}

func (f fakeDoer) Do(req *http.Request) (*http.Response, error) { return f.handler(req) }

func jsonResp(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/json"}},
	}
}

func installFakeEnricher(t *testing.T, handler func(req *http.Request) (*http.Response, error)) {
	t.Helper()
	orig := newEnricher
	newEnricher = func(delay time.Duration) *googlebooks.Enricher {
		e := googlebooks.New(delay)
		e.SetHTTPClient(fakeDoer{handler: handler})
		e.SetSleep(func(time.Duration) {})
		return e
	}
	t.Cleanup(func() { newEnricher = orig })
}

const threeBooks = `[
  {"author":"Adler-Olsen, Jussi","title":"Erbarmen (Fall 1)","date_read":"2013-04-02","notes":"Sydney"},
  {"author":"Kepler, Lars","title":"Der Hypnotiseur (Band 1)","date_read":"Januar 2025"},
  {"author":"Neuhaus, Nele","title":"Schneewittchen muss sterben","date_read":"April 06","notes":"3. Fall 😐"}
]`

func TestBuildEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "preparsed1.txt")
	output := filepath.Join(dir, "books_database.json")
	if err := os.WriteFile(input, []byte(threeBooks), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newBuildCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{input, "--output", output, "--config", filepath.Join(dir, "shelf.yaml")})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("build: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var records []schema.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("want 3 records, got %d", len(records))
	}
	// year-ascending order
	if records[0].Author != "Neuhaus, Nele" || records[1].Author != "Adler-Olsen, Jussi" || records[2].Author != "Kepler, Lars" {
		t.Fatalf("sort order: %s / %s / %s", records[0].Author, records[1].Author, records[2].Author)
	}
	first := records[0]
	if first.Year == nil || *first.Year != 2006 || first.Month == nil || *first.Month != 4 {
		t.Fatalf("pivot date: %+v", first)
	}
	if first.Notes == nil || *first.Notes != "3. Fall 😐" || first.Location != nil {
		t.Fatalf("note classification: %+v", first)
	}
	second := records[1]
	if second.Title != "Erbarmen" || second.SeriesVolume == nil || *second.SeriesVolume != 1 {
		t.Fatalf("series extraction: %+v", second)
	}
	if second.Location == nil || *second.Location != "Sydney" || second.Notes != nil {
		t.Fatalf("location: %+v", second)
	}
	if !strings.Contains(out.String(), "wrote 3 records") {
		t.Fatalf("stdout: %s", out.String())
	}
}

func TestBuildFailsWhenAllInputsMissing(t *testing.T) {
	dir := t.TempDir()
	cmd := newBuildCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{filepath.Join(dir, "nope.txt"), "--config", filepath.Join(dir, "shelf.yaml"), "--output", filepath.Join(dir, "db.json")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when no input exists")
	}
}

const volumeResult = `{"items":[{"id":"vol1","volumeInfo":{
	"title":"Erbarmen","description":"Carl Mørck ermittelt.","publisher":"dtv",
	"publishedDate":"2011-03-01","pageCount":432,"categories":["Fiction"],"language":"de",
	"industryIdentifiers":[{"type":"ISBN_13","identifier":"9783423247016"}],
	"imageLinks":{"thumbnail":"http://books.google.com/books?id=vol1&zoom=1"}}}]}`

func TestBuildEnrichLimitedSubset(t *testing.T) {
	calls := 0
	installFakeEnricher(t, func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResp(200, volumeResult), nil
	})

	dir := t.TempDir()
	input := filepath.Join(dir, "preparsed1.txt")
	output := filepath.Join(dir, "db.json")
	if err := os.WriteFile(input, []byte(threeBooks), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newBuildCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{input, "--output", output, "--config", filepath.Join(dir, "shelf.yaml"), "--enrich", "--limit", "1"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("build --enrich: %v", err)
	}
	if calls != 1 {
		t.Fatalf("limit 1 should make exactly one API call, got %d", calls)
	}

	records := readDB(t, output)
	var enriched, plain int
	for _, r := range records {
		if r.Publisher != nil {
			enriched++
		} else {
			plain++
		}
	}
	if enriched != 1 || plain != 2 {
		t.Fatalf("want exactly one enriched record, got %d/%d", enriched, plain)
	}
}

func TestBuildEnrichFailureIsIsolated(t *testing.T) {
	installFakeEnricher(t, func(req *http.Request) (*http.Response, error) {
		return jsonResp(500, "boom"), nil
	})

	dir := t.TempDir()
	input := filepath.Join(dir, "preparsed1.txt")
	output := filepath.Join(dir, "db.json")
	if err := os.WriteFile(input, []byte(threeBooks), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newBuildCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{input, "--output", output, "--config", filepath.Join(dir, "shelf.yaml"), "--enrich"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("failed lookups must not abort the batch: %v", err)
	}
	if !strings.Contains(errOut.String(), "warning: lookup failed") {
		t.Fatalf("warnings not surfaced: %s", errOut.String())
	}
	if got := len(readDB(t, output)); got != 3 {
		t.Fatalf("records lost on enrichment failure: %d", got)
	}
}

func readDB(t *testing.T, path string) []schema.Record {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var records []schema.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatal(err)
	}
	return records
}
