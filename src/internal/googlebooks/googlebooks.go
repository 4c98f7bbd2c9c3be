// Package googlebooks looks up book metadata on the Google Books API
// and merges it into records that are missing fields locally.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookshelf/src/internal/httpx"
	"bookshelf/src/internal/sanitize"
	"bookshelf/src/internal/schema"
)

// DefaultDelay is the minimum pause between consecutive API calls.
const DefaultDelay = 500 * time.Millisecond

const endpoint = "https://www.googleapis.com/books/v1/volumes"

// Volume holds the fields extracted from a Google Books search result.
type Volume struct {
	ID            string
	Description   string
	Publisher     string
	PublishedDate string
	PageCount     int
	Categories    []string
	Language      string
	ISBN          string
	CoverURL      string
}

// Enricher performs sequential, rate-limited lookups. The last-call
// timestamp lives on the instance so the delay between requests is
// enforced regardless of call outcome.
type Enricher struct {
	client httpx.Doer
	delay  time.Duration
	sleep  func(time.Duration)
	now    func() time.Time
	last   time.Time
}

// New returns an Enricher with the given inter-call delay.
func New(delay time.Duration) *Enricher {
	return &Enricher{
		client: httpx.NewClient(),
		delay:  delay,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// SetHTTPClient allows tests to inject a fake HTTP client.
func (e *Enricher) SetHTTPClient(c httpx.Doer) { e.client = c }

// SetSleep allows tests to observe or skip the rate-limit pause.
func (e *Enricher) SetSleep(f func(time.Duration)) { e.sleep = f }

// NeedsLookup reports whether a record is worth sending to the API:
// lookups are skipped when both description and cover are already set,
// which makes reruns over an enriched database cheap.
func NeedsLookup(rec *schema.Record) bool {
	return !rec.HasDescription() || !rec.HasCover()
}

// Search queries the API with the free-text query "<title> <author>"
// and returns the first result that has a title.
func (e *Enricher) Search(ctx context.Context, title, author string) (*Volume, error) {
	e.waitTurn()

	q := url.Values{}
	q.Set("q", strings.TrimSpace(title+" "+author))
	q.Set("maxResults", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpx.SetHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("googlebooks: http %d: %s", resp.StatusCode, string(b))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("googlebooks: decode: %w", err)
	}
	for _, item := range sr.Items {
		if strings.TrimSpace(item.VolumeInfo.Title) == "" {
			continue
		}
		v := mapVolume(item.VolumeInfo)
		v.ID = item.ID
		return &v, nil
	}
	return nil, fmt.Errorf("googlebooks: no results for %q", strings.TrimSpace(title+" "+author))
}

// Enrich looks the record up by title and author and fills in any
// fields that local parsing left empty. Populated fields are never
// overwritten.
func (e *Enricher) Enrich(ctx context.Context, rec *schema.Record) error {
	v, err := e.Search(ctx, rec.Title, rec.Author)
	if err != nil {
		return err
	}
	Merge(rec, v)
	return nil
}

// Merge copies volume fields into the record where the record has no
// value of its own.
func Merge(rec *schema.Record, v *Volume) {
	setStr := func(dst **string, val string) {
		if *dst == nil && strings.TrimSpace(val) != "" {
			s := val
			*dst = &s
		}
	}
	setStr(&rec.Description, v.Description)
	setStr(&rec.GoogleBooksID, v.ID)
	setStr(&rec.Publisher, v.Publisher)
	setStr(&rec.PublishedDate, v.PublishedDate)
	setStr(&rec.Language, v.Language)
	setStr(&rec.ISBN, v.ISBN)
	setStr(&rec.CoverURL, v.CoverURL)
	if rec.PageCount == nil && v.PageCount > 0 {
		pc := v.PageCount
		rec.PageCount = &pc
	}
	if len(rec.Categories) == 0 && len(v.Categories) > 0 {
		rec.Categories = sanitize.CleanCategories(v.Categories)
	}
}

// UpgradeCoverURL rewrites a Google Books cover link to the
// high-resolution variant. Links without a zoom parameter are returned
// unchanged.
func UpgradeCoverURL(cover string) string {
	return strings.Replace(cover, "zoom=1", "zoom=5", 1)
}

// waitTurn enforces the inter-call delay against the shared rate
// limit. The first call goes through immediately.
func (e *Enricher) waitTurn() {
	if !e.last.IsZero() {
		if rest := e.delay - e.now().Sub(e.last); rest > 0 {
			e.sleep(rest)
		}
	}
	e.last = e.now()
}

type searchResponse struct {
	Items []struct {
		ID         string     `json:"id"`
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type volumeInfo struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Publisher           string   `json:"publisher"`
	PublishedDate       string   `json:"publishedDate"`
	PageCount           int      `json:"pageCount"`
	Categories          []string `json:"categories"`
	Language            string   `json:"language"`
	IndustryIdentifiers []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"industryIdentifiers"`
	ImageLinks struct {
		ExtraLarge string `json:"extraLarge"`
		Large      string `json:"large"`
		Medium     string `json:"medium"`
		Thumbnail  string `json:"thumbnail"`
	} `json:"imageLinks"`
}

func mapVolume(vi volumeInfo) Volume {
	v := Volume{
		Description:   strings.TrimSpace(vi.Description),
		Publisher:     strings.TrimSpace(vi.Publisher),
		PublishedDate: strings.TrimSpace(vi.PublishedDate),
		PageCount:     vi.PageCount,
		Categories:    sanitize.CleanCategories(vi.Categories),
		Language:      strings.TrimSpace(vi.Language),
	}
	v.ISBN = pickISBN(vi)
	v.CoverURL = pickCover(vi)
	return v
}

// pickISBN prefers the ISBN-13 identifier and falls back to ISBN-10.
func pickISBN(vi volumeInfo) string {
	for _, want := range []string{"ISBN_13", "ISBN_10"} {
		for _, id := range vi.IndustryIdentifiers {
			if id.Type == want && strings.TrimSpace(id.Identifier) != "" {
				return id.Identifier
			}
		}
	}
	return ""
}

// pickCover takes the largest available image link.
func pickCover(vi volumeInfo) string {
	for _, link := range []string{
		vi.ImageLinks.ExtraLarge,
		vi.ImageLinks.Large,
		vi.ImageLinks.Medium,
		vi.ImageLinks.Thumbnail,
	} {
		if u := sanitize.CleanURL(link); u != "" {
			return u
		}
	}
	return ""
}
