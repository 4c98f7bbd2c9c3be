package schema

import "strings"

// RawEntry is one unparsed book listing as read from the source files.
type RawEntry struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	DateRead    string `json:"date_read,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Description string `json:"description,omitempty"`
}

// Record is a normalized book record as written to the JSON database.
// Optional fields are pointers and serialize as explicit nulls so the
// consumer sees a uniform schema.
type Record struct {
	Author        string   `json:"author"`
	Title         string   `json:"title"`
	SeriesVolume  *int     `json:"series_volume"`
	Year          *int     `json:"year"`
	Month         *int     `json:"month"`
	Location      *string  `json:"location"`
	Notes         *string  `json:"notes"`
	Description   *string  `json:"description"`
	GoogleBooksID *string  `json:"google_books_id"`
	Publisher     *string  `json:"publisher"`
	PublishedDate *string  `json:"published_date"`
	PageCount     *int     `json:"page_count"`
	Categories    []string `json:"categories"`
	Language      *string  `json:"language"`
	ISBN          *string  `json:"isbn"`
	CoverURL      *string  `json:"cover_url"`
}

// HasDescription reports whether the record already carries a description.
func (r *Record) HasDescription() bool {
	return r.Description != nil && strings.TrimSpace(*r.Description) != ""
}

// HasCover reports whether the record already carries a cover URL.
func (r *Record) HasCover() bool {
	return r.CoverURL != nil && strings.TrimSpace(*r.CoverURL) != ""
}

// SortYear returns the year used for ordering; records without a year
// sort after all dated records.
func (r *Record) SortYear() int {
	if r.Year == nil {
		return 9999
	}
	return *r.Year
}

// SortMonth returns the month used for ordering within a year; records
// without a month sort after all dated records of that year.
func (r *Record) SortMonth() int {
	if r.Month == nil {
		return 99
	}
	return *r.Month
}
