// Package stats summarizes a book database for CLI reporting.
package stats

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bookshelf/src/internal/schema"
)

// AuthorCount pairs an author with the number of their books read.
type AuthorCount struct {
	Author string
	Count  int
}

// Summary aggregates collection-wide statistics.
type Summary struct {
	Total        int
	MinYear      int // 0 when no record is dated
	MaxYear      int
	Descriptions int
	Covers       int
	TopAuthors   []AuthorCount
}

const topAuthorCount = 10

// Summarize computes statistics over the given records.
func Summarize(records []schema.Record) Summary {
	s := Summary{Total: len(records)}
	counts := map[string]int{}
	for i := range records {
		r := &records[i]
		if r.Year != nil {
			if s.MinYear == 0 || *r.Year < s.MinYear {
				s.MinYear = *r.Year
			}
			if *r.Year > s.MaxYear {
				s.MaxYear = *r.Year
			}
		}
		if r.HasDescription() {
			s.Descriptions++
		}
		if r.HasCover() {
			s.Covers++
		}
		counts[r.Author]++
	}
	for author, n := range counts {
		s.TopAuthors = append(s.TopAuthors, AuthorCount{Author: author, Count: n})
	}
	sort.Slice(s.TopAuthors, func(i, j int) bool {
		if s.TopAuthors[i].Count != s.TopAuthors[j].Count {
			return s.TopAuthors[i].Count > s.TopAuthors[j].Count
		}
		return s.TopAuthors[i].Author < s.TopAuthors[j].Author
	})
	if len(s.TopAuthors) > topAuthorCount {
		s.TopAuthors = s.TopAuthors[:topAuthorCount]
	}
	return s
}

// Render formats the summary as a table for the terminal.
func (s Summary) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRow(table.Row{"Books", s.Total})
	if s.MinYear > 0 {
		tw.AppendRow(table.Row{"Date range", fmt.Sprintf("%d – %d", s.MinYear, s.MaxYear)})
	}
	tw.AppendRow(table.Row{"With description", coverage(s.Descriptions, s.Total)})
	tw.AppendRow(table.Row{"With cover", coverage(s.Covers, s.Total)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	out := tw.Render()

	if len(s.TopAuthors) > 0 {
		at := table.NewWriter()
		at.SetStyle(table.StyleRounded)
		at.AppendHeader(table.Row{"Author", "Books"})
		for _, ac := range s.TopAuthors {
			at.AppendRow(table.Row{ac.Author, ac.Count})
		}
		at.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		})
		out += "\n" + at.Render()
	}
	return out
}

func coverage(n, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (%.1f%%)", n, float64(n)/float64(total)*100)
}
