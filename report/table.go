// Package report renders itemset collections as tables and exports them as
// CSV, JSON, charts and Prometheus textfile metrics.
package report

import (
	"strings"

	"github.com/YuminosukeSato/basketmine/mining"
)

// Row is one itemset rendered for display.
type Row struct {
	// Itemset is the ", "-joined labels, for display only.
	Itemset string   `json:"itemset"`
	Items   []string `json:"items"`
	Support float64  `json:"support"`
	Count   int      `json:"count"`
	Length  int      `json:"length"`
}

// Table is a named, ordered list of rows.
type Table struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// NewTable renders c ordered by descending support, then size, then labels.
func NewTable(name string, c mining.Collection) Table {
	vocab := c.Vocabulary()
	sorted := mining.SortItemsets(c.Itemsets())
	rows := make([]Row, len(sorted))
	for i, s := range sorted {
		labels := mining.Labels(vocab, s)
		rows[i] = Row{
			Itemset: strings.Join(labels, ", "),
			Items:   labels,
			Support: s.Support,
			Count:   s.Count,
			Length:  s.Len(),
		}
	}
	return Table{Name: name, Rows: rows}
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Head returns the first n rows, or all of them when n <= 0 or n exceeds Len.
func (t Table) Head(n int) []Row {
	if n <= 0 || n > len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:n]
}
