package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
)

var csvHeader = []string{"support", "itemsets", "length", "count"}

// WriteCSV writes t with the columns support, itemsets, length and count.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "report: writing csv header")
	}
	rec := make([]string, len(csvHeader))
	for _, r := range t.Rows {
		rec[0] = strconv.FormatFloat(r.Support, 'f', -1, 64)
		rec[1] = r.Itemset
		rec[2] = strconv.Itoa(r.Length)
		rec[3] = strconv.Itoa(r.Count)
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "report: writing %s row", t.Name)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "report: flushing csv")
}
