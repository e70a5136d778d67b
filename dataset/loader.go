// Package dataset turns a tabular transaction log into grouped transactions.
//
// A log is a sequence of (grouping key, item label) records. The grouping key
// decides what "bought together" means: grouping by customer yields one basket
// per customer over the whole log, grouping by customer and date yields one
// basket per shopping trip.
package dataset

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
)

// Column names of the Groceries dataset the tool was first built for.
const (
	DefaultKeyColumn    = "Member_number"
	DefaultItemColumn   = "itemDescription"
	DefaultKeySeparator = "|"
)

// Schema names the columns that form the grouping key and the item label.
type Schema struct {
	// KeyColumns form the grouping key, in order. Multiple columns are joined
	// with KeySeparator.
	KeyColumns []string

	// ItemColumn holds the item label.
	ItemColumn string

	// KeySeparator joins composite key parts. Defaults to "|".
	KeySeparator string
}

// DefaultSchema groups by member number.
func DefaultSchema() Schema {
	return Schema{
		KeyColumns:   []string{DefaultKeyColumn},
		ItemColumn:   DefaultItemColumn,
		KeySeparator: DefaultKeySeparator,
	}
}

// Validate checks that the schema itself is usable.
func (s Schema) Validate() error {
	if len(s.KeyColumns) == 0 {
		return errors.NewValidationError("group_by", "at least one grouping column is required", s.KeyColumns)
	}
	for _, c := range s.KeyColumns {
		if strings.TrimSpace(c) == "" {
			return errors.NewValidationError("group_by", "column names must not be empty", s.KeyColumns)
		}
	}
	if strings.TrimSpace(s.ItemColumn) == "" {
		return errors.NewValidationError("item_column", "item column is required", s.ItemColumn)
	}
	return nil
}

func (s Schema) separator() string {
	if s.KeySeparator == "" {
		return DefaultKeySeparator
	}
	return s.KeySeparator
}

// Record is one (grouping key, item label) pair of the log.
type Record struct {
	Key  string
	Item string
	// Line is the 1-based line in the source, 0 when records are built in memory.
	Line int
}

type readOptions struct {
	delimiter rune
}

// ReadOption configures ReadCSV.
type ReadOption func(*readOptions)

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(d rune) ReadOption {
	return func(o *readOptions) {
		o.delimiter = d
	}
}

// ReadCSV reads a UTF-8 CSV log with a header row and projects every data row
// onto a Record according to schema.
//
// Missing schema columns are reported together in a SchemaError before any
// data row is read. The whole input is materialized; nothing is held open
// after return.
func ReadCSV(r io.Reader, schema Schema, opts ...ReadOption) ([]Record, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	o := readOptions{delimiter: ','}
	for _, opt := range opts {
		opt(&o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewSchemaError(required(schema), nil)
	}
	if err != nil {
		return nil, errors.Wrap(err, "dataset: reading header")
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, c := range required(schema) {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaError(missing, header)
	}

	keyIdx := make([]int, len(schema.KeyColumns))
	for i, c := range schema.KeyColumns {
		keyIdx[i] = index[c]
	}
	itemIdx := index[schema.ItemColumn]
	sep := schema.separator()

	var records []Record
	parts := make([]string, len(keyIdx))
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "dataset: reading record")
		}
		line, _ := cr.FieldPos(0)
		for i, idx := range keyIdx {
			parts[i] = field(row, idx)
		}
		records = append(records, Record{
			Key:  joinKey(parts, sep),
			Item: field(row, itemIdx),
			Line: line,
		})
	}
	return records, nil
}

func required(s Schema) []string {
	cols := append([]string(nil), s.KeyColumns...)
	return append(cols, s.ItemColumn)
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// joinKey returns "" when every part is empty so such rows are dropped as
// keyless instead of forming a "|" group.
func joinKey(parts []string, sep string) string {
	empty := true
	for _, p := range parts {
		if p != "" {
			empty = false
			break
		}
	}
	if empty {
		return ""
	}
	return strings.Join(parts, sep)
}
