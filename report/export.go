package report

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"github.com/YuminosukeSato/basketmine/pkg/log"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// FileName returns the export file name of a table, e.g.
// "frequent_itemsets.csv".
func FileName(table, format string) string {
	return strings.ToLower(table) + "_itemsets." + format
}

// Export writes every table in every format into dir, creating dir when
// needed, and returns the written paths in order.
func Export(dir string, formats []string, logger log.Logger, tables ...Table) ([]string, error) {
	if logger == nil {
		logger = log.Discard()
	}
	for _, f := range formats {
		if f != FormatCSV && f != FormatJSON {
			return nil, errors.NewValidationError("formats", "unsupported export format", f)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "report: creating %s", dir)
	}

	var paths []string
	for _, t := range tables {
		for _, f := range formats {
			path := filepath.Join(dir, FileName(t.Name, f))
			if err := writeFile(path, func(w io.Writer) error {
				if f == FormatJSON {
					return WriteJSON(w, t)
				}
				return WriteCSV(w, t)
			}); err != nil {
				return paths, err
			}
			logger.Info("table exported",
				log.OperationKey, log.OperationExport,
				log.FamilyKey, t.Name,
				log.PathKey, path,
				log.RowsKey, t.Len(),
			)
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "report: creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "report: closing %s", path)
		}
	}()
	return write(f)
}
