package report

import (
	"io"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"github.com/goccy/go-json"
)

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "report: encoding json")
	}
	return nil
}
