package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/archsage/internal/cli/formatter"
)

// render writes v as indented JSON when asJSON is set, otherwise the styled
// text produced by format.
func render(w io.Writer, asJSON bool, v any, format func() string) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, format())
	return err
}

// withSpinner runs fn while a spinner animates on w. The spinner is skipped
// when show is false.
func withSpinner(w io.Writer, show bool, message string, fn func() error) error {
	if !show {
		return fn()
	}
	stop := formatter.StartSpinner(w, message)
	defer stop()
	return fn()
}
