package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/avoss/keyscout/internal/model"
)

// loadBindings reads a binding list from a JSON file, or from stdin when
// path is "-". The producing side (config parser, launcher) is external;
// this is the only ingestion format.
func loadBindings(path string) ([]model.Binding, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open bindings: %w", err)
		}
		defer f.Close()
		r = f
	}

	var bindings []model.Binding
	if err := json.NewDecoder(r).Decode(&bindings); err != nil {
		return nil, fmt.Errorf("parse bindings: %w", err)
	}
	return bindings, nil
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
