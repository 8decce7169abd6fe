// Package ingest seeds the catalog from JSON source files.
//
// Each gear kind has its own file. Records are cleaned independently,
// their brands resolved (and created when new), and the survivors written
// in a single transaction.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"
)

// ErrSourceMissing is returned when a source file does not exist.
// Ingestion of that kind is skipped for the run.
var ErrSourceMissing = errors.New("source file missing")

// ReadJSONArray reads the whole file at path and returns its top-level
// array elements.
func ReadJSONArray(path string) ([]gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid JSON", path)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%s: expected a JSON array", path)
	}
	return doc.Array(), nil
}
