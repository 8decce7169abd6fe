package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/slackdb/slackdb-server/internal/domain"
)

// Record-level failures. Both cause the record to be skipped.
var (
	ErrMissingName     = errors.New("record has no name")
	ErrMissingMaterial = errors.New("record has no material")
)

// Rule fills one output field from the first of Paths present in a record.
// Apply also runs when no path is present, with a zero gjson.Result, so
// rules can supply defaults.
type Rule[T any] struct {
	Field string
	Paths []string
	Apply func(e *T, v gjson.Result) error
}

// Cleaner converts raw source records into entities of type T by running
// its rules in order.
type Cleaner[T any] struct {
	Kind  domain.Kind
	Brand []string // paths tried in order; the first non-empty value wins
	Rules []Rule[T]
}

// Cleaned is the outcome of cleaning one record. BrandName is resolved to
// an id later, so Entity has no brand_id yet.
type Cleaned[T any] struct {
	Entity    *T     `json:"entity"`
	BrandName string `json:"brand"`
}

// Clean applies every rule to record. The first failing rule aborts the
// record; its error names the field.
func (c *Cleaner[T]) Clean(record gjson.Result) (*Cleaned[T], error) {
	if !record.IsObject() {
		return nil, fmt.Errorf("%s record is not an object", c.Kind)
	}

	e := new(T)
	for _, r := range c.Rules {
		if err := r.Apply(e, lookup(record, r.Paths)); err != nil {
			return nil, fmt.Errorf("%s: %w", r.Field, err)
		}
	}

	return &Cleaned[T]{Entity: e, BrandName: c.brandName(record)}, nil
}

// CleanJSON is Clean for a raw JSON object.
func (c *Cleaner[T]) CleanJSON(raw string) (*Cleaned[T], error) {
	return c.Clean(gjson.Parse(raw))
}

func (c *Cleaner[T]) brandName(record gjson.Result) string {
	for _, p := range c.Brand {
		if s := strings.TrimSpace(text(record.Get(p))); s != "" {
			return CleanText(s)
		}
	}
	return ""
}

// lookup returns the value at the first path that exists in record.
func lookup(record gjson.Result, paths []string) gjson.Result {
	for _, p := range paths {
		if v := record.Get(p); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// path joins key components into a gjson path, escaping characters gjson
// would otherwise interpret. Scraped keys carry spaces and parentheses.
func path(keys ...string) string {
	escaped := make([]string, len(keys))
	for i, k := range keys {
		var b strings.Builder
		for _, r := range k {
			if !isPlainPathRune(r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		escaped[i] = b.String()
	}
	return strings.Join(escaped, ".")
}

func isPlainPathRune(r rune) bool {
	return r == '_' || r == ' ' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
