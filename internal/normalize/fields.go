// Package normalize turns loosely structured scrape records into typed
// catalog fields.
//
// Every function here is pure. Malformed numbers and unknown enum values
// degrade to "absent" or an Other member; only currency resolution fails.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// widthPattern matches "25", "25mm", "25-35" and "25mm-35mm" after spaces
// are removed. Only the first bound is used.
var widthPattern = regexp.MustCompile(`^(\d+)(?:mm)?(?:-(\d+)(?:mm)?)?`)

// ParseNumber lower-cases raw, strips suffix (case-insensitive) and parses
// what remains as a float. Any failure yields nil, and so do "inf" and "nan"
// which ParseFloat would otherwise accept.
func ParseNumber(raw, suffix string) *float64 {
	s := strings.ToLower(raw)
	if suffix != "" {
		s = strings.ReplaceAll(s, strings.ToLower(suffix), "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

// finite returns &f, or nil for infinities and NaN. JSON cannot encode them.
func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// ParseWidth extracts the leading width in millimetres. A range such as
// "25-35mm" yields its lower bound.
func ParseWidth(raw string) *int {
	s := strings.ReplaceAll(strings.ToLower(raw), " ", "")
	if s == "" {
		return nil
	}
	m := widthPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// ParseISA reads an ISA approval flag. JSON booleans pass through; strings
// count as approved when they read yes, true or approved.
func ParseISA(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "yes", "true", "approved":
			return true
		}
	}
	return false
}

// OptionalString returns nil for empty or whitespace-only input.
func OptionalString(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

// number reads a numeric field that may arrive as a JSON number or as a
// string carrying a unit suffix.
func number(v gjson.Result, suffix string) *float64 {
	switch v.Type {
	case gjson.Number:
		return finite(v.Num)
	case gjson.String:
		return ParseNumber(v.Str, suffix)
	default:
		return nil
	}
}

// measure reads width or weight style fields, which default to zero when
// missing or empty instead of being left unset.
func measure(v gjson.Result, suffix string) *float64 {
	if !v.Exists() || v.Type == gjson.Null || (v.Type == gjson.String && strings.TrimSpace(v.Str) == "") {
		zero := 0.0
		return &zero
	}
	return number(v, suffix)
}

// width reads a width field. Missing, empty and unparseable input give 0.
func width(v gjson.Result) int {
	switch v.Type {
	case gjson.Number:
		return int(v.Int())
	case gjson.String:
		if w := ParseWidth(v.Str); w != nil {
			return *w
		}
	}
	return 0
}

// text returns the string form of v, or "" for null and missing values.
// Arrays are joined with ", ".
func text(v gjson.Result) string {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return ""
	case v.IsArray():
		parts := make([]string, 0, 4)
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return v.String()
	}
}
