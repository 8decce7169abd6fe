package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw, suffix string
		want        *float64
	}{
		{"120gr", "gr", ptr(120.0)},
		{"120 GR", "gr", ptr(120.0)},
		{"25kN", "kN", ptr(25.0)},
		{" 12.5 ", "", ptr(12.5)},
		{"", "gr", nil},
		{"heavy", "gr", nil},
		{"12-14 gr", "gr", nil},
		{"inf", "", nil},
		{"inf kN", "kN", nil},
		{"-inf", "", nil},
		{"Infinity", "", nil},
		{"NaN", "", nil},
		{"nan gr", "gr", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.raw, tt.suffix))
		})
	}
}

func TestParseWidth(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"25", ptr(25)},
		{"25mm", ptr(25)},
		{"25 MM", ptr(25)},
		{"25-35mm", ptr(25)},
		{"25mm - 35mm", ptr(25)},
		{"", nil},
		{"wide", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWidth(tt.raw))
		})
	}
}

func TestParseISA(t *testing.T) {
	tests := []struct {
		json string
		want bool
	}{
		{`{"v":"Yes"}`, true},
		{`{"v":" approved "}`, true},
		{`{"v":"TRUE"}`, true},
		{`{"v":true}`, true},
		{`{"v":false}`, false},
		{`{"v":"no"}`, false},
		{`{"v":"false"}`, false},
		{`{"v":""}`, false},
		{`{"v":null}`, false},
		{`{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseISA(gjson.Get(tt.json, "v")))
		})
	}
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString("   "))
	require.NotNil(t, OptionalString(" red "))
	assert.Equal(t, "red", *OptionalString(" red "))
}

func TestMeasure_EmptyAndMissingAreZero(t *testing.T) {
	for _, js := range []string{`{"v":""}`, `{"v":"  "}`, `{"v":null}`, `{}`} {
		got := measure(gjson.Get(js, "v"), "gr")
		require.NotNil(t, got, js)
		assert.Zero(t, *got, js)
	}

	assert.Nil(t, measure(gjson.Get(`{"v":"n/a"}`, "v"), "gr"), "present but unparseable stays unset")
	assert.Equal(t, ptr(42.0), measure(gjson.Get(`{"v":42}`, "v"), "gr"))
}

func TestNumber_RejectsNonFinite(t *testing.T) {
	assert.Nil(t, number(gjson.Get(`{"v":1e999}`, "v"), ""), "overflowing JSON number")
	assert.Nil(t, number(gjson.Get(`{"v":"inf kN"}`, "v"), "kN"))
	assert.Equal(t, ptr(30.0), number(gjson.Get(`{"v":"30 kN"}`, "v"), "kN"))
}

func TestWidth(t *testing.T) {
	tests := map[string]int{
		`{"v":""}`:        0,
		`{}`:              0,
		`{"v":"junk"}`:    0,
		`{"v":25}`:        25,
		`{"v":"35mm"}`:    35,
		`{"v":"20-40mm"}`: 20,
	}
	for js, want := range tests {
		assert.Equal(t, want, width(gjson.Get(js, "v")), js)
	}
}

func TestText(t *testing.T) {
	assert.Empty(t, text(gjson.Get(`{}`, "v")))
	assert.Empty(t, text(gjson.Get(`{"v":null}`, "v")))
	assert.Equal(t, "12", text(gjson.Get(`{"v":12}`, "v")))
	assert.Equal(t, "red, blue", text(gjson.Get(`{"v":["red"," ","blue"]}`, "v")))
}

func ptr[T any](v T) *T { return &v }
