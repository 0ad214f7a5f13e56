package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcncl/jsonpeek/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		value models.Value
		want  string
	}{
		{"object", models.ObjectValue(), "[Object]"},
		{"array", models.ArrayValue(), "[Array]"},
		{"integer", models.NumberValue("42"), "42"},
		{"negative integer", models.NumberValue("-17"), "-17"},
		{"negative zero", models.NumberValue("-0"), "0"},
		{"large integer without separators", models.NumberValue("1234567890123"), "1234567890123"},
		{"integer beyond int64", models.NumberValue("123456789012345678901234567890"), "123456789012345678901234567890"},
		{"integer constructor", models.IntegerValue(-5), "-5"},
		{"float", models.NumberValue("3.14"), "3.14"},
		{"float trailing zero", models.NumberValue("1200.50"), "1200.5"},
		{"float whole", models.NumberValue("2.0"), "2"},
		{"float exponent", models.NumberValue("1e21"), "1e+21"},
		{"float small", models.NumberValue("0.0000001"), "1e-07"},
		{"float overflow", models.NumberValue("1e400"), "+Inf"},
		{"string", models.StringValue("hello"), "hello"},
		{"empty string", models.StringValue(""), ""},
		{"string keeps escape text", models.StringValue(`\u0041`), `\u0041`},
		{"true", models.BoolValue(true), "True"},
		{"false", models.BoolValue(false), "False"},
		{"null", models.NullValue(), "null"},
		{"zero value", models.Value{}, "[Unknown]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value))
		})
	}
}

func TestClassify_FloatRoundTrips(t *testing.T) {
	for _, lit := range []string{"0.1", "2.5e-5", "123.456", "6.02214076e23", "-0.75"} {
		display := Classify(models.NumberValue(json.Number(lit)))

		var want, got float64
		assert.NoError(t, json.Unmarshal([]byte(lit), &want))
		assert.NoError(t, json.Unmarshal([]byte(display), &got), "display %q must parse", display)
		assert.Equal(t, want, got, "literal %s rendered as %s", lit, display)
	}
}

func TestClassifyDocument_KeepsOrderAndKinds(t *testing.T) {
	var doc models.Document
	doc.Set("x", models.ObjectValue())
	doc.Set("flag", models.BoolValue(true))
	doc.Set("n", models.NumberValue("7"))

	got := ClassifyDocument(doc)
	assert.Equal(t, []models.ClassifiedEntry{
		{Key: "x", DisplayValue: "[Object]", Kind: models.Object},
		{Key: "flag", DisplayValue: "True", Kind: models.Boolean},
		{Key: "n", DisplayValue: "7", Kind: models.Integer},
	}, got)
}
