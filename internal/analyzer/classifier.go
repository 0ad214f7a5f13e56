package analyzer

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/mcncl/jsonpeek/internal/models"
)

// Placeholders rendered for values that have no scalar display form.
const (
	ObjectPlaceholder  = "[Object]"
	ArrayPlaceholder   = "[Array]"
	UnknownPlaceholder = "[Unknown]"
	NullDisplay        = "null"
	TrueDisplay        = "True"
	FalseDisplay       = "False"
)

// Classify returns the display string of a top-level value. Containers are
// never inspected.
func Classify(v models.Value) string {
	switch v.Kind() {
	case models.Object:
		return ObjectPlaceholder
	case models.Array:
		return ArrayPlaceholder
	case models.Integer:
		return formatInteger(v.Text())
	case models.Float:
		return formatFloat(v.Text())
	case models.String:
		return v.Text()
	case models.Boolean:
		if v.Bool() {
			return TrueDisplay
		}
		return FalseDisplay
	case models.Null:
		return NullDisplay
	case models.Unknown:
		return UnknownPlaceholder
	}
	return UnknownPlaceholder
}

// formatInteger prints an integer literal of any size in plain decimal.
func formatInteger(lit string) string {
	n, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return lit
	}
	return n.String()
}

// formatFloat prints the shortest representation that parses back to the
// same float64.
func formatFloat(lit string) string {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return lit
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
