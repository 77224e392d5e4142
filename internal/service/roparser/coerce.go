package roparser

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Coercion policy: malformed numeric text never fails a record, it becomes
// zero. Only missing identity/structure is an error.

func parseMonetaryDec(raw string) decimal.Decimal {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseMonetary(raw string) float64 {
	return parseMonetaryDec(raw).InexactFloat64()
}

func parseNumberDec(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseNumber(raw string) float64 {
	return parseNumberDec(raw).InexactFloat64()
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// splitMulti flattens both delimiter levels of a packed column: '|' between
// operations, '^' between line items. Both levels land in one list and
// siblings pair up by position.
func splitMulti(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, "|") {
		out = append(out, strings.Split(part, "^")...)
	}
	return out
}

func at(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[i])
}
