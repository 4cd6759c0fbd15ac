// Package locale converts German-formatted numbers, dates and unit tokens
// into canonical values. Everything here runs over noisy OCR output, so the
// number parser is total: bad input yields zero, never an error.
package locale

import (
	"strconv"
	"strings"
)

// ParseNumber converts a locale-formatted amount into a float64. Currency
// symbols and whitespace are stripped. When both "." and "," occur, "." is
// the thousands separator and "," the decimal separator ("1.234,56" ->
// 1234.56); a lone "," is the decimal separator. A leading minus is kept.
// Anything that still does not parse yields 0.
func ParseNumber(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" || s == "-" {
		return 0
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
