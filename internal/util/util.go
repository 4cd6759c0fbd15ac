package util

import (
	"math"
	"strings"
)

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }

func IntPtr(v int) *int { return &v }

// Round2 rounds to cents. Derived prices go through this so that
// 3.49 / 2 comes out as 1.75 and not 1.745.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeArticle canonicalizes an article number for lookup: uppercase,
// no whitespace, only the characters suppliers actually print in codes.
func NormalizeArticle(input string) string {
	s := strings.ToUpper(strings.TrimSpace(input))
	out := strings.Builder{}
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '/' || r == '.' {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// LooksLikeArticle reports whether a token plausibly is an article number:
// at least three characters and at least one digit.
func LooksLikeArticle(input string) bool {
	trimmed := strings.TrimSpace(input)
	if len([]rune(trimmed)) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
