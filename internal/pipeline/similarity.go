package pipeline

import (
	"strings"
	"unicode"
)

// Similarity scores how alike two strings are, 0.0..1.0. Case-insensitive
// and whitespace-trimmed. Equality scores 1.0; full containment scores by
// length ratio; otherwise tokens are matched pairwise (exact 1.0, mutual
// substring 0.7, small edit distance 0.5) and normalized by the larger
// token count. The result is a ranking confidence, not a probability.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		la := len([]rune(a))
		lb := len([]rune(b))
		shorter, longer := la, lb
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return 0.7 + 0.3*float64(shorter)/float64(longer)
	}

	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	sum := 0.0
	for _, ta := range tokensA {
		best := 0.0
		for _, tb := range tokensB {
			c := tokenScore(ta, tb)
			if c > best {
				best = c
			}
			if best == 1 {
				break
			}
		}
		sum += best
	}

	denom := len(tokensA)
	if len(tokensB) > denom {
		denom = len(tokensB)
	}
	score := sum / float64(denom)
	if score > 1 {
		score = 1
	}
	return score
}

func tokenScore(a, b string) float64 {
	if a == b {
		return 1
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	if la < 3 || lb < 3 {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.7
	}
	longer := la
	if lb > longer {
		longer = lb
	}
	if float64(levenshtein(a, b)) <= 0.3*float64(longer) {
		return 0.5
	}
	return 0
}

// tokenize splits on whitespace and punctuation and drops single-character
// tokens, which carry no signal in article descriptions.
func tokenize(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len([]rune(p)) > 1 {
			out = append(out, p)
		}
	}
	return out
}

// levenshtein is the standard edit distance with unit costs, rune-based,
// two rows of state.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
