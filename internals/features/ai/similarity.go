// internals/features/ai/similarity.go
package ai

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

/* =======================================================
   Kemiripan teks untuk grading pronunciation & fill-blank.

   Normalisasi dulu (NFC, lowercase, buang tanda baca),
   lalu rasio Levenshtein 0..1.
   ======================================================= */

// NormalizeText menyamakan bentuk unicode, lowercase,
// dan membuang tanda baca. æøå dipertahankan.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
		// tanda baca dibuang
	}
	return strings.TrimSpace(b.String())
}

// SimilarityRatio: 1 - (levenshtein / maxlen), dihitung per rune
func SimilarityRatio(a, b string) float64 {
	a = NormalizeText(a)
	b = NormalizeText(b)
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein(ra, rb)
	return 1.0 - float64(dist)/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // delete
				curr[j-1]+1,    // insert
				prev[j-1]+cost, // substitute
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
