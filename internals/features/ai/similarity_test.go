package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"God morgen!", "god morgen"},
		{"  Takk   for  maten.  ", "takk for maten"},
		{"KJÆRLIGHET", "kjærlighet"},
		{"Blåbær, på fjellet?", "blåbær på fjellet"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.in), "input=%q", tt.in)
	}
}

func TestSimilarityRatio(t *testing.T) {
	t.Run("identik", func(t *testing.T) {
		assert.Equal(t, 1.0, SimilarityRatio("Takk for maten", "takk for maten!"))
	})

	t.Run("keduanya kosong", func(t *testing.T) {
		assert.Equal(t, 1.0, SimilarityRatio("", ""))
	})

	t.Run("hampir sama", func(t *testing.T) {
		// "snakker" vs "snakke": 1 edit dari 7 rune
		got := SimilarityRatio("snakker", "snakke")
		assert.InDelta(t, 1.0-1.0/7.0, got, 1e-9)
	})

	t.Run("sama sekali beda", func(t *testing.T) {
		got := SimilarityRatio("abc", "xyz")
		assert.InDelta(t, 0.0, got, 1e-9)
	})

	t.Run("æøå dihitung per rune", func(t *testing.T) {
		// "blåbær" vs "blabar": 2 substitusi dari 6 rune
		got := SimilarityRatio("blåbær", "blabar")
		assert.InDelta(t, 1.0-2.0/6.0, got, 1e-9)
	})

	t.Run("simetris", func(t *testing.T) {
		a, b := "jeg kommer fra norge", "jeg kommer fra sverige"
		assert.InDelta(t, SimilarityRatio(a, b), SimilarityRatio(b, a), 1e-12)
	})
}
