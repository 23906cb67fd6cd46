package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinWordCount(t *testing.T) {
	assert.Equal(t, 5, MinWordCount("A1"))
	assert.Equal(t, 10, MinWordCount("A2"))
	assert.Equal(t, 15, MinWordCount("B1"))
	assert.Equal(t, 25, MinWordCount("B2"))
	assert.Equal(t, 35, MinWordCount("C1"))
	assert.Equal(t, 45, MinWordCount("C2"))
	// level tak dikenal jatuh ke minimum terendah
	assert.Equal(t, 5, MinWordCount("Z9"))
}

func TestLooksNorwegian(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"kalimat norwegia", "jeg er på kafeen og det er hyggelig", true},
		{"inggris", "i am at the cafe and it is nice", false},
		{"æøå plus stopword", "jeg drakk blåbærsaft", true},
		{"kosong", "", false},
		{"satu stopword tanpa æøå", "det coffee shop nice", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksNorwegian(NormalizeText(tt.text)))
		})
	}
}

func TestScoreText_LulusLengkap(t *testing.T) {
	// A1: min 5 kata; teks Norwegia, relevan topik kafe, kosakata variatif
	text := "Jeg drakk en kopp kaffe på kafeen i dag og det var veldig hyggelig"
	sc := ScoreText(text, "A1", KeywordsForTopic("kafe"), 80)

	assert.Equal(t, 20, sc.WordCountScore)
	assert.Equal(t, 20, sc.NorwegianScore)
	assert.Equal(t, 24, sc.GrammarScore) // 80 × 0.3
	assert.Equal(t, 15, sc.TopicScore)
	assert.GreaterOrEqual(t, sc.VocabScore, 8)
	assert.GreaterOrEqual(t, sc.Total, 60)
}

func TestScoreText_TeksInggrisGagal(t *testing.T) {
	text := "I went to a coffee shop today and it was nice"
	sc := ScoreText(text, "A1", KeywordsForTopic("kafe"), 0)

	assert.False(t, sc.IsNorwegian)
	assert.Equal(t, 0, sc.NorwegianScore)
	assert.Less(t, sc.Total, 60)
}

func TestScoreText_JumlahKata(t *testing.T) {
	// B2 butuh 25 kata; 12 kata = setengahnya -> skor 10
	text := strings.Repeat("ord ", 12)
	sc := ScoreText(text, "B2", nil, 50)
	assert.Equal(t, 12, sc.WordCount)
	assert.Equal(t, 10, sc.WordCountScore)

	// di bawah setengah -> 0
	short := ScoreText("bare tre ord", "B2", nil, 50)
	assert.Equal(t, 0, short.WordCountScore)
}

func TestScoreText_GrammarDiclamp(t *testing.T) {
	sc := ScoreText("jeg er her og det er bra", "A1", nil, 150)
	assert.Equal(t, 30, sc.GrammarScore)

	sc = ScoreText("jeg er her og det er bra", "A1", nil, -10)
	assert.Equal(t, 0, sc.GrammarScore)
}

func TestKeywordsForTopic(t *testing.T) {
	assert.Contains(t, KeywordsForTopic("kafe"), "kaffe")
	// topik tak terdaftar: pakai kata topiknya sendiri
	assert.Equal(t, []string{"fotball"}, KeywordsForTopic("fotball"))
	assert.Nil(t, KeywordsForTopic(""))
}
