// internals/features/ai/irl_text.go
package ai

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"snop_backend/internals/configs"
)

/* =======================================================
   Analisis teks IRL: user menulis beberapa kalimat Norwegia
   tentang topik tantangan, sistem menilai 0..100.

   Komponen skor:
     - jumlah kata sesuai level : 20 (setengahnya: 10)
     - teks terdeteksi Norwegia : 20
     - grammar (0-100) × 0.3    : maks 30
     - variasi kosakata         : 15
     - relevan dengan topik     : 15
   ======================================================= */

// minimal kata per level CEFR
var minWordCounts = map[string]int{
	"A1": 5, "A2": 10, "B1": 15, "B2": 25, "C1": 35, "C2": 45,
}

func MinWordCount(level string) int {
	if n, ok := minWordCounts[level]; ok {
		return n
	}
	return 5
}

// TextScore rincian penilaian, dikirim balik sebagai feedback
type TextScore struct {
	Total          int  `json:"total"`
	WordCount      int  `json:"word_count"`
	WordCountScore int  `json:"word_count_score"`
	IsNorwegian    bool `json:"is_norwegian"`
	NorwegianScore int  `json:"norwegian_score"`
	GrammarRaw     int  `json:"grammar_raw"` // 0-100 dari LLM
	GrammarScore   int  `json:"grammar_score"`
	VocabScore     int  `json:"vocab_score"`
	TopicScore     int  `json:"topic_score"`
}

// ScoreText menghitung skor dari komponen yang sudah diketahui.
// grammarRaw 0-100; murni supaya gampang dites.
func ScoreText(text, level string, topicKeywords []string, grammarRaw int) TextScore {
	normalized := NormalizeText(text)
	words := strings.Fields(normalized)

	sc := TextScore{WordCount: len(words), GrammarRaw: grammarRaw}

	// 1) jumlah kata
	min := MinWordCount(level)
	switch {
	case len(words) >= min:
		sc.WordCountScore = 20
	case len(words) >= min/2:
		sc.WordCountScore = 10
	}

	// 2) deteksi bahasa
	sc.IsNorwegian = LooksNorwegian(normalized)
	if sc.IsNorwegian {
		sc.NorwegianScore = 20
	}

	// 3) grammar
	if grammarRaw < 0 {
		grammarRaw = 0
	} else if grammarRaw > 100 {
		grammarRaw = 100
	}
	sc.GrammarScore = int(float64(grammarRaw) * 0.3)

	// 4) variasi kosakata
	unique := map[string]struct{}{}
	for _, w := range words {
		unique[w] = struct{}{}
	}
	if len(words) > 0 {
		ratio := float64(len(unique)) / float64(len(words))
		switch {
		case ratio >= 0.7:
			sc.VocabScore = 15
		case ratio >= 0.5:
			sc.VocabScore = 8
		}
	}

	// 5) relevansi topik
	for _, kw := range topicKeywords {
		if strings.Contains(normalized, NormalizeText(kw)) {
			sc.TopicScore = 15
			break
		}
	}

	sc.Total = sc.WordCountScore + sc.NorwegianScore + sc.GrammarScore + sc.VocabScore + sc.TopicScore
	return sc
}

// stopword Norwegia untuk deteksi bahasa kasar
var norwegianStopwords = map[string]struct{}{
	"jeg": {}, "det": {}, "og": {}, "er": {}, "en": {}, "et": {}, "på": {},
	"ikke": {}, "som": {}, "har": {}, "å": {}, "til": {}, "med": {}, "av": {},
	"for": {}, "den": {}, "vi": {}, "du": {}, "de": {}, "var": {}, "meg": {},
	"min": {}, "mitt": {}, "veldig": {}, "også": {}, "men": {}, "hva": {},
}

// LooksNorwegian: heuristik — minimal 2 stopword Norwegia,
// atau ada huruf æ/ø/å plus satu stopword.
func LooksNorwegian(normalized string) bool {
	hits := 0
	for _, w := range strings.Fields(normalized) {
		if _, ok := norwegianStopwords[w]; ok {
			hits++
		}
	}
	if hits >= 2 {
		return true
	}
	hasSpecial := strings.ContainsAny(normalized, "æøå")
	return hasSpecial && hits >= 1
}

/* ===== Grammar via LLM lokal ===== */

type TextAnalyzer struct {
	client *openai.Client
	model  string
}

func NewTextAnalyzer() *TextAnalyzer {
	cfg := openai.DefaultConfig(configs.GetEnv("OLLAMA_API_KEY", "ollama"))
	cfg.BaseURL = configs.GetEnv("OLLAMA_BASE_URL", "http://localhost:11434/v1")
	return &TextAnalyzer{
		client: openai.NewClientWithConfig(cfg),
		model:  configs.GetEnv("LLM_MODEL", "llama3.2"),
	}
}

// GradeGrammar minta LLM menilai grammar 0-100. Kalau LLM gagal,
// jatuh ke nilai netral 50 biar submission tidak ikut gagal.
func (t *TextAnalyzer) GradeGrammar(ctx context.Context, text string) int {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You grade Norwegian grammar. Reply with ONLY an integer 0-100, " +
					"where 100 is flawless grammar and 0 is not Norwegian at all.",
			},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Grade the grammar of this Norwegian text:\n%s", text)},
		},
		Temperature: 0,
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("[IRL] Grammar LLM gagal, pakai nilai netral: %v", err)
		return 50
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	// ambil angka pertama di respons
	num := ""
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			num += string(r)
			if len(num) >= 3 {
				break
			}
		} else if num != "" {
			break
		}
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 50
	}
	if n > 100 {
		n = 100
	}
	return n
}
