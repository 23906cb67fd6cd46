// internals/features/challenges/generator/generator_service.go
package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	openai "github.com/sashabaranov/go-openai"

	"snop_backend/internals/configs"
	"snop_backend/internals/constants"
	challengeDTO "snop_backend/internals/features/challenges/challenge/dto"
	challengeModel "snop_backend/internals/features/challenges/challenge/model"
	challengeService "snop_backend/internals/features/challenges/challenge/service"
)

/* =======================================================
   Generator soal via LLM lokal (Ollama, API OpenAI-compatible).

   Output diminta dalam JSON array, dibersihkan RepairJSON,
   divalidasi per tipe, lalu dimasukkan pool dengan
   source="generated".
   ======================================================= */

type GeneratorService struct {
	Client     *openai.Client
	Model      string
	Challenges *challengeService.ChallengeService
}

func NewGeneratorService(cs *challengeService.ChallengeService) *GeneratorService {
	baseURL := configs.GetEnv("OLLAMA_BASE_URL", "http://localhost:11434/v1")
	cfg := openai.DefaultConfig(configs.GetEnv("OLLAMA_API_KEY", "ollama"))
	cfg.BaseURL = baseURL
	return &GeneratorService{
		Client:     openai.NewClientWithConfig(cfg),
		Model:      configs.GetEnv("LLM_MODEL", "llama3.2"),
		Challenges: cs,
	}
}

// item mentah dari LLM sebelum jadi soal
type generatedItem struct {
	Title      string         `json:"title"`
	Prompt     string         `json:"prompt"`
	Content    map[string]any `json:"content"`
	Difficulty int            `json:"difficulty"`
}

// Generate membuat `count` soal untuk (type, level) dan menyimpannya ke pool
func (g *GeneratorService) Generate(ctx context.Context, typ, level string, count int) ([]challengeModel.ChallengeModel, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(typ, level, count)},
		},
		Temperature: 0.8,
	})
	if err != nil {
		return nil, fmt.Errorf("panggil LLM gagal: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("LLM tidak mengembalikan pilihan")
	}

	cleaned := RepairJSON(resp.Choices[0].Message.Content)

	var items []generatedItem
	if err := sonic.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("parse output LLM gagal: %w", err)
	}

	created := make([]challengeModel.ChallengeModel, 0, len(items))
	for _, it := range items {
		if err := validateItem(typ, &it); err != nil {
			log.Printf("[GENERATOR] Item dilewati: %v", err)
			continue
		}
		content, err := challengeModel.EncodeContent(it.Content)
		if err != nil {
			continue
		}
		ch, err := g.Challenges.Create(&challengeDTO.AdminChallengeRequest{
			Type:       typ,
			CEFRLevel:  level,
			Title:      it.Title,
			Prompt:     it.Prompt,
			Content:    content,
			Difficulty: it.Difficulty,
			Frequency:  constants.FrequencyDaily,
		}, "generated")
		if err != nil {
			log.Printf("[GENERATOR] Simpan soal gagal: %v", err)
			continue
		}
		created = append(created, *ch)
	}
	if len(created) == 0 {
		return nil, errors.New("tidak ada soal valid yang dihasilkan")
	}
	return created, nil
}

const systemPrompt = `You are a Norwegian language teacher creating exercises for a mobile learning app. ` +
	`Always answer with a raw JSON array only, no prose, no markdown fences.`

func buildUserPrompt(typ, level string, count int) string {
	var shape string
	switch typ {
	case constants.ChallengeTypeMultipleChoice:
		shape = `{"title":"...","prompt":"...","difficulty":1-3,"content":{"question":"...","options":["a","b","c","d"],"correct_index":0}}`
	case constants.ChallengeTypeFillBlank:
		shape = `{"title":"...","prompt":"...","difficulty":1-3,"content":{"sentence":"Jeg ___ norsk.","answer":"snakker","alternatives":["prater"]}}`
	case constants.ChallengeTypeListening:
		shape = `{"title":"...","prompt":"...","difficulty":1-3,"content":{"audio_text":"...","question":"...","options":["a","b","c","d"],"correct_index":0}}`
	case constants.ChallengeTypePronunciation:
		shape = `{"title":"...","prompt":"...","difficulty":1-3,"content":{"text":"a Norwegian phrase to pronounce"}}`
	}
	return fmt.Sprintf(
		"Create %d Norwegian %s exercises for CEFR level %s.\nEach array element must match exactly this shape:\n%s\nAll exercise text must be in Norwegian (bokmål), instructions in English.",
		count, strings.ReplaceAll(typ, "_", " "), level, shape,
	)
}

func validateItem(typ string, it *generatedItem) error {
	if strings.TrimSpace(it.Title) == "" || strings.TrimSpace(it.Prompt) == "" {
		return errors.New("title/prompt kosong")
	}
	if it.Difficulty < 1 || it.Difficulty > 3 {
		it.Difficulty = 1
	}
	if it.Content == nil {
		return errors.New("content kosong")
	}

	switch typ {
	case constants.ChallengeTypeMultipleChoice, constants.ChallengeTypeListening:
		opts, ok := it.Content["options"].([]any)
		if !ok || len(opts) < 2 {
			return errors.New("options tidak valid")
		}
		idx, ok := it.Content["correct_index"].(float64)
		if !ok || int(idx) < 0 || int(idx) >= len(opts) {
			return errors.New("correct_index di luar jangkauan")
		}
		if typ == constants.ChallengeTypeListening {
			if s, _ := it.Content["audio_text"].(string); strings.TrimSpace(s) == "" {
				return errors.New("audio_text kosong")
			}
		}
	case constants.ChallengeTypeFillBlank:
		sentence, _ := it.Content["sentence"].(string)
		answer, _ := it.Content["answer"].(string)
		if !strings.Contains(sentence, "___") || strings.TrimSpace(answer) == "" {
			return errors.New("sentence/answer tidak valid")
		}
	case constants.ChallengeTypePronunciation:
		if s, _ := it.Content["text"].(string); strings.TrimSpace(s) == "" {
			return errors.New("text kosong")
		}
	default:
		return fmt.Errorf("tipe %s tidak didukung generator", typ)
	}
	return nil
}
