// internals/features/challenges/challenge/dto/challenge_dto.go
package dto

import (
	"time"

	"gorm.io/datatypes"
)

/* ===== Response publik (jawaban disembunyikan) ===== */

type ChallengeResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	CEFRLevel  string         `json:"cefr_level"`
	Title      string         `json:"title"`
	Prompt     string         `json:"prompt"`
	Content    map[string]any `json:"content"` // sudah disanitasi
	Difficulty int            `json:"difficulty"`
	Frequency  string         `json:"frequency"`
	XPReward   int            `json:"xp_reward"`
}

// TodayResponse: satu set tantangan harian per tipe
type TodayResponse struct {
	Date       string              `json:"date"` // YYYY-MM-DD (UTC)
	CEFRLevel  string              `json:"cefr_level"`
	Challenges []ChallengeResponse `json:"challenges"`
}

/* ===== Admin ===== */

type AdminChallengeRequest struct {
	Type       string         `json:"type" validate:"required,oneof=pronunciation listening fill_blank multiple_choice irl"`
	CEFRLevel  string         `json:"cefr_level" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	Title      string         `json:"title" validate:"required,max=200"`
	Prompt     string         `json:"prompt" validate:"required"`
	Content    datatypes.JSON `json:"content" validate:"required"`
	Difficulty int            `json:"difficulty" validate:"required,min=1,max=3"`
	Frequency  string         `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
}

type GenerateRequest struct {
	Type      string `json:"type" validate:"required,oneof=pronunciation listening fill_blank multiple_choice"`
	CEFRLevel string `json:"cefr_level" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	Count     int    `json:"count" validate:"required,min=1,max=20"`
}

/* ===== Statistik pool ===== */

type PoolStatsRow struct {
	CEFRLevel string `json:"cefr_level"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Total     int64  `json:"total"`
}

type PoolHealthRow struct {
	CEFRLevel string `json:"cefr_level"`
	Type      string `json:"type"`
	Available int64  `json:"available"`
	Healthy   bool   `json:"healthy"`
}

type AdminChallengeResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	CEFRLevel  string         `json:"cefr_level"`
	Title      string         `json:"title"`
	Prompt     string         `json:"prompt"`
	Content    datatypes.JSON `json:"content"`
	Difficulty int            `json:"difficulty"`
	Frequency  string         `json:"frequency"`
	XPReward   int            `json:"xp_reward"`
	Status     string         `json:"status"`
	UsedCount  int            `json:"used_count"`
	Source     string         `json:"source"`
	LastUsedAt *time.Time     `json:"last_used_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
