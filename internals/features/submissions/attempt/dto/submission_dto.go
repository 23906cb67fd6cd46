// internals/features/submissions/attempt/dto/submission_dto.go
package dto

import "time"

/* ===== Submit biasa (non-IRL) ===== */

// SubmitRequest: field form-data. Pronunciation menambah file `audio`.
type SubmitRequest struct {
	ChallengeID string `json:"challenge_id" form:"challenge_id" validate:"required,uuid"`
	Answer      string `json:"answer" form:"answer"` // teks opsi / isian; kosong untuk pronunciation
}

// SubmitResponse hasil grading + efek gamifikasi
type SubmitResponse struct {
	AttemptID string         `json:"attempt_id"`
	Score     float64        `json:"score"`
	IsCorrect bool           `json:"is_correct"`
	XPEarned  int            `json:"xp_earned"`
	Feedback  map[string]any `json:"feedback,omitempty"`

	XPTotal       int  `json:"xp_total"`
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	LeveledUp     bool `json:"leveled_up"`
	// terisi kalau LeveledUp
	NewLevel string `json:"new_level,omitempty"`

	NewBadges []EarnedBadge `json:"new_badges"`
}

type EarnedBadge struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	BonusXP int    `json:"bonus_xp"`
}

/* ===== Verifikasi IRL ===== */

// IRLVerifyRequest: multipart — foto di field `photo`, sisanya form field
type IRLVerifyRequest struct {
	ChallengeID string  `form:"challenge_id" validate:"required,uuid"`
	Text        string  `form:"text"`
	Lat         float64 `form:"lat"`
	Lng         float64 `form:"lng"`
	HasGPS      bool    `form:"-"`
}

type IRLCheckResult struct {
	Attempted bool           `json:"attempted"`
	Passed    bool           `json:"passed"`
	Detail    map[string]any `json:"detail,omitempty"`
}

type IRLVerifyResponse struct {
	Tier     string                    `json:"tier"`   // bronze/silver/gold
	Passed   bool                      `json:"passed"` // minimal satu bukti terverifikasi AI
	XPEarned int                       `json:"xp_earned"`
	PhotoURL string                    `json:"photo_url,omitempty"`
	Checks   map[string]IRLCheckResult `json:"checks"`

	XPTotal       int           `json:"xp_total"`
	CurrentStreak int           `json:"current_streak"`
	LongestStreak int           `json:"longest_streak"`
	LeveledUp     bool          `json:"leveled_up"`
	NewLevel      string        `json:"new_level,omitempty"`
	NewBadges     []EarnedBadge `json:"new_badges"`
}

/* ===== Riwayat ===== */

type AttemptResponse struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challenge_id"`
	Type        string    `json:"type"`
	CEFRLevel   string    `json:"cefr_level"`
	Score       float64   `json:"score"`
	IsCorrect   bool      `json:"is_correct"`
	XPEarned    int       `json:"xp_earned"`
	CreatedAt   time.Time `json:"created_at"`
}
