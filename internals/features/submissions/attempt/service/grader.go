// internals/features/submissions/attempt/service/grader.go
package service

import (
	"context"
	"io"

	"snop_backend/internals/configs"
	"snop_backend/internals/constants"
	challengeModel "snop_backend/internals/features/challenges/challenge/model"
)

/* =======================================================
   Grader per tipe tantangan.

   Dispatch lewat interface — tiap tipe satu implementasi,
   dipilih dari registry berdasarkan kolom type soal.
   IRL tidak lewat sini (punya alur verifikasi sendiri).
   ======================================================= */

// SubmissionInput: jawaban mentah dari aplikasi
type SubmissionInput struct {
	Answer        string
	AudioFilename string
	Audio         io.Reader // hanya pronunciation
}

type GradeResult struct {
	Score     float64 // 0..1
	IsCorrect bool
	Feedback  map[string]any
}

type Grader interface {
	Type() string
	Grade(ctx context.Context, ch *challengeModel.ChallengeModel, in *SubmissionInput) (*GradeResult, error)
}

/* ===== Aturan XP (murni, dites terpisah) ===== */

// BucketPronunciationScore memetakan similarity ke skor diskrit
func BucketPronunciationScore(similarity float64) float64 {
	switch {
	case similarity >= 0.95:
		return 1.0
	case similarity >= 0.85:
		return 0.9
	case similarity >= 0.70:
		return 0.7
	case similarity >= 0.50:
		return 0.5
	default:
		return 0.2
	}
}

// FrequencyMultiplier pengali XP sesuai frekuensi soal
func FrequencyMultiplier(frequency string) float64 {
	switch frequency {
	case constants.FrequencyWeekly:
		return 1.5
	case constants.FrequencyMonthly:
		return 2.0
	default:
		return 1.0
	}
}

// ComputeXP: XP final = base × factor × pengali frekuensi (truncate).
// factor = skor pronunciation, atau 1.0 benar / 0.5 salah untuk tipe diskrit.
func ComputeXP(base int, factor, freqMultiplier float64) int {
	if base < 0 {
		return 0
	}
	xp := int(float64(base) * factor * freqMultiplier)
	if xp < 0 {
		return 0
	}
	return xp
}

// DiscreteFactor faktor XP untuk tipe jawaban benar/salah
func DiscreteFactor(correct bool) float64 {
	if correct {
		return 1.0
	}
	return 0.5
}

// PassThreshold ambang lulus pronunciation dari config
func PassThreshold() float64 {
	return configs.Gamification.PassThreshold
}
