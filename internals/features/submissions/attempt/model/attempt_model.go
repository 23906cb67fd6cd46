package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AttemptModel: satu baris per submission yang sudah digrade.
// Dipakai riwayat user, leaderboard harian/mingguan, dan statistik badge.
type AttemptModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_attempts_user_created" json:"user_id"`
	ChallengeID uuid.UUID `gorm:"type:uuid;not null;index" json:"challenge_id"`

	Type      string `gorm:"type:varchar(20);not null" json:"type"`
	CEFRLevel string `gorm:"type:varchar(2);not null" json:"cefr_level"`

	Score     float64 `gorm:"not null;default:0" json:"score"` // 0..1
	IsCorrect bool    `gorm:"not null;default:false" json:"is_correct"`
	XPEarned  int     `gorm:"not null;default:0" json:"xp_earned"`

	// jawaban user (teks, transkrip, atau ringkasan bukti IRL)
	Answer datatypes.JSON `gorm:"type:jsonb" json:"answer,omitempty"`
	// detail grading (similarity, tier, skor per komponen, dst.)
	Feedback datatypes.JSON `gorm:"type:jsonb" json:"feedback,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_attempts_user_created" json:"created_at"`
}

func (AttemptModel) TableName() string {
	return "attempts"
}
