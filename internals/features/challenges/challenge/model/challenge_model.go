package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =======================================================
   ChallengeModel: satu baris = satu soal di pool.

   Lifecycle status: available → used → archived.
   Soal diarsip kalau used_count mencapai ambang atau
   nganggur terlalu lama (scheduler nightly).
   ======================================================= */

type ChallengeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type      string    `gorm:"type:varchar(20);not null;index:idx_challenges_pick" json:"type"`
	CEFRLevel string    `gorm:"type:varchar(2);not null;index:idx_challenges_pick" json:"cefr_level"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`

	// payload spesifik per tipe (opsi MC, jawaban fill-blank,
	// teks target pronunciation, konfigurasi IRL, dst.)
	Content datatypes.JSON `gorm:"type:jsonb;not null" json:"content"`

	Difficulty int    `gorm:"not null;default:1" json:"difficulty"` // 1-3
	Frequency  string `gorm:"type:varchar(10);not null;default:'daily'" json:"frequency"`
	XPReward   int    `gorm:"not null;default:10" json:"xp_reward"`

	Status     string     `gorm:"type:varchar(10);not null;default:'available';index:idx_challenges_pick" json:"status"`
	UsedCount  int        `gorm:"not null;default:0" json:"used_count"`
	LastUsedAt *time.Time `gorm:"type:timestamptz" json:"last_used_at,omitempty"`

	// "seed", "admin", atau "generated" (hasil LLM)
	Source string `gorm:"type:varchar(10);not null;default:'seed'" json:"source"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ChallengeModel) TableName() string {
	return "challenges"
}
