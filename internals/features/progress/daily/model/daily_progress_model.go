package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =======================================================
   DailyProgressModel: satu baris per (user, hari UTC).

   Counter per tipe dinaikkan atomik di transaksi submit;
   kolom completions menyimpan daftar challenge_id yang
   sudah diselesaikan hari itu per tipe.
   ======================================================= */

type DailyProgressModel struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_user_date" json:"user_id"`
	// kunci hari dalam UTC, format YYYY-MM-DD
	Date string `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_user_date" json:"date"`

	IRLCount            int `gorm:"not null;default:0" json:"irl_count"`
	ListeningCount      int `gorm:"not null;default:0" json:"listening_count"`
	FillBlankCount      int `gorm:"not null;default:0" json:"fill_blank_count"`
	MultipleChoiceCount int `gorm:"not null;default:0" json:"multiple_choice_count"`
	PronunciationCount  int `gorm:"not null;default:0" json:"pronunciation_count"`

	// {"irl":["id",...],"listening":[...],...}
	Completions datatypes.JSON `gorm:"type:jsonb" json:"completions"`

	TotalXPToday int `gorm:"not null;default:0" json:"total_xp_today"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DailyProgressModel) TableName() string {
	return "daily_progress"
}

// CountFor baca counter sesuai tipe tantangan
func (d *DailyProgressModel) CountFor(challengeType string) int {
	switch challengeType {
	case "irl":
		return d.IRLCount
	case "listening":
		return d.ListeningCount
	case "fill_blank":
		return d.FillBlankCount
	case "multiple_choice":
		return d.MultipleChoiceCount
	case "pronunciation":
		return d.PronunciationCount
	}
	return 0
}

// CounterColumn nama kolom counter untuk increment atomik
func CounterColumn(challengeType string) string {
	switch challengeType {
	case "irl":
		return "irl_count"
	case "listening":
		return "listening_count"
	case "fill_blank":
		return "fill_blank_count"
	case "multiple_choice":
		return "multiple_choice_count"
	case "pronunciation":
		return "pronunciation_count"
	}
	return ""
}
