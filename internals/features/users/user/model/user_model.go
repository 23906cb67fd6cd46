package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users di database.
// Selain data akun, tabel ini juga menyimpan state gamifikasi
// (XP, streak, level CEFR, badge) supaya satu SELECT FOR UPDATE
// cukup untuk mengunci seluruh state progres user.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string    `gorm:"size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email    string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password *string   `gorm:"size:255" json:"-"` // NULL untuk akun Google
	GoogleID *string   `gorm:"size:255;unique" json:"google_id,omitempty"`
	Role     string    `gorm:"type:varchar(20);not null;default:'user'" json:"-"`
	PhotoURL *string   `gorm:"size:500" json:"photo_url,omitempty"`
	Bio      *string   `gorm:"size:300" json:"bio,omitempty"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	// ===== Gamifikasi =====
	XPTotal       int        `gorm:"column:xp_total;not null;default:0" json:"xp_total"`
	CurrentStreak int        `gorm:"column:current_streak;not null;default:0" json:"current_streak"`
	LongestStreak int        `gorm:"column:longest_streak;not null;default:0" json:"longest_streak"`
	LastAttemptAt *time.Time `gorm:"column:last_attempt_at;type:timestamptz" json:"last_attempt_at,omitempty"`

	// ===== CEFR =====
	CEFRLevel string `gorm:"column:cefr_level;type:varchar(2);not null;default:'A1'" json:"cefr_level"`
	// per-level: {"A1":{"completed":12,"unlocked":true,"unlocked_at":"..."}, ...}
	CEFRProgress datatypes.JSON `gorm:"column:cefr_progress;type:jsonb" json:"cefr_progress"`

	// ===== Badge =====
	Badges pq.StringArray `gorm:"column:badges;type:text[];default:'{}'" json:"badges"`
	// badge_id -> timestamp ISO saat diberikan
	BadgeEarnedAt datatypes.JSON `gorm:"column:badge_earned_at;type:jsonb" json:"badge_earned_at"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues memastikan nilai default sebelum insert
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "user"
	}
	if u.CEFRLevel == "" {
		u.CEFRLevel = "A1"
	}
}
