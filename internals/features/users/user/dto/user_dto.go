// internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	userModel "snop_backend/internals/features/users/user/model"
)

type UpdateProfileRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,url,max=500"`
	Bio      *string `json:"bio" validate:"omitempty,max=300"`
}

// ProfileResponse: data profil + ringkasan gamifikasi
type ProfileResponse struct {
	ID            string     `json:"id"`
	UserName      string     `json:"user_name"`
	Email         string     `json:"email"`
	PhotoURL      *string    `json:"photo_url,omitempty"`
	Bio           *string    `json:"bio,omitempty"`
	CEFRLevel     string     `json:"cefr_level"`
	CEFRLevelName string     `json:"cefr_level_name"`
	XPTotal       int        `json:"xp_total"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	Badges        []string   `json:"badges"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToProfileResponse(u *userModel.UserModel, levelName string) ProfileResponse {
	badges := []string{}
	if u.Badges != nil {
		badges = []string(u.Badges)
	}
	return ProfileResponse{
		ID:            u.ID.String(),
		UserName:      u.UserName,
		Email:         u.Email,
		PhotoURL:      u.PhotoURL,
		Bio:           u.Bio,
		CEFRLevel:     u.CEFRLevel,
		CEFRLevelName: levelName,
		XPTotal:       u.XPTotal,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
		LastAttemptAt: u.LastAttemptAt,
		Badges:        badges,
		CreatedAt:     u.CreatedAt,
	}
}
