// internals/features/progress/badges/controller/badge_controller.go
package controller

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	badgeService "snop_backend/internals/features/progress/badges/service"
	userModel "snop_backend/internals/features/users/user/model"
	helper "snop_backend/internals/helpers"
	authmw "snop_backend/internals/middlewares/auth"
)

type BadgeController struct {
	DB *gorm.DB
}

func NewBadgeController(db *gorm.DB) *BadgeController {
	return &BadgeController{DB: db}
}

// GET /api/badges
// Katalog badge lengkap (publik, tanpa status kepemilikan).
func (bc *BadgeController) Catalog(c *fiber.Ctx) error {
	return helper.JsonOK(c, "Katalog badge", badgeService.Catalog)
}

type ownedBadge struct {
	badgeService.Badge
	EarnedAt string `json:"earned_at,omitempty"`
}

// GET /api/u/badges
// Badge milik user + kapan didapat.
func (bc *BadgeController) MyBadges(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var user userModel.UserModel
	if err := bc.DB.Select("id", "badges", "badge_earned_at").
		First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	earnedAt := map[string]string{}
	if len(user.BadgeEarnedAt) > 0 {
		_ = sonic.Unmarshal(user.BadgeEarnedAt, &earnedAt)
	}

	out := make([]ownedBadge, 0, len(user.Badges))
	for _, id := range user.Badges {
		b, ok := badgeService.ByID(id)
		if !ok {
			continue
		}
		out = append(out, ownedBadge{Badge: b, EarnedAt: earnedAt[id]})
	}

	return helper.JsonOK(c, "Badge kamu", fiber.Map{
		"total":  len(out),
		"badges": out,
	})
}
