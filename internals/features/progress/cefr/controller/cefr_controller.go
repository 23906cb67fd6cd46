// internals/features/progress/cefr/controller/cefr_controller.go
package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	"snop_backend/internals/constants"
	cefrService "snop_backend/internals/features/progress/cefr/service"
	userModel "snop_backend/internals/features/users/user/model"
	helper "snop_backend/internals/helpers"
	authmw "snop_backend/internals/middlewares/auth"
)

type CEFRController struct {
	DB *gorm.DB
}

func NewCEFRController(db *gorm.DB) *CEFRController {
	return &CEFRController{DB: db}
}

type roadmapLevel struct {
	Level         string  `json:"level"`
	Name          string  `json:"name"`
	Required      int     `json:"required"`
	Completed     int     `json:"completed"`
	Percentage    int     `json:"percentage"`
	Unlocked      bool    `json:"unlocked"`
	UnlockedAt    *string `json:"unlocked_at,omitempty"`
	Current       bool    `json:"current"`
	UnlockMessage string  `json:"unlock_message,omitempty"`
}

// GET /api/u/progress
// Roadmap CEFR lengkap: progres per level + level aktif.
func (cc *CEFRController) GetProgress(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var user userModel.UserModel
	if err := cc.DB.Select("id", "cefr_level", "cefr_progress", "xp_total").
		First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	progress, err := cefrService.ProgressFromJSON(user.CEFRProgress)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Progres korup")
	}

	cfg := configs.Gamification
	roadmap := make([]roadmapLevel, 0, len(constants.CEFRLevels))
	for i, lvl := range constants.CEFRLevels {
		st := progress[lvl]
		row := roadmapLevel{
			Level:     lvl,
			Name:      cfg.Levels[lvl].Name,
			Required:  cfg.Levels[lvl].RequiredCompletions,
			Completed: st.Completed,
			Unlocked:  st.Unlocked,
			Current:   lvl == user.CEFRLevel,
		}
		if row.Required > 0 {
			pct := st.Completed * 100 / row.Required
			if pct > 100 {
				pct = 100
			}
			row.Percentage = pct
		}
		if st.UnlockedAt != nil {
			s := st.UnlockedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
			row.UnlockedAt = &s
		}
		if !st.Unlocked && i > 0 {
			prev := constants.CEFRLevels[i-1]
			sisa := cfg.Levels[prev].RequiredCompletions - progress[prev].Completed
			if sisa > 0 {
				row.UnlockMessage = fmt.Sprintf("Fullfør %d utfordringer til på %s for å låse opp", sisa, prev)
			}
		}
		roadmap = append(roadmap, row)
	}

	return helper.JsonOK(c, "Progres CEFR", fiber.Map{
		"current_level": user.CEFRLevel,
		"level_name":    cfg.Levels[user.CEFRLevel].Name,
		"xp_total":      user.XPTotal,
		"roadmap":       roadmap,
	})
}
