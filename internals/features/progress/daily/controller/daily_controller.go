// internals/features/progress/daily/controller/daily_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	"snop_backend/internals/constants"
	dailyService "snop_backend/internals/features/progress/daily/service"
	helper "snop_backend/internals/helpers"
	authmw "snop_backend/internals/middlewares/auth"
)

type DailyController struct {
	DB      *gorm.DB
	Service *dailyService.DailyService
}

func NewDailyController(db *gorm.DB) *DailyController {
	return &DailyController{
		DB:      db,
		Service: dailyService.NewDailyService(db, configs.Gamification),
	}
}

type dailyTypeStatus struct {
	Completed int  `json:"completed"`
	Limit     int  `json:"limit"` // -1 = tanpa batas
	Remaining *int `json:"remaining,omitempty"`
	CanDo     bool `json:"can_do"`
}

// GET /api/u/progress/daily
// Status limit harian per tipe + XP hari ini.
func (dc *DailyController) GetDaily(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	date := dailyService.TodayKey(time.Now())
	row, err := dc.Service.GetToday(userID, date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	status := map[string]dailyTypeStatus{}
	for _, typ := range constants.ChallengeTypes {
		completed := row.CountFor(typ)
		limit := dailyService.EffectiveLimit(configs.Gamification, typ)
		ts := dailyTypeStatus{
			Completed: completed,
			Limit:     limit,
			CanDo:     dailyService.CanAttempt(completed, limit),
		}
		if limit >= 0 {
			remaining := limit - completed
			if remaining < 0 {
				remaining = 0
			}
			ts.Remaining = &remaining
		}
		status[typ] = ts
	}

	return helper.JsonOK(c, "Progres harian", fiber.Map{
		"date":           date,
		"types":          status,
		"total_xp_today": row.TotalXPToday,
	})
}
