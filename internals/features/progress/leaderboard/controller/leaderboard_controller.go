// internals/features/progress/leaderboard/controller/leaderboard_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "snop_backend/internals/helpers"
)

type LeaderboardController struct {
	DB *gorm.DB
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

type leaderboardRow struct {
	Rank     int     `json:"rank" gorm:"-"`
	UserID   string  `json:"user_id"`
	UserName string  `json:"user_name"`
	PhotoURL *string `json:"photo_url,omitempty"`
	XP       int64   `json:"xp"`
}

// GET /api/leaderboard?period=all|daily|weekly&limit=50
// all     = ranking xp_total
// daily   = jumlah XP attempt hari ini (UTC)
// weekly  = jumlah XP attempt 7 hari terakhir
func (lc *LeaderboardController) Get(c *fiber.Ctx) error {
	period := c.Query("period", "all")
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows []leaderboardRow
	var err error

	switch period {
	case "all":
		err = lc.DB.Raw(`
			SELECT u.id AS user_id, u.user_name, u.photo_url, u.xp_total AS xp
			FROM users u
			WHERE u.deleted_at IS NULL AND u.is_active
			ORDER BY u.xp_total DESC, u.created_at ASC
			LIMIT ?`, limit).Scan(&rows).Error
	case "daily", "weekly":
		cutoff := time.Now().UTC().Truncate(24 * time.Hour)
		if period == "weekly" {
			cutoff = cutoff.AddDate(0, 0, -6)
		}
		err = lc.DB.Raw(`
			SELECT u.id AS user_id, u.user_name, u.photo_url, COALESCE(SUM(a.xp_earned), 0) AS xp
			FROM attempts a
			JOIN users u ON u.id = a.user_id
			WHERE a.created_at >= ? AND u.deleted_at IS NULL AND u.is_active
			GROUP BY u.id, u.user_name, u.photo_url
			HAVING SUM(a.xp_earned) > 0
			ORDER BY xp DESC
			LIMIT ?`, cutoff, limit).Scan(&rows).Error
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "period harus all, daily, atau weekly")
	}

	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return helper.JsonOK(c, "Leaderboard", fiber.Map{
		"period":  period,
		"entries": rows,
	})
}
