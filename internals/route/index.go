// internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"snop_backend/internals/constants"
	challengeRoute "snop_backend/internals/features/challenges/challenge/route"
	badgeController "snop_backend/internals/features/progress/badges/controller"
	cefrController "snop_backend/internals/features/progress/cefr/controller"
	dailyController "snop_backend/internals/features/progress/daily/controller"
	leaderboardController "snop_backend/internals/features/progress/leaderboard/controller"
	submissionController "snop_backend/internals/features/submissions/attempt/controller"
	authRoute "snop_backend/internals/features/users/auth/route"
	userRoute "snop_backend/internals/features/users/user/route"
	"snop_backend/internals/middlewares"
	authmw "snop_backend/internals/middlewares/auth"
)

// SetupRoutes mendaftarkan seluruh endpoint aplikasi
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api", middlewares.DBMiddleware(db), middlewares.GlobalRateLimiter())

	// ===== Publik =====
	authRoute.AuthRoutes(api, db)

	badgeCtrl := badgeController.NewBadgeController(db)
	api.Get("/badges", badgeCtrl.Catalog)

	// ===== Butuh login =====
	protected := api.Group("", authmw.AuthMiddleware(db))

	challengeRoute.ChallengeRoutes(protected, db)

	subCtrl := submissionController.NewSubmissionController(db)
	protected.Post("/challenges/submit", middlewares.AIRateLimiter(), subCtrl.Submit)
	protected.Post("/challenges/irl/verify", middlewares.AIRateLimiter(), subCtrl.VerifyIRL)

	lbCtrl := leaderboardController.NewLeaderboardController(db)
	protected.Get("/leaderboard", lbCtrl.Get)

	// ===== /api/u: data milik user =====
	u := api.Group("/u", authmw.AuthMiddleware(db))
	userRoute.UserRoutes(u, db)

	cefrCtrl := cefrController.NewCEFRController(db)
	u.Get("/progress", cefrCtrl.GetProgress)

	dailyCtrl := dailyController.NewDailyController(db)
	u.Get("/progress/daily", dailyCtrl.GetDaily)

	u.Get("/attempts", subCtrl.ListAttempts)
	u.Get("/badges", badgeCtrl.MyBadges)

	// ===== /api/a: admin =====
	a := api.Group("/a",
		authmw.AuthMiddleware(db),
		authmw.OnlyRoles(constants.RoleErrorAdmin("kelola tantangan"), constants.RoleAdmin),
	)
	challengeRoute.AdminChallengeRoutes(a, db)
}
