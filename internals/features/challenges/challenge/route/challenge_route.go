// internals/features/challenges/challenge/route/challenge_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	challengeController "snop_backend/internals/features/challenges/challenge/controller"
)

// ChallengeRoutes: endpoint user (dibungkus AuthMiddleware di index)
func ChallengeRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := challengeController.NewChallengeController(db)

	ch := r.Group("/challenges")
	ch.Get("/today", ctrl.GetToday)
	ch.Get("/:id", ctrl.GetByID)
}

// AdminChallengeRoutes: endpoint admin kelola pool
func AdminChallengeRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := challengeController.NewAdminChallengeController(db)

	ch := r.Group("/challenges")
	ch.Get("/", ctrl.List)
	ch.Post("/", ctrl.Create)
	ch.Post("/generate", ctrl.Generate)
	ch.Get("/pool/stats", ctrl.PoolStats)
	ch.Get("/pool/health", ctrl.PoolHealth)
	ch.Post("/:id/reset", ctrl.Reset)
	ch.Put("/:id", ctrl.Update)
	ch.Delete("/:id", ctrl.Delete)
}
