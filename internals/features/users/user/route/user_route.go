// internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "snop_backend/internals/features/users/user/controller"
)

// UserRoutes: endpoint profil user (sudah dibungkus AuthMiddleware di index)
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	r.Get("/profile", ctrl.GetProfile)
	r.Put("/profile", ctrl.UpdateProfile)
	r.Delete("/account", ctrl.DeleteAccount)
}
