// internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	userDTO "snop_backend/internals/features/users/user/dto"
	userModel "snop_backend/internals/features/users/user/model"
	helper "snop_backend/internals/helpers"
	authmw "snop_backend/internals/middlewares/auth"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/u/profile
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	levelName := configs.Gamification.Levels[user.CEFRLevel].Name
	return helper.JsonOK(c, "Profil ditemukan", userDTO.ToProfileResponse(&user, levelName))
}

// PUT /api/u/profile
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req userDTO.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	updates := map[string]any{}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	if err := uc.DB.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		log.Println("[ERROR] UpdateProfile:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	levelName := configs.Gamification.Levels[user.CEFRLevel].Name
	return helper.JsonUpdated(c, "Profil diperbarui", userDTO.ToProfileResponse(&user, levelName))
}

// DELETE /api/u/account
// Hapus akun beserta seluruh data turunan dalam satu transaksi.
func (uc *UserController) DeleteAccount(c *fiber.Ctx) error {
	userID, err := authmw.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		// data turunan dulu, user terakhir
		if err := tx.Exec(`DELETE FROM attempts WHERE user_id = ?`, userID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM daily_progress WHERE user_id = ?`, userID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM refresh_tokens WHERE user_id = ?`, userID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&userModel.UserModel{}, "id = ?", userID).Error
	})
	if err != nil {
		log.Println("[ERROR] DeleteAccount:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus akun")
	}

	return helper.JsonDeleted(c, "Akun dihapus", nil)
}
