// internals/features/users/auth/service/auth_service.go
package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	authDTO "snop_backend/internals/features/users/auth/dto"
	userModel "snop_backend/internals/features/users/user/model"
	cefrService "snop_backend/internals/features/progress/cefr/service"
	helper "snop_backend/internals/helpers"
)

/* ==========================================================
   Service autentikasi: register, login (password & Google),
   refresh token (rotasi), dan logout (blacklist).
   ========================================================== */

// Register membuat akun baru + state gamifikasi awal (A1 terbuka)
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	now := time.Now().UTC()
	progressJSON, err := cefrService.ProgressToJSON(cefrService.InitialProgress(configs.Gamification, now))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyiapkan progres awal")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.UserName)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	user := userModel.UserModel{
		UserName:     name,
		Email:        email,
		Password:     &hashed,
		CEFRLevel:    "A1",
		CEFRProgress: progressJSON,
	}
	user.SetDefaultValues()

	if err := db.Create(&user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		log.Println("[ERROR] Register:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	return issueTokens(db, c, &user, "Registrasi berhasil", fiber.StatusCreated)
}

// Login email + password
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var user userModel.UserModel
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if user.Password == nil || !CheckPassword(*user.Password, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	return issueTokens(db, c, &user, "Login berhasil", fiber.StatusOK)
}

// LoginGoogle menerima id_token Google, auto-register kalau belum ada akun
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	profile, err := VerifyGoogleIDToken(req.IDToken)
	if err != nil {
		log.Println("[ERROR] Verifikasi id_token gagal:", err)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token Google tidak valid")
	}

	email := strings.ToLower(profile.Email)

	var user userModel.UserModel
	err = db.Where("google_id = ? OR email = ?", profile.Sub, email).First(&user).Error
	switch {
	case err == nil:
		// link akun lama yang belum punya google_id
		if user.GoogleID == nil {
			if err := db.Model(&user).Update("google_id", profile.Sub).Error; err != nil {
				log.Println("[WARNING] Gagal link google_id:", err)
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now().UTC()
		progressJSON, jerr := cefrService.ProgressToJSON(cefrService.InitialProgress(configs.Gamification, now))
		if jerr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyiapkan progres awal")
		}
		name := profile.Name
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		user = userModel.UserModel{
			UserName:     name,
			Email:        email,
			GoogleID:     &profile.Sub,
			CEFRLevel:    "A1",
			CEFRProgress: progressJSON,
		}
		if profile.Picture != "" {
			user.PhotoURL = &profile.Picture
		}
		user.SetDefaultValues()
		if err := db.Create(&user).Error; err != nil {
			log.Println("[ERROR] Auto-register Google:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
		}
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	return issueTokens(db, c, &user, "Login berhasil", fiber.StatusOK)
}

// RefreshToken merotasi refresh token dari cookie dan mengeluarkan access baru
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	rt, err := FindActiveRefreshToken(db, refreshCookie)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	now := time.Now().UTC()

	// ROTATE: revoke token lama dulu
	if err := RevokeRefreshToken(db, rt.ID, now); err != nil {
		log.Println("[WARNING] Gagal revoke refresh lama:", err)
	}

	access, err := CreateAccessToken(&user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal buat access baru")
	}
	refresh, err := CreateRefreshToken(db, c, user.ID, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal buat refresh baru")
	}
	SetRefreshCookie(c, refresh, now)

	return helper.JsonOK(c, "Token diperbarui", fiber.Map{
		"access_token": access,
	})
}

// Logout: blacklist access token + revoke refresh token + hapus cookie
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	now := time.Now().UTC()

	// access token dari header
	auth := strings.TrimSpace(c.Get("Authorization"))
	if fields := strings.Fields(auth); len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		token := fields[1]
		expiredAt := now.Add(24 * time.Hour)
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(configs.JWTSecret), nil
		}); err == nil {
			if exp, ok := claims["exp"].(float64); ok {
				expiredAt = time.Unix(int64(exp), 0)
			}
		}
		if err := BlacklistAccessToken(db, token, expiredAt); err != nil {
			log.Println("[WARNING] Gagal blacklist token:", err)
		}
	}

	// refresh token dari cookie
	if refreshCookie := strings.TrimSpace(c.Cookies("refresh_token")); refreshCookie != "" {
		if rt, err := FindActiveRefreshToken(db, refreshCookie); err == nil {
			_ = RevokeRefreshToken(db, rt.ID, now)
		}
	}
	ClearRefreshCookie(c)

	return helper.JsonOK(c, "Logout berhasil", nil)
}

/* ===== internal ===== */

func issueTokens(db *gorm.DB, c *fiber.Ctx, user *userModel.UserModel, message string, status int) error {
	now := time.Now().UTC()

	access, err := CreateAccessToken(user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	refresh, err := CreateRefreshToken(db, c, user.ID, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}
	SetRefreshCookie(c, refresh, now)

	resp := authDTO.TokenResponse{
		AccessToken: access,
		User: authDTO.AuthUserResponse{
			ID:        user.ID.String(),
			UserName:  user.UserName,
			Email:     user.Email,
			Role:      user.Role,
			CEFRLevel: user.CEFRLevel,
			XPTotal:   user.XPTotal,
		},
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    resp,
	})
}
