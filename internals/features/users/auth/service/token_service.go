// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"snop_backend/internals/configs"
	authModel "snop_backend/internals/features/users/auth/model"
	userModel "snop_backend/internals/features/users/user/model"
)

func accessTTL() time.Duration {
	return time.Duration(configs.GetEnvInt("ACCESS_TOKEN_TTL_MINUTES", 60)) * time.Minute
}

func refreshTTL() time.Duration {
	return time.Duration(configs.GetEnvInt("REFRESH_TOKEN_TTL_DAYS", 7)) * 24 * time.Hour
}

// CreateAccessToken membuat JWT access token (HS256)
func CreateAccessToken(u *userModel.UserModel, now time.Time) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT_SECRET belum di-set")
	}
	claims := jwt.MapClaims{
		"id":        u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL()).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

// CreateRefreshToken membuat refresh JWT + menyimpan HASH-nya di DB
func CreateRefreshToken(db *gorm.DB, c *fiber.Ctx, userID uuid.UUID, now time.Time) (string, error) {
	if configs.JWTRefreshSecret == "" {
		return "", errors.New("JWT_REFRESH_SECRET belum di-set")
	}
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"jti": randomHex(16),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL()).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", err
	}

	rec := authModel.RefreshToken{
		UserID:    userID,
		TokenHash: ComputeRefreshHash(token),
		ExpiresAt: now.Add(refreshTTL()),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}
	if err := db.Create(&rec).Error; err != nil {
		return "", err
	}
	return token, nil
}

// ComputeRefreshHash: HMAC-SHA256 refresh token dengan refresh secret
func ComputeRefreshHash(token string) []byte {
	mac := hmac.New(sha256.New, []byte(configs.JWTRefreshSecret))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

// FindActiveRefreshToken cari refresh token yang belum revoked & belum expired
func FindActiveRefreshToken(db *gorm.DB, token string) (*authModel.RefreshToken, error) {
	var rt authModel.RefreshToken
	err := db.
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > NOW()", ComputeRefreshHash(token)).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// RevokeRefreshToken menandai refresh token tidak berlaku lagi (rotate/logout)
func RevokeRefreshToken(db *gorm.DB, id uuid.UUID, now time.Time) error {
	return db.Model(&authModel.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

// BlacklistAccessToken memasukkan access token ke blacklist sampai expired
func BlacklistAccessToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiredAt,
	}).Error
}

// SetRefreshCookie set refresh token sebagai httpOnly cookie
func SetRefreshCookie(c *fiber.Ctx, token string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  now.Add(refreshTTL()),
		HTTPOnly: true,
		Secure:   configs.GetEnv("APP_ENV", "development") == "production",
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

// ClearRefreshCookie menghapus cookie refresh saat logout
func ClearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/api/auth",
	})
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
