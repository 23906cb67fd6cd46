// internals/features/users/auth/dto/auth_dto.go
package dto

type RegisterRequest struct {
	// opsional; kosong = dipakai bagian lokal email
	UserName string `json:"user_name" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// AuthUserResponse dikirim balik ke aplikasi setelah login/register
type AuthUserResponse struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CEFRLevel string `json:"cefr_level"`
	XPTotal   int    `json:"xp_total"`
}

type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	User        AuthUserResponse `json:"user"`
}
