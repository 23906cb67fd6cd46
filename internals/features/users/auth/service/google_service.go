// internals/features/users/auth/service/google_service.go
package service

import (
	"errors"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"

	"snop_backend/internals/configs"
)

// GoogleProfile hasil verifikasi id_token dari aplikasi mobile
type GoogleProfile struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// VerifyGoogleIDToken memverifikasi id_token terhadap client ID kita
func VerifyGoogleIDToken(idToken string) (*GoogleProfile, error) {
	if configs.GoogleClientID == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID belum di-set")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, err
	}

	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, errors.New("id_token tidak memuat email")
	}

	return &GoogleProfile{
		Sub:     claims.Sub,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
