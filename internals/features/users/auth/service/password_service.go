// internals/features/users/auth/service/password_service.go
package service

import "golang.org/x/crypto/bcrypt"

// HashPassword hash password pakai bcrypt default cost
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword membandingkan password plaintext dengan hash di DB
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
