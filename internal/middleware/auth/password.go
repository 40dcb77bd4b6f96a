package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a login names an unknown user so the
// response time does not reveal whether the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("playnext-dummy-password"), bcrypt.DefaultCost)

// HashPassword creates a bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword))
}

// BurnPasswordCheck spends the same effort as VerifyPassword and always fails.
func BurnPasswordCheck(providedPassword string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(providedPassword))
}
