package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the credential scheme used since the first deployment;
// changing it only affects newly hashed passwords.
const bcryptCost = 10

// HashPassword hashes a password with bcrypt. The salt is generated by the
// library and embedded in the returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
