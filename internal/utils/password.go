package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a bcrypt hash at the default cost. Owner passwords
// are only ever stored hashed; the plaintext never reaches a repository.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
