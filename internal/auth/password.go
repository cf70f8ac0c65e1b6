package auth

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt cost used for new passwords.
var HashCost = 11

// maxPasswordBytes is the longest input bcrypt accepts. Longer passwords are
// truncated so both hashing and verification see the same bytes.
const maxPasswordBytes = 72

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(passwordBytes(password), HashCost)
	return string(bytes), err
}

// VerifyPassword verifies if the given password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(password))
	return err == nil
}
