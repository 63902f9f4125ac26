package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MPINLength is the required MPIN length
	MPINLength = 4
)

// HashMPIN hashes an MPIN using bcrypt
func HashMPIN(mpin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(mpin), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyMPIN compares an MPIN with a stored hash
func VerifyMPIN(mpin, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(mpin))
	return err == nil
}

// HashToken hashes a token using SHA256 (for refresh tokens)
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ValidMPIN checks if an MPIN is exactly four digits
func ValidMPIN(mpin string) bool {
	if len(mpin) != MPINLength {
		return false
	}
	for _, ch := range mpin {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
