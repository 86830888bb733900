package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

const (
	// VerificationCodeTTL applies to signup and resend alike; resending
	// always restarts the window.
	VerificationCodeTTL = 10 * time.Minute
	// ResetTokenTTL bounds the forgot-password flow.
	ResetTokenTTL = 10 * time.Minute

	resetTokenBytes = 20
)

// GenerateVerificationCode returns a uniformly random 6-digit decimal code
// in [100000, 999999].
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateResetToken returns a hex-encoded random token carrying 20 bytes of
// entropy.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
