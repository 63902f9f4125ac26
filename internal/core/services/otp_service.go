package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"nagari-society/internal/core/domain"
)

// ============================================================
// OTP Service - phone verification for new registrations
// ============================================================

const (
	otpLength      = 4
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 5
)

// OTPEntry represents a single OTP record in memory
type OTPEntry struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// OTPService issues and verifies one-time codes for phone numbers.
// Entries live in memory only; a restart simply forces a re-request.
type OTPService struct {
	store     map[string]*OTPEntry // key = normalized phone
	mu        sync.RWMutex
	fixedCode string // dev mode: issue this code instead of a random one
}

// NewOTPService creates a new OTP service. A non-empty fixedCode makes
// every issued OTP that value (dev mode, no SMS gateway attached).
func NewOTPService(fixedCode string) *OTPService {
	svc := &OTPService{
		store:     make(map[string]*OTPEntry),
		fixedCode: fixedCode,
	}
	// Cleanup expired OTPs every 5 minutes
	go svc.cleanupLoop()
	return svc
}

// Issue creates a new OTP for a phone number.
// Returns the code (to be handed to the SMS dispatcher).
func (s *OTPService) Issue(phone string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-request throttle: an entry younger than a minute means the
	// caller just asked for one.
	if existing, ok := s.store[phone]; ok {
		if time.Until(existing.ExpiresAt) > otpTTL-time.Minute {
			return "", fmt.Errorf("please wait a minute before requesting a new otp")
		}
	}

	code := s.fixedCode
	if code == "" {
		generated, err := generateSecureOTP(otpLength)
		if err != nil {
			return "", fmt.Errorf("could not generate otp: %w", err)
		}
		code = generated
	}

	s.store[phone] = &OTPEntry{
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}

	return code, nil
}

// Verify checks the provided OTP against the issued one. The entry is
// kept on failure (attempts counted) and discarded once the attempt cap
// is hit, forcing a fresh issue.
func (s *OTPService) Verify(phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store[phone]
	if !ok {
		return domain.ErrOTPExpired
	}

	if time.Now().After(entry.ExpiresAt) {
		delete(s.store, phone)
		return domain.ErrOTPExpired
	}

	if entry.Attempts >= otpMaxAttempts {
		delete(s.store, phone)
		return domain.ErrOTPExpired
	}

	entry.Attempts++
	if entry.Code != code {
		return domain.ErrInvalidOTP
	}

	return nil
}

// Clear removes the OTP after successful verification
func (s *OTPService) Clear(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, phone)
}

// cleanupLoop periodically removes expired OTPs
func (s *OTPService) cleanupLoop() {
	ticker := time.NewTicker(otpTTL)
	for range ticker.C {
		s.mu.Lock()
		for key, entry := range s.store {
			if time.Now().After(entry.ExpiresAt) {
				delete(s.store, key)
			}
		}
		s.mu.Unlock()
	}
}

// generateSecureOTP generates a cryptographically secure random OTP
func generateSecureOTP(length int) (string, error) {
	result := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		result += fmt.Sprintf("%d", n.Int64())
	}
	return result, nil
}
