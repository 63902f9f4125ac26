package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/config"
	"nagari-society/internal/core/domain"
	"nagari-society/internal/pkg/password"

	"gorm.io/gorm"
)

// DirectoryService is the identity directory: it resolves phone numbers
// to registered identities and owns credential verification. MPIN
// hashing never leaves this boundary.
type DirectoryService struct {
	identityRepo repositories.IdentityRepository
	cfg          *config.Config
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(identityRepo repositories.IdentityRepository, cfg *config.Config) *DirectoryService {
	return &DirectoryService{
		identityRepo: identityRepo,
		cfg:          cfg,
	}
}

// LookupResult is the outcome of a phone lookup
type LookupResult struct {
	Exists      bool   `json:"exists"`
	DisplayName string `json:"display_name,omitempty"`
}

// NormalizePhone strips formatting from a phone number and resolves the
// admin alias to the seeded admin phone. Anything shorter than 10
// digits is rejected.
func (s *DirectoryService) NormalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && strings.EqualFold(trimmed, s.cfg.Admin.Alias) {
		return s.cfg.Admin.Phone, nil
	}

	var digits strings.Builder
	for _, ch := range trimmed {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	phone := digits.String()
	if len(phone) < 10 {
		return "", domain.ErrInvalidPhone
	}
	return phone, nil
}

// Lookup resolves a phone number to an existing identity
func (s *DirectoryService) Lookup(ctx context.Context, rawPhone string) (*LookupResult, error) {
	phone, err := s.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	identity, err := s.identityRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LookupResult{Exists: false}, nil
		}
		return nil, err
	}

	return &LookupResult{Exists: true, DisplayName: identity.FullName}, nil
}

// Authenticate verifies an MPIN for a phone number. The comparison is
// bcrypt behind this boundary; callers only see success or
// ErrInvalidCredentials.
func (s *DirectoryService) Authenticate(ctx context.Context, rawPhone, mpin string) (*models.Identity, error) {
	phone, err := s.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	identity, err := s.identityRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.VerifyMPIN(mpin, identity.MPINHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return identity, nil
}

// Register upserts an identity by phone number. A prior record with the
// same phone is replaced, not merged; role is always member.
func (s *DirectoryService) Register(ctx context.Context, fullName, rawPhone, flatID, mpin string) (*models.Identity, error) {
	phone, err := s.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	hash, err := password.HashMPIN(mpin)
	if err != nil {
		return nil, err
	}

	existing, err := s.identityRepo.GetByPhone(ctx, phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.FullName = fullName
		existing.FlatID = flatID
		existing.Role = models.RoleMember
		existing.MPINHash = hash
		if err := s.identityRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		log.Printf("✅ Identity re-registered: %s (%s)", fullName, phone)
		return existing, nil
	}

	identity := &models.Identity{
		FullName: fullName,
		Phone:    phone,
		FlatID:   flatID,
		Role:     models.RoleMember,
		MPINHash: hash,
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		return nil, err
	}

	log.Printf("✅ Identity registered: %s (%s)", fullName, phone)
	return identity, nil
}

// GetByID gets an identity by ID
func (s *DirectoryService) GetByID(ctx context.Context, id uint) (*models.Identity, error) {
	identity, err := s.identityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	return identity, nil
}

// ListMembers lists identities with pagination (admin directory view)
func (s *DirectoryService) ListMembers(ctx context.Context, offset, limit int) ([]*models.IdentityResponse, int64, error) {
	identities, total, err := s.identityRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.IdentityResponse, 0, len(identities))
	for _, identity := range identities {
		responses = append(responses, identity.ToResponse())
	}
	return responses, total, nil
}
