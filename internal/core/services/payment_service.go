package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/core/domain"

	"gorm.io/gorm"
)

// PaymentService handles maintenance dues and payment proofs
type PaymentService struct {
	paymentRepo  repositories.PaymentRepository
	identityRepo repositories.IdentityRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repositories.PaymentRepository, identityRepo repositories.IdentityRepository) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		identityRepo: identityRepo,
	}
}

// ListForIdentity lists payment records belonging to one member
func (s *PaymentService) ListForIdentity(ctx context.Context, identityID uint) ([]*models.PaymentRecord, error) {
	return s.paymentRepo.ListByIdentity(ctx, identityID)
}

// UploadProof attaches a payment proof reference and marks the record
// Paid. Members can only attach proof to their own dues.
func (s *PaymentService) UploadProof(ctx context.Context, paymentID, identityID uint, proofRef string) (*models.PaymentRecord, error) {
	if strings.TrimSpace(proofRef) == "" {
		return nil, domain.ErrInvalidInput
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if payment.IdentityID != identityID {
		return nil, domain.ErrForbidden
	}

	payment.ProofURL = strings.TrimSpace(proofRef)
	payment.Status = models.PaymentPaid
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GenerateMonthlyDues creates a pending maintenance due for every
// member for the billing period, skipping members already billed.
// Returns the number of dues created.
func (s *PaymentService) GenerateMonthlyDues(ctx context.Context, period string, amount float64) (int, error) {
	if period == "" || amount <= 0 {
		return 0, domain.ErrInvalidInput
	}

	created := 0
	offset := 0
	const batch = 200
	for {
		identities, _, err := s.identityRepo.List(ctx, offset, batch)
		if err != nil {
			return created, err
		}
		if len(identities) == 0 {
			break
		}

		for _, identity := range identities {
			if identity.Role != models.RoleMember {
				continue
			}
			exists, err := s.paymentRepo.ExistsForPeriod(ctx, identity.ID, period)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}

			due := &models.PaymentRecord{
				IdentityID: identity.ID,
				Amount:     amount,
				Period:     period,
				Method:     models.MethodUPI,
				Status:     models.PaymentPending,
				Type:       "Maintenance",
			}
			if err := s.paymentRepo.Create(ctx, due); err != nil {
				return created, err
			}
			created++
		}

		offset += batch
	}

	if created > 0 {
		log.Printf("✅ Generated %d maintenance dues for %s", created, period)
	}
	return created, nil
}
