package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/core/domain"

	"gorm.io/gorm"
)

// ExpiringWindowDays is how close to contract end a vendor is flagged
// as Expiring
const ExpiringWindowDays = 30

// VendorService handles vendor contracts
type VendorService struct {
	vendorRepo repositories.VendorRepository
}

// NewVendorService creates a new vendor service
func NewVendorService(vendorRepo repositories.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// CreateVendorInput carries the vendor form fields
type CreateVendorInput struct {
	Name          string    `json:"name"`
	Service       string    `json:"service"`
	ContractStart time.Time `json:"contract_start"`
	ContractEnd   time.Time `json:"contract_end"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	ContactPerson string    `json:"contact_person"`
	Description   string    `json:"description"`
}

// ContractStatus derives the vendor status from the contract end date.
// Returns the status and, for expiring contracts, the days remaining.
func ContractStatus(contractEnd, now time.Time) (string, int) {
	if contractEnd.Before(now) {
		return models.VendorExpired, 0
	}
	days := int(contractEnd.Sub(now).Hours() / 24)
	if days <= ExpiringWindowDays {
		return models.VendorExpiring, days
	}
	return models.VendorActive, 0
}

// List lists vendors with their computed contract status
func (s *VendorService) List(ctx context.Context) ([]*models.VendorResponse, error) {
	vendors, err := s.vendorRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]*models.VendorResponse, 0, len(vendors))
	for _, vendor := range vendors {
		responses = append(responses, vendorResponse(vendor, now))
	}
	return responses, nil
}

// Get gets a vendor with its computed contract status
func (s *VendorService) Get(ctx context.Context, id uint) (*models.VendorResponse, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return vendorResponse(vendor, time.Now()), nil
}

// Create records a new vendor contract (admin only, enforced at the route)
func (s *VendorService) Create(ctx context.Context, input *CreateVendorInput) (*models.VendorResponse, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Service) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.ContractEnd.Before(input.ContractStart) {
		return nil, domain.ErrInvalidInput
	}

	vendor := &models.Vendor{
		Name:          strings.TrimSpace(input.Name),
		Service:       strings.TrimSpace(input.Service),
		ContractStart: input.ContractStart,
		ContractEnd:   input.ContractEnd,
		Phone:         input.Phone,
		Email:         input.Email,
		ContactPerson: input.ContactPerson,
		Description:   input.Description,
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendorResponse(vendor, time.Now()), nil
}

// ExpiringSoon lists vendors whose contract ends inside the expiring window
func (s *VendorService) ExpiringSoon(ctx context.Context) ([]*models.VendorResponse, error) {
	cutoff := time.Now().AddDate(0, 0, ExpiringWindowDays)
	vendors, err := s.vendorRepo.ListEndingBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]*models.VendorResponse, 0, len(vendors))
	for _, vendor := range vendors {
		if vendor.ContractEnd.Before(now) {
			continue // already expired
		}
		responses = append(responses, vendorResponse(vendor, now))
	}
	return responses, nil
}

func vendorResponse(vendor *models.Vendor, now time.Time) *models.VendorResponse {
	status, days := ContractStatus(vendor.ContractEnd, now)
	return &models.VendorResponse{
		ID:            vendor.ID,
		Name:          vendor.Name,
		Service:       vendor.Service,
		Status:        status,
		ExpiresInDays: days,
		ContractStart: vendor.ContractStart,
		ContractEnd:   vendor.ContractEnd,
		Phone:         vendor.Phone,
		Email:         vendor.Email,
		ContactPerson: vendor.ContactPerson,
		Description:   vendor.Description,
	}
}
