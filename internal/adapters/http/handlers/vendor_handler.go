package handlers

import (
	"errors"
	"strconv"

	"nagari-society/internal/core/domain"
	"nagari-society/internal/core/services"
	"nagari-society/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VendorHandler handles the vendor contract endpoints
type VendorHandler struct {
	vendorService *services.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *services.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// List returns all vendors with derived contract status
// @Summary List vendors
// @Tags Vendors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	vendors, err := h.vendorService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load vendors")
	}

	return response.Success(c, "Vendors retrieved", vendors)
}

// Get returns a single vendor
// @Summary Get vendor
// @Tags Vendors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /vendors/{id} [get]
func (h *VendorHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid vendor ID")
	}

	vendor, err := h.vendorService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Vendor not found")
		}
		return response.InternalServerError(c, "Failed to load vendor")
	}

	return response.Success(c, "Vendor retrieved", vendor)
}

// Create registers a new vendor contract (admin only)
// @Summary Create vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /vendors [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var input services.CreateVendorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" || input.Service == "" {
		return response.BadRequest(c, "Name and service are required")
	}

	vendor, err := h.vendorService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create vendor")
	}

	return response.Created(c, "Vendor registered", vendor)
}

// ExpiringSoon lists vendors whose contracts end within the renewal window
// @Summary List expiring vendors
// @Tags Vendors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /vendors/expiring [get]
func (h *VendorHandler) ExpiringSoon(c *fiber.Ctx) error {
	vendors, err := h.vendorService.ExpiringSoon(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load expiring vendors")
	}

	return response.Success(c, "Expiring vendors retrieved", vendors)
}
