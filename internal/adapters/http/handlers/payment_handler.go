package handlers

import (
	"errors"
	"strconv"

	"nagari-society/internal/adapters/http/middleware"
	"nagari-society/internal/config"
	"nagari-society/internal/core/domain"
	"nagari-society/internal/core/services"
	"nagari-society/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles the maintenance payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
	cfg            *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, cfg: cfg}
}

// UploadProofRequest carries a payment proof reference
type UploadProofRequest struct {
	ProofURL string `json:"proof_url"`
}

// GenerateDuesRequest names the billing period for a manual dues run
type GenerateDuesRequest struct {
	Period string `json:"period"`
}

// List returns the logged-in member's payment history
// @Summary List my payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	payments, err := h.paymentService.ListForIdentity(c.Context(), middleware.IdentityID(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to load payments")
	}

	return response.Success(c, "Payments retrieved", payments)
}

// UploadProof attaches a payment proof and marks the record paid
// @Summary Upload payment proof
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id}/proof [post]
func (h *PaymentHandler) UploadProof(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	var req UploadProofRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ProofURL == "" {
		return response.BadRequest(c, "Proof reference is required")
	}

	payment, err := h.paymentService.UploadProof(c.Context(), uint(id), middleware.IdentityID(c), req.ProofURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Payment record not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only upload proof for your own payments")
		default:
			return response.InternalServerError(c, "Failed to upload proof")
		}
	}

	return response.Success(c, "Payment proof uploaded", payment)
}

// GenerateDues creates pending dues for every member for a period
// (admin only; the same job also runs monthly on a schedule)
// @Summary Generate monthly dues
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments/generate [post]
func (h *PaymentHandler) GenerateDues(c *fiber.Ctx) error {
	var req GenerateDuesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Period == "" {
		return response.BadRequest(c, "Billing period is required")
	}

	created, err := h.paymentService.GenerateMonthlyDues(c.Context(), req.Period, h.cfg.Society.MaintenanceAmount)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate dues")
	}

	return response.Success(c, "Monthly dues generated", fiber.Map{
		"period":  req.Period,
		"created": created,
	})
}
