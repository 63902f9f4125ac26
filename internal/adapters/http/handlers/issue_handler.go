package handlers

import (
	"errors"
	"strconv"

	"nagari-society/internal/adapters/http/middleware"
	"nagari-society/internal/core/domain"
	"nagari-society/internal/core/services"
	"nagari-society/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// IssueHandler handles the complaint endpoints
type IssueHandler struct {
	issueService *services.IssueService
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// UpdateIssueStatusRequest carries an admin status change for a complaint
type UpdateIssueStatusRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
}

// List returns complaints: admins see all, members only their own
// @Summary List complaints
// @Tags Issues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /issues [get]
func (h *IssueHandler) List(c *fiber.Ctx) error {
	issues, err := h.issueService.List(c.Context(), middleware.IdentityID(c), middleware.Role(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to load complaints")
	}

	return response.Success(c, "Complaints retrieved", issues)
}

// Get returns a single complaint
// @Summary Get complaint
// @Tags Issues
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /issues/{id} [get]
func (h *IssueHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid issue ID")
	}

	issue, err := h.issueService.Get(c.Context(), uint(id), middleware.IdentityID(c), middleware.Role(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Complaint not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only view your own complaints")
		default:
			return response.InternalServerError(c, "Failed to load complaint")
		}
	}

	return response.Success(c, "Complaint retrieved", issue)
}

// Create files a new complaint for the logged-in member
// @Summary File complaint
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /issues [post]
func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var input services.CreateIssueInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" || input.Description == "" {
		return response.BadRequest(c, "Title and description are required")
	}

	issue, err := h.issueService.Create(c.Context(), middleware.IdentityID(c), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to file complaint")
	}

	return response.Created(c, "Complaint filed", issue)
}

// UpdateStatus moves a complaint through its lifecycle (admin only)
// @Summary Update complaint status
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /issues/{id}/status [patch]
func (h *IssueHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid issue ID")
	}

	var req UpdateIssueStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	issue, err := h.issueService.UpdateStatus(c.Context(), uint(id), req.Status, req.Resolution)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Complaint not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update complaint")
		}
	}

	return response.Success(c, "Complaint updated", issue)
}
