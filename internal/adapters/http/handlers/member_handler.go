package handlers

import (
	"errors"

	"nagari-society/internal/adapters/http/middleware"
	"nagari-society/internal/core/domain"
	"nagari-society/internal/core/services"
	"nagari-society/internal/pkg/pagination"
	"nagari-society/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles the member directory endpoints
type MemberHandler struct {
	directoryService *services.DirectoryService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(directoryService *services.DirectoryService) *MemberHandler {
	return &MemberHandler{directoryService: directoryService}
}

// Me returns the logged-in identity
// @Summary Current identity
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /me [get]
func (h *MemberHandler) Me(c *fiber.Ctx) error {
	identity, err := h.directoryService.GetByID(c.Context(), middleware.IdentityID(c))
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return response.NotFound(c, "Identity not found")
		}
		return response.InternalServerError(c, "Failed to load identity")
	}

	return response.Success(c, "Identity retrieved", identity.ToResponse())
}

// List returns the member directory, paginated
// @Summary List members
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.directoryService.ListMembers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load members")
	}

	return response.Success(c, "Members retrieved", pagination.NewResponse(members, params, total))
}
