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

// NoticeHandler handles the notice board endpoints
type NoticeHandler struct {
	noticeService *services.NoticeService
}

// NewNoticeHandler creates a new notice handler
func NewNoticeHandler(noticeService *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// List returns all notices, newest first, with read flags for the viewer
// @Summary List notices
// @Tags Notices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notices [get]
func (h *NoticeHandler) List(c *fiber.Ctx) error {
	notices, err := h.noticeService.List(c.Context(), middleware.IdentityID(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to load notices")
	}

	return response.Success(c, "Notices retrieved", notices)
}

// Get returns a single notice
// @Summary Get notice
// @Tags Notices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notices/{id} [get]
func (h *NoticeHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notice ID")
	}

	notice, err := h.noticeService.Get(c.Context(), uint(id), middleware.IdentityID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Notice not found")
		}
		return response.InternalServerError(c, "Failed to load notice")
	}

	return response.Success(c, "Notice retrieved", notice)
}

// Create posts a new notice (admin only)
// @Summary Create notice
// @Tags Notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notices [post]
func (h *NoticeHandler) Create(c *fiber.Ctx) error {
	var input services.CreateNoticeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" || input.Content == "" {
		return response.BadRequest(c, "Title and content are required")
	}

	notice, err := h.noticeService.Create(c.Context(), &input, middleware.FullName(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create notice")
	}

	return response.Created(c, "Notice posted", notice)
}

// MarkRead records that the viewer has read a notice
// @Summary Mark notice as read
// @Tags Notices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notices/{id}/read [post]
func (h *NoticeHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notice ID")
	}

	if err := h.noticeService.MarkRead(c.Context(), uint(id), middleware.IdentityID(c)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Notice not found")
		}
		return response.InternalServerError(c, "Failed to mark notice as read")
	}

	return response.Success(c, "Notice marked as read", nil)
}
