package handlers

import (
	"errors"
	"strconv"

	"nagari-society/internal/core/domain"
	"nagari-society/internal/core/services"
	"nagari-society/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AGMHandler handles the annual general meeting endpoints
type AGMHandler struct {
	agmService *services.AGMService
}

// NewAGMHandler creates a new AGM handler
func NewAGMHandler(agmService *services.AGMService) *AGMHandler {
	return &AGMHandler{agmService: agmService}
}

// RecordOutcomeRequest carries the voting outcome for an agenda item
type RecordOutcomeRequest struct {
	Status   string `json:"status"`
	YesVotes int    `json:"yes_votes"`
	NoVotes  int    `json:"no_votes"`
}

// List returns all AGM sessions with their agendas
// @Summary List AGM sessions
// @Tags AGM
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /agm [get]
func (h *AGMHandler) List(c *fiber.Ctx) error {
	sessions, err := h.agmService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load AGM sessions")
	}

	return response.Success(c, "AGM sessions retrieved", sessions)
}

// GetByYear returns the AGM session for a given year
// @Summary Get AGM session by year
// @Tags AGM
// @Produce json
// @Security BearerAuth
// @Param year path int true "AGM year"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agm/{year} [get]
func (h *AGMHandler) GetByYear(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return response.BadRequest(c, "Invalid year")
	}

	session, err := h.agmService.GetByYear(c.Context(), year)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "No AGM session recorded for that year")
		}
		return response.InternalServerError(c, "Failed to load AGM session")
	}

	return response.Success(c, "AGM session retrieved", session)
}

// Create records a new AGM session (admin only)
// @Summary Create AGM session
// @Tags AGM
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /agm [post]
func (h *AGMHandler) Create(c *fiber.Ctx) error {
	var input services.CreateAGMInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	session, err := h.agmService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create AGM session")
	}

	return response.Created(c, "AGM session created", session)
}

// AddAgendaItem appends an agenda item to a year's AGM (admin only)
// @Summary Add agenda item
// @Tags AGM
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year path int true "AGM year"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agm/{year}/agenda [post]
func (h *AGMHandler) AddAgendaItem(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return response.BadRequest(c, "Invalid year")
	}

	var input services.AgendaItemInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" {
		return response.BadRequest(c, "Agenda title is required")
	}

	item, err := h.agmService.AddAgendaItem(c.Context(), year, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "No AGM session recorded for that year")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to add agenda item")
		}
	}

	return response.Created(c, "Agenda item added", item)
}

// RecordOutcome stores the voting result for an agenda item (admin only)
// @Summary Record agenda outcome
// @Tags AGM
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Agenda item ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /agm/agenda/{id}/outcome [patch]
func (h *AGMHandler) RecordOutcome(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid agenda item ID")
	}

	var req RecordOutcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.agmService.RecordOutcome(c.Context(), uint(id), req.Status, req.YesVotes, req.NoVotes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Agenda item not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to record outcome")
		}
	}

	return response.Success(c, "Outcome recorded", item)
}
