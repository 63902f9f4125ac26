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

// ExpenseHandler handles the society expense endpoints
type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List returns all recorded expenses, newest first
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	expenses, err := h.expenseService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load expenses")
	}

	return response.Success(c, "Expenses retrieved", expenses)
}

// Get returns a single expense
// @Summary Get expense
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid expense ID")
	}

	expense, err := h.expenseService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Expense not found")
		}
		return response.InternalServerError(c, "Failed to load expense")
	}

	return response.Success(c, "Expense retrieved", expense)
}

// Create records a new expense (admin only)
// @Summary Record expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var input services.CreateExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	expense, err := h.expenseService.Create(c.Context(), &input, middleware.FullName(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to record expense")
	}

	return response.Created(c, "Expense recorded", expense)
}
