package handlers

import (
	"errors"
	"time"

	"nagari-society/internal/config"
	"nagari-society/internal/core/domain"
	"nagari-society/internal/core/services"
	"nagari-society/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles the login flow endpoints
type AuthHandler struct {
	flowService    *services.AuthFlowService
	sessionService *services.SessionService
	cfg            *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(flowService *services.AuthFlowService, sessionService *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		flowService:    flowService,
		sessionService: sessionService,
		cfg:            cfg,
	}
}

// BootstrapRequest starts (or restarts) a login flow for a device
type BootstrapRequest struct {
	DeviceID string `json:"device_id"`
}

// PhoneRequest submits a phone number
type PhoneRequest struct {
	FlowID string `json:"flow_id"`
	Phone  string `json:"phone"`
}

// OTPRequest submits an OTP code
type OTPRequest struct {
	FlowID string `json:"flow_id"`
	Code   string `json:"code"`
}

// MPINRequest submits an MPIN
type MPINRequest struct {
	FlowID string `json:"flow_id"`
	MPIN   string `json:"mpin"`
}

// RegisterRequest submits the registration form
type RegisterRequest struct {
	FlowID      string `json:"flow_id"`
	FullName    string `json:"full_name"`
	FlatID      string `json:"flat_id"`
	MPIN        string `json:"mpin"`
	ConfirmMPIN string `json:"confirm_mpin"`
}

// FlowRequest targets an existing flow with no other payload
type FlowRequest struct {
	FlowID string `json:"flow_id"`
}

// Bootstrap starts a login flow for a device
// @Summary Bootstrap login flow
// @Description Start a login flow; a remembered device lands on MPIN entry
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/bootstrap [post]
func (h *AuthHandler) Bootstrap(c *fiber.Ctx) error {
	var req BootstrapRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	view, err := h.flowService.Start(c.Context(), req.DeviceID)
	if err != nil {
		return response.InternalServerError(c, "Failed to start login flow")
	}

	return response.Success(c, "Login flow started", view)
}

// SubmitPhone handles phone number submission
// @Summary Submit phone number
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/phone [post]
func (h *AuthHandler) SubmitPhone(c *fiber.Ctx) error {
	var req PhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Phone == "" {
		return response.BadRequest(c, "Phone number is required")
	}

	view, err := h.flowService.SubmitPhone(c.Context(), req.FlowID, req.Phone)
	if err != nil {
		return h.flowError(c, err)
	}

	return response.Success(c, "Phone accepted", view)
}

// SubmitOTP handles OTP verification
// @Summary Verify OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/otp [post]
func (h *AuthHandler) SubmitOTP(c *fiber.Ctx) error {
	var req OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Code == "" {
		return response.BadRequest(c, "OTP code is required")
	}

	view, err := h.flowService.SubmitOTP(c.Context(), req.FlowID, req.Code)
	if err != nil {
		return h.flowError(c, err)
	}

	return response.Success(c, "Phone verified", view)
}

// ChangeNumber abandons OTP verification
// @Summary Change phone number
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/change-number [post]
func (h *AuthHandler) ChangeNumber(c *fiber.Ctx) error {
	var req FlowRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	view, err := h.flowService.ChangeNumber(c.Context(), req.FlowID)
	if err != nil {
		return h.flowError(c, err)
	}

	return response.Success(c, "Back to phone entry", view)
}

// Register completes registration and logs the new member in
// @Summary Register new member
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.RegistrationInput{
		FullName:    req.FullName,
		FlatID:      req.FlatID,
		MPIN:        req.MPIN,
		ConfirmMPIN: req.ConfirmMPIN,
	}

	view, result, err := h.flowService.SubmitRegistration(c.Context(), req.FlowID, input)
	if err != nil {
		return h.flowError(c, err)
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Created(c, "Registration successful", fiber.Map{
		"flow":         view,
		"identity":     result.Identity,
		"access_token": result.AccessToken,
		"new_user":     result.NewUser,
	})
}

// SubmitMPIN handles the returning-user login
// @Summary Login with MPIN
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/mpin [post]
func (h *AuthHandler) SubmitMPIN(c *fiber.Ctx) error {
	var req MPINRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	view, result, err := h.flowService.SubmitMPIN(c.Context(), req.FlowID, req.MPIN)
	if err != nil {
		return h.flowError(c, err)
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Login successful", fiber.Map{
		"flow":         view,
		"identity":     result.Identity,
		"access_token": result.AccessToken,
		"new_user":     result.NewUser,
	})
}

// SwitchAccount forgets the remembered phone and active login
// @Summary Switch account
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/switch-account [post]
func (h *AuthHandler) SwitchAccount(c *fiber.Ctx) error {
	var req FlowRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	view, err := h.flowService.SwitchAccount(c.Context(), req.FlowID)
	if err != nil {
		return h.flowError(c, err)
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Account switched", view)
}

// RefreshToken rotates the refresh token
// @Summary Refresh access token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token not found")
	}

	identity, tokens, err := h.sessionService.Refresh(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			return response.Unauthorized(c, "Refresh token expired")
		case errors.Is(err, services.ErrTokenRevoked):
			return response.Unauthorized(c, "Refresh token revoked")
		case errors.Is(err, services.ErrInvalidToken):
			return response.Unauthorized(c, "Invalid refresh token")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	h.setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)

	return response.Success(c, "Token refreshed", fiber.Map{
		"identity":     identity,
		"access_token": tokens.AccessToken,
	})
}

// LogoutRequest carries the device to log out
type LogoutRequest struct {
	DeviceID string `json:"device_id"`
}

// Logout clears the active login; the remembered phone survives
// @Summary Logout
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.DeviceID == "" {
		return response.BadRequest(c, "Device ID is required")
	}

	refreshToken := c.Cookies("refresh_token")
	if err := h.sessionService.Logout(c.Context(), req.DeviceID, refreshToken); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Logged out", nil)
}

// flowError maps flow service errors to HTTP responses. Validation and
// credential failures leave the flow where it was, so the client can
// simply retry.
func (h *AuthHandler) flowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrFlowNotFound):
		return response.NotFound(c, "Login flow not found or expired, start again")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Operation not valid for the current step")
	case errors.Is(err, domain.ErrFlowLocked):
		return response.Locked(c, "Too many failed attempts, try again later")
	case errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrMPINFormat),
		errors.Is(err, domain.ErrMPINMismatch),
		errors.Is(err, domain.ErrFullNameRequired),
		errors.Is(err, domain.ErrFlatIDRequired):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrOTPExpired):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Incorrect MPIN")
	default:
		return response.InternalServerError(c, "Something went wrong, please try again")
	}
}

// setAuthCookies sets the token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.AccessTokenMins) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.IsProd(),
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.RefreshTokenDays) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.IsProd(),
		SameSite: "Lax",
	})
}

// clearAuthCookies expires the token cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true})
}
