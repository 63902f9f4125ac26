package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/core/domain"
	"nagari-society/internal/pkg/password"

	"github.com/google/uuid"
)

// ============================================================
// Auth flow - the phone / OTP / MPIN login state machine
// ============================================================

// FlowStatus is the current step of a login flow
type FlowStatus string

const (
	FlowPhoneEntry    FlowStatus = "phone_entry"
	FlowOTPVerify     FlowStatus = "otp_verify"
	FlowMPINEntry     FlowStatus = "mpin_entry"
	FlowRegistration  FlowStatus = "registration"
	FlowAuthenticated FlowStatus = "authenticated"
	FlowLocked        FlowStatus = "locked"
)

const (
	flowTTL          = 30 * time.Minute
	maxMPINAttempts  = 5
	flowLockDuration = 5 * time.Minute
)

// authFlow is the in-memory state of one login attempt on one device.
// Every transition either fully applies or leaves the flow untouched.
type authFlow struct {
	id           string
	deviceID     string
	status       FlowStatus
	phone        string
	displayName  string
	newUser      bool
	mpinAttempts int
	lockedUntil  time.Time
	expiresAt    time.Time
}

// FlowView is the flow state exposed to the client
type FlowView struct {
	FlowID      string     `json:"flow_id"`
	DeviceID    string     `json:"device_id"`
	Status      FlowStatus `json:"status"`
	Phone       string     `json:"phone,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
}

// AuthResult is produced when a flow reaches the authenticated state.
// NewUser distinguishes the registration path (welcome screen) from a
// returning login.
type AuthResult struct {
	Identity     *models.IdentityResponse `json:"identity"`
	AccessToken  string                   `json:"access_token"`
	RefreshToken string                   `json:"refresh_token"`
	NewUser      bool                     `json:"new_user"`
}

// AuthFlowService drives login flows. Flows live in memory keyed by
// flow ID and expire after 30 minutes of inactivity; abandoning the
// login screen simply lets the flow age out.
type AuthFlowService struct {
	directory *DirectoryService
	sessions  *SessionService
	otp       *OTPService

	flows map[string]*authFlow
	mu    sync.Mutex
}

// NewAuthFlowService creates a new auth flow service
func NewAuthFlowService(directory *DirectoryService, sessions *SessionService, otp *OTPService) *AuthFlowService {
	svc := &AuthFlowService{
		directory: directory,
		sessions:  sessions,
		otp:       otp,
		flows:     make(map[string]*authFlow),
	}
	go svc.cleanupLoop()
	return svc
}

// Start bootstraps a flow for a device. A remembered phone that still
// resolves in the directory seeds the flow straight into MPIN entry
// ("welcome back"); anything else, including a lookup failure, lands on
// phone entry. Bootstrap never fails the login screen.
func (s *AuthFlowService) Start(ctx context.Context, deviceID string) (*FlowView, error) {
	if strings.TrimSpace(deviceID) == "" {
		deviceID = uuid.New().String()
	}

	flow := &authFlow{
		id:       uuid.New().String(),
		deviceID: deviceID,
		status:   FlowPhoneEntry,
	}

	remembered, err := s.sessions.RememberedPhone(ctx, deviceID)
	if err == nil && remembered != "" {
		result, lookupErr := s.directory.Lookup(ctx, remembered)
		if lookupErr == nil && result.Exists {
			flow.status = FlowMPINEntry
			flow.phone = remembered
			flow.displayName = result.DisplayName
		}
	}

	s.mu.Lock()
	flow.expiresAt = time.Now().Add(flowTTL)
	s.flows[flow.id] = flow
	s.mu.Unlock()

	return s.view(flow), nil
}

// SubmitPhone handles phone submission from the phone entry step.
// A registered phone moves to MPIN entry; an unknown one gets an OTP
// issued and moves to OTP verification.
func (s *AuthFlowService) SubmitPhone(ctx context.Context, flowID, rawPhone string) (*FlowView, error) {
	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.status != FlowPhoneEntry {
		return nil, domain.ErrInvalidTransition
	}

	phone, err := s.directory.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	result, err := s.directory.Lookup(ctx, phone)
	if err != nil {
		// Collaborator failure: flow stays on the safe phone entry step
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if result.Exists {
		flow.status = FlowMPINEntry
		flow.phone = phone
		flow.displayName = result.DisplayName
		flow.mpinAttempts = 0
		return s.view(flow), nil
	}

	if _, err := s.otp.Issue(phone); err != nil {
		return nil, err
	}
	flow.status = FlowOTPVerify
	flow.phone = phone
	flow.displayName = ""
	return s.view(flow), nil
}

// SubmitOTP verifies the code during OTP verification. A wrong code
// leaves the flow unchanged; a correct one moves to registration.
func (s *AuthFlowService) SubmitOTP(ctx context.Context, flowID, code string) (*FlowView, error) {
	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.status != FlowOTPVerify {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.otp.Verify(flow.phone, code); err != nil {
		return nil, err
	}
	s.otp.Clear(flow.phone)

	s.mu.Lock()
	defer s.mu.Unlock()
	flow.status = FlowRegistration
	return s.view(flow), nil
}

// ChangeNumber abandons OTP verification and returns to phone entry
func (s *AuthFlowService) ChangeNumber(ctx context.Context, flowID string) (*FlowView, error) {
	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.status != FlowOTPVerify {
		return nil, domain.ErrInvalidTransition
	}

	s.otp.Clear(flow.phone)

	s.mu.Lock()
	defer s.mu.Unlock()
	flow.status = FlowPhoneEntry
	flow.phone = ""
	flow.displayName = ""
	return s.view(flow), nil
}

// RegistrationInput carries the registration form fields
type RegistrationInput struct {
	FullName    string `json:"full_name"`
	FlatID      string `json:"flat_id"`
	MPIN        string `json:"mpin"`
	ConfirmMPIN string `json:"confirm_mpin"`
}

// Validate checks the registration form. Field checks happen before any
// collaborator call so a rejected submission cannot create an identity.
func (in *RegistrationInput) Validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return domain.ErrFullNameRequired
	}
	if strings.TrimSpace(in.FlatID) == "" {
		return domain.ErrFlatIDRequired
	}
	if !password.ValidMPIN(in.MPIN) {
		return domain.ErrMPINFormat
	}
	if in.MPIN != in.ConfirmMPIN {
		return domain.ErrMPINMismatch
	}
	return nil
}

// SubmitRegistration completes registration for a verified phone and
// logs the new member in (new-user path).
func (s *AuthFlowService) SubmitRegistration(ctx context.Context, flowID string, input *RegistrationInput) (*FlowView, *AuthResult, error) {
	flow, err := s.get(flowID)
	if err != nil {
		return nil, nil, err
	}
	if flow.status != FlowRegistration {
		return nil, nil, domain.ErrInvalidTransition
	}

	if err := input.Validate(); err != nil {
		return nil, nil, err
	}

	identity, err := s.directory.Register(ctx, strings.TrimSpace(input.FullName), flow.phone, strings.TrimSpace(input.FlatID), input.MPIN)
	if err != nil {
		return nil, nil, err
	}

	// Registration replaces any earlier record for this phone; sessions
	// issued under the old credentials must not survive it
	if err := s.sessions.RevokeAllTokens(ctx, identity.ID); err != nil {
		return nil, nil, err
	}

	tokens, err := s.sessions.Activate(ctx, flow.deviceID, identity)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	flow.status = FlowAuthenticated
	flow.newUser = true
	flow.displayName = identity.FullName
	s.mu.Unlock()

	log.Printf("✅ New member authenticated: %s", identity.Phone)
	return s.view(flow), &AuthResult{
		Identity:     identity.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		NewUser:      true,
	}, nil
}

// SubmitMPIN attempts a returning-user login. Five failed attempts lock
// the flow for a cooldown; the lock clears itself once it elapses.
func (s *AuthFlowService) SubmitMPIN(ctx context.Context, flowID, mpin string) (*FlowView, *AuthResult, error) {
	flow, err := s.get(flowID)
	if err != nil {
		return nil, nil, err
	}

	if flow.status == FlowLocked {
		if time.Now().Before(flow.lockedUntil) {
			return nil, nil, domain.ErrFlowLocked
		}
		s.mu.Lock()
		flow.status = FlowMPINEntry
		flow.mpinAttempts = 0
		s.mu.Unlock()
	}

	if flow.status != FlowMPINEntry {
		return nil, nil, domain.ErrInvalidTransition
	}

	if !password.ValidMPIN(mpin) {
		return nil, nil, domain.ErrMPINFormat
	}

	identity, err := s.directory.Authenticate(ctx, flow.phone, mpin)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.mu.Lock()
			flow.mpinAttempts++
			if flow.mpinAttempts >= maxMPINAttempts {
				flow.status = FlowLocked
				flow.lockedUntil = time.Now().Add(flowLockDuration)
				s.mu.Unlock()
				return nil, nil, domain.ErrFlowLocked
			}
			s.mu.Unlock()
		}
		return nil, nil, err
	}

	tokens, err := s.sessions.Activate(ctx, flow.deviceID, identity)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	flow.status = FlowAuthenticated
	flow.newUser = false
	flow.displayName = identity.FullName
	s.mu.Unlock()

	log.Printf("✅ Member authenticated: %s", identity.Phone)
	return s.view(flow), &AuthResult{
		Identity:     identity.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		NewUser:      false,
	}, nil
}

// SwitchAccount abandons the remembered identity: the device forgets
// both the active login and the remembered phone, and the flow returns
// to phone entry.
func (s *AuthFlowService) SwitchAccount(ctx context.Context, flowID string) (*FlowView, error) {
	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.status != FlowMPINEntry && flow.status != FlowLocked {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.sessions.ClearRememberedPhone(ctx, flow.deviceID); err != nil {
		return nil, err
	}
	if err := s.sessions.Logout(ctx, flow.deviceID, ""); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	flow.status = FlowPhoneEntry
	flow.phone = ""
	flow.displayName = ""
	flow.mpinAttempts = 0
	flow.lockedUntil = time.Time{}
	return s.view(flow), nil
}

// get finds a live flow and extends its expiry
func (s *AuthFlowService) get(flowID string) (*authFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[flowID]
	if !ok || time.Now().After(flow.expiresAt) {
		delete(s.flows, flowID)
		return nil, domain.ErrFlowNotFound
	}
	flow.expiresAt = time.Now().Add(flowTTL)
	return flow, nil
}

func (s *AuthFlowService) view(flow *authFlow) *FlowView {
	return &FlowView{
		FlowID:      flow.id,
		DeviceID:    flow.deviceID,
		Status:      flow.status,
		Phone:       flow.phone,
		DisplayName: flow.displayName,
	}
}

// cleanupLoop periodically drops expired flows
func (s *AuthFlowService) cleanupLoop() {
	ticker := time.NewTicker(flowTTL)
	for range ticker.C {
		s.mu.Lock()
		for id, flow := range s.flows {
			if time.Now().After(flow.expiresAt) {
				delete(s.flows, id)
			}
		}
		s.mu.Unlock()
	}
}
