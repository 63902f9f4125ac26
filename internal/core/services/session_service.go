package services

import (
	"context"
	"errors"
	"log"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/config"
	"nagari-society/internal/pkg/jwt"
	"nagari-society/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrNoActiveLogin = errors.New("no active login on this device")
)

// SessionService owns the per-device session record: which identity is
// logged in and which phone number the device remembers. Logout clears
// the identity but keeps the remembered phone so the next launch lands
// on the MPIN screen; switching accounts clears both.
type SessionService struct {
	deviceRepo   repositories.DeviceSessionRepository
	identityRepo repositories.IdentityRepository
	tokenRepo    repositories.RefreshTokenRepository
	cfg          *config.Config
}

// NewSessionService creates a new session service
func NewSessionService(
	deviceRepo repositories.DeviceSessionRepository,
	identityRepo repositories.IdentityRepository,
	tokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *SessionService {
	return &SessionService{
		deviceRepo:   deviceRepo,
		identityRepo: identityRepo,
		tokenRepo:    tokenRepo,
		cfg:          cfg,
	}
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RememberedPhone returns the phone this device remembers, or "" when
// the device is unknown.
func (s *SessionService) RememberedPhone(ctx context.Context, deviceID string) (string, error) {
	session, err := s.deviceRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return session.RememberedPhone, nil
}

// SetRememberedPhone stores the "remember this device" marker
func (s *SessionService) SetRememberedPhone(ctx context.Context, deviceID, phone string) error {
	session, err := s.getOrNewSession(ctx, deviceID)
	if err != nil {
		return err
	}
	session.RememberedPhone = phone
	return s.deviceRepo.Upsert(ctx, session)
}

// ClearRememberedPhone drops the remembered phone (switch account path)
func (s *SessionService) ClearRememberedPhone(ctx context.Context, deviceID string) error {
	session, err := s.getOrNewSession(ctx, deviceID)
	if err != nil {
		return err
	}
	session.RememberedPhone = ""
	return s.deviceRepo.Upsert(ctx, session)
}

// ActiveIdentity returns the logged-in identity for a device, with the
// credential hash stripped, or ErrNoActiveLogin.
func (s *SessionService) ActiveIdentity(ctx context.Context, deviceID string) (*models.IdentityResponse, error) {
	session, err := s.deviceRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveLogin
		}
		return nil, err
	}
	if session.IdentityID == nil {
		return nil, ErrNoActiveLogin
	}

	identity, err := s.identityRepo.GetByID(ctx, *session.IdentityID)
	if err != nil {
		return nil, err
	}
	return identity.ToResponse(), nil
}

// Activate records a successful login: the identity becomes active, the
// phone is remembered for the next launch, and a token pair is issued.
func (s *SessionService) Activate(ctx context.Context, deviceID string, identity *models.Identity) (*TokenPair, error) {
	session, err := s.getOrNewSession(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	identityID := identity.ID
	session.IdentityID = &identityID
	session.RememberedPhone = identity.Phone
	if err := s.deviceRepo.Upsert(ctx, session); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(identity)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, identity.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Session activated: %s on device %s", identity.Phone, deviceID)
	return tokens, nil
}

// Logout clears the active identity and revokes the presented refresh
// token. The remembered phone is deliberately left in place.
func (s *SessionService) Logout(ctx context.Context, deviceID, refreshToken string) error {
	session, err := s.deviceRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	session.IdentityID = nil
	if err := s.deviceRepo.Upsert(ctx, session); err != nil {
		return err
	}

	if refreshToken != "" {
		if err := s.tokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken)); err != nil {
			return err
		}
	}

	log.Printf("✅ Logged out device %s", deviceID)
	return nil
}

// RevokeAllTokens revokes every outstanding refresh token for an
// identity. Used when re-registration replaces the credentials, so
// sessions issued under the old MPIN die with it.
func (s *SessionService) RevokeAllTokens(ctx context.Context, identityID uint) error {
	return s.tokenRepo.RevokeAllByIdentityID(ctx, identityID)
}

// Refresh rotates the refresh token and issues a new pair
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*models.IdentityResponse, *TokenPair, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, ErrTokenExpired
		}
		return nil, nil, ErrInvalidToken
	}

	// 2. Find stored token by hash
	stored, err := s.tokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}

	// 3. Check revocation and expiry
	if stored.IsRevoked() {
		return nil, nil, ErrTokenRevoked
	}
	if stored.IsExpired() {
		return nil, nil, ErrTokenExpired
	}

	// 4. Get identity
	identity, err := s.identityRepo.GetByID(ctx, claims.IdentityID)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	// 5. Revoke old refresh token (rotation)
	if err := s.tokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, nil, err
	}

	// 6. Issue new pair
	tokens, err := s.generateTokens(identity)
	if err != nil {
		return nil, nil, err
	}
	if err := s.storeRefreshToken(ctx, identity.ID, tokens.RefreshToken); err != nil {
		return nil, nil, err
	}

	return identity.ToResponse(), tokens, nil
}

// getOrNewSession loads the device row or prepares a fresh one
func (s *SessionService) getOrNewSession(ctx context.Context, deviceID string) (*models.DeviceSession, error) {
	session, err := s.deviceRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.DeviceSession{DeviceID: deviceID}, nil
		}
		return nil, err
	}
	return session, nil
}

// generateTokens generates access and refresh tokens
func (s *SessionService) generateTokens(identity *models.Identity) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		identity.ID,
		identity.Phone,
		identity.FullName,
		identity.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		identity.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token hash in the database
func (s *SessionService) storeRefreshToken(ctx context.Context, identityID uint, refreshToken string) error {
	token := &models.RefreshToken{
		IdentityID: identityID,
		TokenHash:  password.HashToken(refreshToken),
		ExpiresAt:  jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.tokenRepo.Create(ctx, token)
}
