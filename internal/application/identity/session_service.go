package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/auth"
	"github.com/atelier/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Session errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrAccountLocked      = shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts, try again later")
	ErrTokenExpired       = shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	ErrTokenInvalid       = shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	ErrTokenRevoked       = shared.NewDomainError("TOKEN_REVOKED", "Session has been closed")
	ErrTokenMaxRefresh    = shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded, log in again")
)

// SessionService guards the API behind the single workshop credential
type SessionService struct {
	username     string
	passwordHash string
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	throttle     *loginThrottle
	logger       *zap.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(cfg config.AuthConfig, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *SessionService {
	return &SessionService{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		jwtService:   jwtService,
		blacklist:    blacklist,
		throttle:     newLoginThrottle(cfg.MaxLoginAttempts, cfg.LockDuration),
		logger:       logger,
	}
}

// Login checks the credential and opens a session
func (s *SessionService) Login(ctx context.Context, input LoginInput) (*SessionResult, error) {
	username := strings.TrimSpace(input.Username)
	if s.throttle.locked(username) {
		s.logger.Warn("login attempt while locked", zap.String("username", username), zap.String("ip", input.IP))
		return nil, ErrAccountLocked
	}

	if s.passwordHash == "" {
		s.logger.Warn("login rejected, no password hash configured")
		return nil, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	// The hash is checked even for a wrong username so both paths take as long.
	passOK := auth.CheckPassword(s.passwordHash, input.Password) == nil
	if !userOK || !passOK {
		// Only the configured username can ever log in, so only it is tracked.
		if userOK && s.throttle.fail(username) {
			s.logger.Warn("login locked after repeated failures", zap.String("username", username), zap.String("ip", input.IP))
			return nil, ErrAccountLocked
		}
		s.logger.Warn("invalid login attempt", zap.String("username", username), zap.String("ip", input.IP))
		return nil, ErrInvalidCredentials
	}
	s.throttle.reset(username)

	pair, err := s.jwtService.GenerateTokenPair(username)
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, err
	}

	s.logger.Info("session opened", zap.String("username", username), zap.String("ip", input.IP))
	return toSessionResult(pair, username), nil
}

// Refresh exchanges a refresh token for a new pair in the same session
func (s *SessionService) Refresh(ctx context.Context, input RefreshInput) (*SessionResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}
	if err := s.checkRevoked(ctx, claims.SessionID); err != nil {
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		s.logger.Warn("token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}
	return toSessionResult(pair, claims.Username), nil
}

// Logout revokes the session for as long as any of its tokens could live
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrTokenInvalid
	}
	if err := s.blacklist.Revoke(ctx, sessionID, s.jwtService.RefreshTokenExpiration()); err != nil {
		return err
	}
	s.logger.Info("session closed", zap.String("session_id", sessionID))
	return nil
}

// Authenticate validates an access token of a session that is still open
func (s *SessionService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if err := s.checkRevoked(ctx, claims.SessionID); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *SessionService) checkRevoked(ctx context.Context, sessionID string) error {
	revoked, err := s.blacklist.IsRevoked(ctx, sessionID)
	if err != nil {
		// Fail closed when the blacklist is unreachable.
		s.logger.Error("failed to check session revocation", zap.Error(err))
		return err
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return ErrTokenMaxRefresh
	default:
		return ErrTokenInvalid
	}
}

func toSessionResult(pair *auth.TokenPair, username string) *SessionResult {
	return &SessionResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		Username:              username,
	}
}
