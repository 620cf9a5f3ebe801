// Package token implements the access/refresh token lifecycle: issuing
// signed pairs, stateless access verification, and single-slot refresh
// rotation.
package token

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"clipstream/internal/models"
	"clipstream/internal/observability"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RefreshStore abstracts the per-user refresh token slot. Each user holds
// at most one live refresh token; writing overwrites the previous one.
type RefreshStore interface {
	GetRefreshToken(ctx context.Context, userID uint) (string, error)
	SetRefreshToken(ctx context.Context, userID uint, token string) error
	ClearRefreshToken(ctx context.Context, userID uint) error
}

// Config holds the signing material and lifetimes for both token kinds.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// Service issues and verifies token pairs.
type Service struct {
	cfg   Config
	store RefreshStore
	now   func() time.Time
}

// NewService returns a Service backed by the given refresh slot store.
func NewService(cfg Config, store RefreshStore) *Service {
	return &Service{cfg: cfg, store: store, now: time.Now}
}

// errUnauthorized is the single error every verification failure collapses
// to. Callers must not learn which check failed.
func errUnauthorized() *models.AppError {
	return models.NewUnauthorizedError("Invalid or expired token")
}

func (s *Service) sign(userID uint, secret string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) verify(tokenString, secret string) (uint, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return 0, errUnauthorized()
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errUnauthorized()
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, errUnauthorized()
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, errUnauthorized()
	}
	return uint(userID), nil
}

// IssuePair signs a new access/refresh pair for the user and persists the
// refresh token into the user's slot, replacing any previous one.
func (s *Service) IssuePair(ctx context.Context, userID uint) (access, refresh string, err error) {
	access, err = s.sign(userID, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return "", "", models.NewInternalError(err)
	}
	refresh, err = s.sign(userID, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return "", "", models.NewInternalError(err)
	}
	if err := s.store.SetRefreshToken(ctx, userID, refresh); err != nil {
		return "", "", models.NewInternalError(err)
	}
	return access, refresh, nil
}

// VerifyAccess checks the signature and expiry of an access token and
// returns the subject user id. No storage round trip.
func (s *Service) VerifyAccess(tokenString string) (uint, error) {
	return s.verify(tokenString, s.cfg.AccessSecret)
}

// Refresh rotates the presented refresh token: it must verify and match
// the user's stored slot byte for byte, after which a fresh pair is issued
// and persisted. Every failure mode reports the same Unauthorized.
func (s *Service) Refresh(ctx context.Context, presented string) (access, refresh string, err error) {
	if presented == "" {
		observability.RecordTokenRefresh("rejected")
		return "", "", errUnauthorized()
	}

	userID, err := s.verify(presented, s.cfg.RefreshSecret)
	if err != nil {
		observability.RecordTokenRefresh("rejected")
		return "", "", errUnauthorized()
	}

	stored, err := s.store.GetRefreshToken(ctx, userID)
	if err != nil || stored == "" || stored != presented {
		observability.RecordTokenRefresh("rejected")
		return "", "", errUnauthorized()
	}

	access, refresh, err = s.IssuePair(ctx, userID)
	if err != nil {
		observability.RecordTokenRefresh("error")
		return "", "", err
	}
	observability.RecordTokenRefresh("rotated")
	return access, refresh, nil
}

// Revoke clears the user's refresh slot so later refreshes fail.
func (s *Service) Revoke(ctx context.Context, userID uint) error {
	if err := s.store.ClearRefreshToken(ctx, userID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
