// Package auth issues and verifies the anti-forgery tokens that parcel forms
// must echo back with each quote and add-to-cart submission.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/infrastructure/config"
)

// Form actions a token can be issued for
const (
	ActionQuote     = "parcel_quote"
	ActionAddToCart = "parcel_add_to_cart"
)

const defaultIssuer = "parcelcart"

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrActionMismatch   = errors.New("token was issued for a different action")
	ErrMissingSecret    = errors.New("form token secret is not configured")
)

// FormClaims are the claims carried by a form token
type FormClaims struct {
	jwt.RegisteredClaims
	Action string `json:"action"`
}

// IssuedToken is a signed form token and its expiry
type IssuedToken struct {
	Action    string    `json:"action"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FormTokenService signs and verifies HS256 form tokens
type FormTokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewFormTokenService creates a new form token service
func NewFormTokenService(cfg config.ParcelConfig) *FormTokenService {
	expiration := cfg.FormTokenTTL
	if expiration <= 0 {
		expiration = 2 * time.Hour
	}
	return &FormTokenService{
		secret:     []byte(cfg.FormTokenSecret),
		expiration: expiration,
		issuer:     defaultIssuer,
		now:        time.Now,
	}
}

// Issue signs a token for the given action
func (s *FormTokenService) Issue(action string) (IssuedToken, error) {
	if len(s.secret) == 0 {
		return IssuedToken{}, ErrMissingSecret
	}

	now := s.now()
	expiresAt := now.Add(s.expiration)
	claims := &FormClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Action: action,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Action: action, Token: signed, ExpiresAt: expiresAt}, nil
}

// Parse validates the token signature, lifetime and action and returns its claims
func (s *FormTokenService) Parse(tokenString, action string) (*FormClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &FormClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*FormClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Action != action {
		return nil, ErrActionMismatch
	}
	return claims, nil
}

// Verify implements parcel.FormTokenVerifier
func (s *FormTokenService) Verify(token, action string) error {
	_, err := s.Parse(token, action)
	return err
}

var _ parcel.FormTokenVerifier = (*FormTokenService)(nil)
