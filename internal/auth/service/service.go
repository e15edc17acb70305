// Package service implements the auth module's token minting logic.
package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"claimdesk_backend/internal/auth/transport"
	"claimdesk_backend/platform/apperr"
	"claimdesk_backend/platform/config"

	"github.com/golang-jwt/jwt/v5"
)

// Subject identifies the single account this deployment serves.
const Subject = "owner"

// Service mints short-lived access tokens in exchange for the API key.
type Service struct {
	cfg config.AuthConfig
}

// New creates a new auth service.
func New(cfg config.AuthConfig) *Service {
	return &Service{cfg: cfg}
}

// ExchangeToken validates the presented API key and returns a signed JWT.
func (s *Service) ExchangeToken(req transport.TokenRequest) (transport.TokenResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(s.cfg.GetAPIKey())) != 1 {
		return transport.TokenResponse{}, apperr.Unauthorized("invalid API key")
	}

	ttl := s.cfg.GetAccessTokenTTL()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  Subject,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return transport.TokenResponse{}, fmt.Errorf("sign access token: %w", err)
	}

	return transport.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}
