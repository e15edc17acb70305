package service

import (
	"testing"
	"time"

	"claimdesk_backend/internal/auth/transport"
	"claimdesk_backend/platform/apperr"

	"github.com/golang-jwt/jwt/v5"
)

type testAuthConfig struct {
	apiKey string
	secret string
	ttl    time.Duration
}

func (c testAuthConfig) GetAPIKey() string                { return c.apiKey }
func (c testAuthConfig) GetJWTAccessSecret() string       { return c.secret }
func (c testAuthConfig) GetAccessTokenTTL() time.Duration { return c.ttl }

func TestExchangeToken_ValidKey(t *testing.T) {
	cfg := testAuthConfig{apiKey: "key-123", secret: "secret", ttl: time.Hour}
	svc := New(cfg)

	resp, err := svc.ExchangeToken(transport.TokenRequest{APIKey: "key-123"})
	if err != nil {
		t.Fatalf("ExchangeToken returned error: %v", err)
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", resp.TokenType)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d, want 3600", resp.ExpiresIn)
	}

	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("parsing minted token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims have unexpected type %T", token.Claims)
	}
	if claims["sub"] != Subject {
		t.Errorf("sub = %v, want %q", claims["sub"], Subject)
	}
	if claims["type"] != "access" {
		t.Errorf("type = %v, want access", claims["type"])
	}
}

func TestExchangeToken_InvalidKey(t *testing.T) {
	cfg := testAuthConfig{apiKey: "key-123", secret: "secret", ttl: time.Hour}
	svc := New(cfg)

	_, err := svc.ExchangeToken(transport.TokenRequest{APIKey: "wrong"})
	if err == nil {
		t.Fatal("expected error for wrong API key")
	}
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("error kind = %v, want KindUnauthorized", apperr.GetKind(err))
	}
}

func TestExchangeToken_EmptyKey(t *testing.T) {
	cfg := testAuthConfig{apiKey: "key-123", secret: "secret", ttl: time.Hour}
	svc := New(cfg)

	if _, err := svc.ExchangeToken(transport.TokenRequest{}); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("error kind = %v, want KindUnauthorized", apperr.GetKind(err))
	}
}
