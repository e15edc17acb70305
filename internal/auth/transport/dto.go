// Package transport defines request/response DTOs for the auth module.
package transport

// TokenRequest exchanges the configured API key for a JWT access token.
type TokenRequest struct {
	APIKey string `json:"apiKey" validate:"required"`
}

// TokenResponse carries the minted access token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
