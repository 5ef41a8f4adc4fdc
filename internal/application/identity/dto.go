package identity

import "time"

// LoginInput is the shared workshop credential
type LoginInput struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
	IP       string `json:"-"`
}

// RefreshInput carries the refresh token of the current session
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SessionResult is returned on login and refresh
type SessionResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	Username              string    `json:"username"`
}
