package dto

import (
	"mehfil/infras/jwt"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Email  string        `json:"email"`
	Role   string        `json:"role"`
	Tokens jwt.TokenPair `json:"tokens"`
}

func (r *LoginResponse) FromTokenPair(email, role string, tokens *jwt.TokenPair) {
	r.Email = email
	r.Role = role
	r.Tokens = *tokens
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	Tokens jwt.TokenPair `json:"tokens"`
}
