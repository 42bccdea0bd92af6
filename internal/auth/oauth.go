// Package auth handles OAuth login and token refresh against the optional
// fitlog sync backend.
package auth

import (
	"strings"

	"golang.org/x/oauth2"
)

// Scopes requested from the sync backend.
var Scopes = []string{"activities:write", "workouts:write"}

// Config holds the OAuth client credentials for the sync backend.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "http://localhost:8089/callback"
}

// NewOAuthConfig creates an oauth2.Config from our Config. The backend
// serves its OAuth endpoints under /oauth on the same host as the API.
func NewOAuthConfig(cfg Config) *oauth2.Config {
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  base + "/oauth/authorize",
			TokenURL: base + "/oauth/token",
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// AuthResult contains the token and account info from successful auth
type AuthResult struct {
	Token  *oauth2.Token
	UserID string
}

// ExtractUserID extracts the account ID from the token extras. The backend
// includes it in the token response.
func ExtractUserID(token *oauth2.Token) string {
	if id, ok := token.Extra("user_id").(string); ok {
		return id
	}
	return ""
}
