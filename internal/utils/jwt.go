package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is the unverified summary of a relay auth token.
type TokenInfo struct {
	Subject   string
	Issuer    string
	ExpiresAt time.Time
}

// InspectToken decodes tokenString without verifying its signature and
// returns the claims worth reporting at startup.
//
// The sink holds no key material for the relay's tokens, so inspection can
// only power log diagnostics (e.g. warning about an already expired token).
// It must never be used for authorization decisions.
//
// Claims that are absent from the token are left at their zero values.
// Returns an error only when tokenString is not a structurally valid JWT.
func InspectToken(tokenString string) (TokenInfo, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return TokenInfo{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenInfo{}, errors.New("invalid token claims")
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iss, err := claims.GetIssuer(); err == nil {
		info.Issuer = iss
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info, nil
}
