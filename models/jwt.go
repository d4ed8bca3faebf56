package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// CustomClaims is the access-token payload: the user's id and username,
// which the websocket layer trusts for connection identity.
type CustomClaims struct {
	jwt.RegisteredClaims
	ID       string `json:"id"`
	Username string `json:"username"`
}
