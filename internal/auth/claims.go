package auth

import "booking-system/airline/internal/constants"

// UserClaims is the verified identity handed to services. Services never
// see tokens.
type UserClaims interface {
	UserID() int64
	IsAdmin() bool
	Source() string
}

type JWTClaims struct {
	UserIDValue  int64
	IsAdminValue bool
}

func (c *JWTClaims) UserID() int64  { return c.UserIDValue }
func (c *JWTClaims) IsAdmin() bool  { return c.IsAdminValue }
func (c *JWTClaims) Source() string { return string(constants.RequestSourceJWT) }
