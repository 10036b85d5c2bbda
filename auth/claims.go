package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by access tokens. Subject is always the
// user's username.
type Claims struct {
	jwt.RegisteredClaims
	UserRole string `json:"role,omitempty"`
}

// NewClaims returns the claims minted for user
func NewClaims(user *User) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.Username,
		},
		UserRole: user.Role,
	}
}

// Subject returns the subject claim
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Role returns the role captured at mint time
func (c *Claims) Role() string {
	return c.UserRole
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time.UTC()
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time.UTC()
	}
	return time.Time{}
}
