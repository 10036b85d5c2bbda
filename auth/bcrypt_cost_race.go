//go:build race

package auth

import "golang.org/x/crypto/bcrypt"

// race builds run hashing many times slower
func passwordHashCost() int {
	return bcrypt.DefaultCost
}
