package auth

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// IdentifierField names the user column a login identifier is matched on
type IdentifierField string

const (
	FieldUsername IdentifierField = "username"
	FieldEmail    IdentifierField = "email"
)

var emailRx = regexp.MustCompile(
	`^[A-Za-z0-9._%+\-']+@[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?)+$`,
)

// EmailFormat checks email syntax only, no DNS lookups
var EmailFormat = validation.Match(emailRx).Error("must be a valid email address")

// ResolveIdentifierField returns FieldEmail when identifier is a syntactically
// valid email address and FieldUsername otherwise.
func ResolveIdentifierField(identifier string) IdentifierField {
	if IsEmail(identifier) {
		return FieldEmail
	}
	return FieldUsername
}

// IsEmail reports whether s is a syntactically valid email address
func IsEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return emailRx.MatchString(s)
}
