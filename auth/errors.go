package auth

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	gorepo "github.com/goliatone/go-repository-bun"
)

const (
	// MessageBadCredentials is the only message clients see for failed logins
	MessageBadCredentials = "Incorrect username or password"
	// MessageInvalidCredentials is the only message clients see for rejected tokens
	MessageInvalidCredentials = "Could not validate credentials"
	// AuthenticateChallenge is sent in the WWW-Authenticate header with every 401
	AuthenticateChallenge = "Bearer"
)

const (
	TextCodeBadCredentials     = "BAD_CREDENTIALS"
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeRecordNotFound     = "RECORD_NOT_FOUND"
	TextCodeUserExists         = "USER_EXISTS"
	TextCodeInvalidConfig      = "INVALID_AUTH_CONFIG"
)

// FailureKind discriminates authentication failures
type FailureKind string

const (
	FailureNotFound          FailureKind = "not_found"
	FailureBadPassword       FailureKind = "bad_password"
	FailureInvalidToken      FailureKind = "invalid_token"
	FailurePrincipalNotFound FailureKind = "principal_not_found"
)

// AuthFailure is returned by Authenticate, Resolve and the Auther facade.
// Kind is for internal diagnostics only, see PublicError.
type AuthFailure struct {
	Kind FailureKind
	Err  error
}

func (e *AuthFailure) Error() string {
	if e.Err != nil {
		return "auth failure: " + string(e.Kind) + ": " + e.Err.Error()
	}
	return "auth failure: " + string(e.Kind)
}

func (e *AuthFailure) Unwrap() error {
	return e.Err
}

// Is matches any AuthFailure with the same Kind
func (e *AuthFailure) Is(target error) bool {
	t, ok := target.(*AuthFailure)
	return ok && t.Kind == e.Kind
}

// IsCredentialFailure reports whether err is a login failure (unknown
// identifier or wrong password).
func (e *AuthFailure) IsCredentialFailure() bool {
	return e.Kind == FailureNotFound || e.Kind == FailureBadPassword
}

var (
	// ErrIdentityNotFound no record matched the resolved identifier field
	ErrIdentityNotFound = &AuthFailure{Kind: FailureNotFound}
	// ErrMismatchedHashAndPassword the password did not verify
	ErrMismatchedHashAndPassword = &AuthFailure{Kind: FailureBadPassword}
	// ErrInvalidToken the token could not be decoded or had no subject
	ErrInvalidToken = &AuthFailure{Kind: FailureInvalidToken}
	// ErrPrincipalNotFound the token subject no longer maps to a user
	ErrPrincipalNotFound = &AuthFailure{Kind: FailurePrincipalNotFound}
)

func newFailure(kind FailureKind, err error) *AuthFailure {
	return &AuthFailure{Kind: kind, Err: err}
}

// DecodeErrorKind discriminates token decode failures
type DecodeErrorKind string

const (
	DecodeInvalidSignature DecodeErrorKind = "invalid_signature"
	DecodeExpired          DecodeErrorKind = "expired"
	DecodeMalformed        DecodeErrorKind = "malformed"
)

// DecodeError is returned by TokenCodec.Decode
type DecodeError struct {
	Kind DecodeErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return "token " + string(e.Kind) + ": " + e.Err.Error()
	}
	return "token " + string(e.Kind)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches any DecodeError with the same Kind
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}

var (
	ErrTokenSignatureInvalid = &DecodeError{Kind: DecodeInvalidSignature}
	ErrTokenExpired          = &DecodeError{Kind: DecodeExpired}
	ErrTokenMalformed        = &DecodeError{Kind: DecodeMalformed}
)

// ErrRecordNotFound is returned by CredentialStore implementations when no
// user matches. Stores built on go-repository-bun may return its own not
// found errors instead.
var ErrRecordNotFound = goerrors.New("record not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeRecordNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrUserExists username or email already registered
var ErrUserExists = goerrors.New("user with that username or email already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(goerrors.CodeConflict)

// ErrNoEmptyString empty passwords are never hashed
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidConfig the auth configuration failed validation
var ErrInvalidConfig = goerrors.New("invalid auth configuration", goerrors.CategoryInternal).
	WithTextCode(TextCodeInvalidConfig).
	WithCode(goerrors.CodeInternal)

// PublicError collapses err into what a client is allowed to see.
// Unknown identifier and wrong password produce the same error, as do all
// token failures.
func PublicError(err error) *goerrors.Error {
	var failure *AuthFailure
	if errors.As(err, &failure) {
		if failure.IsCredentialFailure() {
			return goerrors.New(MessageBadCredentials, goerrors.CategoryAuth).
				WithTextCode(TextCodeBadCredentials).
				WithCode(goerrors.CodeUnauthorized)
		}
		return goerrors.New(MessageInvalidCredentials, goerrors.CategoryAuth).
			WithTextCode(TextCodeInvalidCredentials).
			WithCode(goerrors.CodeUnauthorized)
	}

	return goerrors.New("An unexpected server error occurred", goerrors.CategoryInternal).
		WithCode(goerrors.CodeInternal)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for malformed tokens
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed")
}

func isRecordNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRecordNotFound) || gorepo.IsRecordNotFound(err) {
		return true
	}
	var richErr *goerrors.Error
	return errors.As(err, &richErr) && richErr.Category == goerrors.CategoryNotFound
}

// IsRecordNotFound reports whether err signals a missing record
func IsRecordNotFound(err error) bool {
	return isRecordNotFound(err)
}

// IsUserExists reports whether err signals a duplicate username or email
func IsUserExists(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUserExists) {
		return true
	}
	var richErr *goerrors.Error
	return errors.As(err, &richErr) && richErr.Category == goerrors.CategoryConflict
}
