package auth

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds auth options. Values are read once when the core is built.
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	// GetTokenExpiration returns the access token TTL in minutes
	GetTokenExpiration() int
	GetHashCost() int
}

// CredentialStore is the lookup surface the core needs from persistence.
// Implementations must return ErrRecordNotFound when no record matches.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// PasswordHasher hashes and verifies stored credentials
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenDecoder turns a raw token back into claims
type TokenDecoder interface {
	Decode(raw string) (*Claims, error)
}

// defLogger is used until a Logger is supplied. It drops debug and info
// lines and writes warnings and errors to out, stderr when nil.
type defLogger struct {
	out io.Writer
}

func (d defLogger) Debug(msg string, args ...any) {}

func (d defLogger) Info(msg string, args ...any) {}

func (d defLogger) Warn(msg string, args ...any) {
	d.print("[WRN] AUTH ", msg, args)
}

func (d defLogger) Error(msg string, args ...any) {
	d.print("[ERR] AUTH ", msg, args)
}

func (d defLogger) print(prefix, msg string, args []any) {
	out := d.out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprint(out, prefix+line(msg, args))
}

func line(msg string, args []any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
			continue
		}
		fmt.Fprintf(&b, " %v", args[i])
	}
	b.WriteString("\n")
	return b.String()
}

func normalizeLogger(l Logger) Logger {
	if l == nil {
		return defLogger{}
	}
	return l
}
