package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// PrincipalResolver maps a bearer token to the live user record it names
type PrincipalResolver struct {
	decoder TokenDecoder
	store   CredentialStore
	logger  Logger
}

// NewPrincipalResolver returns a new PrincipalResolver
func NewPrincipalResolver(decoder TokenDecoder, store CredentialStore) *PrincipalResolver {
	return &PrincipalResolver{
		decoder: decoder,
		store:   store,
		logger:  defLogger{},
	}
}

func (r *PrincipalResolver) WithLogger(logger Logger) *PrincipalResolver {
	r.logger = normalizeLogger(logger)
	return r
}

// Resolve decodes raw and looks up its subject by username.
// Any decode failure or a missing subject yields ErrInvalidToken; a subject
// without a matching user yields ErrPrincipalNotFound.
func (r *PrincipalResolver) Resolve(ctx context.Context, raw string) (*User, error) {
	claims, err := r.decoder.Decode(raw)
	if err != nil {
		return nil, newFailure(FailureInvalidToken, err)
	}

	subject := strings.TrimSpace(claims.Subject())
	if subject == "" {
		r.logger.Debug("resolve: token has no subject")
		return nil, newFailure(FailureInvalidToken, nil)
	}

	user, err := r.store.FindByUsername(ctx, subject)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, newFailure(FailurePrincipalNotFound, err)
		}
		r.logger.Error("resolve: principal lookup failed", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve principal")
	}

	if user == nil {
		return nil, newFailure(FailurePrincipalNotFound, nil)
	}

	return user, nil
}
