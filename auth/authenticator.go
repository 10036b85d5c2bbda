package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// dummyPassword is hashed once per Authenticator. Lookups that find no
// user verify against its hash so misses cost the same as mismatches.
const dummyPassword = "eventdesk-missing-user"

// Authenticator verifies login credentials against a CredentialStore
type Authenticator struct {
	store     CredentialStore
	hasher    PasswordHasher
	logger    Logger
	dummyHash string
}

// NewAuthenticator returns a new Authenticator. The hasher is used once here
// to build the hash checked when no user matches the identifier.
func NewAuthenticator(store CredentialStore, hasher PasswordHasher) *Authenticator {
	a := &Authenticator{
		store:  store,
		hasher: hasher,
		logger: defLogger{},
	}

	hash, err := hasher.Hash(dummyPassword)
	if err != nil {
		a.logger.Warn("authenticate: could not build dummy hash", "error", err)
	}
	a.dummyHash = hash

	return a
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	a.logger = normalizeLogger(logger)
	return a
}

// Authenticate resolves identifier by email or username and verifies
// password. It fails with ErrIdentityNotFound or ErrMismatchedHashAndPassword;
// store errors are returned wrapped. The credential record is never modified.
func (a *Authenticator) Authenticate(ctx context.Context, identifier, password string) (*User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		a.hasher.Verify(password, a.dummyHash)
		return nil, newFailure(FailureNotFound, nil)
	}

	field := ResolveIdentifierField(identifier)

	var user *User
	var err error
	switch field {
	case FieldEmail:
		user, err = a.store.FindByEmail(ctx, identifier)
	default:
		user, err = a.store.FindByUsername(ctx, identifier)
	}

	if err != nil {
		if isRecordNotFound(err) {
			a.logger.Debug("authenticate: no user for identifier", "field", field)
			a.hasher.Verify(password, a.dummyHash)
			return nil, newFailure(FailureNotFound, err)
		}
		a.logger.Error("authenticate: credential lookup failed", "field", field, "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		a.hasher.Verify(password, a.dummyHash)
		return nil, newFailure(FailureNotFound, nil)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Debug("authenticate: password mismatch", "field", field, "user_id", user.ID)
		return nil, newFailure(FailureBadPassword, nil)
	}

	return user, nil
}
