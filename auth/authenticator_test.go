package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-eventdesk/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_ResolvesEmail(t *testing.T) {
	ctx := context.Background()
	store := new(MockCredentialStore)
	hasher := newMockHasher()

	user := &auth.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	store.On("FindByEmail", ctx, "alice@example.com").Return(user, nil)
	hasher.On("Verify", "pw123", "hash").Return(true)

	got, err := auth.NewAuthenticator(store, hasher).WithLogger(nopLogger{}).
		Authenticate(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Same(t, user, got)

	store.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	hasher.AssertExpectations(t)
}

func TestAuthenticator_ResolvesUsername(t *testing.T) {
	ctx := context.Background()
	store := new(MockCredentialStore)
	hasher := newMockHasher()

	user := &auth.User{Username: "alice", PasswordHash: "hash"}
	store.On("FindByUsername", ctx, "alice").Return(user, nil)
	hasher.On("Verify", "pw123", "hash").Return(true)

	got, err := auth.NewAuthenticator(store, hasher).WithLogger(nopLogger{}).
		Authenticate(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	store.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

// A username and an email pointing at different records with different
// passwords must each verify against their own record.
func TestAuthenticator_IdentifierFieldIsolation(t *testing.T) {
	ctx := context.Background()
	store := new(MockCredentialStore)
	hasher := newMockHasher()

	byName := &auth.User{Username: "carol", PasswordHash: "name-hash"}
	byEmail := &auth.User{Username: "dave", Email: "carol@example.com", PasswordHash: "email-hash"}

	store.On("FindByUsername", ctx, "carol").Return(byName, nil)
	store.On("FindByEmail", ctx, "carol@example.com").Return(byEmail, nil)
	hasher.On("Verify", "name-pw", "name-hash").Return(true)
	hasher.On("Verify", "name-pw", "email-hash").Return(false)
	hasher.On("Verify", "email-pw", "email-hash").Return(true)

	a := auth.NewAuthenticator(store, hasher).WithLogger(nopLogger{})

	got, err := a.Authenticate(ctx, "carol", "name-pw")
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)

	got, err = a.Authenticate(ctx, "carol@example.com", "email-pw")
	require.NoError(t, err)
	assert.Equal(t, "dave", got.Username)

	_, err = a.Authenticate(ctx, "carol@example.com", "name-pw")
	assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
}

func TestAuthenticator_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		identifier string
		password   string
		setup      func(store *MockCredentialStore, hasher *MockPasswordHasher)
		wantErr    error
	}{
		{
			name:       "unknown username",
			identifier: "ghost",
			password:   "pw",
			setup: func(store *MockCredentialStore, hasher *MockPasswordHasher) {
				store.On("FindByUsername", ctx, "ghost").Return(nil, auth.ErrRecordNotFound)
				hasher.On("Verify", "pw", dummyHash).Return(false)
			},
			wantErr: auth.ErrIdentityNotFound,
		},
		{
			name:       "unknown email",
			identifier: "ghost@example.com",
			password:   "pw",
			setup: func(store *MockCredentialStore, hasher *MockPasswordHasher) {
				store.On("FindByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrRecordNotFound)
				hasher.On("Verify", "pw", dummyHash).Return(false)
			},
			wantErr: auth.ErrIdentityNotFound,
		},
		{
			name:       "store returns nil user",
			identifier: "ghost",
			password:   "pw",
			setup: func(store *MockCredentialStore, hasher *MockPasswordHasher) {
				store.On("FindByUsername", ctx, "ghost").Return(nil, nil)
				hasher.On("Verify", "pw", dummyHash).Return(false)
			},
			wantErr: auth.ErrIdentityNotFound,
		},
		{
			name:       "wrong password",
			identifier: "alice",
			password:   "nope",
			setup: func(store *MockCredentialStore, hasher *MockPasswordHasher) {
				store.On("FindByUsername", ctx, "alice").Return(&auth.User{Username: "alice", PasswordHash: "hash"}, nil)
				hasher.On("Verify", "nope", "hash").Return(false)
			},
			wantErr: auth.ErrMismatchedHashAndPassword,
		},
		{
			name:       "blank identifier",
			identifier: "   ",
			password:   "pw",
			setup: func(_ *MockCredentialStore, hasher *MockPasswordHasher) {
				hasher.On("Verify", "pw", dummyHash).Return(false)
			},
			wantErr:    auth.ErrIdentityNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockCredentialStore)
			hasher := newMockHasher()
			tt.setup(store, hasher)

			user, err := auth.NewAuthenticator(store, hasher).WithLogger(nopLogger{}).
				Authenticate(ctx, tt.identifier, tt.password)
			assert.Nil(t, user)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			public := auth.PublicError(err)
			assert.Equal(t, auth.MessageBadCredentials, public.Message)
			assert.Equal(t, 401, public.Code)

			store.AssertExpectations(t)
			hasher.AssertExpectations(t)
		})
	}
}

// Unknown identifiers must pay for a hash comparison like known ones do.
func TestAuthenticator_MissingUserVerifiesDummyHash(t *testing.T) {
	ctx := context.Background()
	store := new(MockCredentialStore)
	hasher := newMockHasher()

	store.On("FindByUsername", ctx, "ghost").Return(nil, auth.ErrRecordNotFound)
	store.On("FindByUsername", ctx, "alice").Return(&auth.User{Username: "alice", PasswordHash: "hash"}, nil)
	hasher.On("Verify", "secret", dummyHash).Return(false).Once()
	hasher.On("Verify", "secret", "hash").Return(false).Once()

	a := auth.NewAuthenticator(store, hasher).WithLogger(nopLogger{})

	_, err := a.Authenticate(ctx, "ghost", "secret")
	assert.ErrorIs(t, err, auth.ErrIdentityNotFound)

	_, err = a.Authenticate(ctx, "alice", "secret")
	assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)

	hasher.AssertNumberOfCalls(t, "Hash", 1)
	hasher.AssertNumberOfCalls(t, "Verify", 2)
	hasher.AssertExpectations(t)
}

func TestAuthenticator_MissingUserWithBcrypt(t *testing.T) {
	ctx := context.Background()
	store := new(MockCredentialStore)
	store.On("FindByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrRecordNotFound)

	a := auth.NewAuthenticator(store, auth.NewBcryptHasher(4)).WithLogger(nopLogger{})

	_, err := a.Authenticate(ctx, "ghost@example.com", "pw")
	assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
}

func TestAuthenticator_StoreFailureIsNotAuthFailure(t *testing.T) {
	ctx := context.Background()
	store := new(MockCredentialStore)
	hasher := newMockHasher()

	store.On("FindByUsername", ctx, "alice").Return(nil, errors.New("connection refused"))

	_, err := auth.NewAuthenticator(store, hasher).WithLogger(nopLogger{}).
		Authenticate(ctx, "alice", "pw")
	require.Error(t, err)

	var failure *auth.AuthFailure
	assert.False(t, errors.As(err, &failure))
	assert.Equal(t, 500, auth.PublicError(err).Code)
	hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestPublicError_IndistinguishableLoginFailures(t *testing.T) {
	notFound := auth.PublicError(auth.ErrIdentityNotFound)
	badPassword := auth.PublicError(auth.ErrMismatchedHashAndPassword)

	assert.Equal(t, notFound.Message, badPassword.Message)
	assert.Equal(t, notFound.Code, badPassword.Code)
	assert.Equal(t, notFound.TextCode, badPassword.TextCode)
}

func TestIdentifierField(t *testing.T) {
	tests := map[string]auth.IdentifierField{
		"alice":               auth.FieldUsername,
		"alice@example.com":   auth.FieldEmail,
		" bob@mail.test ":     auth.FieldEmail,
		"alice@":              auth.FieldUsername,
		"@example.com":        auth.FieldUsername,
		"alice@localhost":     auth.FieldUsername,
		"first.last+tag@x.io": auth.FieldEmail,
		"":                    auth.FieldUsername,
	}

	for input, want := range tests {
		assert.Equal(t, want, auth.ResolveIdentifierField(input), input)
	}
}
