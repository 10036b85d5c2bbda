package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-eventdesk/auth"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// MockCredentialStore implements auth.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPasswordHasher implements auth.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(plaintext, hash string) bool {
	args := m.Called(plaintext, hash)
	return args.Bool(0)
}

const dummyHash = "dummy-hash"

// newMockHasher returns a MockPasswordHasher that answers the dummy hash an
// Authenticator builds on construction.
func newMockHasher() *MockPasswordHasher {
	hasher := new(MockPasswordHasher)
	hasher.On("Hash", mock.Anything).Return(dummyHash, nil)
	return hasher
}

// MockTokenDecoder implements auth.TokenDecoder
type MockTokenDecoder struct {
	mock.Mock
}

func (m *MockTokenDecoder) Decode(raw string) (*auth.Claims, error) {
	args := m.Called(raw)
	if c := args.Get(0); c != nil {
		return c.(*auth.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

type testConfig struct {
	key     string
	method  string
	minutes int
	cost    int
}

func (c testConfig) GetSigningKey() string    { return c.key }
func (c testConfig) GetSigningMethod() string { return c.method }
func (c testConfig) GetTokenExpiration() int  { return c.minutes }
func (c testConfig) GetHashCost() int         { return c.cost }

func newTestConfig() testConfig {
	return testConfig{
		key:     "test-signing-secret",
		method:  "HS256",
		minutes: 30,
		cost:    4,
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.NewCreateTable().
		Model((*auth.User)(nil)).
		IfNotExists().
		Exec(context.Background())
	require.NoError(t, err)

	return db
}
