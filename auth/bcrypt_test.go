package auth_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-eventdesk/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "Longer than bcrypt input limit",
			password: strings.Repeat("x", 73),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, hasher.Verify(tt.password, hash))
		})
	}
}

func TestBcryptHasher_SaltPerCall(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("pw123")
	require.NoError(t, err)
	second, err := hasher.Hash("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("pw123", first))
	assert.True(t, hasher.Verify("pw123", second))
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	password := "testPassword123!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{name: "Matching password", password: password, hash: hash, want: true},
		{name: "Wrong password", password: "wrongPassword", hash: hash, want: false},
		{name: "Invalid hash", password: password, hash: "invalidhash", want: false},
		{name: "Empty hash", password: password, hash: "", want: false},
		{name: "Truncated hash", password: password, hash: hash[:20], want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasher.Verify(tt.password, tt.hash))
		})
	}
}

func TestBcryptHasher_CostEmbeddedInHash(t *testing.T) {
	hash, err := auth.NewBcryptHasher(bcrypt.MinCost + 1).Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)

	// a hasher configured with another cost still verifies
	assert.True(t, auth.NewBcryptHasher(bcrypt.MinCost).Verify("pw", hash))
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	assert.GreaterOrEqual(t, auth.NewBcryptHasher(0).Cost(), bcrypt.DefaultCost)
}
