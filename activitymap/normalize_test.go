package activitymap_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-eventdesk/activitymap"
	"github.com/goliatone/go-eventdesk/auth"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_LoginSuccess(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	out := activitymap.Normalize(auth.ActivityEvent{
		EventType:  auth.ActivityEventLoginSuccess,
		UserID:     "user-100",
		Identifier: "alice",
		Metadata:   map[string]any{"ip": "10.0.0.1"},
		OccurredAt: ts,
	})

	assert.Equal(t, "user-100", out.ActorID)
	assert.Equal(t, "auth.login.success", out.Verb)
	assert.Equal(t, "user", out.ObjectType)
	assert.Equal(t, "user-100", out.ObjectID)
	assert.Equal(t, "auth", out.Channel)
	assert.True(t, out.OccurredAt.Equal(ts))
	assert.Equal(t, "10.0.0.1", out.Metadata["ip"])
	assert.Equal(t, "alice", out.Metadata[activitymap.MetadataKeyIdentifier])
	assert.NotContains(t, out.Metadata, activitymap.MetadataKeyFailure)
}

func TestNormalize_FailureWithoutUser(t *testing.T) {
	t.Parallel()

	out := activitymap.Normalize(auth.ActivityEvent{
		EventType:  auth.ActivityEventLoginFailure,
		Identifier: "  mallory@example.com ",
		Failure:    auth.FailureNotFound,
	})

	assert.Equal(t, "anonymous", out.ActorID)
	assert.Empty(t, out.ObjectID)
	assert.False(t, out.OccurredAt.IsZero())
	assert.Equal(t, "not_found", out.Metadata[activitymap.MetadataKeyFailure])
	assert.Equal(t, "mallory@example.com", out.Metadata[activitymap.MetadataKeyIdentifier])
}

func TestNormalize_Options(t *testing.T) {
	t.Parallel()

	out := activitymap.Normalize(auth.ActivityEvent{
		EventType:  auth.ActivityEventTokenRejected,
		Identifier: "a-very-long-identifier",
		Failure:    auth.FailureInvalidToken,
	},
		activitymap.WithChannel(" api "),
		activitymap.WithObjectType("session"),
		activitymap.WithAnonymousActor("system"),
		activitymap.WithIdentifierFilter(func(s string) string { return strings.ToUpper(s[:6]) }),
		nil,
	)

	assert.Equal(t, "api", out.Channel)
	assert.Equal(t, "session", out.ObjectType)
	assert.Equal(t, "system", out.ActorID)
	assert.Equal(t, "A-VERY", out.Metadata[activitymap.MetadataKeyIdentifier])
}

func TestMapper_Clock(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	m := activitymap.DefaultMapper
	m.Now = func() time.Time { return fixed }

	out := m.Map(auth.ActivityEvent{EventType: auth.ActivityEventLoginFailure})
	assert.Equal(t, fixed, out.OccurredAt)
	assert.Nil(t, out.Metadata)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	metadata := map[string]any{"decode_error": "expired"}
	out := activitymap.Normalize(auth.ActivityEvent{
		EventType: auth.ActivityEventTokenRejected,
		Failure:   auth.FailureInvalidToken,
		Metadata:  metadata,
	})

	assert.Len(t, metadata, 1)
	assert.Equal(t, "expired", out.Metadata["decode_error"])
	assert.Equal(t, "invalid_token", out.Metadata[activitymap.MetadataKeyFailure])
}
