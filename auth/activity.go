package auth

import (
	"context"
	"time"
)

// ActivityEventType names an audited auth action
type ActivityEventType string

const (
	ActivityEventLoginSuccess  ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure  ActivityEventType = "auth.login.failure"
	ActivityEventTokenRejected ActivityEventType = "auth.token.rejected"
)

// ActivityEvent is emitted by Auther after every login attempt and every
// rejected token. Identifier is what the client submitted; Failure is set
// only on rejections. Metadata never carries passwords, hashes or tokens.
type ActivityEvent struct {
	EventType  ActivityEventType
	UserID     string
	Identifier string
	Failure    FailureKind
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink receives activity events. Record errors are logged and
// never change the outcome of the audited action.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc lets a plain function act as an ActivitySink
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

var discardActivity ActivitySink = ActivitySinkFunc(nil)

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return discardActivity
	}
	return s
}
