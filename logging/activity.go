package logging

import (
	"context"

	"github.com/goliatone/go-eventdesk/activitymap"
	"github.com/goliatone/go-eventdesk/auth"
	"go.uber.org/zap"
)

// ActivitySink writes auth activity as structured log entries. Submitted
// identifiers are sanitized before they reach the log.
func ActivitySink(z *zap.Logger, opts ...activitymap.Option) auth.ActivitySink {
	if z == nil {
		z = zap.NewNop()
	}
	z = z.Named("activity")

	opts = append([]activitymap.Option{
		activitymap.WithIdentifierFilter(func(s string) string {
			return SanitizeString(s, MaxIdentifierLength)
		}),
	}, opts...)

	return auth.ActivitySinkFunc(func(_ context.Context, event auth.ActivityEvent) error {
		record := activitymap.Normalize(event, opts...)

		fields := []zap.Field{
			zap.String("event", record.Verb),
			zap.String("actor_id", record.ActorID),
			zap.String("channel", record.Channel),
			zap.Time("occurred_at", record.OccurredAt),
		}
		if record.ObjectID != "" {
			fields = append(fields, zap.String("object_type", record.ObjectType), zap.String("object_id", record.ObjectID))
		}
		if len(record.Metadata) > 0 {
			fields = append(fields, zap.Any("metadata", record.Metadata))
		}

		switch event.EventType {
		case auth.ActivityEventLoginSuccess:
			z.Info("auth_activity", fields...)
		default:
			z.Warn("auth_activity", fields...)
		}
		return nil
	})
}
