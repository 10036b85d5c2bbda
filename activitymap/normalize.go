// Package activitymap flattens auth activity events into a record shape
// that log pipelines and audit stores can consume without importing auth.
package activitymap

import (
	"maps"
	"strings"
	"time"

	"github.com/goliatone/go-eventdesk/auth"
)

const (
	// MetadataKeyFailure holds the internal failure kind of a rejected attempt
	MetadataKeyFailure = "failure"
	// MetadataKeyIdentifier holds the identifier submitted on login
	MetadataKeyIdentifier = "identifier"
)

// Normalized is one audit record
type Normalized struct {
	ActorID    string         `json:"actor_id"`
	Verb       string         `json:"verb"`
	ObjectType string         `json:"object_type,omitempty"`
	ObjectID   string         `json:"object_id,omitempty"`
	Channel    string         `json:"channel,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Mapper turns activity events into Normalized records. The zero value is
// not useful, start from DefaultMapper.
type Mapper struct {
	Channel    string
	ObjectType string
	// Anonymous is the actor of events with no user, e.g. failed logins
	Anonymous string
	// Identifier rewrites the submitted identifier, e.g. to truncate it
	Identifier func(string) string
	// Now stamps events that carry no timestamp
	Now func() time.Time
}

// DefaultMapper is used by Normalize
var DefaultMapper = Mapper{
	Channel:    "auth",
	ObjectType: "user",
	Anonymous:  "anonymous",
	Now:        func() time.Time { return time.Now().UTC() },
}

// Option customizes a copy of DefaultMapper
type Option func(*Mapper)

// Normalize maps event with DefaultMapper adjusted by opts
func Normalize(event auth.ActivityEvent, opts ...Option) Normalized {
	m := DefaultMapper
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m.Map(event)
}

// Map builds the record. The event metadata map is copied, never mutated.
func (m Mapper) Map(event auth.ActivityEvent) Normalized {
	out := Normalized{
		Verb:       string(event.EventType),
		ObjectType: m.ObjectType,
		Channel:    m.Channel,
		OccurredAt: event.OccurredAt,
		Metadata:   maps.Clone(event.Metadata),
	}

	if userID := strings.TrimSpace(event.UserID); userID != "" {
		out.ActorID, out.ObjectID = userID, userID
	} else {
		out.ActorID = m.Anonymous
	}

	if out.OccurredAt.IsZero() && m.Now != nil {
		out.OccurredAt = m.Now()
	}

	if event.Failure != "" {
		out.set(MetadataKeyFailure, string(event.Failure))
	}

	if identifier := strings.TrimSpace(event.Identifier); identifier != "" {
		if m.Identifier != nil {
			identifier = m.Identifier(identifier)
		}
		out.set(MetadataKeyIdentifier, identifier)
	}

	return out
}

func (n *Normalized) set(key string, value any) {
	if n.Metadata == nil {
		n.Metadata = map[string]any{}
	}
	n.Metadata[key] = value
}

// WithChannel overrides the channel
func WithChannel(channel string) Option {
	return func(m *Mapper) { m.Channel = strings.TrimSpace(channel) }
}

// WithObjectType overrides the object type
func WithObjectType(objectType string) Option {
	return func(m *Mapper) { m.ObjectType = strings.TrimSpace(objectType) }
}

// WithAnonymousActor overrides the actor used when the event has no user
func WithAnonymousActor(actorID string) Option {
	return func(m *Mapper) { m.Anonymous = strings.TrimSpace(actorID) }
}

// WithIdentifierFilter sets Mapper.Identifier
func WithIdentifierFilter(filter func(string) string) Option {
	return func(m *Mapper) { m.Identifier = filter }
}
