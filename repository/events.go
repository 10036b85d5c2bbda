package repository

import (
	"context"

	gorepo "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const msgEventNotFound = "Event record not found"

type Events interface {
	gorepo.Repository[*Event]
	GetWithParticipants(ctx context.Context, id uuid.UUID) (*Event, error)
	ListByDateRange(ctx context.Context, start, end string) ([]*Event, error)
	AddParticipant(ctx context.Context, eventID uuid.UUID, participant *Participant) (*Event, error)
}

type events struct {
	*store[*Event]
	eventTypes EventTypes
}

var _ Events = (*events)(nil)

func NewEventsRepository(db *bun.DB, eventTypes EventTypes) Events {
	return &events{
		eventTypes: eventTypes,
		store: newStore(db, gorepo.ModelHandlers[*Event]{
			NewRecord: func() *Event { return &Event{} },
			GetID: func(r *Event) uuid.UUID {
				if r == nil {
					return uuid.Nil
				}
				return r.ID
			},
			SetID: func(r *Event, id uuid.UUID) {
				if r != nil {
					r.ID = id
				}
			},
			GetIdentifier: func() string {
				return "name"
			},
		}, msgEventNotFound, func(r *Event) {
			stampDefaults(&r.ID, &r.CreatedAt)
		}),
	}
}

// WithParticipants loads the participants relation
func WithParticipants() gorepo.SelectCriteria {
	return gorepo.Relation("Participants", OrderByCreated())
}

// Create requires the referenced event type to exist
func (r *events) Create(ctx context.Context, record *Event) (*Event, error) {
	var out *Event
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = r.CreateTx(ctx, tx, record)
		return err
	})
	return out, err
}

func (r *events) CreateTx(ctx context.Context, tx bun.IDB, record *Event) (*Event, error) {
	if _, err := r.eventTypes.GetByIDTx(ctx, tx, record.EventTypeID.String()); err != nil {
		return nil, err
	}
	return r.store.CreateTx(ctx, tx, record)
}

// Update requires the referenced event type to exist
func (r *events) Update(ctx context.Context, record *Event, criteria ...gorepo.UpdateCriteria) (*Event, error) {
	var out *Event
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = r.UpdateTx(ctx, tx, record, criteria...)
		return err
	})
	return out, err
}

func (r *events) UpdateTx(ctx context.Context, tx bun.IDB, record *Event, criteria ...gorepo.UpdateCriteria) (*Event, error) {
	if _, err := r.eventTypes.GetByIDTx(ctx, tx, record.EventTypeID.String()); err != nil {
		return nil, err
	}
	return r.store.UpdateTx(ctx, tx, record, criteria...)
}

func (r *events) GetWithParticipants(ctx context.Context, id uuid.UUID) (*Event, error) {
	return r.GetByID(ctx, id.String(), WithParticipants())
}

// ListByDateRange returns events dated within [start, end], both inclusive
func (r *events) ListByDateRange(ctx context.Context, start, end string) ([]*Event, error) {
	records, _, err := r.List(ctx,
		gorepo.SelectBy("event_date", ">=", start),
		gorepo.SelectBy("event_date", "<=", end),
		gorepo.OrderBy("event_date ASC", "created_at ASC"),
		gorepo.Paginate(0, 0),
	)
	return records, err
}

// Delete removes the event and its participants
func (r *events) Delete(ctx context.Context, record *Event) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return r.DeleteTx(ctx, tx, record)
	})
}

func (r *events) DeleteTx(ctx context.Context, tx bun.IDB, record *Event) error {
	if err := r.exists(ctx, tx, record); err != nil {
		return err
	}

	if _, err := tx.NewDelete().
		Model((*Participant)(nil)).
		Where("?TableAlias.event_id = ?", record.ID).
		Exec(ctx); err != nil {
		return mapError(err, msgEventNotFound)
	}

	if err := r.Repository.DeleteTx(ctx, tx, record); err != nil {
		return mapError(err, msgEventNotFound)
	}
	return nil
}

// AddParticipant attaches participant to the event and returns the event
// with all of its participants.
func (r *events) AddParticipant(ctx context.Context, eventID uuid.UUID, participant *Participant) (*Event, error) {
	var out *Event
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := r.GetByIDTx(ctx, tx, eventID.String()); err != nil {
			return err
		}

		participant.EventID = eventID
		stampDefaults(&participant.ID, &participant.CreatedAt)
		if _, err := tx.NewInsert().Model(participant).Exec(ctx); err != nil {
			return mapError(err, msgParticipantNotFound)
		}

		var err error
		out, err = r.GetByIDTx(ctx, tx, eventID.String(), WithParticipants())
		return err
	})
	return out, err
}
