package repository

import (
	"context"

	gorepo "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const msgParticipantNotFound = "Participant record not found"

type Participants interface {
	gorepo.Repository[*Participant]
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*Participant, error)
}

type participants struct {
	*store[*Participant]
	events Events
}

var _ Participants = (*participants)(nil)

func NewParticipantsRepository(db *bun.DB, events Events) Participants {
	return &participants{
		events: events,
		store: newStore(db, gorepo.ModelHandlers[*Participant]{
			NewRecord: func() *Participant { return &Participant{} },
			GetID: func(r *Participant) uuid.UUID {
				if r == nil {
					return uuid.Nil
				}
				return r.ID
			},
			SetID: func(r *Participant, id uuid.UUID) {
				if r != nil {
					r.ID = id
				}
			},
			GetIdentifier: func() string {
				return "email"
			},
		}, msgParticipantNotFound, func(r *Participant) {
			stampDefaults(&r.ID, &r.CreatedAt)
		}),
	}
}

// Create requires the participant's event to exist
func (r *participants) Create(ctx context.Context, record *Participant) (*Participant, error) {
	var out *Participant
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = r.CreateTx(ctx, tx, record)
		return err
	})
	return out, err
}

func (r *participants) CreateTx(ctx context.Context, tx bun.IDB, record *Participant) (*Participant, error) {
	if _, err := r.events.GetByIDTx(ctx, tx, record.EventID.String()); err != nil {
		return nil, err
	}
	return r.store.CreateTx(ctx, tx, record)
}

// ListByEvent returns the event's participants, empty when there are none
func (r *participants) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*Participant, error) {
	records, _, err := r.List(ctx,
		gorepo.SelectBy("event_id", "=", eventID.String()),
		OrderByCreated(),
		gorepo.Paginate(0, 0),
	)
	return records, err
}
