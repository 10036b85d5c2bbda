package repository

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	gorepo "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const msgEventTypeNotFound = "Event type not found"

type EventTypes interface {
	gorepo.Repository[*EventType]
}

type eventTypes struct {
	*store[*EventType]
}

var _ EventTypes = (*eventTypes)(nil)

func NewEventTypesRepository(db *bun.DB) EventTypes {
	return &eventTypes{
		store: newStore(db, gorepo.ModelHandlers[*EventType]{
			NewRecord: func() *EventType { return &EventType{} },
			GetID: func(r *EventType) uuid.UUID {
				if r == nil {
					return uuid.Nil
				}
				return r.ID
			},
			SetID: func(r *EventType, id uuid.UUID) {
				if r != nil {
					r.ID = id
				}
			},
			GetIdentifier: func() string {
				return "name"
			},
		}, msgEventTypeNotFound, func(r *EventType) {
			stampDefaults(&r.ID, &r.CreatedAt)
		}),
	}
}

func (r *eventTypes) Delete(ctx context.Context, record *EventType) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return r.DeleteTx(ctx, tx, record)
	})
}

// DeleteTx refuses to remove a type while events still reference it
func (r *eventTypes) DeleteTx(ctx context.Context, tx bun.IDB, record *EventType) error {
	if err := r.exists(ctx, tx, record); err != nil {
		return err
	}

	n, err := tx.NewSelect().
		Model((*Event)(nil)).
		Where("?TableAlias.event_type_id = ?", record.ID).
		Count(ctx)
	if err != nil {
		return mapError(err, msgEventTypeNotFound)
	}

	if n > 0 {
		return goerrors.New("Event type is referenced by existing events", goerrors.CategoryConflict).
			WithTextCode(TextCodeRecordInUse).
			WithCode(goerrors.CodeConflict).
			WithMetadata(map[string]any{"events": n})
	}

	if err := r.Repository.DeleteTx(ctx, tx, record); err != nil {
		return mapError(err, msgEventTypeNotFound)
	}
	return nil
}
