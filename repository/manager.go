package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goliatone/go-eventdesk/auth"
	"github.com/uptrace/bun"
)

// Manager exposes all repositories over one database
type Manager interface {
	Validate() error
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Users() auth.Users
	EventTypes() EventTypes
	Events() Events
	Participants() Participants
}

type mngr struct {
	db           *bun.DB
	users        auth.Users
	eventTypes   EventTypes
	events       Events
	participants Participants
}

func NewRepositoryManager(db *bun.DB) Manager {
	eventTypes := NewEventTypesRepository(db)
	events := NewEventsRepository(db, eventTypes)
	return &mngr{
		db:           db,
		users:        auth.NewUsersRepository(db),
		eventTypes:   eventTypes,
		events:       events,
		participants: NewParticipantsRepository(db, events),
	}
}

var _ Manager = (*mngr)(nil)

func (m mngr) Validate() error {
	if m.db == nil {
		return errors.New("repository database should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.eventTypes == nil || m.events == nil || m.participants == nil {
		return errors.New("event repositories should be initialized")
	}

	return nil
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() auth.Users {
	return m.users
}

func (m mngr) EventTypes() EventTypes {
	return m.eventTypes
}

func (m mngr) Events() Events {
	return m.events
}

func (m mngr) Participants() Participants {
	return m.participants
}
