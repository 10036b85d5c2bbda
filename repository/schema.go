package repository

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-eventdesk/auth"
	"github.com/uptrace/bun"
)

// CreateSchema creates every table and index that does not exist yet
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []any{
		(*auth.User)(nil),
		(*EventType)(nil),
		(*Event)(nil),
		(*Participant)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create table")
		}
	}

	indexes := []struct {
		model  any
		name   string
		column string
	}{
		{(*Event)(nil), "events_event_date_idx", "event_date"},
		{(*Event)(nil), "events_event_type_id_idx", "event_type_id"},
		{(*Participant)(nil), "participants_event_id_idx", "event_id"},
		{(*Participant)(nil), "participants_email_idx", "email"},
	}

	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.column).
			IfNotExists().
			Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create index "+idx.name)
		}
	}

	return nil
}
