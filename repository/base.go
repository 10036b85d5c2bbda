package repository

import (
	"context"

	gorepo "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// store maps go-repository-bun errors to client facing errors and stamps
// creation defaults. Queries run on the embedded Repository.
type store[T any] struct {
	gorepo.Repository[T]
	db       *bun.DB
	notFound string
	prepare  func(T)
}

func newStore[T any](db *bun.DB, handlers gorepo.ModelHandlers[T], notFound string, prepare func(T)) *store[T] {
	return &store[T]{
		Repository: gorepo.NewRepository[T](db, handlers),
		db:         db,
		notFound:   notFound,
		prepare:    prepare,
	}
}

func (s *store[T]) GetByID(ctx context.Context, id string, criteria ...gorepo.SelectCriteria) (T, error) {
	return s.GetByIDTx(ctx, s.db, id, criteria...)
}

func (s *store[T]) GetByIDTx(ctx context.Context, tx bun.IDB, id string, criteria ...gorepo.SelectCriteria) (T, error) {
	record, err := s.Repository.GetByIDTx(ctx, tx, id, criteria...)
	if err != nil {
		var zero T
		return zero, mapError(err, s.notFound)
	}
	return record, nil
}

func (s *store[T]) List(ctx context.Context, criteria ...gorepo.SelectCriteria) ([]T, int, error) {
	return s.ListTx(ctx, s.db, criteria...)
}

func (s *store[T]) ListTx(ctx context.Context, tx bun.IDB, criteria ...gorepo.SelectCriteria) ([]T, int, error) {
	records, total, err := s.Repository.ListTx(ctx, tx, criteria...)
	if err != nil {
		return nil, 0, mapError(err, s.notFound)
	}
	return records, total, nil
}

func (s *store[T]) Create(ctx context.Context, record T) (T, error) {
	return s.CreateTx(ctx, s.db, record)
}

func (s *store[T]) CreateTx(ctx context.Context, tx bun.IDB, record T) (T, error) {
	if s.prepare != nil {
		s.prepare(record)
	}

	created, err := s.Repository.CreateTx(ctx, tx, record)
	if err != nil {
		var zero T
		return zero, mapError(err, s.notFound)
	}
	return created, nil
}

func (s *store[T]) Update(ctx context.Context, record T, criteria ...gorepo.UpdateCriteria) (T, error) {
	return s.UpdateTx(ctx, s.db, record, criteria...)
}

func (s *store[T]) UpdateTx(ctx context.Context, tx bun.IDB, record T, criteria ...gorepo.UpdateCriteria) (T, error) {
	updated, err := s.Repository.UpdateTx(ctx, tx, record, criteria...)
	if err != nil {
		var zero T
		return zero, mapError(err, s.notFound)
	}
	return updated, nil
}

func (s *store[T]) Delete(ctx context.Context, record T) error {
	return s.DeleteTx(ctx, s.db, record)
}

// DeleteTx answers not found when no record has the record's ID
func (s *store[T]) DeleteTx(ctx context.Context, tx bun.IDB, record T) error {
	if err := s.exists(ctx, tx, record); err != nil {
		return err
	}

	if err := s.Repository.DeleteTx(ctx, tx, record); err != nil {
		return mapError(err, s.notFound)
	}
	return nil
}

func (s *store[T]) exists(ctx context.Context, tx bun.IDB, record T) error {
	id := s.Handlers().GetID(record)
	if id == uuid.Nil {
		return NewRecordNotFound(s.notFound)
	}
	_, err := s.GetByIDTx(ctx, tx, id.String())
	return err
}

// OrderByCreated sorts oldest first
func OrderByCreated() gorepo.SelectCriteria {
	return gorepo.OrderBy("created_at ASC")
}
