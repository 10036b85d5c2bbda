package auth

import (
	"context"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the user repository. It satisfies CredentialStore.
type Users interface {
	CredentialStore
	repository.Repository[*User]
}

type users struct {
	repository.Repository[*User]
	db bun.IDB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

// NewUsersRepository returns a bun backed Users repository
func NewUsersRepository(db bun.IDB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// UsersByCreated orders users oldest first, ties broken by username
func UsersByCreated() repository.SelectCriteria {
	return repository.OrderBy("created_at ASC", "username ASC")
}

func (r *users) FindByUsername(ctx context.Context, username string) (*User, error) {
	record, err := r.Repository.Get(ctx, repository.SelectBy("username", "=", username))
	if err != nil {
		return nil, mapUserError(err)
	}
	return record, nil
}

func (r *users) FindByEmail(ctx context.Context, email string) (*User, error) {
	record, err := r.Repository.Get(ctx, repository.SelectBy("email", "=", email))
	if err != nil {
		return nil, mapUserError(err)
	}
	return record, nil
}

func (r *users) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*User, error) {
	return r.GetByIDTx(ctx, r.db, id, criteria...)
}

func (r *users) GetByIDTx(ctx context.Context, tx bun.IDB, id string, criteria ...repository.SelectCriteria) (*User, error) {
	record, err := r.Repository.GetByIDTx(ctx, tx, id, criteria...)
	if err != nil {
		return nil, mapUserError(err)
	}
	return record, nil
}

func (r *users) List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*User, int, error) {
	return r.ListTx(ctx, r.db, criteria...)
}

func (r *users) ListTx(ctx context.Context, tx bun.IDB, criteria ...repository.SelectCriteria) ([]*User, int, error) {
	records, total, err := r.Repository.ListTx(ctx, tx, criteria...)
	if err != nil {
		return nil, 0, mapUserError(err)
	}
	return records, total, nil
}

func (r *users) Create(ctx context.Context, record *User) (*User, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if record == nil {
		return nil, goerrors.New("user record is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	prepareUserDefaults(record)

	created, err := r.Repository.CreateTx(ctx, tx, record)
	if err != nil {
		return nil, mapUserError(err)
	}
	return created, nil
}

func (r *users) Delete(ctx context.Context, record *User) error {
	return r.DeleteTx(ctx, r.db, record)
}

// DeleteTx answers not found when the user does not exist
func (r *users) DeleteTx(ctx context.Context, tx bun.IDB, record *User) error {
	if record == nil || record.ID == uuid.Nil {
		return ErrRecordNotFound.Clone()
	}

	if _, err := r.GetByIDTx(ctx, tx, record.ID.String()); err != nil {
		return err
	}

	if err := r.Repository.DeleteTx(ctx, tx, record); err != nil {
		return mapUserError(err)
	}
	return nil
}

func mapUserError(err error) error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if errors.As(err, &richErr) {
		return err
	}

	if repository.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, ErrRecordNotFound.Message).
			WithTextCode(TextCodeRecordNotFound).
			WithCode(goerrors.CodeNotFound)
	}

	if IsUniqueViolation(err) {
		return goerrors.Wrap(err, goerrors.CategoryConflict, ErrUserExists.Message).
			WithTextCode(TextCodeUserExists).
			WithCode(goerrors.CodeConflict)
	}

	return goerrors.Wrap(err, goerrors.CategoryInternal, "user repository operation failed")
}

// IsUniqueViolation reports whether err was raised by a unique constraint
// in sqlite or postgres.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
