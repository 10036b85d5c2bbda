package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

type RegisterUserMessage struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Password  string `json:"password"`
	UseHashid bool   `json:"-"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate checks the message. Usernames may not look like email addresses
// so that login identifiers resolve to a single field.
func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Username,
			validation.Required,
			validation.Length(1, 50),
			validation.By(notAnEmail),
		),
		validation.Field(&e.Email, validation.Required, validation.Length(3, 100), EmailFormat),
		validation.Field(&e.Password, validation.Required, validation.Length(1, 72)),
		validation.Field(&e.FirstName, validation.Length(0, 100)),
		validation.Field(&e.LastName, validation.Length(0, 100)),
		validation.Field(&e.Role, validation.In(RoleMember, RoleAdmin)),
	)
}

func notAnEmail(value any) error {
	s, _ := value.(string)
	if IsEmail(s) {
		return errors.New("must not be an email address")
	}
	return nil
}

// RegisterUserHandler creates users with hashes the login path can verify
type RegisterUserHandler struct {
	users  Users
	hasher PasswordHasher
}

func NewRegisterUserHandler(users Users, hasher PasswordHasher) *RegisterUserHandler {
	return &RegisterUserHandler{users: users, hasher: hasher}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	event.Username = strings.TrimSpace(event.Username)
	event.Email = strings.TrimSpace(event.Email)

	if err := event.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid user registration").
			WithCode(goerrors.CodeBadRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if _, err := h.users.FindByUsername(ctx, event.Username); err == nil {
		return nil, ErrUserExists.Clone()
	} else if !isRecordNotFound(err) {
		return nil, err
	}

	if _, err := h.users.FindByEmail(ctx, event.Email); err == nil {
		return nil, ErrUserExists.Clone()
	} else if !isRecordNotFound(err) {
		return nil, err
	}

	hash, err := h.hasher.Hash(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if errors.As(err, &richErr) {
			return nil, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Username:     event.Username,
		Email:        event.Email,
		FirstName:    event.FirstName,
		LastName:     event.LastName,
		PasswordHash: hash,
	}

	if role, ok := ParseRole(event.Role); ok {
		user.Role = role
	}

	if event.UseHashid {
		if id, err := hashid.NewUUID(event.Email); err == nil {
			user.ID = id
		}
	}

	return h.users.Create(ctx, user)
}
