package auth

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// TokenTypeBearer is the token_type returned with every access token
const TokenTypeBearer = "bearer"

// Token is the login response body
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Auther wires the hasher, codec, authenticator and principal resolver
// around a single CredentialStore and Config.
type Auther struct {
	codec         *TokenCodec
	hasher        PasswordHasher
	authenticator *Authenticator
	resolver      *PrincipalResolver
	activity      ActivitySink
	logger        Logger
	now           func() time.Time
}

// AutherOption configures an Auther
type AutherOption func(*autherOptions)

type autherOptions struct {
	logger   Logger
	activity ActivitySink
	hasher   PasswordHasher
	now      func() time.Time
}

func WithLogger(logger Logger) AutherOption {
	return func(o *autherOptions) {
		o.logger = logger
	}
}

func WithActivitySink(sink ActivitySink) AutherOption {
	return func(o *autherOptions) {
		o.activity = sink
	}
}

// WithHasher overrides the bcrypt hasher built from Config.GetHashCost
func WithHasher(hasher PasswordHasher) AutherOption {
	return func(o *autherOptions) {
		o.hasher = hasher
	}
}

// WithClock replaces the wall clock used to mint and validate tokens
func WithClock(now func() time.Time) AutherOption {
	return func(o *autherOptions) {
		o.now = now
	}
}

// NewAuther validates cfg and returns the assembled auth core
func NewAuther(store CredentialStore, cfg Config, opts ...AutherOption) (*Auther, error) {
	if store == nil {
		return nil, goerrors.New("credential store is required", goerrors.CategoryInternal).
			WithTextCode(TextCodeInvalidConfig)
	}

	o := &autherOptions{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.now == nil {
		o.now = time.Now
	}

	logger := normalizeLogger(o.logger)

	codec, err := NewTokenCodec(cfg, WithCodecClock(o.now), WithCodecLogger(logger))
	if err != nil {
		return nil, err
	}

	hasher := o.hasher
	if hasher == nil {
		hasher = NewBcryptHasher(cfg.GetHashCost())
	}

	return &Auther{
		codec:         codec,
		hasher:        hasher,
		authenticator: NewAuthenticator(store, hasher).WithLogger(logger),
		resolver:      NewPrincipalResolver(codec, store).WithLogger(logger),
		activity:      normalizeActivitySink(o.activity),
		logger:        logger,
		now:           o.now,
	}, nil
}

// Hasher returns the password hasher used for verification, so that
// registration produces hashes the authenticator accepts.
func (a *Auther) Hasher() PasswordHasher {
	return a.hasher
}

// Codec returns the token codec
func (a *Auther) Codec() *TokenCodec {
	return a.codec
}

// Login verifies the credentials and mints an access token for the user.
func (a *Auther) Login(ctx context.Context, identifier, password string) (Token, error) {
	user, err := a.authenticator.Authenticate(ctx, identifier, password)
	if err != nil {
		var failure *AuthFailure
		if errors.As(err, &failure) {
			a.record(ctx, ActivityEvent{
				EventType:  ActivityEventLoginFailure,
				Identifier: identifier,
				Failure:    failure.Kind,
			})
		}
		return Token{}, err
	}

	signed, err := a.codec.Encode(NewClaims(user))
	if err != nil {
		a.logger.Error("login: failed to mint token", "user_id", user.ID, "error", err)
		return Token{}, err
	}

	a.record(ctx, ActivityEvent{
		EventType:  ActivityEventLoginSuccess,
		UserID:     user.ID.String(),
		Identifier: identifier,
	})

	return Token{
		AccessToken: signed,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(a.codec.TTL().Seconds()),
	}, nil
}

// AuthenticateRequest resolves the bearer token sent with a request.
func (a *Auther) AuthenticateRequest(ctx context.Context, raw string) (*User, error) {
	user, err := a.resolver.Resolve(ctx, raw)
	if err != nil {
		var failure *AuthFailure
		if errors.As(err, &failure) {
			meta := map[string]any{}
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				meta["decode_error"] = string(decodeErr.Kind)
			}
			a.record(ctx, ActivityEvent{
				EventType: ActivityEventTokenRejected,
				Failure:   failure.Kind,
				Metadata:  meta,
			})
		}
		return nil, err
	}
	return user, nil
}

func (a *Auther) record(ctx context.Context, event ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = a.now().UTC()
	}
	if err := a.activity.Record(ctx, event); err != nil {
		a.logger.Warn("failed to record activity", "event", event.EventType, "error", err)
	}
}
