package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenCodec signs and verifies access tokens. All fields are fixed at
// construction so a codec can be shared by concurrent requests.
type TokenCodec struct {
	signingKey []byte
	method     jwt.SigningMethod
	ttl        time.Duration
	now        func() time.Time
	logger     Logger
}

var _ TokenDecoder = (*TokenCodec)(nil)

// TokenCodecOption configures a TokenCodec
type TokenCodecOption func(*TokenCodec)

// WithCodecClock replaces the wall clock used for minting and expiry checks
func WithCodecClock(now func() time.Time) TokenCodecOption {
	return func(tc *TokenCodec) {
		if now != nil {
			tc.now = now
		}
	}
}

// WithCodecLogger sets the codec logger
func WithCodecLogger(logger Logger) TokenCodecOption {
	return func(tc *TokenCodec) {
		tc.logger = normalizeLogger(logger)
	}
}

// NewTokenCodec validates cfg and returns a codec bound to its signing key,
// HMAC algorithm and TTL.
func NewTokenCodec(cfg Config, opts ...TokenCodecOption) (*TokenCodec, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	if cfg.GetSigningKey() == "" {
		return nil, goerrors.Wrap(errors.New("signing key is required"), ErrInvalidConfig.Category, ErrInvalidConfig.Message).
			WithTextCode(TextCodeInvalidConfig)
	}

	method := jwt.GetSigningMethod(cfg.GetSigningMethod())
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, goerrors.Wrap(
			fmt.Errorf("unsupported signing method %q", cfg.GetSigningMethod()),
			ErrInvalidConfig.Category,
			ErrInvalidConfig.Message,
		).WithTextCode(TextCodeInvalidConfig)
	}

	if cfg.GetTokenExpiration() <= 0 {
		return nil, goerrors.Wrap(
			fmt.Errorf("token expiration must be positive, got %d", cfg.GetTokenExpiration()),
			ErrInvalidConfig.Category,
			ErrInvalidConfig.Message,
		).WithTextCode(TextCodeInvalidConfig)
	}

	tc := &TokenCodec{
		signingKey: []byte(cfg.GetSigningKey()),
		method:     method,
		ttl:        time.Duration(cfg.GetTokenExpiration()) * time.Minute,
		now:        time.Now,
		logger:     defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(tc)
		}
	}

	return tc, nil
}

// TTL returns the lifetime of minted tokens
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Algorithm returns the JWT alg header value used for signing
func (tc *TokenCodec) Algorithm() string {
	return tc.method.Alg()
}

// Encode stamps issued-at and expiry (UTC now + TTL) on claims and returns
// the compact signed token.
func (tc *TokenCodec) Encode(claims Claims) (string, error) {
	now := tc.now().UTC()

	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(tc.ttl))
	if claims.RegisteredClaims.ID == "" {
		claims.RegisteredClaims.ID = uuid.NewString()
	}

	token := jwt.NewWithClaims(tc.method, &claims)

	signed, err := token.SignedString(tc.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// Decode verifies the signature and expiry of raw and returns its claims.
// Errors are *DecodeError values.
func (tc *TokenCodec) Decode(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{tc.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return tc.now().UTC() }),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return tc.signingKey, nil
	})
	if err != nil {
		decodeErr := classifyDecodeError(err)
		tc.logger.Debug("token decode failed", "kind", decodeErr.Kind)
		return nil, decodeErr
	}

	if !token.Valid {
		return nil, &DecodeError{Kind: DecodeMalformed}
	}

	return claims, nil
}

func classifyDecodeError(err error) *DecodeError {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &DecodeError{Kind: DecodeInvalidSignature, Err: err}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &DecodeError{Kind: DecodeExpired, Err: err}
	default:
		return &DecodeError{Kind: DecodeMalformed, Err: err}
	}
}
