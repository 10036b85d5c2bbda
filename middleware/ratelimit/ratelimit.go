package ratelimit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const defaultRate = "10-M"

// Config configures the limiter middleware
type Config struct {
	// Rate in ulule format, e.g. 10-M
	Rate string
	// Store defaults to an in process memory store
	Store limiter.Store
	// KeyGetter defaults to the client IP
	KeyGetter func(*fiber.Ctx) string
	// OnError handles store failures, by default the request is let through
	OnError func(*fiber.Ctx, error) error
}

// New returns a fiber handler that limits requests per key
func New(cfg Config) (fiber.Handler, error) {
	if cfg.Rate == "" {
		cfg.Rate = defaultRate
	}

	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid rate limit").
			WithMetadata(map[string]any{"rate": cfg.Rate})
	}

	if cfg.Store == nil {
		cfg.Store = memory.NewStore()
	}

	if cfg.KeyGetter == nil {
		cfg.KeyGetter = func(c *fiber.Ctx) string {
			return c.IP()
		}
	}

	if cfg.OnError == nil {
		cfg.OnError = func(c *fiber.Ctx, _ error) error {
			return c.Next()
		}
	}

	instance := limiter.New(cfg.Store, rate)

	return func(c *fiber.Ctx) error {
		lctx, err := instance.Get(c.UserContext(), cfg.KeyGetter(c))
		if err != nil {
			return cfg.OnError(c, err)
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": "Too many requests",
			})
		}

		return c.Next()
	}, nil
}
