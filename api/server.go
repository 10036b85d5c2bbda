package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-eventdesk/auth"
	"github.com/goliatone/go-eventdesk/middleware/jwtware"
	"github.com/goliatone/go-eventdesk/middleware/ratelimit"
	"github.com/goliatone/go-eventdesk/repository"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

// Config holds the dependencies of the HTTP API
type Config struct {
	Auther *auth.Auther
	Repos  repository.Manager
	// Logger receives access logs and unexpected errors
	Logger *zap.Logger
	// Debug adds error metadata to 500 responses logs
	Debug bool
	// LoginRateLimit is applied per client IP to the token route
	LoginRateLimit string
	// LoginRateStore defaults to an in process store
	LoginRateStore limiter.Store
}

// Server holds the route handlers
type Server struct {
	auther   *auth.Auther
	repos    repository.Manager
	register *auth.RegisterUserHandler
	logger   *zap.Logger
}

// New builds the fiber application with every route registered
func New(cfg Config) (*fiber.App, error) {
	if cfg.Auther == nil || cfg.Repos == nil {
		return nil, goerrors.New("api requires an auther and repositories", goerrors.CategoryInternal)
	}
	if err := cfg.Repos.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		auther:   cfg.Auther,
		repos:    cfg.Repos,
		register: auth.NewRegisterUserHandler(cfg.Repos.Users(), cfg.Auther.Hasher()),
		logger:   cfg.Logger,
	}

	loginLimiter, err := ratelimit.New(ratelimit.Config{
		Rate:  cfg.LoginRateLimit,
		Store: cfg.LoginRateStore,
	})
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "eventdesk",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(cfg.Logger, cfg.Debug),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(AccessLog(cfg.Logger))

	protected := jwtware.New(jwtware.Config{Resolver: cfg.Auther})

	app.Get("/health", s.Health)

	sec := app.Group("/security")
	sec.Post("/token", loginLimiter, s.Token)
	sec.Get("/users/me", protected, s.Me)

	user := app.Group("/user")
	user.Post("/create", s.UserCreate)
	user.Get("/read/:id", protected, s.UserRead)
	user.Get("/find/:username", protected, s.UserFind)
	user.Delete("/delete/:id", protected, s.UserDelete)
	user.Get("/list", protected, s.UserList)

	types := app.Group("/type", protected)
	types.Post("/create", s.EventTypeCreate)
	types.Get("/read/:id", s.EventTypeRead)
	types.Put("/update/:id", s.EventTypeUpdate)
	types.Delete("/delete/:id", s.EventTypeDelete)
	types.Get("/list", s.EventTypeList)

	events := app.Group("/event", protected)
	events.Post("/create", s.EventCreate)
	events.Get("/list", s.EventList)
	events.Get("/read/:id", s.EventRead)
	events.Get("/list/:start_date/:end_date", s.EventListByDate)
	events.Put("/update/:id", s.EventUpdate)
	events.Delete("/delete/:id", s.EventDelete)
	events.Post("/participant/add/:event_id", s.EventAddParticipant)

	participants := app.Group("/participant", protected)
	participants.Post("/create", s.ParticipantCreate)
	participants.Get("/list/:event_id", s.ParticipantListByEvent)
	participants.Get("/read/:id", s.ParticipantRead)
	participants.Delete("/delete/:id", s.ParticipantDelete)
	participants.Get("/list", s.ParticipantList)

	return app, nil
}

func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
