package panel

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	defaultAddr     = ":7333"
	requestTimeout  = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	app     *fiber.App
	service *Service
	addr    string
	logger  zerolog.Logger
}

// New returns an HTTP server exposing service. An empty addr listens on the default port.
func New(service *Service, addr string, logger zerolog.Logger) (*Server, error) {
	if service == nil {
		return nil, eris.New("panel requires a non-nil service")
	}
	if addr == "" {
		addr = defaultAddr
	}

	app := fiber.New(fiber.Config{
		Network:               "tcp", // Enable server listening on both ipv4 & ipv6 (default: ipv4 only)
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	app.Use(cors.New())
	app.Use(withTimeout(requestTimeout))

	s := &Server{
		app:     app,
		service: service,
		addr:    addr,
		logger:  logger.With().Str("component", "panel").Logger(),
	}
	s.setupRoutes()

	return s, nil
}

// App exposes the underlying fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve serves the panel until ctx is done, blocking the calling goroutine.
func (s *Server) Serve(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("starting log settings panel")
		if err := s.app.Listen(s.addr); err != nil {
			serverErr <- eris.Wrap(err, "error starting panel server")
		}
	}()

	select {
	case err := <-serverErr:
		return eris.Wrap(err, "panel server encountered an error")
	case <-ctx.Done():
		if err := s.shutdown(); err != nil {
			return eris.Wrap(err, "error shutting down panel server")
		}
	}

	return nil
}

func (s *Server) shutdown() error {
	s.logger.Info().Msg("shutting down log settings panel")
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return eris.Wrap(err, "error shutting down panel server")
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", GetHealth())
	s.app.Get("/schema", GetSchema())

	s.app.Get("/settings", GetSettings(s.service))
	s.app.Patch("/settings", PatchSettings(s.service))
	s.app.Post("/settings/save", PostSave(s.service))

	s.app.Get("/events", GetEvents(s.service))
	s.app.Patch("/events/:id", PatchEvent(s.service))
}

// withTimeout bounds how long a request waits for the logic thread.
func withTimeout(d time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userCtx, cancel := context.WithTimeout(ctx.UserContext(), d)
		defer cancel()
		ctx.SetUserContext(userCtx)
		return ctx.Next()
	}
}
