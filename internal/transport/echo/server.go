package echo

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"imagehub/internal/audit"
	"imagehub/internal/auth"
	"imagehub/internal/authz"
	"imagehub/internal/config"
	"imagehub/internal/infra/cache"
	"imagehub/internal/infra/s3"
	"imagehub/internal/repository/postgres"
	"imagehub/internal/transport/echo/handler"
	"imagehub/internal/transport/echo/middleware"
	"imagehub/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const (
	jsonKeyStatus = "status"
	statusOK      = "ok"

	healthCheckTimeout = 2 * time.Second

	// Multipart encoding adds boundary and header overhead on top of the
	// file payload, so the body limit carries some slack above the
	// configured maximum upload size.
	bodyLimitSlackBytes = int64(1 << 20)
)

// ServerDependencies carries everything the HTTP layer is wired with.
type ServerDependencies struct {
	Config          *config.Config
	Logger          zerolog.Logger
	DB              *postgres.DB
	TeamRepo        *postgres.TeamRepository
	UserRepo        *postgres.UserRepository
	CredentialRepo  *postgres.CredentialRepository
	ImageRepo       *postgres.ImageRepository
	ObjectStore     *s3.Client
	URLCache        *cache.URLCache
	Issuance        handler.IssuanceParams
	AuthMiddleware  *auth.Middleware
	AuthzMiddleware *authz.Middleware
	AuditMiddleware *audit.Middleware
	AuditLogger     *audit.Logger
}

// Server wraps the Echo server with its dependencies.
type Server struct {
	echo        *echo.Echo
	deps        *ServerDependencies
	rateLimiter *middleware.RateLimiter
}

// NewServer builds the HTTP server: middleware chain, error handler, and
// routes. The audit middleware sits outside authentication so rejected
// requests land in the trail too.
func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID first so every later log line can carry it.
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(bodyLimitFor(deps.Config.App.MaxUploadSize)))

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	server := &Server{
		echo:        e,
		deps:        deps,
		rateLimiter: globalRateLimiter,
	}

	server.registerRoutes()

	return server
}

// Start starts the HTTP server.
func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.Stop()
	return s.echo.Shutdown(ctx)
}

func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := s.deps.DB.Pool.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			jsonKeyStatus: "degraded",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}

func bodyLimitFor(maxUploadSize int64) string {
	return strconv.FormatInt(maxUploadSize+bodyLimitSlackBytes, 10)
}
