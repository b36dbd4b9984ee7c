package app

import (
	"fmt"

	"imagehub/internal/audit"
	"imagehub/internal/auth"
	"imagehub/internal/authz"
	"imagehub/internal/config"
	"imagehub/internal/infra/cache"
	"imagehub/internal/infra/s3"
	"imagehub/internal/logging"
	"imagehub/internal/repository/postgres"
	"imagehub/internal/transport/echo"
)

// InitializeService wires up all dependencies and returns a configured
// Service. Construction fails fast: an invalid rule table, bad auth config,
// or unreachable database stops the process before it serves a request.
func InitializeService(cfg *config.Config) (*Service, error) {
	logger := logging.New(cfg.Log)

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	teamRepo := postgres.NewTeamRepository(db)
	userRepo := postgres.NewUserRepository(db)
	credentialRepo := postgres.NewCredentialRepository(db)
	imageRepo := postgres.NewImageRepository(db)

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	urlCache := cache.NewURLCache()

	authenticator, err := auth.NewAuthenticator(auth.Config{
		RootSecret:   cfg.Auth.RootAPIKey,
		PrefixLength: cfg.Auth.PrefixLength,
		Iterations:   cfg.Auth.Iterations,
	}, credentialRepo, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build authenticator: %w", err)
	}

	table, err := authz.NewTable(authz.DefaultRules())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to compile permission rules: %w", err)
	}
	authorizer := authz.NewAuthorizer(table, userRepo, credentialRepo, imageRepo, logger)

	auditLogger := audit.NewLogger(db.Pool, logger)

	server := echo.NewServer(&echo.ServerDependencies{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		TeamRepo:        teamRepo,
		UserRepo:        userRepo,
		CredentialRepo:  credentialRepo,
		ImageRepo:       imageRepo,
		ObjectStore:     s3Client,
		URLCache:        urlCache,
		Issuance:        authenticator,
		AuthMiddleware:  auth.NewMiddleware(authenticator, credentialRepo),
		AuthzMiddleware: authz.NewMiddleware(authorizer),
		AuditMiddleware: audit.NewMiddleware(auditLogger),
		AuditLogger:     auditLogger,
	})

	return &Service{
		config:   cfg,
		logger:   logger,
		db:       db,
		urlCache: urlCache,
		server:   server,
	}, nil
}
