package echo

import (
	"imagehub/internal/transport/echo/handler"
	"imagehub/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// registerRoutes registers the operational endpoints and the resource API.
// Every resource route runs behind audit recording, authentication, and
// authorization; ownership enforcement lives in the authorization engine,
// handlers only do I/O and validation.
func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.healthCheck)
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	teamHandler := handler.NewTeamHandler(s.deps.TeamRepo, s.deps.DB, s.deps.ObjectStore, s.deps.URLCache, s.deps.Config.App.PageSize)
	userHandler := handler.NewUserHandler(s.deps.UserRepo, s.deps.TeamRepo, s.deps.DB, s.deps.Config.App.PageSize)
	apiKeyHandler := handler.NewAPIKeyHandler(s.deps.CredentialRepo, s.deps.UserRepo, s.deps.Issuance, s.deps.Config.App.PageSize)
	imageHandler := handler.NewImageHandler(s.deps.ImageRepo, s.deps.TeamRepo, s.deps.ObjectStore, s.deps.URLCache, s.deps.Config.App.PageSize)
	auditHandler := handler.NewAuditHandler(s.deps.AuditLogger, s.deps.Config.App.PageSize)

	api := s.echo.Group("",
		s.deps.AuditMiddleware.Record(),
		s.deps.AuthMiddleware.Require(),
		s.deps.AuthzMiddleware.Require(),
	)

	api.POST("/teams", teamHandler.CreateTeam)
	api.GET("/teams", teamHandler.ListTeams)
	api.GET("/teams/:team_id", teamHandler.GetTeam)
	api.PUT("/teams/:team_id", teamHandler.UpdateTeam)
	api.DELETE("/teams/:team_id", teamHandler.DeleteTeam)

	api.POST("/teams/:team_id/users", userHandler.CreateUser)
	api.GET("/teams/:team_id/users", userHandler.ListUsers)
	api.GET("/teams/:team_id/users/:user_id", userHandler.GetUser)
	api.PUT("/teams/:team_id/users/:user_id", userHandler.UpdateUser)
	api.DELETE("/teams/:team_id/users/:user_id", userHandler.DeleteUser)

	api.POST("/teams/:team_id/api-keys", apiKeyHandler.CreateAPIKey)
	api.GET("/teams/:team_id/api-keys", apiKeyHandler.ListTeamAPIKeys)
	api.GET("/teams/:team_id/api-keys/:api_key_id", apiKeyHandler.GetAPIKey)
	api.PUT("/teams/:team_id/api-keys/:api_key_id", apiKeyHandler.UpdateAPIKey)
	api.DELETE("/teams/:team_id/api-keys/:api_key_id", apiKeyHandler.RevokeAPIKey)
	api.GET("/teams/:team_id/users/:user_id/api-keys", apiKeyHandler.ListUserAPIKeys)
	api.GET("/teams/:team_id/users/:user_id/api-keys/:api_key_id", apiKeyHandler.GetAPIKey)
	api.DELETE("/teams/:team_id/users/:user_id/api-keys/:api_key_id", apiKeyHandler.RevokeAPIKey)

	api.POST("/teams/:team_id/images", imageHandler.UploadImage)
	api.GET("/teams/:team_id/images", imageHandler.ListTeamImages)
	api.GET("/teams/:team_id/images/:image_id", imageHandler.GetImage)
	api.PUT("/teams/:team_id/images/:image_id", imageHandler.UpdateImage)
	api.DELETE("/teams/:team_id/images/:image_id", imageHandler.DeleteImage)
	api.GET("/teams/:team_id/users/:user_id/images", imageHandler.ListUserImages)
	api.GET("/teams/:team_id/users/:user_id/images/:image_id", imageHandler.GetImage)
	api.PUT("/teams/:team_id/users/:user_id/images/:image_id", imageHandler.UpdateImage)
	api.DELETE("/teams/:team_id/users/:user_id/images/:image_id", imageHandler.DeleteImage)

	api.GET("/audit-logs", auditHandler.ListAuditLogs)
}
