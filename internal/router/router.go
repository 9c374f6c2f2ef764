package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"member-auth/internal/config"
	"member-auth/internal/handler"
	"member-auth/internal/middleware"
	"member-auth/internal/model"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	checkHandler *handler.CheckHandler,
	docsHandler *handler.DocsHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	// Every request passes the gate; it attaches an identity when the
	// bearer token checks out and stays silent otherwise.
	r.Use(authMiddleware.Authenticate)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/openapi.yaml", docsHandler.OpenAPI)
	r.Get("/swagger", docsHandler.SwaggerUI)

	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Post("/auth/reissue", authHandler.Reissue)

	r.Get("/all", checkHandler.All)
	r.With(authMiddleware.RequireRoles(model.RoleGeneral)).Get("/general", checkHandler.General)
	r.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)

	return r
}
