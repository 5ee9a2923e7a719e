package router

import (
	"database/sql"
	"net/http"

	"creatorvault/config"
	"creatorvault/internal/health"
	ideaHandler "creatorvault/internal/idea"
	"creatorvault/internal/idea/repository"
	"creatorvault/internal/idea/service"
	"creatorvault/internal/user"
	"creatorvault/middleware"
	"creatorvault/socket"
)

func Setup(db *sql.DB, hub *socket.Hub, cfg *config.Settings) http.Handler {
	mux := http.NewServeMux()

	ideaRepo := repository.NewIdeaRepository(db)
	ideaService := service.NewIdeaService(ideaRepo, hub)
	ideas := ideaHandler.NewIdeaHandler(ideaService)
	users := user.NewUserHandler()
	healthHandler := health.NewHealthHandler(db)
	auth := middleware.AuthMiddleware(cfg.AuthSecret)

	// Health probes (public, no auth)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/db", healthHandler.HealthDB)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)

	// REST API
	mux.Handle("POST /api/v1/{user_id}/ideas", auth(http.HandlerFunc(ideas.CreateIdea)))
	mux.Handle("GET /api/v1/{user_id}/ideas", auth(http.HandlerFunc(ideas.ListIdeas)))
	mux.Handle("GET /api/v1/{user_id}/ideas/{id}", auth(http.HandlerFunc(ideas.GetIdea)))
	mux.Handle("PATCH /api/v1/{user_id}/ideas/{id}", auth(http.HandlerFunc(ideas.UpdateIdea)))
	mux.Handle("PUT /api/v1/{user_id}/ideas/{id}", auth(http.HandlerFunc(ideas.ReplaceIdea)))
	mux.Handle("DELETE /api/v1/{user_id}/ideas/{id}", auth(http.HandlerFunc(ideas.DeleteIdea)))
	mux.Handle("GET /api/v1/users/me", auth(http.HandlerFunc(users.Me)))

	// WebSocket event stream
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r, middleware.UserID(r.Context()))
	})
	mux.Handle("GET /api/v1/events", auth(wsHandler))

	var h http.Handler = middleware.CORSMiddleware(cfg.AllowedOrigins)(mux)
	h = middleware.SecurityMiddleware(h)
	h = middleware.RecoverMiddleware(h)
	return middleware.CorrelationMiddleware(h)
}
