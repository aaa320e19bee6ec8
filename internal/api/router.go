package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/erazemk/tacka/internal/auth"
	"github.com/erazemk/tacka/internal/model"
	"github.com/erazemk/tacka/internal/reports"
)

// NewRouter creates the API router with all endpoints registered. Report
// listings are served from list, which must already hold the stored reports.
func NewRouter(db *sql.DB, signer *auth.Signer, list *reports.Store) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Signer: signer}
	usersHandler := &UsersHandler{DB: db}
	reportsHandler := &ReportsHandler{DB: db, Reports: list}
	imagesHandler := &ImagesHandler{DB: db}
	chatsHandler := &ChatsHandler{DB: db, Now: time.Now}
	dashboardHandler := &DashboardHandler{DB: db}

	authMW := AuthMiddleware(signer, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: account creation and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Reports: read and file (all roles), status (reporter or moderator+).
	mux.Handle("GET /api/reports", authMW(http.HandlerFunc(reportsHandler.List)))
	mux.Handle("POST /api/reports", authMW(http.HandlerFunc(reportsHandler.Create)))
	mux.Handle("GET /api/reports/{id}", authMW(http.HandlerFunc(reportsHandler.Get)))
	mux.Handle("PUT /api/reports/{id}/status", authMW(http.HandlerFunc(reportsHandler.SetStatus)))

	// Photos.
	mux.Handle("POST /api/images", authMW(http.HandlerFunc(imagesHandler.Upload)))
	mux.Handle("GET /api/images/{ref}", authMW(http.HandlerFunc(imagesHandler.Get)))

	// Chats: only participants see a conversation.
	mux.Handle("POST /api/reports/{id}/chat", authMW(http.HandlerFunc(chatsHandler.Open)))
	mux.Handle("GET /api/chats", authMW(http.HandlerFunc(chatsHandler.List)))
	mux.Handle("GET /api/chats/{id}/messages", authMW(http.HandlerFunc(chatsHandler.Messages)))
	mux.Handle("POST /api/chats/{id}/messages", authMW(http.HandlerFunc(chatsHandler.Send)))

	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(dashboardHandler.Get)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("PUT /api/users/{id}/role", authMW(requireAdmin(http.HandlerFunc(usersHandler.UpdateRole))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	return mux
}
