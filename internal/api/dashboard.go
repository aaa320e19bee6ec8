package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/tacka/internal/model"
	"github.com/erazemk/tacka/internal/store"
)

// recentReports is how many reports the dashboard shows.
const recentReports = 10

// DashboardHandler serves the home screen summary.
type DashboardHandler struct {
	DB *sql.DB
}

type dashboardResponse struct {
	Stats  *model.DashboardStats `json:"stats"`
	Recent []model.Report        `json:"recent"`
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	stats, err := store.GetDashboardStats(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to get dashboard stats", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	recent, err := store.ListRecentReports(r.Context(), h.DB, recentReports)
	if err != nil {
		slog.Error("failed to list recent reports", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	if recent == nil {
		recent = []model.Report{}
	}

	jsonResponse(w, http.StatusOK, dashboardResponse{Stats: stats, Recent: recent})
}
