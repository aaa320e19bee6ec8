package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/erazemk/tacka/internal/form"
	"github.com/erazemk/tacka/internal/model"
	"github.com/erazemk/tacka/internal/reports"
	"github.com/erazemk/tacka/internal/store"
)

// ReportsHandler handles lost and found reports. Reads come from the
// in-memory list; writes go to the database first.
type ReportsHandler struct {
	DB      *sql.DB
	Reports *reports.Store
}

type createReportRequest struct {
	Type model.Kind `json:"type"`
	model.Draft
}

type setStatusRequest struct {
	Status model.Status `json:"status"`
}

// List handles GET /api/reports.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := reports.Filter{
		Kind:      model.Kind(q.Get("type")),
		Species:   q.Get("species"),
		Color:     q.Get("color"),
		Location:  q.Get("location"),
		HasReward: q.Get("has_reward") == "true",
	}
	if f.Kind != "" && !f.Kind.Valid() {
		jsonError(w, http.StatusBadRequest, "type must be lost or found")
		return
	}

	list := slices.Collect(h.Reports.Search(f))
	if list == nil {
		list = []model.Report{}
	}
	jsonResponse(w, http.StatusOK, list)
}

// Get handles GET /api/reports/{id}.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.Get(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "report not found")
		return
	}
	jsonResponse(w, http.StatusOK, report)
}

// Create handles POST /api/reports. The body is filled into a report form
// field by field; a form that does not validate is answered with 422 and
// the per-field messages.
func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Type.Valid() {
		jsonError(w, http.StatusBadRequest, "type must be lost or found")
		return
	}

	c := form.New(req.Type)
	for _, f := range []struct{ name, value string }{
		{model.FieldName, req.Name},
		{model.FieldSpecies, req.Species},
		{model.FieldBreed, req.Breed},
		{model.FieldColor, req.Color},
		{model.FieldLocation, req.Location},
		{model.FieldDate, req.Date},
		{model.FieldDescription, req.Description},
		{model.FieldContactInfo, req.ContactInfo},
		{model.FieldReward, req.Reward},
	} {
		// An omitted date keeps the form's default of today.
		if f.name == model.FieldDate && f.value == "" {
			continue
		}
		if err := c.UpdateField(f.name, f.value); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	for _, ref := range req.Images {
		c.AddImage(ref)
	}

	report, err := c.Submit()
	var fieldErrs model.FieldErrors
	if errors.As(err, &fieldErrs) {
		validationError(w, fieldErrs)
		return
	}
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := GetClaims(r.Context())
	report.ReporterID = claims.UserID

	created, err := store.CreateReport(r.Context(), h.DB, report)
	if err != nil {
		slog.Error("failed to create report", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create report")
		return
	}
	stored := h.Reports.Add(*created)

	slog.Info("report created", "user", claims.Username, "report", stored.ID, "type", stored.Kind())
	jsonResponse(w, http.StatusCreated, stored)
}

// SetStatus handles PUT /api/reports/{id}/status. Only the reporter or a
// moderator may mark a report reunited or closed.
func (h *ReportsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	report, err := h.Reports.Get(id)
	if err != nil {
		jsonError(w, http.StatusNotFound, "report not found")
		return
	}

	claims := GetClaims(r.Context())
	if report.ReporterID != claims.UserID && !model.RoleAtLeast(claims.Role, model.RoleModerator) {
		jsonError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		jsonError(w, http.StatusBadRequest, "status must be active, reunited or closed")
		return
	}

	if err := store.SetReportStatus(r.Context(), h.DB, id, req.Status); err != nil {
		slog.Error("failed to update report status", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update report")
		return
	}
	if err := h.Reports.SetStatus(id, req.Status); err != nil {
		slog.Error("failed to update listed report", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update report")
		return
	}

	updated, _ := h.Reports.Get(id)
	slog.Info("report status changed", "user", claims.Username, "report", id, "status", req.Status)
	jsonResponse(w, http.StatusOK, updated)
}
