package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/tacka/internal/imaging"
	"github.com/erazemk/tacka/internal/store"
)

// ImagesHandler stores uploaded photos and serves them back by reference.
type ImagesHandler struct {
	DB *sql.DB
}

// Upload handles POST /api/images. The photo goes in the "image" form field.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<20)

	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := GetClaims(r.Context())
	ref, err := store.SaveImage(r.Context(), h.DB, store.Image{
		Data:   photo.Data,
		MIME:   photo.MIME,
		Width:  photo.Width,
		Height: photo.Height,
	}, claims.Username)
	if err != nil {
		slog.Error("failed to save image", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	slog.Info("image uploaded", "user", claims.Username, "ref", ref, "bytes", len(photo.Data))
	jsonResponse(w, http.StatusCreated, map[string]string{"ref": ref})
}

// Get handles GET /api/images/{ref}. With ?size=thumb a small version is
// rendered for list cards.
func (h *ImagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	img, err := store.GetImage(r.Context(), h.DB, r.PathValue("ref"))
	if err != nil {
		slog.Error("failed to get image", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if img == nil {
		jsonError(w, http.StatusNotFound, "image not found")
		return
	}

	data, mime := img.Data, img.MIME
	if r.URL.Query().Get("size") == "thumb" {
		thumb, err := imaging.Thumbnail(img.Data, imaging.ThumbDimension)
		if err != nil {
			slog.Error("failed to render thumbnail", "ref", img.Ref, "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to render thumbnail")
			return
		}
		data, mime = thumb.Data, thumb.MIME
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
