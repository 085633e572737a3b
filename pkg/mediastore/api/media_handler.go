// Package api exposes the media catalog over HTTP for the admin UI. The
// surface assumes a single trusted operator on a private network: no
// authentication, no rate limiting, no pagination.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/epiframe/media-admin/pkg/mediastore"
)

// maxUploadMemory bounds how much of a multipart upload is buffered in
// memory before spilling to disk.
const maxUploadMemory = 32 << 20

// MediaHandler handles the /media endpoints.
type MediaHandler struct {
	service mediastore.Service
}

func NewMediaHandler(service mediastore.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// Routes returns the router for the media endpoints
func (h *MediaHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListMedia)
	r.Post("/", h.UploadMedia)
	r.Put("/", h.UpdateMetadata)
	r.Delete("/", h.DeleteMedia)
	return r
}

// UpdateMetadataRequest is the PUT /media body.
type UpdateMetadataRequest struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// DeleteMediaRequest is the DELETE /media body.
type DeleteMediaRequest struct {
	ID string `json:"id"`
}

// DeleteMediaResponse is the DELETE /media success body.
type DeleteMediaResponse struct {
	Message string `json:"message"`
}

// ListMedia returns the full catalog with freshly signed read URLs.
func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListCatalog(r.Context())
	if err != nil {
		slog.Error("Failed to list media", "error", err)
		http.Error(w, "Failed to list media files.", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []mediastore.MediaRecord{}
	}
	render.JSON(w, r, records)
}

// UploadMedia stores a multipart upload at the path given in the form.
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, "No file uploaded.", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file uploaded.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	path := r.FormValue("path")

	err = h.service.Upload(r.Context(), mediastore.UploadRequest{
		Key:         path,
		Body:        file,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		var verr *mediastore.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Failed to upload media", "path", path, "error", err)
		http.Error(w, "Failed to upload media file.", http.StatusInternalServerError)
		return
	}

	slog.Info("Media uploaded", "path", path, "size", header.Size)
	w.WriteHeader(http.StatusCreated)
	fmt.Fprint(w, "Media uploaded successfully.")
}

// UpdateMetadata replaces the metadata set of one object.
func (h *MediaHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var req UpdateMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid metadata format.", http.StatusBadRequest)
		return
	}
	if req.Metadata == nil {
		http.Error(w, "Invalid metadata format.", http.StatusBadRequest)
		return
	}

	err := h.service.UpdateMetadata(r.Context(), mediastore.UpdateMetadataRequest{
		ID:       req.ID,
		Metadata: req.Metadata,
	})
	if err != nil {
		var verr *mediastore.ValidationError
		switch {
		case errors.As(err, &verr):
			http.Error(w, verr.Error(), http.StatusBadRequest)
		case errors.Is(err, mediastore.ErrObjectNotFound):
			http.Error(w, fmt.Sprintf("Blob %q does not exist.", req.ID), http.StatusNotFound)
		default:
			slog.Error("Failed to update metadata", "id", req.ID, "error", err)
			http.Error(w, "Failed to update media metadata.", http.StatusInternalServerError)
		}
		return
	}

	slog.Info("Metadata updated", "id", req.ID)
	fmt.Fprintf(w, "Metadata updated for %s", req.ID)
}

// DeleteMedia removes one object.
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	var req DeleteMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, DeleteMediaResponse{Message: "Blob 'id' is required in the request body."})
		return
	}
	if req.ID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, DeleteMediaResponse{Message: "Blob 'id' is required in the request body."})
		return
	}

	if err := h.service.Delete(r.Context(), req.ID); err != nil {
		var verr *mediastore.ValidationError
		switch {
		case errors.As(err, &verr):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, DeleteMediaResponse{Message: verr.Error()})
		case errors.Is(err, mediastore.ErrObjectNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, DeleteMediaResponse{Message: fmt.Sprintf("Blob %q does not exist.", req.ID)})
		default:
			slog.Error("Failed to delete media", "id", req.ID, "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, DeleteMediaResponse{Message: "Failed to delete media."})
		}
		return
	}

	slog.Info("Media deleted", "id", req.ID)
	render.JSON(w, r, DeleteMediaResponse{Message: fmt.Sprintf("Blob %q deleted successfully.", req.ID)})
}
