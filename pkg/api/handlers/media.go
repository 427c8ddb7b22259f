package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/chirpnet/chirpd/internal/logger"
	"github.com/chirpnet/chirpd/pkg/media"
)

// MediaHandler handles multipart media uploads.
type MediaHandler struct {
	service   *media.Service
	maxMemory int64
}

// NewMediaHandler creates a new MediaHandler. maxMemory bounds how many
// bytes of the parsed form are kept in memory; larger parts spill to
// temporary files that live until the pipeline has read them.
func NewMediaHandler(service *media.Service, maxMemory int64) *MediaHandler {
	return &MediaHandler{service: service, maxMemory: maxMemory}
}

// CreateMediaResponse is the response body for POST /api/medias.
type CreateMediaResponse struct {
	Result  bool  `json:"result"`
	MediaID int64 `json:"media_id"`
}

// Create handles POST /api/medias.
// Parses the multipart form, submits the file parts to the media service
// and returns as soon as the batch is queued. The file content lands on
// storage in the background.
func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		UnprocessableEntity(w, "File error")
		return
	}
	form := r.MultipartForm

	// Parts sent without a filename parse as plain form values, not files.
	if len(form.Value["file"]) > 0 {
		cleanupForm(form)
		UnprocessableEntity(w, "File error")
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		cleanupForm(form)
		UnprocessableEntity(w, "Empty field: `file`")
		return
	}

	uploads := make([]media.Upload, len(files))
	for i, header := range files {
		uploads[i] = media.MultipartUpload{Header: header}
	}

	// The pipeline reads the form's spill files after this handler has
	// returned. Detach the form so the server doesn't clean it up first;
	// the pipeline frees it through the release callback instead.
	r.MultipartForm = nil
	release := func() { cleanupForm(form) }

	records, err := h.service.SaveUploads(r.Context(), uploads, release)
	if err != nil {
		if errors.Is(err, media.ErrPipelineStopped) {
			InternalServerError(w, "Queue is closed")
			return
		}
		InternalServerError(w, "Failed to save media")
		return
	}

	WriteJSONCreated(w, CreateMediaResponse{Result: true, MediaID: records[0].ID})
}

// cleanupForm removes the form's temporary spill files.
func cleanupForm(form *multipart.Form) {
	if err := form.RemoveAll(); err != nil {
		logger.Warn("Failed to remove multipart temp files", "error", err)
	}
}
