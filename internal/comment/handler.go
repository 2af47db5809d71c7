package comment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/task-management/internal/auth"
	"github.com/frahmantamala/task-management/internal/storage"
	"github.com/frahmantamala/task-management/internal/transport"
	"github.com/frahmantamala/task-management/pkg/logger"
)

// maxUploadSize bounds attachment parsing at 10 MiB.
const maxUploadSize = 10 << 20

type ServiceAPI interface {
	ListByTask(taskID int64) ([]*View, error)
	Create(taskID, authorID int64, dto CreateDTO) (*Comment, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Uploader storage.Uploader
}

// NewHandler creates the comment handler. uploader may be nil, in which
// case file attachments are rejected but text comments still work.
func NewHandler(service ServiceAPI, uploader storage.Uploader) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Uploader:    uploader,
	}
}

func (h *Handler) ListByTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.parseTaskID(w, r)
	if !ok {
		return
	}

	comments, err := h.Service.ListByTask(taskID)
	if err != nil {
		h.Logger.Error("ListByTask: service error", "error", err, "task_id", taskID)
		h.handleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, comments)
}

// Create accepts either a JSON body with contenido, or multipart/form-data
// with a contenido field and an optional archivo file part.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID, ok := h.parseTaskID(w, r)
	if !ok {
		return
	}

	var dto CreateDTO

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		if content := r.FormValue("contenido"); content != "" {
			dto.Content = &content
		}

		file, header, err := r.FormFile("archivo")
		if err == nil {
			defer file.Close()

			if h.Uploader == nil {
				h.WriteError(w, http.StatusServiceUnavailable, "file uploads are not configured")
				return
			}

			stored, err := h.Uploader.Upload(r.Context(), header.Filename, file)
			if err != nil {
				h.Logger.Error("Create: upload failed", "error", err, "task_id", taskID)
				h.WriteError(w, http.StatusInternalServerError, "failed to store attachment")
				return
			}

			dto.FileName = &stored.FileName
			dto.FileURL = &stored.URL
			dto.PublicID = &stored.PublicID
		}
	} else {
		var body struct {
			Content *string `json:"contenido"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		dto.Content = body.Content
	}

	c, err := h.Service.Create(taskID, user.ID, dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "task_id", taskID, "user_id", user.ID)
		h.handleServiceError(w, err)
		return
	}

	// echo the author name so the frontend can render without a refetch
	h.WriteJSON(w, http.StatusCreated, View{Comment: *c, Author: user.Name})
}

func (h *Handler) parseTaskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "taskId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid task ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrEmptyComment:
		h.WriteError(w, http.StatusBadRequest, "comment cannot be empty")
	case ErrTaskNotFound:
		h.WriteError(w, http.StatusNotFound, "task not found")
	default:
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
