package request

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/task-management/internal"
	"github.com/frahmantamala/task-management/internal/auth"
	"github.com/frahmantamala/task-management/internal/transport"
	"github.com/frahmantamala/task-management/pkg/logger"
)

type ServiceAPI interface {
	Create(requesterID int64, dto CreateDTO) (*Request, error)
	ListMine(requesterID int64) ([]*View, error)
	ListPending() ([]*View, error)
	Adjudicate(requestID int64, dto AdjudicateDTO) (*Request, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Create(user.ID, dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "user_id", user.ID)
		h.handleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requests, err := h.Service.ListMine(user.ID)
	if err != nil {
		h.Logger.Error("ListMine: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, requests)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListPending()
	if err != nil {
		h.Logger.Error("ListPending: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, requests)
}

func (h *Handler) Adjudicate(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	requestID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	var dto AdjudicateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Adjudicate(requestID, dto)
	if err != nil {
		h.Logger.Error("Adjudicate: service error", "error", err, "request_id", requestID)
		h.handleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrRequestNotFound:
		h.WriteError(w, http.StatusNotFound, "request not found")
	case ErrInvalidVerdict:
		h.WriteError(w, http.StatusBadRequest, "estado must be 'aprobada' or 'rechazada'")
	case ErrAlreadyDecided:
		h.WriteError(w, http.StatusConflict, "request has already been decided")
	default:
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
