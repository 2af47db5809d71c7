package agenda

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
	CreateCommitment(managerID int64, dto CreateCommitmentDTO) (*Commitment, error)
	DeleteCommitment(id, managerID int64) error
	MonthEvents(managerID int64, year, month int) (*MonthEvents, error)
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

// MonthEvents handles GET /agenda/eventos?anio=2025&mes=8.
func (h *Handler) MonthEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, errYear := strconv.Atoi(r.URL.Query().Get("anio"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("mes"))
	if errYear != nil || errMonth != nil {
		h.WriteError(w, http.StatusBadRequest, "anio and mes are required")
		return
	}

	events, err := h.Service.MonthEvents(user.ID, year, month)
	if err != nil {
		h.Logger.Error("MonthEvents: service error", "error", err, "year", year, "month", month)
		h.handleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) CreateCommitment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCommitmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.CreateCommitment(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateCommitment: service error", "error", err, "user_id", user.ID)
		h.handleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) DeleteCommitment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid commitment ID")
		return
	}

	if err := h.Service.DeleteCommitment(id, user.ID); err != nil {
		h.Logger.Error("DeleteCommitment: service error", "error", err, "commitment_id", id)
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrMissingDate:
		h.WriteError(w, http.StatusBadRequest, "titulo and fecha are required")
	case ErrInvalidMonth:
		h.WriteError(w, http.StatusBadRequest, "anio and mes are required")
	case ErrCommitmentNotFound:
		h.WriteError(w, http.StatusNotFound, "commitment not found")
	default:
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
