package task

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
	Create(creatorID int64, dto CreateTaskDTO) (*Task, error)
	ListMine(userID int64) ([]*View, error)
	ListDepartment(user *auth.User) ([]*View, error)
	ListAll(filter ListFilter) (*PagedTasks, error)
	GetByID(id int64) (*Task, error)
	UpdateStatus(taskID int64, caller *auth.User, dto UpdateStatusDTO) (*Task, error)
	Delete(taskID, callerID int64) error
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

	var dto CreateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Create(user.ID, dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "user_id", user.ID)
		h.handleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tasks, err := h.Service.ListMine(user.ID)
	if err != nil {
		h.Logger.Error("ListMine: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	h.WriteJSON(w, http.StatusOK, tasks)
}

func (h *Handler) ListDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tasks, err := h.Service.ListDepartment(user)
	if err != nil {
		h.Logger.Error("ListDepartment: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list department tasks")
		return
	}

	h.WriteJSON(w, http.StatusOK, tasks)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			filter.Page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = l
		}
	}
	if empStr := r.URL.Query().Get("empleadoId"); empStr != "" {
		if id, err := strconv.ParseInt(empStr, 10, 64); err == nil {
			filter.EmployeeID = &id
		}
	}
	if deptStr := r.URL.Query().Get("departamentoId"); deptStr != "" {
		if id, err := strconv.ParseInt(deptStr, 10, 64); err == nil {
			filter.DepartmentID = &id
		}
	}

	page, err := h.Service.ListAll(filter)
	if err != nil {
		h.Logger.Error("ListAll: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	t, err := h.Service.GetByID(taskID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.UpdateStatus(taskID, user, dto)
	if err != nil {
		h.Logger.Error("UpdateStatus: service error", "error", err, "task_id", taskID, "user_id", user.ID)
		h.handleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(taskID, user.ID); err != nil {
		h.Logger.Error("Delete: service error", "error", err, "task_id", taskID, "user_id", user.ID)
		h.handleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "task deleted successfully"})
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid task ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrTaskNotFound:
		h.WriteError(w, http.StatusNotFound, "task not found")
	case ErrNotAssignee:
		h.WriteError(w, http.StatusForbidden, "you cannot modify this task")
	case ErrNotCreator:
		h.WriteError(w, http.StatusForbidden, "only the creator can delete this task")
	default:
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
