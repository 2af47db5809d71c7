package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/task-management/internal/transport"
	"github.com/frahmantamala/task-management/pkg/logger"
)

type ServiceAPI interface {
	Stats() (*Stats, error)
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

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats()
	if err != nil {
		h.Logger.Error("Stats: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute dashboard stats")
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
