package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal/request"
)

// RequestRepository implements the request.Repository interface using GORM
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) request.Repository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(req *request.Request) error {
	return r.db.Create(req).Error
}

func (r *RequestRepository) GetByID(id int64) (*request.Request, error) {
	var req request.Request
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, request.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) ListByRequester(requesterID int64) ([]*request.View, error) {
	var views []*request.View
	err := r.db.Table("solicitudes s").
		Select("s.*, t.titulo AS titulo_tarea").
		Joins("LEFT JOIN tareas t ON s.tarea_id = t.id").
		Where("s.solicitante_id = ?", requesterID).
		Order("s.fecha_creacion DESC").
		Scan(&views).Error
	return views, err
}

// ListPending returns the manager's queue, oldest first so nothing starves.
func (r *RequestRepository) ListPending() ([]*request.View, error) {
	var views []*request.View
	err := r.db.Table("solicitudes s").
		Select("s.*, u.nombre_completo AS nombre_solicitante, t.titulo AS titulo_tarea").
		Joins("JOIN usuarios u ON s.solicitante_id = u.id").
		Joins("LEFT JOIN tareas t ON s.tarea_id = t.id").
		Where("s.estado = ?", request.StatusPending).
		Order("s.fecha_creacion ASC").
		Scan(&views).Error
	return views, err
}

// UpdateStatusIfPending guards against double adjudication at the database:
// the predicate only matches rows still in pendiente.
func (r *RequestRepository) UpdateStatusIfPending(id int64, status string, finalDate *time.Time) (bool, error) {
	result := r.db.Model(&request.Request{}).
		Where("id = ? AND estado = ?", id, request.StatusPending).
		Updates(map[string]interface{}{
			"estado":             status,
			"fecha_limite_final": finalDate,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *RequestRepository) UpdateTaskDueDate(taskID int64, dueDate time.Time) error {
	return r.db.Table("tareas").
		Where("id = ?", taskID).
		Update("fecha_limite", dueDate).Error
}

func (r *RequestRepository) Transaction(fn func(request.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&RequestRepository{db: tx})
	})
}
