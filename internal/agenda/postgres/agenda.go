package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal/agenda"
)

// AgendaRepository implements the agenda.Repository interface using GORM
type AgendaRepository struct {
	db *gorm.DB
}

func NewAgendaRepository(db *gorm.DB) agenda.Repository {
	return &AgendaRepository{db: db}
}

func (r *AgendaRepository) CreateCommitment(c *agenda.Commitment) error {
	return r.db.Create(c).Error
}

func (r *AgendaRepository) DeleteCommitment(id, managerID int64) (bool, error) {
	result := r.db.Where("id = ? AND jefe_id = ?", id, managerID).Delete(&agenda.Commitment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AgendaRepository) TaskEventsInMonth(year, month int) ([]*agenda.Event, error) {
	var events []*agenda.Event
	err := r.db.Raw(`
		SELECT id, titulo, fecha_limite AS fecha, 'tarea' AS tipo
		FROM tareas
		WHERE EXTRACT(YEAR FROM fecha_limite) = ? AND EXTRACT(MONTH FROM fecha_limite) = ?`,
		year, month,
	).Scan(&events).Error
	return events, err
}

func (r *AgendaRepository) CommitmentEventsInMonth(managerID int64, year, month int) ([]*agenda.Event, error) {
	var events []*agenda.Event
	err := r.db.Raw(`
		SELECT id, titulo, fecha, 'compromiso' AS tipo
		FROM compromisos
		WHERE jefe_id = ? AND EXTRACT(YEAR FROM fecha) = ? AND EXTRACT(MONTH FROM fecha) = ?`,
		managerID, year, month,
	).Scan(&events).Error
	return events, err
}
