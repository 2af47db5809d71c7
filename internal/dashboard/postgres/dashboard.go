package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal/dashboard"
)

// DashboardRepository implements the dashboard.Repository interface using GORM
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) TasksByStatus() ([]*dashboard.StatusCount, error) {
	var rows []*dashboard.StatusCount
	err := r.db.Raw(`
		SELECT estado, COUNT(*) AS count
		FROM tareas
		GROUP BY estado`,
	).Scan(&rows).Error
	return rows, err
}

func (r *DashboardRepository) TasksByDepartment() ([]*dashboard.DepartmentCount, error) {
	var rows []*dashboard.DepartmentCount
	err := r.db.Raw(`
		SELECT d.nombre, COUNT(t.id) AS count
		FROM departamentos d
		LEFT JOIN tareas t ON d.id = t.departamento_id
		GROUP BY d.nombre`,
	).Scan(&rows).Error
	return rows, err
}

func (r *DashboardRepository) CompletedByUser() ([]*dashboard.UserCount, error) {
	var rows []*dashboard.UserCount
	err := r.db.Raw(`
		SELECT u.nombre_completo, COUNT(t.id) AS count
		FROM tareas t
		JOIN usuarios u ON u.id = t.asignado_id
		WHERE t.estado = 'completada'
		GROUP BY u.nombre_completo`,
	).Scan(&rows).Error
	return rows, err
}

func (r *DashboardRepository) AvgCompletionByUser() ([]*dashboard.UserAvgCompletion, error) {
	var rows []*dashboard.UserAvgCompletion
	err := r.db.Raw(`
		SELECT u.nombre_completo,
		       AVG(EXTRACT(EPOCH FROM (t.fecha_completada - t.fecha_creacion))) AS promedio_segundos
		FROM tareas t
		JOIN usuarios u ON u.id = t.asignado_id
		WHERE t.estado = 'completada' AND t.fecha_completada IS NOT NULL
		GROUP BY u.nombre_completo`,
	).Scan(&rows).Error
	return rows, err
}
