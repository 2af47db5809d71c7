package postgres

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal/task"
)

// TaskRepository implements the task.Repository interface using GORM
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.Repository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *task.Task) error {
	return r.db.Create(t).Error
}

func (r *TaskRepository) GetByID(id int64) (*task.Task, error) {
	var t task.Task
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) ListByAssignee(userID int64) ([]*task.View, error) {
	var views []*task.View
	err := r.viewQuery().
		Where("t.asignado_id = ?", userID).
		Order("t.fecha_creacion DESC").
		Scan(&views).Error
	return views, err
}

func (r *TaskRepository) ListByDepartment(departmentID int64) ([]*task.View, error) {
	var views []*task.View
	err := r.viewQuery().
		Where("t.departamento_id = ?", departmentID).
		Order("t.fecha_creacion DESC").
		Scan(&views).Error
	return views, err
}

func (r *TaskRepository) List(filter task.ListFilter) ([]*task.View, error) {
	var views []*task.View
	err := r.applyFilter(r.viewQuery(), filter).
		Order("t.fecha_creacion DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Scan(&views).Error
	return views, err
}

// Count shares the List predicate so totalPages always matches the rows
// the page queries can reach.
func (r *TaskRepository) Count(filter task.ListFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.Table("tareas t"), filter).Count(&count).Error
	return count, err
}

func (r *TaskRepository) viewQuery() *gorm.DB {
	return r.db.Table("tareas t").
		Select("t.*, u.nombre_completo AS nombre_asignado, d.nombre AS nombre_departamento").
		Joins("LEFT JOIN usuarios u ON t.asignado_id = u.id").
		Joins("LEFT JOIN departamentos d ON t.departamento_id = d.id")
}

func (r *TaskRepository) applyFilter(query *gorm.DB, filter task.ListFilter) *gorm.DB {
	if filter.EmployeeID != nil {
		query = query.Where("t.asignado_id = ?", *filter.EmployeeID)
	}
	if filter.DepartmentID != nil {
		query = query.Where("t.departamento_id = ?", *filter.DepartmentID)
	}
	return query
}

func (r *TaskRepository) UpdateStatus(id int64, status string, completedAt *time.Time) error {
	return r.db.Model(&task.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":           status,
			"fecha_completada": completedAt,
		}).Error
}

func (r *TaskRepository) Delete(id int64) error {
	return r.db.Delete(&task.Task{}, id).Error
}

// DepartmentLeader resolves the lider_id of a department, nil when the
// department has no leader or does not exist.
func (r *TaskRepository) DepartmentLeader(departmentID int64) (*int64, error) {
	var leaderID sql.NullInt64
	row := r.db.Raw("SELECT lider_id FROM departamentos WHERE id = ?", departmentID).Row()
	if err := row.Scan(&leaderID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if !leaderID.Valid {
		return nil, nil
	}
	return &leaderID.Int64, nil
}

func (r *TaskRepository) Transaction(fn func(task.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&TaskRepository{db: tx})
	})
}
