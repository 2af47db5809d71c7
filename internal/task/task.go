package task

import (
	"errors"
	"time"
)

// Task statuses. Transitions are unrestricted in direction; the only side
// effect is the completion timestamp, re-evaluated on every transition.
const (
	StatusPending    = "pendiente"
	StatusInProgress = "en_progreso"
	StatusCompleted  = "completada"
)

// Task represents a row of the tareas table. A task is assigned to a user,
// a department, or both; creation requires at least one of the two.
type Task struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Title        string     `json:"titulo" gorm:"column:titulo;not null"`
	Description  *string    `json:"descripcion" gorm:"column:descripcion"`
	CreatorID    int64      `json:"creador_id" gorm:"column:creador_id;not null"`
	AssigneeID   *int64     `json:"asignado_id" gorm:"column:asignado_id"`
	DepartmentID *int64     `json:"departamento_id" gorm:"column:departamento_id"`
	Status       string     `json:"estado" gorm:"column:estado;default:pendiente"`
	DueDate      *time.Time `json:"fecha_limite" gorm:"column:fecha_limite"`
	CompletedAt  *time.Time `json:"fecha_completada" gorm:"column:fecha_completada"`
	CreatedAt    time.Time  `json:"fecha_creacion" gorm:"column:fecha_creacion;default:now()"`
	SubDates     *string    `json:"sub_fechas" gorm:"column:sub_fechas"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tareas"
}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// SetStatus applies a status transition and its completion-timestamp side
// effect: completada stamps now, everything else clears it. Repeating the
// same transition converges on the same persisted state.
func (t *Task) SetStatus(status string, now time.Time) {
	t.Status = status
	if status == StatusCompleted {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}

// View is a task joined with display names for the list screens.
type View struct {
	Task
	AssigneeName   *string `json:"nombre_asignado" gorm:"column:nombre_asignado"`
	DepartmentName *string `json:"nombre_departamento" gorm:"column:nombre_departamento"`
}

// Domain errors
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotAssignee  = errors.New("caller is not the assignee or department leader")
	ErrNotCreator   = errors.New("caller is not the task creator")
)
