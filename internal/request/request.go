package request

import (
	"errors"
	"time"

	"github.com/frahmantamala/task-management/internal/core/common/validation"
)

// Solicitud statuses. A request is adjudicated exactly once: pendiente is
// the only state a transition may start from.
const (
	StatusPending  = "pendiente"
	StatusApproved = "aprobada"
	StatusRejected = "rechazada"
)

// TypeDeadlineExtension is the request type the frontend creates today.
// The column is free-form so new types do not need a migration.
const TypeDeadlineExtension = "extension_plazo"

// Request represents a row of the solicitudes table.
type Request struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	Type          string     `json:"tipo" gorm:"column:tipo;not null"`
	Reason        string     `json:"motivo" gorm:"column:motivo;not null"`
	TaskID        *int64     `json:"tarea_id" gorm:"column:tarea_id"`
	RequesterID   int64      `json:"solicitante_id" gorm:"column:solicitante_id;not null"`
	Status        string     `json:"estado" gorm:"column:estado;default:pendiente"`
	SuggestedDate *time.Time `json:"fecha_sugerida" gorm:"column:fecha_sugerida"`
	FinalDate     *time.Time `json:"fecha_limite_final" gorm:"column:fecha_limite_final"`
	CreatedAt     time.Time  `json:"fecha_creacion" gorm:"column:fecha_creacion;default:now()"`
}

// TableName returns the table name for GORM
func (Request) TableName() string {
	return "solicitudes"
}

// IsDecided reports whether the request has already been adjudicated.
func (r *Request) IsDecided() bool {
	return r.Status != StatusPending
}

// View joins display fields for the manager's queue and the employee's
// own list.
type View struct {
	Request
	RequesterName *string `json:"nombre_solicitante" gorm:"column:nombre_solicitante"`
	TaskTitle     *string `json:"titulo_tarea" gorm:"column:titulo_tarea"`
}

// CreateDTO is the payload for filing a request.
type CreateDTO struct {
	Type          string     `json:"tipo"`
	Reason        string     `json:"motivo"`
	TaskID        *int64     `json:"tarea_id"`
	SuggestedDate *time.Time `json:"fecha_sugerida"`
}

func (dto CreateDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("tipo", dto.Type).Required().MaxLength(100)
	validator.Field("motivo", dto.Reason).Required().MaxLength(1000)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// AdjudicateDTO is the manager's verdict. FinalDate only matters on
// approval of a request linked to a task.
type AdjudicateDTO struct {
	Status    string     `json:"estado"`
	FinalDate *time.Time `json:"fecha_limite_final"`
}

func (dto AdjudicateDTO) Validate() error {
	if dto.Status != StatusApproved && dto.Status != StatusRejected {
		return ErrInvalidVerdict
	}
	return nil
}

// Domain errors
var (
	ErrRequestNotFound = errors.New("request not found")
	ErrInvalidVerdict  = errors.New("estado must be aprobada or rechazada")
	ErrAlreadyDecided  = errors.New("request has already been decided")
)
