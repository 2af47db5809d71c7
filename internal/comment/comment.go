package comment

import (
	"errors"
	"time"
)

// Comment represents a row of the comentarios table. A comment carries
// text, a file attachment, or both; never neither. The log is append-only:
// there is no update or delete.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Content   *string   `json:"contenido" gorm:"column:contenido"`
	TaskID    int64     `json:"tarea_id" gorm:"column:tarea_id;not null"`
	UserID    int64     `json:"usuario_id" gorm:"column:usuario_id;not null"`
	FileName  *string   `json:"nombre_archivo" gorm:"column:nombre_archivo"`
	FileURL   *string   `json:"url" gorm:"column:url"`
	PublicID  *string   `json:"public_id" gorm:"column:public_id"`
	CreatedAt time.Time `json:"fecha_creacion" gorm:"column:fecha_creacion;default:now()"`
}

// TableName returns the table name for GORM
func (Comment) TableName() string {
	return "comentarios"
}

// View joins the author's display name for the task detail screen.
type View struct {
	Comment
	Author string `json:"autor" gorm:"column:autor"`
}

// CreateDTO is the service-level input. File metadata, when present, has
// already been through the upload pipeline; only the resulting references
// arrive here.
type CreateDTO struct {
	Content  *string
	FileName *string
	FileURL  *string
	PublicID *string
}

func (dto CreateDTO) Validate() error {
	hasContent := dto.Content != nil && *dto.Content != ""
	hasFile := dto.FileURL != nil && *dto.FileURL != ""
	if !hasContent && !hasFile {
		return ErrEmptyComment
	}
	return nil
}

// Domain errors
var (
	ErrEmptyComment = errors.New("comment cannot be empty")
	ErrTaskNotFound = errors.New("task not found")
)
