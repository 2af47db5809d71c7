package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal/comment"
)

// CommentRepository implements the comment.Repository interface using GORM
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) comment.Repository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(c *comment.Comment) error {
	return r.db.Create(c).Error
}

func (r *CommentRepository) ListByTask(taskID int64) ([]*comment.View, error) {
	var views []*comment.View
	err := r.db.Table("comentarios c").
		Select("c.*, u.nombre_completo AS autor").
		Joins("JOIN usuarios u ON c.usuario_id = u.id").
		Where("c.tarea_id = ?", taskID).
		Order("c.fecha_creacion DESC").
		Scan(&views).Error
	return views, err
}

func (r *CommentRepository) TaskExists(taskID int64) (bool, error) {
	var count int64
	err := r.db.Table("tareas").Where("id = ?", taskID).Count(&count).Error
	return count > 0, err
}
