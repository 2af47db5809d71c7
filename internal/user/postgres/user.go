package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal/auth"
	"github.com/frahmantamala/task-management/internal/user"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ListAll() ([]*user.EmployeeView, error) {
	return r.list("")
}

func (r *UserRepository) ListEmployees() ([]*user.EmployeeView, error) {
	return r.list(auth.RoleEmployee)
}

func (r *UserRepository) list(role string) ([]*user.EmployeeView, error) {
	query := r.db.Table("usuarios u").
		Select("u.id, u.nombre_completo, u.email, u.rol, u.departamento_id, d.nombre AS nombre_departamento").
		Joins("LEFT JOIN departamentos d ON u.departamento_id = d.id").
		Order("u.nombre_completo ASC")

	if role != "" {
		query = query.Where("u.rol = ?", role)
	}

	var views []*user.EmployeeView
	if err := query.Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *UserRepository) Update(u *user.User) error {
	// Save persists the whole merged record; the service already applied
	// the patch onto a loaded row.
	return r.db.Save(u).Error
}

// Delete hard-deletes the row. Created tasks, comments and solicitudes
// keep NOT NULL references to their author, so those deletes surface the
// foreign key violation as ErrUserReferenced.
func (r *UserRepository) Delete(id int64) error {
	err := r.db.Delete(&user.User{}, id).Error
	// 23503: foreign_key_violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return user.ErrUserReferenced
	}
	return err
}
