package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal/auth"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsByEmail(email string) (*auth.User, string, error) {
	var u auth.User
	var passwordHash string

	query := `SELECT id, nombre_completo, email, password, rol, departamento_id FROM usuarios WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	var departmentID sql.NullInt64
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &passwordHash, &u.Role, &departmentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, "", fmt.Errorf("user not found")
		}
		return nil, "", err
	}
	if departmentID.Valid {
		u.DepartmentID = &departmentID.Int64
	}

	return &u, passwordHash, nil
}
