package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal/department"
)

// DepartmentRepository implements the department.Repository interface using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) List() ([]*department.View, error) {
	var views []*department.View
	err := r.db.Table("departamentos d").
		Select("d.id, d.nombre, d.lider_id, u.nombre_completo AS nombre_lider").
		Joins("LEFT JOIN usuarios u ON d.lider_id = u.id").
		Order("d.nombre ASC").
		Scan(&views).Error
	return views, err
}

func (r *DepartmentRepository) GetByID(id int64) (*department.Department, error) {
	var d department.Department
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) Create(d *department.Department) error {
	return r.db.Create(d).Error
}

func (r *DepartmentRepository) Update(d *department.Department) error {
	return r.db.Save(d).Error
}

func (r *DepartmentRepository) Delete(id int64) error {
	return r.db.Delete(&department.Department{}, id).Error
}
