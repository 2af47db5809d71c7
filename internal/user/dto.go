package user

import (
	"github.com/frahmantamala/task-management/internal/auth"
	"github.com/frahmantamala/task-management/internal/core/common/validation"
)

// RegisterDTO is the payload for the public registration endpoint. There is
// no role field: registration always creates an empleado.
type RegisterDTO struct {
	Name     string `json:"nombre_completo"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields. The public endpoint always
// creates an empleado; any rol in the body is ignored by the service.
func (dto *RegisterDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("nombre_completo", dto.Name).Required().MaxLength(200)
	validator.Field("email", dto.Email).Required().MaxLength(200)
	validator.Field("password", dto.Password).Required().MinLength(6)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// UpdateUserDTO carries merge-patch semantics: nil fields keep the stored
// value, present fields overwrite it.
type UpdateUserDTO struct {
	Name         *string `json:"nombre_completo"`
	Email        *string `json:"email"`
	Role         *string `json:"rol"`
	DepartmentID *int64  `json:"departamento_id"`
}

func (dto UpdateUserDTO) Validate() error {
	validator := validation.NewValidator()

	if dto.Name != nil {
		validator.Field("nombre_completo", *dto.Name).Required().MaxLength(200)
	}
	if dto.Email != nil {
		validator.Field("email", *dto.Email).Required().MaxLength(200)
	}
	if dto.Role != nil {
		validator.Field("rol", *dto.Role).Required().OneOf(auth.RoleManager, auth.RoleEmployee)
	}

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ApplyTo copies the present fields onto a loaded record. This is the one
// explicit patch-application step; handlers never coalesce fields ad hoc.
func (dto UpdateUserDTO) ApplyTo(u *User) {
	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.DepartmentID != nil {
		u.DepartmentID = dto.DepartmentID
	}
}

// AssignDepartmentDTO sets or clears a user's department.
type AssignDepartmentDTO struct {
	DepartmentID *int64 `json:"departamento_id"`
}
