package user

import (
	"log/slog"

	"github.com/frahmantamala/task-management/internal/auth"
)

// PasswordHasher hashes plaintext passwords before storage. The auth
// service provides the bcrypt-backed implementation.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Repository defines the data access methods for users
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	ListAll() ([]*EmployeeView, error)
	ListEmployees() ([]*EmployeeView, error)
	Update(u *User) error
	Delete(id int64) error
}

// Service handles user directory business logic
type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates an account. Duplicate emails are rejected before the
// insert so the caller gets a conflict instead of a bare database error.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("registration rejected: email taken", "email", dto.Email)
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	// public registration always produces an employee; jefe accounts are
	// seeded or promoted through the admin update endpoint
	u := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         auth.RoleEmployee,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) ListAll() ([]*EmployeeView, error) {
	users, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) ListEmployees() ([]*EmployeeView, error) {
	employees, err := s.repo.ListEmployees()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

// Update applies merge-patch semantics: the stored row is loaded, only the
// present DTO fields are applied, and the merged record is persisted.
func (s *Service) Update(userID int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if dto.Email != nil && *dto.Email != u.Email {
		if existing, err := s.repo.GetByEmail(*dto.Email); err == nil && existing != nil {
			return nil, ErrEmailTaken
		}
	}

	dto.ApplyTo(u)

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", userID)
	return u, nil
}

func (s *Service) Delete(userID int64) error {
	if _, err := s.repo.GetByID(userID); err != nil {
		return ErrUserNotFound
	}

	if err := s.repo.Delete(userID); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

// AssignDepartment sets or clears a user's department. Only empleado
// accounts belong to departments; managers oversee all of them.
func (s *Service) AssignDepartment(userID int64, departmentID *int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if u.Role != auth.RoleEmployee {
		s.logger.Warn("department assignment rejected: target is not an employee",
			"user_id", userID,
			"role", u.Role)
		return nil, ErrNotEmployee
	}

	u.DepartmentID = departmentID

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to assign department", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("department assignment updated", "user_id", userID, "department_id", departmentID)
	return u, nil
}
