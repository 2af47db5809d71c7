package department

import (
	"log/slog"
)

// Repository defines the data access methods for departments
type Repository interface {
	List() ([]*View, error)
	GetByID(id int64) (*Department, error)
	Create(d *Department) error
	Update(d *Department) error
	Delete(id int64) error
}

// Service handles department directory business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List() ([]*View, error) {
	departments, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, err
	}
	return departments, nil
}

func (s *Service) Create(dto CreateDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d := &Department{Name: dto.Name}
	if err := s.repo.Create(d); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("department created", "department_id", d.ID, "name", d.Name)
	return d, nil
}

func (s *Service) Rename(id int64, dto CreateDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDepartmentNotFound
	}

	d.Name = dto.Name
	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to rename department", "error", err, "department_id", id)
		return nil, err
	}

	s.logger.Info("department renamed", "department_id", id, "name", d.Name)
	return d, nil
}

// Delete hard-deletes the row. Dependent tasks and users keep their
// department reference; reassignment is the manager's job.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrDepartmentNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete department", "error", err, "department_id", id)
		return err
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}

// AssignLeader sets or clears the department's leader reference.
func (s *Service) AssignLeader(id int64, leaderID *int64) (*Department, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDepartmentNotFound
	}

	d.LeaderID = leaderID
	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to assign leader", "error", err, "department_id", id)
		return nil, err
	}

	s.logger.Info("department leader updated", "department_id", id, "leader_id", leaderID)
	return d, nil
}
