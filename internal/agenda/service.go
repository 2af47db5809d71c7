package agenda

import (
	"log/slog"
)

// Repository defines the data access methods for the agenda
type Repository interface {
	CreateCommitment(c *Commitment) error

	// DeleteCommitment removes a commitment owned by managerID and reports
	// whether a row matched.
	DeleteCommitment(id, managerID int64) (bool, error)
	TaskEventsInMonth(year, month int) ([]*Event, error)
	CommitmentEventsInMonth(managerID int64, year, month int) ([]*Event, error)
}

// Service handles the agenda month view and personal commitments
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

func (s *Service) CreateCommitment(managerID int64, dto CreateCommitmentDTO) (*Commitment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Commitment{
		Title:       dto.Title,
		Description: dto.Description,
		Date:        *dto.Date,
		ManagerID:   managerID,
	}

	if err := s.repo.CreateCommitment(c); err != nil {
		s.logger.Error("failed to create commitment", "error", err, "manager_id", managerID)
		return nil, err
	}

	s.logger.Info("commitment created", "commitment_id", c.ID, "manager_id", managerID)
	return c, nil
}

// DeleteCommitment is owner-scoped: a missing row and someone else's row
// are indistinguishable to the caller.
func (s *Service) DeleteCommitment(id, managerID int64) error {
	deleted, err := s.repo.DeleteCommitment(id, managerID)
	if err != nil {
		s.logger.Error("failed to delete commitment", "error", err, "commitment_id", id)
		return err
	}
	if !deleted {
		return ErrCommitmentNotFound
	}

	s.logger.Info("commitment deleted", "commitment_id", id, "manager_id", managerID)
	return nil
}

// MonthEvents gathers task deadlines and the caller's commitments for one
// month.
func (s *Service) MonthEvents(managerID int64, year, month int) (*MonthEvents, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	tasks, err := s.repo.TaskEventsInMonth(year, month)
	if err != nil {
		s.logger.Error("failed to load month task events", "error", err, "year", year, "month", month)
		return nil, err
	}

	commitments, err := s.repo.CommitmentEventsInMonth(managerID, year, month)
	if err != nil {
		s.logger.Error("failed to load month commitments", "error", err, "year", year, "month", month)
		return nil, err
	}

	if tasks == nil {
		tasks = []*Event{}
	}
	if commitments == nil {
		commitments = []*Event{}
	}

	return &MonthEvents{
		Tasks:       tasks,
		Leaves:      []*Event{},
		Commitments: commitments,
	}, nil
}
