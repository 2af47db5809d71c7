package comment

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for comments
type Repository interface {
	Create(c *Comment) error
	ListByTask(taskID int64) ([]*View, error)
	TaskExists(taskID int64) (bool, error)
}

// Service handles comment log business logic
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

func (s *Service) ListByTask(taskID int64) ([]*View, error) {
	exists, err := s.repo.TaskExists(taskID)
	if err != nil {
		s.logger.Error("failed to check task", "error", err, "task_id", taskID)
		return nil, err
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	comments, err := s.repo.ListByTask(taskID)
	if err != nil {
		s.logger.Error("failed to list comments", "error", err, "task_id", taskID)
		return nil, err
	}
	return comments, nil
}

// Create appends a comment to a task's log. Any authenticated user may
// comment on any task.
func (s *Service) Create(taskID, authorID int64, dto CreateDTO) (*Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.TaskExists(taskID)
	if err != nil {
		s.logger.Error("failed to check task", "error", err, "task_id", taskID)
		return nil, err
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	c := &Comment{
		Content:   dto.Content,
		TaskID:    taskID,
		UserID:    authorID,
		FileName:  dto.FileName,
		FileURL:   dto.FileURL,
		PublicID:  dto.PublicID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create comment", "error", err, "task_id", taskID)
		return nil, err
	}

	s.logger.Info("comment created",
		"comment_id", c.ID,
		"task_id", taskID,
		"author_id", authorID,
		"has_file", c.FileURL != nil)

	return c, nil
}
