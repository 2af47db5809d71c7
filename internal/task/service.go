package task

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/task-management/internal/auth"
)

// Repository defines the data access methods for tasks
type Repository interface {
	Create(t *Task) error
	GetByID(id int64) (*Task, error)
	ListByAssignee(userID int64) ([]*View, error)
	ListByDepartment(departmentID int64) ([]*View, error)
	List(filter ListFilter) ([]*View, error)
	Count(filter ListFilter) (int64, error)
	UpdateStatus(id int64, status string, completedAt *time.Time) error
	Delete(id int64) error
	DepartmentLeader(departmentID int64) (*int64, error)

	// Transaction runs fn against a repository bound to a single database
	// transaction: commit on nil error, rollback otherwise.
	Transaction(fn func(Repository) error) error
}

// Service handles task registry business logic
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

func (s *Service) Create(creatorID int64, dto CreateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("task validation failed", "error", err, "creator_id", creatorID)
		return nil, err
	}

	t := &Task{
		Title:        dto.Title,
		Description:  dto.Description,
		CreatorID:    creatorID,
		AssigneeID:   dto.AssigneeID,
		DepartmentID: dto.DepartmentID,
		Status:       StatusPending,
		DueDate:      dto.DueDate,
		SubDates:     dto.SubDates,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create task", "error", err, "creator_id", creatorID)
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", t.ID,
		"creator_id", creatorID,
		"assignee_id", dto.AssigneeID,
		"department_id", dto.DepartmentID)

	return t, nil
}

// ListMine returns the tasks directly assigned to the caller.
func (s *Service) ListMine(userID int64) ([]*View, error) {
	tasks, err := s.repo.ListByAssignee(userID)
	if err != nil {
		s.logger.Error("failed to list own tasks", "error", err, "user_id", userID)
		return nil, err
	}
	return tasks, nil
}

// ListDepartment returns the tasks assigned to the caller's department.
// Users without a department get an empty list, not an error.
func (s *Service) ListDepartment(user *auth.User) ([]*View, error) {
	if user.DepartmentID == nil {
		return []*View{}, nil
	}

	tasks, err := s.repo.ListByDepartment(*user.DepartmentID)
	if err != nil {
		s.logger.Error("failed to list department tasks", "error", err, "department_id", *user.DepartmentID)
		return nil, err
	}
	return tasks, nil
}

// ListAll is the paginated manager view. totalPages comes from a count
// query sharing the list predicate, so a page past the end returns an
// empty list with a still-correct page count.
func (s *Service) ListAll(filter ListFilter) (*PagedTasks, error) {
	filter.Normalize()

	total, err := s.repo.Count(filter)
	if err != nil {
		s.logger.Error("failed to count tasks", "error", err)
		return nil, err
	}

	tasks, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &PagedTasks{
		Tasks:       tasks,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		Total:       total,
	}, nil
}

func (s *Service) GetByID(id int64) (*Task, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// UpdateStatus applies a status transition. Only the direct assignee, or
// the leader of the assigned department, may transition a task. The
// permission check and the write share one transaction so the task cannot
// be reassigned between the two.
func (s *Service) UpdateStatus(taskID int64, caller *auth.User, dto UpdateStatusDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var updated *Task
	err := s.repo.Transaction(func(tx Repository) error {
		t, err := tx.GetByID(taskID)
		if err != nil {
			return ErrTaskNotFound
		}

		allowed := t.AssigneeID != nil && *t.AssigneeID == caller.ID
		if !allowed && t.DepartmentID != nil {
			leaderID, err := tx.DepartmentLeader(*t.DepartmentID)
			if err != nil {
				return err
			}
			allowed = leaderID != nil && *leaderID == caller.ID
		}
		if !allowed {
			s.logger.Warn("status update denied",
				"task_id", taskID,
				"caller_id", caller.ID,
				"assignee_id", t.AssigneeID,
				"department_id", t.DepartmentID)
			return ErrNotAssignee
		}

		t.SetStatus(dto.Status, time.Now())
		if err := tx.UpdateStatus(t.ID, t.Status, t.CompletedAt); err != nil {
			return err
		}

		updated = t
		return nil
	})
	if err != nil {
		if err != ErrTaskNotFound && err != ErrNotAssignee {
			s.logger.Error("failed to update task status", "error", err, "task_id", taskID)
		}
		return nil, err
	}

	s.logger.Info("task status updated",
		"task_id", taskID,
		"status", dto.Status,
		"caller_id", caller.ID)

	return updated, nil
}

// Delete removes a task. Only the creator may delete it.
func (s *Service) Delete(taskID, callerID int64) error {
	t, err := s.repo.GetByID(taskID)
	if err != nil {
		return ErrTaskNotFound
	}

	if t.CreatorID != callerID {
		s.logger.Warn("task deletion denied",
			"task_id", taskID,
			"caller_id", callerID,
			"creator_id", t.CreatorID)
		return ErrNotCreator
	}

	if err := s.repo.Delete(taskID); err != nil {
		s.logger.Error("failed to delete task", "error", err, "task_id", taskID)
		return err
	}

	s.logger.Info("task deleted", "task_id", taskID, "caller_id", callerID)
	return nil
}
