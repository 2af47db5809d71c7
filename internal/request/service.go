package request

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for solicitudes
type Repository interface {
	Create(r *Request) error
	GetByID(id int64) (*Request, error)
	ListByRequester(requesterID int64) ([]*View, error)
	ListPending() ([]*View, error)

	// UpdateStatusIfPending transitions a pending request and reports
	// whether a row changed. Decided requests match zero rows.
	UpdateStatusIfPending(id int64, status string, finalDate *time.Time) (bool, error)
	UpdateTaskDueDate(taskID int64, dueDate time.Time) error

	// Transaction runs fn against a repository bound to a single database
	// transaction: commit on nil error, rollback otherwise.
	Transaction(fn func(Repository) error) error
}

// Service handles the solicitud workflow
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

func (s *Service) Create(requesterID int64, dto CreateDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	r := &Request{
		Type:          dto.Type,
		Reason:        dto.Reason,
		TaskID:        dto.TaskID,
		RequesterID:   requesterID,
		Status:        StatusPending,
		SuggestedDate: dto.SuggestedDate,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(r); err != nil {
		s.logger.Error("failed to create request", "error", err, "requester_id", requesterID)
		return nil, err
	}

	s.logger.Info("request created",
		"request_id", r.ID,
		"requester_id", requesterID,
		"type", r.Type,
		"task_id", r.TaskID)

	return r, nil
}

func (s *Service) ListMine(requesterID int64) ([]*View, error) {
	requests, err := s.repo.ListByRequester(requesterID)
	if err != nil {
		s.logger.Error("failed to list own requests", "error", err, "requester_id", requesterID)
		return nil, err
	}
	return requests, nil
}

func (s *Service) ListPending() ([]*View, error) {
	requests, err := s.repo.ListPending()
	if err != nil {
		s.logger.Error("failed to list pending requests", "error", err)
		return nil, err
	}
	return requests, nil
}

// Adjudicate decides a pending request. The status update and the cascaded
// task-deadline update run in one transaction: if either statement fails,
// both roll back and the request stays pendiente. A request that is no
// longer pendiente cannot be decided again.
func (s *Service) Adjudicate(requestID int64, dto AdjudicateDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var decided *Request
	err := s.repo.Transaction(func(tx Repository) error {
		r, err := tx.GetByID(requestID)
		if err != nil {
			return ErrRequestNotFound
		}

		if r.IsDecided() {
			return ErrAlreadyDecided
		}

		changed, err := tx.UpdateStatusIfPending(requestID, dto.Status, dto.FinalDate)
		if err != nil {
			return err
		}
		if !changed {
			return ErrAlreadyDecided
		}

		if dto.Status == StatusApproved && dto.FinalDate != nil && r.TaskID != nil {
			if err := tx.UpdateTaskDueDate(*r.TaskID, *dto.FinalDate); err != nil {
				return err
			}
		}

		r.Status = dto.Status
		r.FinalDate = dto.FinalDate
		decided = r
		return nil
	})
	if err != nil {
		if err != ErrRequestNotFound && err != ErrAlreadyDecided {
			s.logger.Error("failed to adjudicate request", "error", err, "request_id", requestID)
		}
		return nil, err
	}

	s.logger.Info("request adjudicated",
		"request_id", requestID,
		"status", dto.Status,
		"final_date", dto.FinalDate)

	return decided, nil
}
