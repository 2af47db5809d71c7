package dashboard

import (
	"log/slog"
	"sync"
)

// Repository defines the aggregate queries behind the dashboard
type Repository interface {
	TasksByStatus() ([]*StatusCount, error)
	TasksByDepartment() ([]*DepartmentCount, error)
	CompletedByUser() ([]*UserCount, error)
	AvgCompletionByUser() ([]*UserAvgCompletion, error)
}

// Service computes read-only dashboard rollups
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

// Stats runs the four aggregate queries concurrently. They are independent
// reads, so the first error wins and the rest are discarded.
func (s *Service) Stats() (*Stats, error) {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)

	fail := func(err error) {
		mu.Lock()
		if first == nil {
			first = err
		}
		mu.Unlock()
	}

	stats := &Stats{}

	wg.Add(4)
	go func() {
		defer wg.Done()
		rows, err := s.repo.TasksByStatus()
		if err != nil {
			fail(err)
			return
		}
		stats.TasksByStatus = rows
	}()
	go func() {
		defer wg.Done()
		rows, err := s.repo.TasksByDepartment()
		if err != nil {
			fail(err)
			return
		}
		stats.TasksByDepartment = rows
	}()
	go func() {
		defer wg.Done()
		rows, err := s.repo.CompletedByUser()
		if err != nil {
			fail(err)
			return
		}
		stats.CompletedByUser = rows
	}()
	go func() {
		defer wg.Done()
		rows, err := s.repo.AvgCompletionByUser()
		if err != nil {
			fail(err)
			return
		}
		stats.AvgCompletionByUser = rows
	}()
	wg.Wait()

	if first != nil {
		s.logger.Error("failed to compute dashboard stats", "error", first)
		return nil, first
	}
	return stats, nil
}
