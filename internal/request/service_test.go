package request_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/task-management/internal/request"
)

func TestRequestService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Request Service Suite")
}

// Mock repository for testing. Transaction keeps a snapshot so a failing fn
// restores prior state, mirroring a database rollback.
type mockRequestRepository struct {
	requests     map[int64]*request.Request
	taskDueDates map[int64]time.Time
	createError  error
	updateError  error
	dueDateError error
	listError    error
	nextID       int64
}

func newMockRequestRepository() *mockRequestRepository {
	return &mockRequestRepository{
		requests:     make(map[int64]*request.Request),
		taskDueDates: make(map[int64]time.Time),
		nextID:       1,
	}
}

func (m *mockRequestRepository) Create(r *request.Request) error {
	if m.createError != nil {
		return m.createError
	}
	r.ID = m.nextID
	m.nextID++
	m.requests[r.ID] = r
	return nil
}

func (m *mockRequestRepository) GetByID(id int64) (*request.Request, error) {
	r, exists := m.requests[id]
	if !exists {
		return nil, request.ErrRequestNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockRequestRepository) ListByRequester(requesterID int64) ([]*request.View, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	views := []*request.View{}
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			views = append(views, &request.View{Request: *r})
		}
	}
	return views, nil
}

func (m *mockRequestRepository) ListPending() ([]*request.View, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	views := []*request.View{}
	for _, r := range m.requests {
		if r.Status == request.StatusPending {
			views = append(views, &request.View{Request: *r})
		}
	}
	return views, nil
}

func (m *mockRequestRepository) UpdateStatusIfPending(id int64, status string, finalDate *time.Time) (bool, error) {
	if m.updateError != nil {
		return false, m.updateError
	}
	r, exists := m.requests[id]
	if !exists || r.Status != request.StatusPending {
		return false, nil
	}
	r.Status = status
	r.FinalDate = finalDate
	return true, nil
}

func (m *mockRequestRepository) UpdateTaskDueDate(taskID int64, dueDate time.Time) error {
	if m.dueDateError != nil {
		return m.dueDateError
	}
	m.taskDueDates[taskID] = dueDate
	return nil
}

func (m *mockRequestRepository) Transaction(fn func(request.Repository) error) error {
	snapshotRequests := make(map[int64]*request.Request, len(m.requests))
	for id, r := range m.requests {
		copied := *r
		snapshotRequests[id] = &copied
	}
	snapshotDueDates := make(map[int64]time.Time, len(m.taskDueDates))
	for id, d := range m.taskDueDates {
		snapshotDueDates[id] = d
	}

	if err := fn(m); err != nil {
		m.requests = snapshotRequests
		m.taskDueDates = snapshotDueDates
		return err
	}
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

var _ = Describe("RequestService", func() {
	var (
		requestService *request.Service
		mockRepo       *mockRequestRepository
		logger         *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockRequestRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		requestService = request.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		Context("when the payload is valid", func() {
			It("should accept it with a nil validation result", func() {
				dto := request.CreateDTO{
					Type:   request.TypeDeadlineExtension,
					Reason: "Necesito más tiempo para el informe",
				}

				Expect(dto.Validate()).To(BeNil())
			})

			It("should file a pending request for the caller", func() {
				dto := request.CreateDTO{
					Type:   request.TypeDeadlineExtension,
					Reason: "Necesito más tiempo para el informe",
					TaskID: int64Ptr(4),
				}

				result, err := requestService.Create(7, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.ID).To(BeNumerically(">", 0))
				Expect(result.RequesterID).To(Equal(int64(7)))
				Expect(result.Status).To(Equal(request.StatusPending))
			})
		})

		Context("when the reason is missing", func() {
			It("should return a validation error", func() {
				dto := request.CreateDTO{Type: request.TypeDeadlineExtension}

				result, err := requestService.Create(7, dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("Adjudicate", func() {
		var finalDate time.Time

		BeforeEach(func() {
			finalDate = time.Now().AddDate(0, 0, 14)
			mockRepo.requests[1] = &request.Request{
				ID:          1,
				Type:        request.TypeDeadlineExtension,
				Reason:      "Necesito más tiempo",
				TaskID:      int64Ptr(4),
				RequesterID: 7,
				Status:      request.StatusPending,
			}
			mockRepo.nextID = 2
		})

		Context("when approving with a final date and a linked task", func() {
			It("should approve and cascade the new deadline to the task", func() {
				dto := request.AdjudicateDTO{Status: request.StatusApproved, FinalDate: timePtr(finalDate)}

				result, err := requestService.Adjudicate(1, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(request.StatusApproved))
				Expect(mockRepo.taskDueDates).To(HaveKey(int64(4)))
				Expect(mockRepo.taskDueDates[4]).To(Equal(finalDate))
			})
		})

		Context("when approving without a final date", func() {
			It("should approve without touching the task", func() {
				dto := request.AdjudicateDTO{Status: request.StatusApproved}

				result, err := requestService.Adjudicate(1, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(request.StatusApproved))
				Expect(mockRepo.taskDueDates).To(BeEmpty())
			})
		})

		Context("when rejecting", func() {
			It("should reject without touching the task", func() {
				dto := request.AdjudicateDTO{Status: request.StatusRejected, FinalDate: timePtr(finalDate)}

				result, err := requestService.Adjudicate(1, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(request.StatusRejected))
				Expect(mockRepo.taskDueDates).To(BeEmpty())
			})
		})

		Context("when the cascaded task update fails", func() {
			It("should roll back and leave the request pendiente", func() {
				mockRepo.dueDateError = errors.New("database error")
				dto := request.AdjudicateDTO{Status: request.StatusApproved, FinalDate: timePtr(finalDate)}

				result, err := requestService.Adjudicate(1, dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())

				stored, _ := mockRepo.GetByID(1)
				Expect(stored.Status).To(Equal(request.StatusPending))
				Expect(mockRepo.taskDueDates).To(BeEmpty())
			})
		})

		Context("when the request is already decided", func() {
			It("should refuse a second adjudication", func() {
				_, err := requestService.Adjudicate(1, request.AdjudicateDTO{Status: request.StatusRejected})
				Expect(err).ToNot(HaveOccurred())

				result, err := requestService.Adjudicate(1, request.AdjudicateDTO{Status: request.StatusApproved, FinalDate: timePtr(finalDate)})

				Expect(err).To(Equal(request.ErrAlreadyDecided))
				Expect(result).To(BeNil())

				stored, _ := mockRepo.GetByID(1)
				Expect(stored.Status).To(Equal(request.StatusRejected))
				Expect(mockRepo.taskDueDates).To(BeEmpty())
			})
		})

		Context("when the guarded update matches no row", func() {
			It("should report the request as decided", func() {
				mockRepo.requests[1].Status = request.StatusApproved

				result, err := requestService.Adjudicate(1, request.AdjudicateDTO{Status: request.StatusRejected})

				Expect(err).To(Equal(request.ErrAlreadyDecided))
				Expect(result).To(BeNil())
			})
		})

		Context("when the verdict is invalid", func() {
			It("should return a validation error", func() {
				result, err := requestService.Adjudicate(1, request.AdjudicateDTO{Status: "pendiente"})

				Expect(err).To(Equal(request.ErrInvalidVerdict))
				Expect(result).To(BeNil())
			})
		})

		Context("when the request does not exist", func() {
			It("should return not found", func() {
				result, err := requestService.Adjudicate(999, request.AdjudicateDTO{Status: request.StatusApproved})

				Expect(err).To(Equal(request.ErrRequestNotFound))
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("ListPending", func() {
		It("should only return undecided requests", func() {
			mockRepo.requests[1] = &request.Request{ID: 1, Type: "extension_plazo", Reason: "a", RequesterID: 7, Status: request.StatusPending}
			mockRepo.requests[2] = &request.Request{ID: 2, Type: "extension_plazo", Reason: "b", RequesterID: 7, Status: request.StatusApproved}
			mockRepo.nextID = 3

			result, err := requestService.ListPending()

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Status).To(Equal(request.StatusPending))
		})
	})
})
