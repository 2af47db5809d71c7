package task_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/task-management/internal/auth"
	"github.com/frahmantamala/task-management/internal/task"
)

func TestTaskService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Service Suite")
}

// Mock repository for testing
type mockTaskRepository struct {
	tasks            map[int64]*task.Task
	leaders          map[int64]*int64
	createError      error
	updateError      error
	deleteError      error
	listError        error
	transactionError error
	nextID           int64
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{
		tasks:   make(map[int64]*task.Task),
		leaders: make(map[int64]*int64),
		nextID:  1,
	}
}

func (m *mockTaskRepository) Create(t *task.Task) error {
	if m.createError != nil {
		return m.createError
	}
	t.ID = m.nextID
	m.nextID++
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) GetByID(id int64) (*task.Task, error) {
	t, exists := m.tasks[id]
	if !exists {
		return nil, task.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *mockTaskRepository) ListByAssignee(userID int64) ([]*task.View, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	views := []*task.View{}
	for _, t := range m.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == userID {
			views = append(views, &task.View{Task: *t})
		}
	}
	return views, nil
}

func (m *mockTaskRepository) ListByDepartment(departmentID int64) ([]*task.View, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	views := []*task.View{}
	for _, t := range m.tasks {
		if t.DepartmentID != nil && *t.DepartmentID == departmentID {
			views = append(views, &task.View{Task: *t})
		}
	}
	return views, nil
}

func (m *mockTaskRepository) List(filter task.ListFilter) ([]*task.View, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	matched := []*task.View{}
	for _, t := range m.tasks {
		if filter.EmployeeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *filter.EmployeeID) {
			continue
		}
		if filter.DepartmentID != nil && (t.DepartmentID == nil || *t.DepartmentID != *filter.DepartmentID) {
			continue
		}
		matched = append(matched, &task.View{Task: *t})
	}

	start := filter.Offset()
	if start >= len(matched) {
		return []*task.View{}, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (m *mockTaskRepository) Count(filter task.ListFilter) (int64, error) {
	if m.listError != nil {
		return 0, m.listError
	}
	var count int64
	for _, t := range m.tasks {
		if filter.EmployeeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *filter.EmployeeID) {
			continue
		}
		if filter.DepartmentID != nil && (t.DepartmentID == nil || *t.DepartmentID != *filter.DepartmentID) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockTaskRepository) UpdateStatus(id int64, status string, completedAt *time.Time) error {
	if m.updateError != nil {
		return m.updateError
	}
	if t, exists := m.tasks[id]; exists {
		t.Status = status
		t.CompletedAt = completedAt
	}
	return nil
}

func (m *mockTaskRepository) Delete(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepository) DepartmentLeader(departmentID int64) (*int64, error) {
	return m.leaders[departmentID], nil
}

func (m *mockTaskRepository) Transaction(fn func(task.Repository) error) error {
	if m.transactionError != nil {
		return m.transactionError
	}
	return fn(m)
}

func int64Ptr(v int64) *int64 { return &v }

var _ = Describe("TaskService", func() {
	var (
		taskService *task.Service
		mockRepo    *mockTaskRepository
		logger      *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockTaskRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		taskService = task.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		Context("when the payload is valid", func() {
			It("should create the task as pendiente with the caller as creator", func() {
				dto := task.CreateTaskDTO{
					Title:      "Preparar informe mensual",
					AssigneeID: int64Ptr(7),
				}

				result, err := taskService.Create(1, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.ID).To(BeNumerically(">", 0))
				Expect(result.CreatorID).To(Equal(int64(1)))
				Expect(result.Status).To(Equal(task.StatusPending))
				Expect(result.CompletedAt).To(BeNil())
			})
		})

		Context("when neither assignee nor department is given", func() {
			It("should return a validation error", func() {
				dto := task.CreateTaskDTO{Title: "Sin destinatario"}

				result, err := taskService.Create(1, dto)

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("assignee or a department"))
				Expect(result).To(BeNil())
			})
		})

		Context("when the title is missing", func() {
			It("should return a validation error", func() {
				dto := task.CreateTaskDTO{AssigneeID: int64Ptr(7)}

				result, err := taskService.Create(1, dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})

		Context("when repository fails", func() {
			It("should return the repository error", func() {
				mockRepo.createError = errors.New("database error")
				dto := task.CreateTaskDTO{
					Title:      "Preparar informe",
					AssigneeID: int64Ptr(7),
				}

				result, err := taskService.Create(1, dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("UpdateStatus", func() {
		var assignee *auth.User

		BeforeEach(func() {
			assignee = &auth.User{ID: 7, Role: auth.RoleEmployee}
			mockRepo.tasks[1] = &task.Task{
				ID:         1,
				Title:      "Revisar contrato",
				CreatorID:  1,
				AssigneeID: int64Ptr(7),
				Status:     task.StatusPending,
			}
			mockRepo.nextID = 2
		})

		Context("when the caller is the direct assignee", func() {
			It("should apply the transition", func() {
				result, err := taskService.UpdateStatus(1, assignee, task.UpdateStatusDTO{Status: task.StatusInProgress})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(task.StatusInProgress))

				stored, _ := mockRepo.GetByID(1)
				Expect(stored.Status).To(Equal(task.StatusInProgress))
			})

			It("should stamp the completion time on completada", func() {
				result, err := taskService.UpdateStatus(1, assignee, task.UpdateStatusDTO{Status: task.StatusCompleted})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.CompletedAt).ToNot(BeNil())

				stored, _ := mockRepo.GetByID(1)
				Expect(stored.CompletedAt).ToNot(BeNil())
			})

			It("should clear the completion time when leaving completada", func() {
				_, err := taskService.UpdateStatus(1, assignee, task.UpdateStatusDTO{Status: task.StatusCompleted})
				Expect(err).ToNot(HaveOccurred())

				result, err := taskService.UpdateStatus(1, assignee, task.UpdateStatusDTO{Status: task.StatusInProgress})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.CompletedAt).To(BeNil())

				stored, _ := mockRepo.GetByID(1)
				Expect(stored.CompletedAt).To(BeNil())
			})

			It("should converge when completada is applied twice", func() {
				first, err := taskService.UpdateStatus(1, assignee, task.UpdateStatusDTO{Status: task.StatusCompleted})
				Expect(err).ToNot(HaveOccurred())
				Expect(first.CompletedAt).ToNot(BeNil())

				second, err := taskService.UpdateStatus(1, assignee, task.UpdateStatusDTO{Status: task.StatusCompleted})
				Expect(err).ToNot(HaveOccurred())
				Expect(second.Status).To(Equal(task.StatusCompleted))
				Expect(second.CompletedAt).ToNot(BeNil())
			})
		})

		Context("when the caller is neither assignee nor department leader", func() {
			It("should deny and leave the task unchanged", func() {
				stranger := &auth.User{ID: 99, Role: auth.RoleEmployee}

				result, err := taskService.UpdateStatus(1, stranger, task.UpdateStatusDTO{Status: task.StatusCompleted})

				Expect(err).To(Equal(task.ErrNotAssignee))
				Expect(result).To(BeNil())

				stored, _ := mockRepo.GetByID(1)
				Expect(stored.Status).To(Equal(task.StatusPending))
				Expect(stored.CompletedAt).To(BeNil())
			})
		})

		Context("when the task is department-assigned", func() {
			BeforeEach(func() {
				mockRepo.tasks[2] = &task.Task{
					ID:           2,
					Title:        "Tarea de equipo",
					CreatorID:    1,
					DepartmentID: int64Ptr(3),
					Status:       task.StatusPending,
				}
				mockRepo.nextID = 3
			})

			It("should allow the department leader", func() {
				mockRepo.leaders[3] = int64Ptr(7)

				result, err := taskService.UpdateStatus(2, assignee, task.UpdateStatusDTO{Status: task.StatusInProgress})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(task.StatusInProgress))
			})

			It("should deny a department member who is not the leader", func() {
				mockRepo.leaders[3] = int64Ptr(50)

				result, err := taskService.UpdateStatus(2, assignee, task.UpdateStatusDTO{Status: task.StatusInProgress})

				Expect(err).To(Equal(task.ErrNotAssignee))
				Expect(result).To(BeNil())
			})
		})

		Context("when the status is unknown", func() {
			It("should return a validation error", func() {
				result, err := taskService.UpdateStatus(1, assignee, task.UpdateStatusDTO{Status: "archivada"})

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})

		Context("when the task does not exist", func() {
			It("should return not found", func() {
				result, err := taskService.UpdateStatus(999, assignee, task.UpdateStatusDTO{Status: task.StatusCompleted})

				Expect(err).To(Equal(task.ErrTaskNotFound))
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			mockRepo.tasks[1] = &task.Task{
				ID:        1,
				Title:     "Revisar contrato",
				CreatorID: 5,
			}
			mockRepo.nextID = 2
		})

		Context("when the caller created the task", func() {
			It("should delete it", func() {
				err := taskService.Delete(1, 5)

				Expect(err).ToNot(HaveOccurred())
				_, getErr := mockRepo.GetByID(1)
				Expect(getErr).To(Equal(task.ErrTaskNotFound))
			})
		})

		Context("when the caller is not the creator", func() {
			It("should deny and keep the task", func() {
				err := taskService.Delete(1, 99)

				Expect(err).To(Equal(task.ErrNotCreator))
				_, getErr := mockRepo.GetByID(1)
				Expect(getErr).ToNot(HaveOccurred())
			})
		})

		Context("when the task does not exist", func() {
			It("should return not found", func() {
				err := taskService.Delete(999, 5)

				Expect(err).To(Equal(task.ErrTaskNotFound))
			})
		})
	})

	Describe("ListAll", func() {
		BeforeEach(func() {
			for i := int64(1); i <= 25; i++ {
				mockRepo.tasks[i] = &task.Task{
					ID:         i,
					Title:      "Tarea",
					CreatorID:  1,
					AssigneeID: int64Ptr(7),
				}
			}
			mockRepo.nextID = 26
		})

		It("should compute totalPages from the same predicate as the page", func() {
			result, err := taskService.ListAll(task.ListFilter{Page: 1, Limit: 10})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Total).To(Equal(int64(25)))
			Expect(result.TotalPages).To(Equal(3))
			Expect(result.CurrentPage).To(Equal(1))
			Expect(result.Tasks).To(HaveLen(10))
		})

		It("should return an empty page past the end with a correct page count", func() {
			result, err := taskService.ListAll(task.ListFilter{Page: 9, Limit: 10})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Tasks).To(BeEmpty())
			Expect(result.TotalPages).To(Equal(3))
			Expect(result.CurrentPage).To(Equal(9))
		})

		It("should default page and limit for out-of-range values", func() {
			result, err := taskService.ListAll(task.ListFilter{Page: -2, Limit: 5000})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.CurrentPage).To(Equal(1))
			Expect(result.Tasks).To(HaveLen(10))
		})

		It("should filter by employee id", func() {
			mockRepo.tasks[100] = &task.Task{ID: 100, Title: "Otra", CreatorID: 1, AssigneeID: int64Ptr(8)}

			result, err := taskService.ListAll(task.ListFilter{Page: 1, Limit: 10, EmployeeID: int64Ptr(8)})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Total).To(Equal(int64(1)))
			Expect(result.Tasks).To(HaveLen(1))
		})
	})

	Describe("ListDepartment", func() {
		Context("when the caller has no department", func() {
			It("should return an empty list without querying", func() {
				caller := &auth.User{ID: 7, Role: auth.RoleEmployee}

				result, err := taskService.ListDepartment(caller)

				Expect(err).ToNot(HaveOccurred())
				Expect(result).To(BeEmpty())
			})
		})

		Context("when the caller belongs to a department", func() {
			It("should return that department's tasks", func() {
				mockRepo.tasks[1] = &task.Task{ID: 1, Title: "Tarea", CreatorID: 1, DepartmentID: int64Ptr(3)}
				caller := &auth.User{ID: 7, Role: auth.RoleEmployee, DepartmentID: int64Ptr(3)}

				result, err := taskService.ListDepartment(caller)

				Expect(err).ToNot(HaveOccurred())
				Expect(result).To(HaveLen(1))
			})
		})
	})
})
