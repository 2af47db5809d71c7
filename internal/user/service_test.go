package user_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/task-management/internal/auth"
	"github.com/frahmantamala/task-management/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users       map[int64]*user.User
	byEmail     map[string]*user.User
	createError error
	updateError error
	deleteError error
	listError   error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:   make(map[int64]*user.User),
		byEmail: make(map[string]*user.User),
		nextID:  1,
	}
}

func (m *mockUserRepository) put(u *user.User) {
	m.users[u.ID] = u
	m.byEmail[u.Email] = u
}

func (m *mockUserRepository) Create(u *user.User) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	m.nextID++
	m.put(u)
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	u, exists := m.byEmail[email]
	if !exists {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) ListAll() ([]*user.EmployeeView, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	views := []*user.EmployeeView{}
	for _, u := range m.users {
		views = append(views, &user.EmployeeView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, DepartmentID: u.DepartmentID})
	}
	return views, nil
}

func (m *mockUserRepository) ListEmployees() ([]*user.EmployeeView, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	views := []*user.EmployeeView{}
	for _, u := range m.users {
		if u.Role == auth.RoleEmployee {
			views = append(views, &user.EmployeeView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, DepartmentID: u.DepartmentID})
		}
	}
	return views, nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	if m.updateError != nil {
		return m.updateError
	}
	if old, exists := m.users[u.ID]; exists {
		delete(m.byEmail, old.Email)
	}
	m.put(u)
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if u, exists := m.users[id]; exists {
		delete(m.byEmail, u.Email)
		delete(m.users, id)
	}
	return nil
}

// Mock password hasher
type mockHasher struct {
	hashError error
}

func (m *mockHasher) HashPassword(password string) (string, error) {
	if m.hashError != nil {
		return "", m.hashError
	}
	return "hashed:" + password, nil
}

func strPtr(v string) *string { return &v }

func int64Ptr(v int64) *int64 { return &v }

var _ = Describe("UserService", func() {
	var (
		userService *user.Service
		mockRepo    *mockUserRepository
		hasher      *mockHasher
		logger      *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		hasher = &mockHasher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		userService = user.NewService(mockRepo, hasher, logger)
	})

	Describe("Register", func() {
		Context("when the payload is valid", func() {
			It("should create an empleado account with a hashed password", func() {
				dto := user.RegisterDTO{
					Name:     "Ana Morales",
					Email:    "ana@taskman.dev",
					Password: "secreta1",
				}

				result, err := userService.Register(dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.ID).To(BeNumerically(">", 0))
				Expect(result.Role).To(Equal(auth.RoleEmployee))
				Expect(result.PasswordHash).To(Equal("hashed:secreta1"))
			})
		})

		Context("when the email is taken", func() {
			It("should return a conflict", func() {
				mockRepo.Create(&user.User{Name: "Ana", Email: "ana@taskman.dev", Role: auth.RoleEmployee})

				dto := user.RegisterDTO{
					Name:     "Otra Ana",
					Email:    "ana@taskman.dev",
					Password: "secreta1",
				}

				result, err := userService.Register(dto)

				Expect(err).To(Equal(user.ErrEmailTaken))
				Expect(result).To(BeNil())
			})
		})

		Context("when the password is too short", func() {
			It("should return a validation error", func() {
				dto := user.RegisterDTO{
					Name:     "Ana Morales",
					Email:    "ana@taskman.dev",
					Password: "abc",
				}

				result, err := userService.Register(dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})

		Context("when hashing fails", func() {
			It("should return the error", func() {
				hasher.hashError = errors.New("bcrypt failure")
				dto := user.RegisterDTO{
					Name:     "Ana Morales",
					Email:    "ana@taskman.dev",
					Password: "secreta1",
				}

				result, err := userService.Register(dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			mockRepo.Create(&user.User{
				Name:  "Luis Herrera",
				Email: "luis@taskman.dev",
				Role:  auth.RoleEmployee,
			})
		})

		Context("when only some fields are present", func() {
			It("should keep the unspecified fields", func() {
				dto := user.UpdateUserDTO{Name: strPtr("Luis H. Herrera")}

				result, err := userService.Update(1, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Name).To(Equal("Luis H. Herrera"))
				Expect(result.Email).To(Equal("luis@taskman.dev"))
				Expect(result.Role).To(Equal(auth.RoleEmployee))
			})
		})

		Context("when changing the email to one already in use", func() {
			It("should return a conflict", func() {
				mockRepo.Create(&user.User{Name: "Carla", Email: "carla@taskman.dev", Role: auth.RoleEmployee})

				dto := user.UpdateUserDTO{Email: strPtr("carla@taskman.dev")}

				result, err := userService.Update(1, dto)

				Expect(err).To(Equal(user.ErrEmailTaken))
				Expect(result).To(BeNil())
			})
		})

		Context("when keeping the same email", func() {
			It("should not trip the conflict check", func() {
				dto := user.UpdateUserDTO{Email: strPtr("luis@taskman.dev"), Role: strPtr(auth.RoleManager)}

				result, err := userService.Update(1, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Role).To(Equal(auth.RoleManager))
			})
		})

		Context("when the user does not exist", func() {
			It("should return not found", func() {
				result, err := userService.Update(999, user.UpdateUserDTO{Name: strPtr("Nadie")})

				Expect(err).To(Equal(user.ErrUserNotFound))
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("AssignDepartment", func() {
		BeforeEach(func() {
			mockRepo.Create(&user.User{Name: "Luis", Email: "luis@taskman.dev", Role: auth.RoleEmployee})
			mockRepo.Create(&user.User{Name: "Gerente", Email: "jefe@taskman.dev", Role: auth.RoleManager})
		})

		Context("when the target is an employee", func() {
			It("should set the department", func() {
				result, err := userService.AssignDepartment(1, int64Ptr(3))

				Expect(err).ToNot(HaveOccurred())
				Expect(result.DepartmentID).ToNot(BeNil())
				Expect(*result.DepartmentID).To(Equal(int64(3)))
			})

			It("should clear the department with nil", func() {
				_, err := userService.AssignDepartment(1, int64Ptr(3))
				Expect(err).ToNot(HaveOccurred())

				result, err := userService.AssignDepartment(1, nil)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.DepartmentID).To(BeNil())
			})
		})

		Context("when the target is a manager", func() {
			It("should refuse", func() {
				result, err := userService.AssignDepartment(2, int64Ptr(3))

				Expect(err).To(Equal(user.ErrNotEmployee))
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("Delete", func() {
		It("should remove an existing user", func() {
			mockRepo.Create(&user.User{Name: "Luis", Email: "luis@taskman.dev", Role: auth.RoleEmployee})

			err := userService.Delete(1)

			Expect(err).ToNot(HaveOccurred())
			_, getErr := mockRepo.GetByID(1)
			Expect(getErr).To(Equal(user.ErrUserNotFound))
		})

		It("should return not found for a missing user", func() {
			err := userService.Delete(999)

			Expect(err).To(Equal(user.ErrUserNotFound))
		})

		It("should surface a conflict when the user still has dependent records", func() {
			mockRepo.Create(&user.User{Name: "Luis", Email: "luis@taskman.dev", Role: auth.RoleEmployee})
			mockRepo.deleteError = user.ErrUserReferenced

			err := userService.Delete(1)

			Expect(err).To(Equal(user.ErrUserReferenced))
		})
	})

	Describe("ListEmployees", func() {
		It("should exclude managers", func() {
			mockRepo.Create(&user.User{Name: "Luis", Email: "luis@taskman.dev", Role: auth.RoleEmployee})
			mockRepo.Create(&user.User{Name: "Gerente", Email: "jefe@taskman.dev", Role: auth.RoleManager})

			result, err := userService.ListEmployees()

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Role).To(Equal(auth.RoleEmployee))
		})
	})
})
