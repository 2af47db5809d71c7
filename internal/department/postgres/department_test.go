package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal/department"
)

func TestDepartmentRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DepartmentRepository Suite")
}

type SQLiteDepartment struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"column:nombre;not null"`
	LeaderID *int64 `gorm:"column:lider_id"`
}

func (SQLiteDepartment) TableName() string {
	return "departamentos"
}

type SQLiteUser struct {
	ID           int64             `gorm:"primaryKey"`
	Name         string            `gorm:"column:nombre_completo;not null"`
	DepartmentID *int64            `gorm:"column:departamento_id"`
	Department   *SQLiteDepartment `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
}

func (SQLiteUser) TableName() string {
	return "usuarios"
}

type SQLiteTask struct {
	ID           int64             `gorm:"primaryKey"`
	Title        string            `gorm:"column:titulo;not null"`
	CreatorID    int64             `gorm:"column:creador_id;not null"`
	DepartmentID *int64            `gorm:"column:departamento_id"`
	Department   *SQLiteDepartment `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
	Status       string            `gorm:"column:estado;default:pendiente"`
	CreatedAt    time.Time         `gorm:"column:fecha_creacion"`
}

func (SQLiteTask) TableName() string {
	return "tareas"
}

var _ = Describe("DepartmentRepository", func() {
	var (
		db   *gorm.DB
		repo department.Repository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		err = db.AutoMigrate(&SQLiteDepartment{}, &SQLiteUser{}, &SQLiteTask{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewDepartmentRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	int64Ptr := func(v int64) *int64 { return &v }

	Describe("Create and GetByID", func() {
		It("should round-trip a department", func() {
			d := &department.Department{Name: "Ventas"}

			err := repo.Create(d)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.ID).To(BeNumerically(">", 0))

			retrieved, err := repo.GetByID(d.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Name).To(Equal("Ventas"))
		})

		It("should return ErrDepartmentNotFound for a non-existent ID", func() {
			retrieved, err := repo.GetByID(99999)

			Expect(err).To(Equal(department.ErrDepartmentNotFound))
			Expect(retrieved).To(BeNil())
		})
	})

	Describe("List", func() {
		It("should resolve the leader name and order by name", func() {
			Expect(db.Create(&SQLiteUser{ID: 5, Name: "Ana Morales"}).Error).NotTo(HaveOccurred())
			Expect(repo.Create(&department.Department{Name: "Ventas", LeaderID: int64Ptr(5)})).To(Succeed())
			Expect(repo.Create(&department.Department{Name: "Almacen"})).To(Succeed())

			views, err := repo.List()

			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(2))
			Expect(views[0].Name).To(Equal("Almacen"))
			Expect(views[0].LeaderName).To(BeNil())
			Expect(*views[1].LeaderName).To(Equal("Ana Morales"))
		})
	})

	Describe("Delete", func() {
		It("should delete a department and detach its users and tasks", func() {
			d := &department.Department{Name: "Ventas"}
			Expect(repo.Create(d)).To(Succeed())
			Expect(db.Create(&SQLiteUser{ID: 2, Name: "Luis Perez", DepartmentID: &d.ID}).Error).NotTo(HaveOccurred())
			Expect(db.Create(&SQLiteTask{ID: 1, Title: "Preparar informe", CreatorID: 2, DepartmentID: &d.ID, CreatedAt: time.Now()}).Error).NotTo(HaveOccurred())

			err := repo.Delete(d.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.GetByID(d.ID)
			Expect(err).To(Equal(department.ErrDepartmentNotFound))

			var u SQLiteUser
			Expect(db.First(&u, 2).Error).NotTo(HaveOccurred())
			Expect(u.DepartmentID).To(BeNil())

			var t SQLiteTask
			Expect(db.First(&t, 1).Error).NotTo(HaveOccurred())
			Expect(t.DepartmentID).To(BeNil())
		})
	})
})
