package dashboard

// StatusCount is one row of the tasks-by-status rollup.
type StatusCount struct {
	Status string `json:"estado" gorm:"column:estado"`
	Count  int64  `json:"count" gorm:"column:count"`
}

// DepartmentCount is one row of the tasks-by-department rollup. Departments
// without tasks still appear with a zero count.
type DepartmentCount struct {
	Name  string `json:"nombre" gorm:"column:nombre"`
	Count int64  `json:"count" gorm:"column:count"`
}

// UserCount is one row of the completed-tasks-by-user rollup.
type UserCount struct {
	Name  string `json:"nombre_completo" gorm:"column:nombre_completo"`
	Count int64  `json:"count" gorm:"column:count"`
}

// UserAvgCompletion is one row of the average-completion-time rollup. The
// average spans completed tasks with a recorded completion timestamp.
type UserAvgCompletion struct {
	Name           string  `json:"nombre_completo" gorm:"column:nombre_completo"`
	AverageSeconds float64 `json:"promedio_segundos" gorm:"column:promedio_segundos"`
}

// Stats is the aggregate dashboard response.
type Stats struct {
	TasksByStatus       []*StatusCount       `json:"tasksByStatus"`
	TasksByDepartment   []*DepartmentCount   `json:"tasksByDepartment"`
	CompletedByUser     []*UserCount         `json:"completedByUser"`
	AvgCompletionByUser []*UserAvgCompletion `json:"avgCompletionByUser"`
}
