package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/task-management/internal/agenda"
	"github.com/frahmantamala/task-management/internal/auth"
	"github.com/frahmantamala/task-management/internal/comment"
	"github.com/frahmantamala/task-management/internal/dashboard"
	"github.com/frahmantamala/task-management/internal/department"
	"github.com/frahmantamala/task-management/internal/request"
	"github.com/frahmantamala/task-management/internal/task"
	"github.com/frahmantamala/task-management/internal/transport/middleware"
	"github.com/frahmantamala/task-management/internal/transport/swagger"
	"github.com/frahmantamala/task-management/internal/user"
)

// Handlers bundles every HTTP handler mounted by the router.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Department *department.Handler
	Task       *task.Handler
	Comment    *comment.Handler
	Request    *request.Handler
	Agenda     *agenda.Handler
	Dashboard  *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI document and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public account routes
		r.Post("/usuarios/registro", h.User.Register)
		r.Post("/usuarios/login", h.Auth.Login)

		// Everything below requires a valid bearer token.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/usuarios", func(ur chi.Router) {
				ur.Get("/perfil", h.User.Profile)

				ur.Group(func(mr chi.Router) {
					mr.Use(h.Auth.RequireManager)
					mr.Get("/empleados", h.User.ListEmployees)
					mr.Get("/", h.User.ListAll)
					mr.Put("/{id}", h.User.Update)
					mr.Delete("/{id}", h.User.Delete)
					mr.Put("/{id}/departamento", h.User.AssignDepartment)
				})
			})

			pr.Route("/departamentos", func(dr chi.Router) {
				dr.Use(h.Auth.RequireManager)
				dr.Get("/", h.Department.List)
				dr.Post("/", h.Department.Create)
				dr.Put("/{id}", h.Department.Rename)
				dr.Delete("/{id}", h.Department.Delete)
				dr.Put("/{id}/lider", h.Department.AssignLeader)
			})

			pr.Route("/tareas", func(tr chi.Router) {
				// Fixed paths before the {id} routes so chi matches them first.
				tr.Get("/mis-tareas", h.Task.ListMine)
				tr.Get("/departamento", h.Task.ListDepartment)

				tr.Group(func(mr chi.Router) {
					mr.Use(h.Auth.RequireManager)
					mr.Get("/", h.Task.ListAll)
					mr.Post("/", h.Task.Create)
					mr.Delete("/{id}", h.Task.Delete)
				})

				tr.Get("/{id}", h.Task.Get)
				tr.Put("/{id}", h.Task.UpdateStatus)

				tr.Get("/{taskId}/comentarios", h.Comment.ListByTask)
				tr.Post("/{taskId}/comentarios", h.Comment.Create)
			})

			pr.Route("/solicitudes", func(sr chi.Router) {
				sr.Post("/", h.Request.Create)
				sr.Get("/mis-solicitudes", h.Request.ListMine)

				sr.Group(func(mr chi.Router) {
					mr.Use(h.Auth.RequireManager)
					mr.Get("/", h.Request.ListPending)
					mr.Put("/{id}", h.Request.Adjudicate)
				})
			})

			pr.Group(func(mr chi.Router) {
				mr.Use(h.Auth.RequireManager)
				mr.Get("/dashboard/stats", h.Dashboard.Stats)
				mr.Get("/agenda/eventos", h.Agenda.MonthEvents)
				mr.Post("/compromisos", h.Agenda.CreateCommitment)
				mr.Delete("/compromisos/{id}", h.Agenda.DeleteCommitment)
			})
		})
	})
}
