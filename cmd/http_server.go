package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/task-management/internal"
	"github.com/frahmantamala/task-management/internal/agenda"
	agendapg "github.com/frahmantamala/task-management/internal/agenda/postgres"
	"github.com/frahmantamala/task-management/internal/auth"
	authpg "github.com/frahmantamala/task-management/internal/auth/postgres"
	"github.com/frahmantamala/task-management/internal/comment"
	commentpg "github.com/frahmantamala/task-management/internal/comment/postgres"
	"github.com/frahmantamala/task-management/internal/dashboard"
	dashboardpg "github.com/frahmantamala/task-management/internal/dashboard/postgres"
	"github.com/frahmantamala/task-management/internal/department"
	departmentpg "github.com/frahmantamala/task-management/internal/department/postgres"
	"github.com/frahmantamala/task-management/internal/request"
	requestpg "github.com/frahmantamala/task-management/internal/request/postgres"
	"github.com/frahmantamala/task-management/internal/storage"
	"github.com/frahmantamala/task-management/internal/task"
	taskpg "github.com/frahmantamala/task-management/internal/task/postgres"
	"github.com/frahmantamala/task-management/internal/transport/rest"
	"github.com/frahmantamala/task-management/internal/user"
	userpg "github.com/frahmantamala/task-management/internal/user/postgres"
	"github.com/frahmantamala/task-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	handlers, err := buildHandlers(config, gormDB, lg)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Logger:   lg,
	}, nil
}

func buildHandlers(config *internal.Config, gormDB *gorm.DB, lg *slog.Logger) (rest.Handlers, error) {
	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(authpg.NewRepository(gormDB), tokenGen, config.Security.BCryptCost)

	userService := user.NewService(userpg.NewUserRepository(gormDB), authService, lg)
	departmentService := department.NewService(departmentpg.NewDepartmentRepository(gormDB), lg)
	taskService := task.NewService(taskpg.NewTaskRepository(gormDB), lg)
	commentService := comment.NewService(commentpg.NewCommentRepository(gormDB), lg)
	requestService := request.NewService(requestpg.NewRequestRepository(gormDB), lg)
	agendaService := agenda.NewService(agendapg.NewAgendaRepository(gormDB), lg)
	dashboardService := dashboard.NewService(dashboardpg.NewDashboardRepository(gormDB), lg)

	// Attachment uploads stay disabled when Cloudinary credentials are absent.
	var uploader storage.Uploader
	if config.Storage.Configured() {
		cld, err := storage.NewCloudinaryUploader(config.Storage, lg)
		if err != nil {
			return rest.Handlers{}, fmt.Errorf("failed to initialize storage: %w", err)
		}
		uploader = cld
	} else {
		lg.Warn("cloudinary credentials missing, attachment uploads disabled")
	}

	return rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		Department: department.NewHandler(departmentService),
		Task:       task.NewHandler(taskService),
		Comment:    comment.NewHandler(commentService, uploader),
		Request:    request.NewHandler(requestService),
		Agenda:     agenda.NewHandler(agendaService),
		Dashboard:  dashboard.NewHandler(dashboardService),
	}, nil
}

// initDB opens the pgx-backed pool used for health checks and bootstrap.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open pool so both share one
// set of connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
}
