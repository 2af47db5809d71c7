package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/task-management/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"compromisos", "solicitudes", "comentarios", "tareas", "usuarios", "departamentos"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		departments := []string{"Operaciones", "Ventas", "Sistemas"}
		for _, name := range departments {
			if seedExists(db, "SELECT 1 FROM departamentos WHERE nombre = $1", name) {
				continue
			}
			if _, err := db.Exec("INSERT INTO departamentos (nombre) VALUES ($1)", name); err != nil {
				log.Fatalf("failed to insert department %s: %v", name, err)
			}
			fmt.Println("Seeded department:", name)
		}

		managerEmail := "jefe@taskman.dev"
		if !seedExists(db, "SELECT 1 FROM usuarios WHERE email = $1", managerEmail) {
			if _, err := db.Exec(
				"INSERT INTO usuarios (nombre_completo, email, password, rol) VALUES ($1, $2, $3, $4)",
				"Gerente General", managerEmail, string(hash), auth.RoleManager,
			); err != nil {
				log.Fatalf("failed to insert manager: %v", err)
			}
			fmt.Println("Seeded manager:", managerEmail)
		}

		employees := []struct {
			Name       string
			Email      string
			Department string
		}{
			{"Ana Morales", "ana@taskman.dev", "Operaciones"},
			{"Luis Herrera", "luis@taskman.dev", "Ventas"},
			{"Carla Ruiz", "carla@taskman.dev", "Sistemas"},
		}

		for _, e := range employees {
			if seedExists(db, "SELECT 1 FROM usuarios WHERE email = $1", e.Email) {
				continue
			}

			var deptID int64
			if err := db.QueryRow("SELECT id FROM departamentos WHERE nombre = $1", e.Department).Scan(&deptID); err != nil {
				log.Fatalf("department not found %s: %v", e.Department, err)
			}

			if _, err := db.Exec(
				"INSERT INTO usuarios (nombre_completo, email, password, rol, departamento_id) VALUES ($1, $2, $3, $4, $5)",
				e.Name, e.Email, string(hash), auth.RoleEmployee, deptID,
			); err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Email, err)
			}
			fmt.Println("Seeded employee:", e.Email)
		}

		fmt.Println("Seed complete; all accounts use password:", password)
	},
}

func seedExists(db *sqlx.DB, query string, args ...any) bool {
	var one int
	return db.QueryRow(query, args...).Scan(&one) == nil
}
