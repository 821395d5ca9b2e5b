package ftstore

import (
	"fmt"
	"log"
	"os"
)

// RunMigrateCommand dispatches a migrate action against the readings
// database and returns the process exit code. The database is opened
// without schema initialization so the migrations own the schema.
func RunMigrateCommand(action, dbPath, migrationsDir string) int {
	store, err := OpenBare(dbPath)
	if err != nil {
		log.Printf("failed to open readings database: %v", err)
		return 1
	}
	defer store.Close()

	switch action {
	case "up":
		if err := store.MigrateUp(migrationsDir); err != nil {
			log.Printf("migration up failed: %v", err)
			return 1
		}
		log.Print("all migrations applied")

	case "down":
		if err := store.MigrateDown(migrationsDir); err != nil {
			log.Printf("migration down failed: %v", err)
			return 1
		}
		log.Print("rolled back one migration")

	case "version":
		version, dirty, err := store.MigrateVersion(migrationsDir)
		if err != nil {
			log.Printf("failed to read migration version: %v", err)
			return 1
		}
		if dirty {
			log.Printf("migration version %d (dirty)", version)
		} else {
			log.Printf("migration version %d", version)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown migrate action %q (want up, down, or version)\n", action)
		return 1
	}
	return 0
}
