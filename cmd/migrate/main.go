package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"wp-lite/migrations"
	"wp-lite/pkg/config"
	"wp-lite/pkg/database"
	"wp-lite/pkg/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "up, down, redo, status, version or create")
		dir     = flag.String("dir", "migrations", "directory new migrations are written to (create only)")
		name    = flag.String("name", "", "name for a new migration (create only)")
	)
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	if err := validate(cfg, *command, *name); err != nil {
		log.Error("%v", err)
		os.Exit(2)
	}

	if err := run(cfg, *command, *dir, *name, log); err != nil {
		log.Error("Migration %s failed: %v", *command, err)
		os.Exit(1)
	}
}

var commands = map[string]bool{"up": true, "down": true, "redo": true, "status": true, "version": true, "create": true}

var errSQLiteDriver = errors.New("DB_DRIVER=sqlite builds its schema when a service starts; migrations target postgres")

// validate rejects invocations that should never reach the database.
func validate(cfg *config.Config, command, name string) error {
	if cfg.DBDriver == "sqlite" {
		return errSQLiteDriver
	}
	if !commands[command] {
		return fmt.Errorf("unknown command: %s", command)
	}
	if command == "create" && name == "" {
		return errors.New("name is required for create command")
	}
	return nil
}

func run(cfg *config.Config, command, dir, name string, log *logger.Logger) error {
	db, err := sql.Open("postgres", database.PostgresDSN(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return err
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if command == "create" {
		// new files go to disk; the embedded set is read-only
		goose.SetBaseFS(nil)
		if err := goose.Create(db, dir, name, "sql"); err != nil {
			return err
		}
		log.Info("Created migration %s in %s", name, dir)
		return nil
	}

	goose.SetBaseFS(migrations.FS)
	runCtx := context.Background()

	switch command {
	case "up":
		err = goose.UpContext(runCtx, db, ".")
	case "down":
		err = goose.DownContext(runCtx, db, ".")
	case "redo":
		err = goose.RedoContext(runCtx, db, ".")
	case "status":
		err = goose.StatusContext(runCtx, db, ".")
	case "version":
		err = goose.VersionContext(runCtx, db, ".")
	default:
		err = fmt.Errorf("unknown command: %s", command)
	}
	if err != nil {
		return err
	}

	log.Info("Migration command %s finished", command)
	return nil
}
