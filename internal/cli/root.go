package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compass-backend/internal/core/config"
	"compass-backend/internal/core/database"
	"compass-backend/internal/core/logger"
	"compass-backend/internal/repo"
)

// App carries the persistent flags shared by every command.
type App struct {
	ConfigPath string
	Timeout    time.Duration
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "compass-admin",
		Short:        "Operator tasks for the compass backend",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create or update the schema
  compass-admin migrate

  # Grant a role to an identity-provider user
  compass-admin role set "auth0|abc123" SOCIAL_WORKER

  # Mint a development token (HS256 secret required)
  compass-admin token "auth0|abc123"
`),
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", os.Getenv("CONFIG_PATH"), "Path to config yaml")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 30*time.Second, "Deadline for database work")

	cmd.AddCommand(newMigrateCmd(app))
	cmd.AddCommand(newRoleCmd(app))
	cmd.AddCommand(newTokenCmd(app))

	return cmd
}

type env struct {
	cfg   *config.Config
	log   *zap.Logger
	repos *repo.Repository
	close func()
}

// open loads config and connects to the database. Logs go to stderr at warn level
// unless the config asks for something quieter.
func open(app *App) (*env, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if level == "" || level == "debug" || level == "info" {
		level = "warn"
	}
	log, cleanup := logger.New(level, cfg.Log.JSON)
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	}, log)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("open database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		cleanup()
	}
	return &env{cfg: cfg, log: log, repos: repo.New(db), close: closeDB}, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
