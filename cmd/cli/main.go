package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SCS-Technik/Assixx-sub012/cmd/cli/commands"
	"github.com/SCS-Technik/Assixx-sub012/internal/config"
	"github.com/SCS-Technik/Assixx-sub012/pkg/postgres"
	"github.com/SCS-Technik/Assixx-sub012/pkg/utils/logging"
)

var (
	env      string
	tenantID int
	database *postgres.DB

	// app is shared with all commands; its fields are populated by initApp
	// before any RunE executes.
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rotation-cli",
		Short: "Shift rotation CLI - Manage rotation patterns and generated shifts",
		Long:  `A CLI tool for managing shift-rotation patterns, user assignments, and atomic shift generation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if database != nil {
				database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().IntVarP(&tenantID, "tenant", "t", 0, "Tenant id (defaults to config defaultTenantID)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(
		commands.ListPatternsCmd(app),
		commands.CreatePatternCmd(app),
		commands.UpdatePatternCmd(app),
		commands.DeletePatternCmd(app),
		commands.AssignUsersCmd(app),
		commands.GenerateShiftsCmd(app),
		commands.ExpandYearCmd(app),
		commands.ViewHistoryCmd(app),
		commands.OffboardTeamCmd(app),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initApp() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if tenantID == 0 {
		tenantID = cfg.DefaultTenantID
	}
	if tenantID == 0 {
		return fmt.Errorf("no tenant id: pass --tenant or set defaultTenantID in the config")
	}

	database, err = postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("Application initialized",
		zap.String("env", env),
		zap.Int("tenant_id", tenantID))

	app.Cfg = cfg
	app.Database = database
	app.Logger = logger
	app.Ctx = ctx
	app.TenantID = tenantID

	return nil
}
