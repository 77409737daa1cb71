package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/cmd/cli/commands"
	"github.com/rowanhart/cohortly/internal/config"
	"github.com/rowanhart/cohortly/pkg/clients/formsclient"
	"github.com/rowanhart/cohortly/pkg/clients/gmailclient"
	"github.com/rowanhart/cohortly/pkg/clients/sheetsclient"
	"github.com/rowanhart/cohortly/pkg/postgres"
	"github.com/rowanhart/cohortly/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cohortly",
		Short: "Cohortly CLI - Manage trainee cohorts and balanced groups",
		Long:  `A CLI tool for managing trainee cohorts, learning style assessments, and constraint-aware group balancing.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	app = &commands.AppContext{}

	// Add all commands
	rootCmd.AddCommand(commands.DefineCohortCmd(app))
	rootCmd.AddCommand(commands.ImportRosterCmd(app))
	rootCmd.AddCommand(commands.RequestStylesCmd(app))
	rootCmd.AddCommand(commands.SyncStylesCmd(app))
	rootCmd.AddCommand(commands.AddAvoidanceCmd(app))
	rootCmd.AddCommand(commands.BalanceGroupsCmd(app))
	rootCmd.AddCommand(commands.ViewAssignmentCmd(app))
	rootCmd.AddCommand(commands.PublishAssignmentCmd(app))
	rootCmd.AddCommand(commands.NotifyGroupsCmd(app))
	rootCmd.AddCommand(commands.ListTraineesCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, clients, and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// Load OAuth client configuration
	app.Logger.Info("Loading OAuth client configuration")
	app.OauthCfg, err = config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.Logger.Debug("OAuth configuration loaded successfully")

	// Initialize sheets client
	app.Logger.Info("Initializing sheets client")
	app.SheetsClient, err = sheetsclient.NewClient(app.Ctx, app.OauthCfg, env)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	// Initialize forms client (uses same OAuth token from sheets client)
	app.Logger.Info("Initializing forms client")
	app.FormsClient, err = formsclient.NewClient(app.Ctx, app.OauthCfg, app.SheetsClient.Token())
	if err != nil {
		return fmt.Errorf("failed to create forms client: %w", err)
	}
	app.Logger.Debug("Forms client initialized successfully")

	// Initialize gmail client (uses same OAuth token from sheets client)
	app.Logger.Info("Initializing gmail client")
	app.GmailClient, err = gmailclient.NewClient(app.Ctx, app.OauthCfg, app.SheetsClient.Token())
	if err != nil {
		return fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.Logger.Debug("Gmail client initialized successfully")

	// Connect to Postgres and run migrations
	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Info("Running database migrations")
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}
