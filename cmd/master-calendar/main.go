package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/master-calendar/internal/calendar"
	"github.com/username/master-calendar/internal/config"
	"github.com/username/master-calendar/internal/printers"
	"github.com/username/master-calendar/internal/store"
	"github.com/username/master-calendar/internal/tui"
	"github.com/username/master-calendar/internal/view"
	"github.com/username/master-calendar/internal/workflow"
	"github.com/username/master-calendar/pkg/dateutil"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "master-calendar",
		Short: "HR master calendar",
		Long:  "Browse and maintain the company master calendar: holidays, payroll periods and their propagation to dependent schedules",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(holidayCmd())
	rootCmd.AddCommand(periodCmd())
	rootCmd.AddCommand(syncCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, coord, tokens, err := initializeCoordinator()
			if err != nil {
				return err
			}
			return tui.Run(coord, tokens, cfg.UI.WindowSize, logger)
		},
	}
}

func showCmd() *cobra.Command {
	var dateStr string
	var year bool
	var months int
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the calendar to the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, coord, tokens, err := initializeCoordinator()
			if err != nil {
				return err
			}

			today := dateutil.Today()
			anchor := today
			if dateStr != "" {
				anchor, err = dateutil.ParseDate(dateStr)
				if err != nil {
					return fmt.Errorf("invalid date: %w", err)
				}
			}

			ctx, cancel := requestContext(cfg)
			defer cancel()
			token, err := tokens.Token(ctx)
			if err != nil {
				logger.Warn("Token resolution failed, loading anonymously", zap.Error(err))
			}
			coord.Load(ctx, token)

			if months == 0 {
				months = cfg.UI.WindowSize
			}

			// Invalid window sizes fall back to the default, same as the
			// interactive view.
			nav := view.NewNavigatorWithWindow(anchor, months)
			if !year {
				nav.ToggleViewMode()
			}

			pp := &printers.PrettyPrint{ShowID: showIDs}
			for _, month := range nav.VisibleMonths() {
				pp.PrintMonth(calendar.BuildMonth(month, coord.Holidays(), coord.Periods(), today))
			}
			pp.Legend()

			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Anchor date (defaults to today)")
	cmd.Flags().BoolVar(&year, "year", false, "Show the whole year")
	cmd.Flags().IntVar(&months, "months", 0, "Months to show: 1, 3 or 6")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Include record ids")

	return cmd
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push holidays to dependent schedules",
		Long:  "Re-saves the first holiday so the backend recomputes every schedule that depends on the master calendar.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, coord, tokens, err := initializeCoordinator()
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cfg)
			defer cancel()
			token, err := tokens.Token(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve token: %w", err)
			}

			logger.Info("Starting holiday propagation")
			if err := coord.PropagateHolidays(ctx, token); err != nil {
				return fmt.Errorf("propagation failed: %w", err)
			}

			fmt.Println("Holidays propagated")
			return nil
		},
	}
}

func initializeCoordinator() (*config.Config, *workflow.Coordinator, *store.TokenSource, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()

	client := store.NewClient(cfg.Server.BaseURL, cfg.Server.GetTimeout(), logger)

	tokens := store.NewTokenSource(cfg.Auth.Token, cfg.Auth.TokenEnv, cfg.Auth.TokenCommand, cfg.Auth.GetTokenLifetime(), logger)

	coord := workflow.NewCoordinator(client, workflow.NewPanel(), logger)

	return cfg, coord, tokens, nil
}

func requestContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Server.GetTimeout()+time.Second)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
