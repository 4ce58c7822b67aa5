package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/iwvelando/proforma-forecast/internal/config"
	"github.com/iwvelando/proforma-forecast/internal/metrics"
	"github.com/iwvelando/proforma-forecast/internal/projection"
	"github.com/iwvelando/proforma-forecast/internal/scenario"
	"github.com/iwvelando/proforma-forecast/internal/server"
	"github.com/iwvelando/proforma-forecast/pkg/constants"
	"github.com/iwvelando/proforma-forecast/pkg/output"
	"github.com/iwvelando/proforma-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.3.0"

var rootArgs struct {
	configLocation string
	outputFormat   string
	logLevel       string
}

var scenarioArgs struct {
	field       string
	multipliers []float64
}

var serveArgs struct {
	configLocation string
}

var rootCmd = &cobra.Command{
	Use:           "proforma-forecast",
	Long:          "Project pro-forma financial schedules and returns for solar and consulting ventures",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute and print one projection from an assumptions file",
	RunE:  runProjection,
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Sweep one assumption across multipliers and compare outcomes",
	RunE:  runScenarios,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the projection HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootArgs.configLocation, "config", constants.DefaultConfigFile, "path to assumptions file")
	rootCmd.PersistentFlags().StringVar(&rootArgs.outputFormat, "output-format", "", "type of output override: pretty, csv")
	rootCmd.PersistentFlags().StringVar(&rootArgs.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	scenariosCmd.Flags().StringVar(&scenarioArgs.field, "field", "", "assumption to sweep (e.g. ppaPrice, capacityFactor, utilization)")
	scenariosCmd.Flags().Float64SliceVar(&scenarioArgs.multipliers, "multipliers", []float64{0.8, 0.9, 1.0, 1.1, 1.2}, "multipliers to apply to the swept assumption")
	_ = scenariosCmd.MarkFlagRequired("field")

	serveCmd.Flags().StringVar(&serveArgs.configLocation, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")

	rootCmd.AddCommand(runCmd, scenariosCmd, serveCmd)
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// setup loads the assumptions file, builds the logger, and resolves the
// output format shared by the run and scenarios subcommands.
func setup() (*config.Configuration, *zap.Logger, string, error) {
	conf, err := config.LoadConfiguration(rootArgs.configLocation)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to load configuration at %s: %w", rootArgs.configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, rootArgs.logLevel)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if rootArgs.outputFormat != "" {
		outputFormat = rootArgs.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return nil, nil, "", err
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	return conf, logger, outputFormat, nil
}

func runProjection(cmd *cobra.Command, argv []string) error {
	conf, logger, outputFormat, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	record, err := conf.ProjectInputs()
	if err != nil {
		return err
	}

	schedule, fin, err := projection.NewBuilder(logger).BuildSchedule(record)
	if err != nil {
		return fmt.Errorf("failed to build projection schedule: %w", err)
	}

	totals := metrics.Summarize(schedule)
	rate, rateErr := metrics.EquityIRR(schedule, fin)
	if rateErr != nil {
		logger.Warn("equity IRR did not converge",
			zap.String("op", "main"),
			zap.Error(rateErr),
		)
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		output.CsvProforma(schedule)
	default:
		output.PrettyProforma(conf.Sector, schedule, fin, totals, rate, rateErr)
	}
	return nil
}

func runScenarios(cmd *cobra.Command, argv []string) error {
	conf, logger, outputFormat, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if len(scenarioArgs.multipliers) == 0 {
		return fmt.Errorf("at least one multiplier is required")
	}

	record, err := conf.ProjectInputs()
	if err != nil {
		return err
	}

	set := scenario.NewRunner(logger).Run(record, scenarioArgs.field, scenarioArgs.multipliers)

	switch outputFormat {
	case constants.OutputFormatCSV:
		output.CsvScenarios(scenarioArgs.field, set)
	default:
		output.PrettyScenarios(scenarioArgs.field, set)
	}
	return nil
}

func runServe(cmd *cobra.Command, argv []string) error {
	cfg, err := server.LoadConfig(serveArgs.configLocation)
	if err != nil {
		return fmt.Errorf("failed to load server configuration at %s: %w", serveArgs.configLocation, err)
	}

	logger, err := initializeLogger(cfg.Logging, rootArgs.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var store server.ModelStore
	switch cfg.Store.Backend {
	case "redis":
		store = server.NewRedisStore(cfg.Store.RedisAddr, time.Duration(cfg.Store.RedisTTLMinutes)*time.Minute)
		logger.Info("using redis model store",
			zap.String("op", "main"),
			zap.String("addr", cfg.Store.RedisAddr),
		)
	default:
		store = server.NewMemoryStore()
	}

	handler := server.NewHandler(logger, store, cfg.MaxBodyBytes, version)
	logger.Info("starting projection API",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
	)
	return http.ListenAndServe(cfg.Address, handler)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
