package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/branchreport/internal/buildinfo"
	"github.com/cleared-dev/branchreport/internal/config"
	"github.com/cleared-dev/branchreport/internal/importer"
	"github.com/cleared-dev/branchreport/internal/logging"
	"github.com/cleared-dev/branchreport/internal/report"
	"github.com/cleared-dev/branchreport/internal/reporting"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logJSON    bool
	logger     *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "branchreport",
		Short:   "Daily card-to-card, fee and withdrawal reports from branch exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("loading .env: %w", err)
			}

			logCfg := logging.DefaultConfig()
			if opts.logLevel != "" {
				logCfg.Level = logging.ParseLevel(opts.logLevel)
			}
			logCfg.JSON = opts.logJSON
			logCfg.Output = cmd.ErrOrStderr()
			opts.logger = logging.Setup(logCfg)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.FileName, "report configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	flags.BoolVar(&opts.logJSON, "log-json", false, "log as JSON lines")

	rootCmd.AddCommand(
		newInitCommand(),
		newReportCommand(opts),
		newBatchCommand(opts),
		newRulesCommand(opts),
	)

	return rootCmd
}

// loadConfig reads the config file, falling back to the built-in default
// when the default path does not exist, then applies the environment.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config"):
		cfg = config.Default()
	default:
		return nil, err
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *rootOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

// newService builds the reporting service for cfg.
func (o *rootOptions) newService(cfg *config.Config) (*reporting.Service, error) {
	ec, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	engine, err := report.New(ec)
	if err != nil {
		return nil, fmt.Errorf("configuring report: %w", err)
	}

	parsers := importer.NewRegistry()
	parsers.Register(&importer.CSVParser{})
	parsers.Register(&importer.XLSXParser{Sheet: cfg.Input.Sheet})

	return reporting.NewService(engine, parsers, o.log()), nil
}
