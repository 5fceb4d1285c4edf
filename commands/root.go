package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-stampwatch/internal/appconfig"
	"github.com/penwyp/go-stampwatch/internal/application/app"
	"github.com/penwyp/go-stampwatch/internal/util"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every subcommand. Only flags the
// user set explicitly override the config file.
type rootOptions struct {
	configPath string
	debug      bool
	logFormat  string

	storePath    string
	capacity     int
	overflow     string
	timeFormat   string
	timezone     string
	confirmReset bool
	noBell       bool
	noColor      bool
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "stampwatch [flags]",
		Short: "Record button-press timestamps and list the time between them",
		Long: `stampwatch records the current time on every key press and shows the list of
recorded timestamps, newest first, with the time elapsed since the previous one.

Keys in the list:
  Enter/Space   record the current time
  r             reset the list (and record the current time)
  ↑/↓ j/k       move selection
  h/?           help
  q/Esc         quit

Examples:
  stampwatch                          # Open the interactive list
  stampwatch stamp                    # Record one timestamp and exit
  stampwatch list --output json       # Print the list as JSON
  stampwatch --capacity 50 --time-format 12h`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "",
		"Config file path (default ~/.go-stampwatch/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false,
		"Enable debug mode")
	flags.StringVar(&opts.logFormat, "log-format", "",
		"Log format (text, json)")
	flags.StringVar(&opts.storePath, "store", "",
		"Store file path")
	flags.IntVar(&opts.capacity, "capacity", 0,
		"Maximum number of timestamps (20-50)")
	flags.StringVar(&opts.overflow, "overflow", "",
		"What to do when the list is full (drop, rotate)")
	flags.StringVar(&opts.timeFormat, "time-format", "",
		"Time format (12h or 24h)")
	flags.StringVar(&opts.timezone, "timezone", "",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	flags.BoolVar(&opts.confirmReset, "confirm-reset", false,
		"Ask before resetting in the interactive list")
	flags.BoolVar(&opts.noBell, "no-bell", false,
		"Do not ring the terminal bell")
	flags.BoolVar(&opts.noColor, "no-color", false,
		"Disable colors")

	rootCmd.AddCommand(
		newStampCommand(opts),
		newResetCommand(opts),
		newListCommand(opts),
		newConfigCommand(opts),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig reads the config file and applies flags the user set
func loadConfig(cmd *cobra.Command, opts *rootOptions) (appconfig.Config, error) {
	cfg, err := appconfig.Load(opts.configPath)
	if err != nil {
		return appconfig.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.StorePath = util.ExpandPath(opts.storePath)
	}
	if flags.Changed("capacity") {
		cfg.Capacity = opts.capacity
	}
	if flags.Changed("overflow") {
		cfg.Overflow = opts.overflow
	}
	if flags.Changed("time-format") {
		cfg.TimeFormat = opts.timeFormat
	}
	if flags.Changed("timezone") {
		cfg.Timezone = opts.timezone
	}
	if flags.Changed("confirm-reset") {
		cfg.ConfirmReset = opts.confirmReset
	}
	if opts.noBell {
		cfg.Bell = false
	}
	if opts.noColor {
		cfg.Color = false
	}
	if opts.debug {
		cfg.Logging.Level = "debug"
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return appconfig.Config{}, err
	}
	return cfg, nil
}

// setup loads configuration, starts logging and returns the runtime config
func setup(cmd *cobra.Command, opts *rootOptions) (*app.AppConfig, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	if err := util.InitLogger(util.LoggerOptions{
		Level:          cfg.Logging.Level,
		File:           cfg.Logging.File,
		Format:         util.ParseLogFormat(cfg.Logging.Format),
		DebugToConsole: opts.debug,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	ctx := util.ContextWithFields(cmd.Context(), util.F("command", cmd.Name()))
	cmd.SetContext(ctx)
	util.ScopeLogger(ctx)

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize timezone: %w", err)
	}

	return app.FromFile(cfg)
}

func runList(cmd *cobra.Command, opts *rootOptions) error {
	config, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer util.CloseLogger()

	orchestrator, err := app.NewOrchestrator(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx)
}

// openTracker is the common start of the one-shot subcommands
func openTracker(cmd *cobra.Command, opts *rootOptions) (*app.Tracker, error) {
	config, err := setup(cmd, opts)
	if err != nil {
		return nil, err
	}
	return app.OpenTracker(config, util.GetTimeProvider().Now())
}
