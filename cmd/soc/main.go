package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"socpredict/cmd/soc/app"
	"socpredict/internal/config"
	"socpredict/internal/logging"
	"socpredict/internal/prediction"
)

var version = "dev"

// Logger for subcommands. The interactive client logs through
// internal/logging instead since it owns the terminal.
var logger *zap.Logger

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	verbose    bool
	configPath string
	endpoint   string
	health     string
	theme      string
	route      string
	fast       bool
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "soc",
		Short: "SOC Prediction - soil organic carbon estimates in your terminal",
		Long: `soc collects eight terrain and vegetation indices, submits them to the
SOC prediction service and shows the estimates of three regression models.

Run without arguments to start the interactive client.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The interactive client has its own UI.
			if cmd.Root() == cmd {
				logger = zap.NewNop()
				return nil
			}

			cfg := zap.NewProductionConfig()
			if flags.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(flags)
		},
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: .soc/config.yaml, then ~/.socpredict/config.yaml)")
	root.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "", "Prediction endpoint (or set SOC_ENDPOINT)")
	root.PersistentFlags().StringVar(&flags.health, "health-endpoint", "", "Health endpoint (or set SOC_HEALTH_ENDPOINT)")
	root.Flags().StringVar(&flags.theme, "theme", "", "Color theme: light, dark or auto (or set SOC_THEME)")
	root.Flags().StringVar(&flags.route, "route", "", "Start route: /, /predict, /about or /results")
	root.Flags().BoolVar(&flags.fast, "fast", false, "Skip the cosmetic delays")

	root.AddCommand(newPredictCmd(flags))
	root.AddCommand(newHealthCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newVersionCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configPath returns --config or the default location.
func configPath(flags *rootFlags) string {
	if flags.configPath != "" {
		return flags.configPath
	}
	return config.DefaultPath()
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(flags *rootFlags) (*config.Config, string, error) {
	path := configPath(flags)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if flags.endpoint != "" {
		cfg.Service.Endpoint = flags.endpoint
	}
	if flags.health != "" {
		cfg.Service.HealthEndpoint = flags.health
	}
	if flags.theme != "" {
		cfg.UI.Theme = flags.theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func newClient(cfg *config.Config, log *zap.Logger) *prediction.Client {
	return prediction.NewClient(
		cfg.Service.Endpoint,
		cfg.Service.HealthEndpoint,
		prediction.WithTimeout(cfg.GetServiceTimeout()),
		prediction.WithLogger(log),
	)
}

func timingsFor(cfg *config.Config, fast bool) app.Timings {
	if fast {
		return app.FastTimings()
	}
	return app.Timings{
		Splash:       cfg.GetSplash(),
		LandingDelay: cfg.GetLandingDelay(),
		Phases:       cfg.GetPhaseDelays(),
	}
}

// runInteractive launches the TUI.
func runInteractive(flags *rootFlags) error {
	cfg, path, err := loadConfig(flags)
	if err != nil {
		return err
	}

	if err := logging.Initialize(logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Dir:        cfg.Logging.Dir,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return err
	}
	defer logging.CloseAll()

	route := cfg.UI.StartRoute
	if flags.route != "" {
		route = flags.route
	}

	logging.Boot("starting interactive client",
		zap.String("version", version),
		zap.String("config", path),
		zap.String("endpoint", cfg.Service.Endpoint),
		zap.Bool("fast", flags.fast))

	predictLog := logging.Get(logging.CategoryPredict)
	return app.Run(app.RunOptions{
		Options: app.Options{
			Service:    newClient(cfg, predictLog),
			Timings:    timingsFor(cfg, flags.fast),
			Theme:      cfg.UI.Theme,
			StartRoute: app.ParseRoute(route),
			Logger:     logging.Get(logging.CategoryUI),
		},
		ConfigPath:    path,
		ThemeOverride: flags.theme,
		NewService:    func(reloaded *config.Config) app.Service {
			if flags.endpoint != "" {
				reloaded.Service.Endpoint = flags.endpoint
			}
			if flags.health != "" {
				reloaded.Service.HealthEndpoint = flags.health
			}
			return newClient(reloaded, predictLog)
		},
	})
}
