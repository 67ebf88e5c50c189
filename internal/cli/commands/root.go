package commands

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/physical-quantities/units/internal/cli/config"
	"github.com/physical-quantities/units/internal/cli/ui"
	"github.com/physical-quantities/units/internal/store"
	"github.com/physical-quantities/units/pkg/registry"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	verbose    bool
	noColor    bool

	cfg      *config.Config
	logger   *zap.Logger
	registry *registry.Registry
	store    *store.Store
}

// setup loads configuration, bootstraps the registry and loads custom units
// from the config file and, when configured, the store.
func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.NoColor {
		a.noColor = true
	}
	if a.noColor {
		color.NoColor = true
	}

	a.logger = zap.NewNop()
	if a.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		a.logger = logger
	}

	reg, err := registry.NewBootstrapped(registry.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.registry = reg

	if err := cfg.RegisterCustomUnits(reg); err != nil {
		return err
	}

	if cfg.Store.Path != "" {
		s, err := store.Open(cfg.Store.Path, a.logger)
		if err != nil {
			return err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return err
		}
		if _, err := s.LoadInto(ctx, reg); err != nil {
			s.Close()
			return fmt.Errorf("load stored units from %s: %w", cfg.Store.Path, err)
		}
		a.store = s
	}
	return nil
}

func (a *app) teardown() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func (a *app) format(v float64) string {
	precision := 6
	if a.cfg != nil {
		precision = a.cfg.Precision
	}
	return strconv.FormatFloat(v, 'g', precision, 64)
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "units",
		Short: "Physical unit algebra and conversion",
		Long: color.CyanString(`units - physical unit algebra and conversion

Resolves unit expressions such as kg*m/s**2 or µm, checks dimensional
compatibility and converts values between units, including units with an
offset such as degrees Celsius.

Built-in units: the SI base and derived units with engineering prefixes
(T..a), plus deg, arcmin, arcsec, min and h. Add your own in units.yaml or
with 'units define'.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./units.yaml or ~/.config/units/units.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newConvertCommand(a))
	rootCmd.AddCommand(newFactorCommand(a))
	rootCmd.AddCommand(newShowCommand(a))
	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newDefineCommand(a))
	rootCmd.AddCommand(newUndefineCommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the units version, Git commit, build date, and Go version",
		// Overrides the root hook: printing the version needs no registry.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(out, "units version: ")
			fmt.Fprintln(out, Version)
			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
		noColor = noColor || color.NoColor
		if IsUsageError(err) {
			ui.WriteError(rootCmd.ErrOrStderr(), ui.ErrorOptions{
				Context:      "usage",
				Problem:      err.Error(),
				HelpCommands: []string{"Get help: units --help"},
				NoColor:      noColor,
			})
			return err
		}
		fmt.Fprint(rootCmd.ErrOrStderr(), ui.UnitError(err, noColor))
		return err
	}
	return nil
}

// usageError marks errors in the arguments themselves rather than in the
// units they name.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func newUsageError(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// IsUsageError reports whether err came from malformed arguments.
func IsUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}
