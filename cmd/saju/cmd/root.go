// Package cmd contains all CLI commands for the saju tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/config"
	"github.com/f3rmion/saju/internal/engine"
	"github.com/f3rmion/saju/internal/report"
	"github.com/f3rmion/saju/internal/saju"
	"github.com/f3rmion/saju/internal/store"
)

var (
	cfgFile string
	verbose bool

	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "saju",
	Short: "Four pillars of destiny charts and ghost archetypes",
	Long: `saju computes a four-pillar (사주팔자) chart from birth data and reads it:
  - Ten gods, hidden stems, twelve stages and sound elements per pillar
  - Five-element balance, day-master strength and favorable elements
  - Special markers (신살), noblemen (귀인) and void branches (공망)
  - Combinations, clashes and punishments between pillars
  - Structure (격국) and the ten-year luck cycle (대운)
  - One of fourteen ghost archetypes with its affinity score

Example:
  saju chart 1990-05-17 --hour "오시정 (12:00~12:30)" --gender female`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/saju)")
	flags.BoolVar(&verbose, "verbose", false, "verbose output")
	flags.Bool("leap-fallback", false, "treat a missing leap month as the regular month")
	flags.String("archive", "", "reading archive file")
	flags.Bool("romanize", false, "print pinyin next to the pillars")
	flags.Bool("banner", true, "draw the day-master hanja as a banner")
	flags.Bool("color", true, "colored output")

	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("leap_month_fallback", flags.Lookup("leap-fallback"))
	viper.BindPFlag("archive.path", flags.Lookup("archive"))
	viper.BindPFlag("output.romanize", flags.Lookup("romanize"))
	viper.BindPFlag("output.banner", flags.Lookup("banner"))
	viper.BindPFlag("output.color", flags.Lookup("color"))
}

// initConfig reads in ENV variables and resolves the config directory.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else if dir, err := config.GetConfigDir(); err == nil {
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("SAJU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadSettings reads the config file and applies flag and env overrides.
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load(getConfigDir())
	if err != nil {
		return nil, err
	}

	if viper.IsSet("leap_month_fallback") {
		cfg.LeapMonthFallback = viper.GetBool("leap_month_fallback")
	}
	if viper.IsSet("workers") {
		cfg.Workers = viper.GetInt("workers")
	}
	if viper.IsSet("archive.path") {
		cfg.Archive.Path = viper.GetString("archive.path")
	}
	if viper.IsSet("archive.auto_save") {
		cfg.Archive.AutoSave = viper.GetBool("archive.auto_save")
	}
	if viper.IsSet("output.format") {
		cfg.Output.Format = viper.GetString("output.format")
	}
	if viper.IsSet("output.romanize") {
		cfg.Output.Romanize = viper.GetBool("output.romanize")
	}
	if viper.IsSet("output.banner") {
		cfg.Output.Banner = viper.GetBool("output.banner")
	}
	if viper.IsSet("output.color") {
		cfg.Output.Color = viper.GetBool("output.color")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) *engine.Engine {
	return engine.New(calendar.NewLunarAdapter(),
		engine.WithLogger(logger),
		engine.WithLeapFallback(cfg.LeapMonthFallback),
	)
}

func newRenderer(cfg *config.Config) *report.Renderer {
	return report.New(nil, report.Options{
		Color:    cfg.Output.Color,
		Romanize: cfg.Output.Romanize,
		Banner:   cfg.Output.Banner,
	})
}

func openArchive(cfg *config.Config) (*store.Store, error) {
	path := cfg.ArchivePath(getConfigDir())
	logger.Debug("opening archive", zap.String("path", path))
	return store.Open(path)
}

// archive saves a reading. Failures are logged and never fail the command.
func archive(ctx context.Context, cfg *config.Config, w io.Writer, r *engine.Reading) {
	s, err := openArchive(cfg)
	if err != nil {
		logger.Warn("archive unavailable", zap.Error(err))
		return
	}
	defer s.Close()

	id, err := s.Save(ctx, r)
	if err != nil {
		logger.Warn("archiving reading failed", zap.Error(err))
		return
	}
	fmt.Fprintf(w, "saved as %s\n", id)
}

// userError replaces computation errors with their user-facing message.
func userError(err error) error {
	var oe *saju.OpError
	if !errors.As(err, &oe) {
		return err
	}
	logger.Debug("computation failed", zap.Error(err))
	return errors.New(saju.UserMessage(err))
}
