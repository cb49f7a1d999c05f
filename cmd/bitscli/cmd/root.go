package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	smlog "github.com/spacemeshos/smutil/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spacemeshos/bits/config"
	"github.com/spacemeshos/bits/shared"
)

const defaultConfigFileName = "bits.toml"

var (
	// Version is the version of the binary.
	Version = "0.0.0"

	// Commit is the commit hash of the binary.
	Commit = ""

	defaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), "bits")
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFileName)
)

// app is the state shared by the commands of one root.
type app struct {
	vip   *viper.Viper
	flags *pflag.FlagSet
	cfg   *config.Config

	logger shared.Logger
}

// NewRootCmd builds the bitscli command tree.
func NewRootCmd() *cobra.Command {
	a := &app{
		vip:    viper.New(),
		logger: shared.NoopLogger{},
	}

	rootCmd := &cobra.Command{
		Use:   "bitscli",
		Short: "Decode and evaluate BITS transmissions",
		Long: `bitscli decodes hex-encoded BITS transmissions into their packet tree,
sums the packet versions and evaluates the expression the tree encodes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	a.flags = rootCmd.PersistentFlags()
	setFlags(a.flags, a.vip, config.DefaultConfig())

	rootCmd.AddCommand(
		newDecodeCmd(a),
		newCheckCmd(a),
		newShowCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure. An interrupt
// cancels a running batch.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

func setFlags(flags *pflag.FlagSet, vip *viper.Viper, cfg *config.Config) {
	flags.String("config", "", "Path to configuration file (default: "+defaultConfigFile+")")

	flags.String("datadir", cfg.DataDir, "Directory holding persisted reports")

	flags.Bool("logdebug", cfg.LogDebug, "Whether to enable debug logging")

	flags.Int("max-depth", cfg.MaxDepth, "Maximum packet nesting depth; a lone literal has depth 1")

	flags.Int("max-input-len", cfg.MaxInputLen, "Maximum number of hex digits per input line")

	flags.Int("workers", cfg.Workers, "Number of lines to decode in parallel (0 - number of CPUs)")

	flags.String("strategy", string(cfg.Strategy), "Parsing strategy: recursive or stack")

	if err := vip.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// loadConfig merges the defaults, the config file and the command line, in
// increasing priority.
func (a *app) loadConfig() error {
	fileLocation := a.vip.GetString("config")
	if err := loadConfigFile(fileLocation, a.vip); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if err := a.vip.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %v", err)
	}
	cfg.DataDir = smutil.GetCanonicalPath(cfg.DataDir)

	if err := config.Validate(cfg); err != nil {
		return err
	}

	smlog.DebugMode(cfg.LogDebug)
	a.cfg = cfg
	if cfg.LogDebug {
		a.logger = smlog.AppLog
		a.flags.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				a.logger.Debug("flag --%s=%v overrides the config file", f.Name, f.Value)
			}
		})
	}
	return nil
}

// loadConfigFile reads the config file at fileLocation. A missing default
// config file is not an error.
func loadConfigFile(fileLocation string, vip *viper.Viper) error {
	explicit := fileLocation != ""
	if !explicit {
		fileLocation = defaultConfigFile
	}
	fileLocation = smutil.GetCanonicalPath(fileLocation)

	if _, err := os.Stat(fileLocation); errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}

	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}
	return nil
}
