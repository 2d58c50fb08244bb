// Command dumpy prints values and renders templates with the dumpy filters.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/brother79/dumpy"
)

// cli holds the state shared by all subcommands of one invocation.
type cli struct {
	// Global flags
	verbose    bool
	configPath string

	cfg    dumpy.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "dumpy",
		Short: "Inspect values the way the dumpy template filters show them",
		Long: `dumpy renders YAML or JSON documents and Go templates through the
dumpy filters: pre, dump and dumpy.

Configuration is read from DUMPY_* environment variables and, with --config,
from a YAML file that takes precedence over the environment.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "YAML configuration file")

	rootCmd.AddCommand(c.valueCmd())
	rootCmd.AddCommand(c.renderCmd())
	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	var err error
	if c.configPath != "" {
		c.cfg, err = dumpy.LoadConfig(c.configPath)
	} else {
		c.cfg, err = dumpy.ConfigFromEnv()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(c.cfg.Level())
	if c.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	c.logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger.Debug("configuration loaded",
		zap.String("config", c.configPath),
		zap.Int("max_depth", c.cfg.MaxDepth),
		zap.Bool("html", c.cfg.HTML))
	return nil
}

// dumper builds a Dumper from the loaded configuration, forcing HTML output
// when html is set.
func (c *cli) dumper(html bool) *dumpy.Dumper {
	cfg := c.cfg
	if html {
		cfg.HTML = true
	}
	return dumpy.New(dumpy.WithConfig(cfg), dumpy.WithLogger(c.logger))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
