package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/switchyard/config"
	"github.com/katalvlaran/switchyard/logging"
)

var (
	// Global flags
	verbose    bool
	logFormat  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "switchyard",
	Short: "Fewest-press solver for toggle-switch machines",
	Long: `Solve toggle-switch machines described one per line:

  [.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}

Part 1 is the fewest button presses that light the target pattern.
Part 2 is the fewest presses that drain the joltage budget exactly.

Examples:
  switchyard solve input.txt
  switchyard solve --policy abort --workers 4 < input.txt
  switchyard fmt input.txt`,
	SilenceUsage: true,
	Version:      "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
}

// loadConfig reads --config and applies the global logging flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, cfg.Validate()
}

// newLogger builds the logger for cfg writing to w.
func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{Level: level, Format: cfg.Log.Format, Output: w})
}

// openInput returns the named file, or stdin when args is empty or "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}
