package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/switchyard/batch"
	"github.com/katalvlaran/switchyard/machine"
)

var (
	workers    int
	policy     string
	maxLevels  int
	noCache    bool
	perMachine bool
	metricsOut string
)

var solveCmd = &cobra.Command{
	Use:   "solve [input-file]",
	Short: "Print the fewest presses for part 1 and part 2",
	Long: `Read machines from a file (or stdin) and print the summed answers.

Machines without a solution contribute 0 under --policy skip (default)
and fail the run under --policy abort.

Examples:
  switchyard solve input.txt
  switchyard solve --per-machine input.txt
  switchyard solve --metrics metrics.prom input.txt
  switchyard solve -c switchyard.yaml --workers 1 < input.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent machines (overrides config)")
	solveCmd.Flags().StringVarP(&policy, "policy", "p", "", "unsolved machines: skip or abort (overrides config)")
	solveCmd.Flags().IntVar(&maxLevels, "max-levels", 0, "joltage halving level cap (overrides config)")
	solveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable joltage memoization")
	solveCmd.Flags().BoolVar(&perMachine, "per-machine", false, "print each machine's answers")
	solveCmd.Flags().StringVar(&metricsOut, "metrics", "", "write Prometheus metrics to this file after solving (- for stdout)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("max-levels") {
		cfg.MaxLevels = maxLevels
	}
	if noCache {
		cfg.Cache = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	machines, err := machine.ParseAll(in)
	if err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	logger.Debug("parsed input", "machines", len(machines))

	opts, err := cfg.BatchOptions()
	if err != nil {
		return err
	}
	opts = append(opts, batch.WithLogger(logger))

	var reg *prometheus.Registry
	if metricsOut != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, batch.WithMetrics(batch.NewMetrics(reg)))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rep, err := batch.Solve(ctx, machines, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if perMachine {
		for _, r := range rep.Machines {
			p2 := answer(r.Part2)
			if r.Skipped2 {
				p2 = "skipped"
			}
			fmt.Fprintf(out, "machine %d: p1 %s p2 %s\n", r.Index, answer(r.Part1), p2)
		}
	}
	fmt.Fprintf(out, "p1: %d\n", rep.Part1)
	fmt.Fprintf(out, "p2: %d\n", rep.Part2)
	if rep.Unsolved1 > 0 || rep.Unsolved2 > 0 {
		fmt.Fprintf(out, "unsolved: p1 %d p2 %d\n", rep.Unsolved1, rep.Unsolved2)
	}
	if rep.Skipped2 > 0 {
		fmt.Fprintf(out, "skipped: p2 %d (no joltages)\n", rep.Skipped2)
	}

	if reg != nil {
		if err := writeMetrics(cmd, reg, metricsOut); err != nil {
			return err
		}
	}
	return nil
}

// writeMetrics dumps reg in the Prometheus text format to path, or to the
// command output when path is "-".
func writeMetrics(cmd *cobra.Command, reg *prometheus.Registry, path string) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create metrics file: %w", err)
		}
		defer f.Close()
		w = f
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func answer(n int) string {
	if n == batch.NoSolution {
		return "none"
	}
	return fmt.Sprint(n)
}
