package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jvitoroc/numgame/config"
	"github.com/jvitoroc/numgame/eval"
	"github.com/jvitoroc/numgame/infix"
	"github.com/jvitoroc/numgame/solver"
	"github.com/spf13/cobra"
)

type cli struct {
	ops     string
	config  string
	verbose bool

	logger *slog.Logger
	table  *eval.Table
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "numgame",
		Short:        "Find expressions over a set of numbers that reach a target",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if c.verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			table, err := c.loadTable()
			if err != nil {
				return err
			}
			c.table = table

			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.ops, "ops", "", "comma separated builtin operator symbols (default +,-,*,/)")
	root.PersistentFlags().StringVar(&c.config, "config", "", "YAML file with the operator table")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(c.solveCmd(), c.checkCmd(), c.operatorsCmd())
	return root
}

func (c *cli) loadTable() (*eval.Table, error) {
	if c.config != "" && c.ops != "" {
		return nil, errors.New("--config and --ops are mutually exclusive")
	}

	if c.config != "" {
		path, err := filepath.Abs(c.config)
		if err != nil {
			return nil, err
		}

		return config.Load(osfs.New(filepath.Dir(path)), filepath.Base(path))
	}

	if c.ops != "" {
		return config.FromSymbols(c.ops)
	}

	return eval.DefaultTable(), nil
}

func (c *cli) solveCmd() *cobra.Command {
	var (
		target  float64
		tol     float64
		workers int
		limit   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "solve [flags] [--] NUMBER...",
		Short: "Print every expression that evaluates to the target",
		Long: `Print every expression that evaluates to the target.

Flags must come before the numbers. A negative first number needs "--" in
front of it so it is not read as a flag.`,
		Example: "  numgame solve -t 24 2 4 8 12\n  numgame solve -t 2 -- -3 5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, err := parseNumbers(args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			rs, err := solver.Solve(ctx, target, numbers,
				solver.WithOperators(c.table),
				solver.WithTolerance(tol),
				solver.WithWorkers(workers),
				solver.WithLogger(c.logger),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			exprs := rs.Expressions()
			for i, e := range exprs {
				if limit > 0 && i >= limit {
					break
				}
				fmt.Fprintf(out, "%s = %s\n", e, strconv.FormatFloat(target, 'f', -1, 64))
			}
			fmt.Fprintf(out, "attempted %d expressions, found %d\n", rs.Attempts(), rs.Len())

			return nil
		},
	}

	cmd.Flags().Float64VarP(&target, "target", "t", 24, "value the expressions must reach")
	cmd.Flags().Float64Var(&tol, "tol", solver.DefaultTolerance, "allowed absolute difference from the target")
	cmd.Flags().IntVarP(&workers, "workers", "w", defaultWorkers(), "number of parallel workers")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most this many expressions (0 prints all)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 waits forever)")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check EXPRESSION",
		Short: "Evaluate an infix expression with the active operators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := infix.Parse(args[0], c.table)
			if err != nil {
				return err
			}

			v, err := e.Evaluate()
			if err != nil {
				return err
			}

			c.logger.Debug("expression parsed", "postfix", e.Postfix())
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'f', -1, 64))

			return nil
		},
	}
}

func (c *cli) operatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operators",
		Short: "List the active operator table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, op := range c.table.Operators() {
				fmt.Fprintf(out, "%-8s precedence=%d associative=%t\n", op.Symbol, op.Precedence, op.Associative)
			}

			return nil
		},
	}
}

func defaultWorkers() int {
	return runtime.NumCPU()
}

func parseNumbers(args []string) ([]float64, error) {
	numbers := make([]float64, len(args))
	for i, a := range args {
		n, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse number: %s", a)
		}
		numbers[i] = n
	}

	return numbers, nil
}
