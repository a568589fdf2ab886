package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"simonwaldherr.de/go/themedemo/config"
	"simonwaldherr.de/go/themedemo/demo"
	"simonwaldherr.de/go/themedemo/outcome"
)

var (
	version = "dev"
	commit  = "none"
)

// runError marks failures of the demo itself (exit code 2) as opposed to
// usage or configuration problems (exit code 1).
type runError struct{ err error }

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		var re *runError
		if errors.As(err, &re) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	verbose    bool
	timeout    time.Duration
	reportPath string
	name       string
	age        uint32
	divisor    float64

	logger *zap.Logger
}

// newRootCmd builds the command tree. A nil logger is built from the
// --verbose flag at run time.
func newRootCmd(logger *zap.Logger) *cobra.Command {
	o := &rootOptions{logger: logger}

	cmd := &cobra.Command{
		Use:          "themedemo",
		Short:        "Walk through structs, generics, results, closures and goroutines",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if o.logger != nil {
				return nil
			}
			l, err := newLogger(o.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			o.logger = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, o)
		},
	}

	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "YAML file with settings and schedule overrides")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "debug logging to stderr")

	f := cmd.Flags()
	f.DurationVar(&o.timeout, "timeout", 10*time.Second, "abort the run after this long (0 disables)")
	f.StringVar(&o.reportPath, "report", "", "write a JSON report to this file (- for stdout)")
	f.StringVar(&o.name, "name", "Alice", "name of the demo person")
	f.Uint32Var(&o.age, "age", 30, "age of the demo person")
	f.Float64Var(&o.divisor, "divisor", 2.0, "divisor used in the division step")

	cmd.AddCommand(newDivideCmd(), newLookupCmd(o), newVersionCmd())
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

func runDemo(cmd *cobra.Command, o *rootOptions) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	opts := demo.FromConfig(cfg)
	opts.Name = o.name
	opts.Age = o.age
	opts.Divisor = o.divisor

	out := cmd.OutOrStdout()
	var rep *demo.Report
	err = RunSafe(cmd.Context(), o.timeout, func(ctx context.Context) error {
		var rerr error
		rep, rerr = demo.Run(ctx, out, opts, o.logger)
		return rerr
	})
	if err != nil {
		o.logger.Error("demo failed", zap.Error(err))
		return &runError{err: err}
	}

	if o.reportPath != "" {
		return writeReport(out, o.reportPath, rep)
	}
	return nil
}

func writeReport(stdout io.Writer, path string, rep *demo.Report) error {
	if path == "-" {
		return demo.WriteReport(stdout, rep)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := demo.WriteReport(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RunSafe runs fn with a context-based timeout and recovers from panics so
// a failing step never crashes the host. A non-positive timeout disables
// the deadline.
func RunSafe(parent context.Context, timeout time.Duration, fn func(context.Context) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := parent, context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	}
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic recovered: %v", r)
			}
		}()
		done <- fn(ctx)
	}()

	timedOut := fmt.Errorf("execution timed out after %s", timeout)
	select {
	case err := <-done:
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
			return timedOut
		}
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return timedOut
		}
		return ctx.Err()
	}
}

func newDivideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "divide A B",
		Short: "Divide A by B, reporting division by zero as an error",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid dividend %q: %w", args[0], err)
			}
			b, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid divisor %q: %w", args[1], err)
			}
			v, err := outcome.Divide(a, b).Unwrap()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Division result: %.2f\n", v)
			return nil
		},
	}
}

func newLookupCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup KEY",
		Short: "Look up a setting by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			v, err := cfg.Settings.Require(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", args[0], v)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "themedemo %s (commit=%s)\n", version, commit)
		},
	}
}
