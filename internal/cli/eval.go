package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"rgehrsitz/switchmatch/internal/preprocessor"
	"rgehrsitz/switchmatch/internal/runtime"
	"rgehrsitz/switchmatch/pkg/metrics"
	"rgehrsitz/switchmatch/pkg/switcher"
)

// EvalOptions holds the flags of the eval command.
type EvalOptions struct {
	AutoBreak bool
	Parallel  int
	Metrics   bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <table> [subject...]",
		Short: "Resolve subjects against a rule table",
		Long: `Resolve each subject against the rule table and print the result.

Subjects are JSON or YAML values; bare words are strings. Without subject
arguments, one subject per line is read from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var swOpts []switcher.Option
			if cmd.Flags().Changed("auto-break") {
				swOpts = append(swOpts, switcher.WithAutoBreak(opts.AutoBreak))
			}
			var reg *prometheus.Registry
			if opts.Metrics {
				reg = prometheus.NewRegistry()
				collector, err := metrics.NewCollector(reg)
				if err != nil {
					return WrapExitError(ExitFailure, "cannot register metrics", err)
				}
				swOpts = append(swOpts, switcher.WithObserver(collector))
			}
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if err := runEval(cmd, formatter, opts, args[0], args[1:], swOpts); err != nil {
				return err
			}
			if reg != nil {
				return metrics.WriteText(cmd.ErrOrStderr(), reg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.AutoBreak, "auto-break", true, "override the table's autoBreak setting")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", 4, "maximum concurrent resolutions for subject arguments")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "write resolution metrics to stderr after the run")

	return cmd
}

func runEval(cmd *cobra.Command, formatter *OutputFormatter, opts *EvalOptions, path string, args []string, swOpts []switcher.Option) error {
	t, err := preprocessor.LoadTable(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot load table", err)
	}
	rt, err := runtime.New(t, opts.Parallel, swOpts...)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid table", err)
	}

	ctx := cmd.Context()
	if len(args) == 0 {
		if err := rt.Stream(ctx, cmd.InOrStdin(), formatter.Evaluation); err != nil {
			return WrapExitError(ExitFailure, "evaluation failed", err)
		}
		return nil
	}

	subjects := make([]any, len(args))
	for i, arg := range args {
		subjects[i], err = preprocessor.ParseSubject(arg)
		if err != nil {
			return WrapExitError(ExitCommandError, "bad subject", err)
		}
	}
	evals, err := rt.EvalAll(ctx, subjects)
	if err != nil {
		return WrapExitError(ExitFailure, "evaluation failed", err)
	}
	for _, e := range evals {
		if err := formatter.Evaluation(e); err != nil {
			return err
		}
	}
	return nil
}
