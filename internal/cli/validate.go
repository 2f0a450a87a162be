package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rgehrsitz/switchmatch/internal/preprocessor"
)

// ValidationResult is the JSON payload of the validate command.
type ValidationResult struct {
	Table    string                 `json:"table"`
	Valid    bool                   `json:"valid"`
	Rules    int                    `json:"rules"`
	Warnings []preprocessor.Warning `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <table>",
		Short: "Validate a rule table",
		Long: `Parse and validate a JSON or YAML rule table, then report rules that
can never match or have no effect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return runValidate(formatter, args[0])
		},
	}
}

func runValidate(formatter *OutputFormatter, path string) error {
	t, err := preprocessor.LoadTable(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot load table", err)
	}
	if err := preprocessor.ValidateTable(t); err != nil {
		return WrapExitError(ExitFailure, "invalid table", err)
	}

	warnings := preprocessor.Lint(t)
	for _, w := range warnings {
		log.Warn().Str("table", t.Name).Int("rule", w.Rule).Msg(w.Message)
	}

	result := ValidationResult{Table: t.Name, Valid: true, Rules: len(t.Rules), Warnings: warnings}
	text := fmt.Sprintf("✓ %s: %d rule(s), %d warning(s)", t.Name, len(t.Rules), len(warnings))
	return formatter.Message(text, result)
}
