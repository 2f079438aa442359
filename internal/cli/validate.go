package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keymask/internal/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and list its fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{Path: rootOpts.ConfigPath, EnvFile: rootOpts.EnvFile})
			if err != nil {
				return reportInvalid(cmd, err)
			}

			out := cmd.OutOrStdout()
			for _, f := range cfg.Fields {
				detail := f.Mask
				if f.Kind == config.KindCurrency {
					detail = fmt.Sprintf("%s %s", f.Currency, f.Locale)
				}
				fmt.Fprintf(out, "%-12s %-9s %s\n", f.Name, f.Kind, detail)
			}
			fmt.Fprintf(out, "ok: %d fields\n", len(cfg.Fields))
			return nil
		},
	}
}

// reportInvalid prints each validation problem and returns an ExitFailure
// error; other errors are command errors.
func reportInvalid(cmd *cobra.Command, err error) error {
	var ve *config.ValidationError
	if !errors.As(err, &ve) {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	problems := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		problems = joined.Unwrap()
	}
	for _, p := range problems {
		fmt.Fprintln(cmd.ErrOrStderr(), p)
	}
	return WrapExitError(ExitFailure, fmt.Sprintf("%d configuration problems", len(problems)), nil)
}
