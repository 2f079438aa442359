package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/keymask/internal/config"
	"github.com/dshills/keymask/internal/logging"
	"github.com/dshills/keymask/internal/report"
	"github.com/dshills/keymask/internal/tui"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the configured form in the terminal",
		Long: `Run opens an interactive form with one masked line per configured field.
Tab and Shift+Tab move between fields, Ctrl+Q quits. On exit the final
value of every field is printed as a JSON line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return WrapExitError(ExitCommandError, "run requires an interactive terminal", nil)
			}
			cfg, err := rootOpts.load()
			if err != nil {
				return err
			}
			return runForm(cmd, cfg)
		},
	}
}

func runForm(cmd *cobra.Command, cfg *config.Config) error {
	logger, closeLog, err := newLogger(cfg.Logging)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open log file", err)
	}
	defer closeLog()

	app, err := tui.New(cfg, tui.Options{Logger: logger})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build form", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	form := app.Form()
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	w := report.NewWriter(cmd.OutOrStdout())
	for _, e := range form.Entries() {
		raw := e.Binding.Engine().Raw(e.Buffer.Text())
		if s, ok := raw.(string); ok && s == "" {
			raw = nil
		}
		if err := w.Write(report.Entry{Field: e.Config.Name, Raw: raw, Formatted: e.Buffer.Text(), Caret: -1}); err != nil {
			return err
		}
	}
	return nil
}

// newLogger builds the logger from config. Without a log file logging is
// discarded so the screen stays clean.
func newLogger(lc config.LoggingConfig) (*slog.Logger, func(), error) {
	if lc.File == "" {
		return logging.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	format, err := logging.ParseFormat(lc.Format)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	l := logging.New(logging.Config{
		Level:   logging.ParseLevel(lc.Level),
		Format:  format,
		Output:  f,
		Service: "keymask",
	})
	return l, func() { _ = f.Close() }, nil
}
