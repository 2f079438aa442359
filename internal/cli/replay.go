package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/keymask/internal/binding"
	"github.com/dshills/keymask/internal/event"
	"github.com/dshills/keymask/internal/field"
	"github.com/dshills/keymask/internal/input/key"
	"github.com/dshills/keymask/internal/report"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Field string
	Keys  string
	Paste string
	Blur  bool
	Now   string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Apply a key script to a field and print the change transcript",
		Long: `Replay types a key script into one configured field and writes every
mask change as a JSON line: {"field","raw","formatted","caret"}.

Keys are written as characters with bracketed special keys:
  555<BS>1      type 5 5 5, backspace, 1
  <C-a><Del>    select all, delete
  12<Enter>     type 1 2, press Enter

Examples:
  keymask replay --field phone --keys 5551234567
  keymask replay --field amount --keys "1250<BS>"
  keymask replay --field date --keys "1/2/24<Enter>" --now 2024-03-05T14:07:09Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Field, "field", "f", "", "configured field name (required)")
	_ = cmd.MarkFlagRequired("field")
	cmd.Flags().StringVarP(&opts.Keys, "keys", "k", "", "key script to type")
	cmd.Flags().StringVarP(&opts.Paste, "paste", "p", "", "text pasted after the key script")
	cmd.Flags().BoolVar(&opts.Blur, "blur", false, "blur the field at the end")
	cmd.Flags().StringVar(&opts.Now, "now", "", "RFC 3339 clock for date canonicalisation")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	seq, err := key.ParseSequence(opts.Keys)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid key script", err)
	}
	now, err := clock(opts.Now)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --now", err)
	}

	cfg, err := opts.load()
	if err != nil {
		return err
	}
	fc, err := cfg.Field(opts.Field)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown field", err)
	}
	eng, err := fc.NewEngine(now)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build mask", err)
	}
	initial, err := eng.Set(fc.Value)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid initial value", err)
	}

	buf := field.NewBuffer(initial.Text)
	bus := event.NewBus()
	w := report.NewWriter(cmd.OutOrStdout())
	caret := func(string) int { return buf.State().Caret() }
	if _, err := bus.Subscribe(binding.ChangedTopic(fc.Name), w.Handler(caret),
		event.WithPriority(event.PriorityTranscript)); err != nil {
		return WrapExitError(ExitCommandError, "failed to record changes", err)
	}

	b, err := binding.Bind(binding.Options{Name: fc.Name, Field: buf, Engine: eng, Bus: bus})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to bind field", err)
	}
	defer b.Unbind()

	buf.Dispatch(field.Focus())
	buf.TypeSequence(seq)
	if opts.Paste != "" {
		buf.Dispatch(field.Paste(opts.Paste))
	}
	if opts.Blur {
		buf.Dispatch(field.Blur())
	}

	if w.Count() == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "no changes; field shows %q\n", buf.Text())
	}
	return nil
}

func clock(s string) (func() time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return func() time.Time { return t }, nil
}
