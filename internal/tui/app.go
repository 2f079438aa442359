// Package tui hosts masked fields in a terminal form.
//
// The form model (Form) owns the field buffers, their mask bindings and
// their controls. App drives it from a tcell screen: key presses go to
// the focused field, bracketed pastes arrive as a single paste event and
// Tab moves focus.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keymask/internal/config"
	"github.com/dshills/keymask/internal/event"
	"github.com/dshills/keymask/internal/logging"
)

// Options configures an App.
type Options struct {
	// Screen defaults to a new tcell terminal screen.
	Screen tcell.Screen
	Bus    *event.Bus
	Now    func() time.Time
	Logger *slog.Logger
}

// App runs the form on a terminal.
type App struct {
	screen tcell.Screen
	theme  Theme
	ctrl   *controller
	logger *slog.Logger
}

// New builds the form for cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	logger := logging.OrDiscard(opts.Logger)
	form, err := NewForm(cfg, FormOptions{Bus: opts.Bus, Now: opts.Now, Logger: logger})
	if err != nil {
		return nil, err
	}

	screen := opts.Screen
	if screen == nil {
		if screen, err = tcell.NewScreen(); err != nil {
			form.Close()
			return nil, err
		}
	}

	return &App{
		screen: screen,
		theme:  NewTheme(cfg.Theme),
		ctrl:   &controller{form: form},
		logger: logging.WithComponent(logger, "tui"),
	}, nil
}

// Form returns the form model.
func (a *App) Form() *Form {
	return a.ctrl.form
}

// Run draws the form and processes terminal events until the user quits
// or ctx is cancelled. The form is closed on return.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return err
	}
	defer a.ctrl.form.Close()
	defer a.screen.Fini()

	a.screen.EnablePaste()
	a.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	a.logger.Info("form started", slog.Int("fields", len(a.ctrl.form.Entries())))
	for {
		Draw(a.screen, a.ctrl.form, a.theme)
		a.screen.Show()

		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			a.screen.Sync()
			continue
		}
		if a.ctrl.handle(ev) {
			a.logger.Info("form stopped")
			return ctx.Err()
		}
	}
}

// controller turns terminal events into form operations.
type controller struct {
	form    *Form
	pasting bool
	paste   strings.Builder
}

// handle processes one event and reports whether the app should quit.
func (c *controller) handle(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventInterrupt:
		return true

	case *tcell.EventPaste:
		if e.Start() {
			c.pasting = true
			c.paste.Reset()
			return false
		}
		c.pasting = false
		c.form.Paste(c.paste.String())
		c.paste.Reset()

	case *tcell.EventKey:
		if c.pasting {
			// Bracketed paste content arrives as key events.
			switch e.Key() {
			case tcell.KeyRune:
				c.paste.WriteRune(e.Rune())
			case tcell.KeyTab:
				c.paste.WriteRune('\t')
			}
			return false
		}
		if isQuit(e) {
			return true
		}
		if k, ok := convertKey(e); ok {
			c.form.HandleKey(k)
		}
	}
	return false
}

func isQuit(e *tcell.EventKey) bool {
	if e.Key() == tcell.KeyCtrlQ {
		return true
	}
	return e.Key() == tcell.KeyRune && e.Modifiers()&tcell.ModCtrl != 0 && unicode.ToLower(e.Rune()) == 'q'
}
