package control

import (
	"log/slog"

	"github.com/dshills/keymask/internal/event"
)

// Config carries the callbacks a control invokes on changes. Each callback
// is optional. OnChange sees every change; the others see one aspect only.
type Config struct {
	OnChange   func(Change)
	OnFocus    func(Change)
	OnState    func(Change)
	OnTouched  func(Change)
	OnVisited  func(Change)
	OnValid    func(Change)
	OnDisabled func(Change)
	OnReadOnly func(Change)

	// Bus, when set, receives every change on control.<kind>.<name>.
	Bus *event.Bus

	Logger *slog.Logger
}

func (c Config) callback(k ChangeKind) func(Change) {
	switch k {
	case FocusedChange:
		return c.OnFocus
	case StateChange:
		return c.OnState
	case TouchedChange:
		return c.OnTouched
	case VisitedChange:
		return c.OnVisited
	case ValidChange:
		return c.OnValid
	case DisabledChange:
		return c.OnDisabled
	case ReadOnlyChange:
		return c.OnReadOnly
	}
	return nil
}
