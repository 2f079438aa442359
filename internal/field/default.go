package field

import (
	"github.com/dshills/keymask/internal/input/key"
)

// Default applies the behaviour an unmasked text field has for ev:
// caret navigation, select-all, deletion, plain typing and paste.
func Default(s State, ev Event) State {
	switch ev.Kind {
	case EventKeyDown:
		return defaultKey(s, ev.Key)
	case EventPaste:
		return s.ReplaceSelection(ev.Text)
	case EventInput:
		return StateAtEnd(ev.Text)
	}
	return s
}

// Navigate applies caret movement for navigation keys and select-all.
// It reports false if ev is not a navigation key.
func Navigate(s State, ev key.Event) (State, bool) {
	if ev.IsSelectAll() {
		return s.SelectAll(), true
	}

	n := s.Len()
	sel := s.Selection
	extend := ev.Modifiers.HasShift()

	var target int
	switch ev.Key {
	case key.KeyLeft:
		target = sel.Head - 1
		if !extend && !sel.IsEmpty() {
			target = sel.Start()
		}
	case key.KeyRight:
		target = sel.Head + 1
		if !extend && !sel.IsEmpty() {
			target = sel.End()
		}
	case key.KeyHome, key.KeyUp, key.KeyPageUp:
		target = 0
	case key.KeyEnd, key.KeyDown, key.KeyPageDown:
		target = n
	default:
		return s, false
	}

	target = clamp(target, n)
	if extend {
		s.Selection = sel.Extend(target)
	} else {
		s.Selection = NewCaret(target)
	}
	return s, true
}

func defaultKey(s State, ev key.Event) State {
	if next, ok := Navigate(s, ev); ok {
		return next
	}

	sel := s.Selection
	switch {
	case ev.Key == key.KeyBackspace:
		if !sel.IsEmpty() {
			return s.ReplaceSelection("")
		}
		if sel.Head == 0 {
			return s
		}
		return s.Splice(sel.Head-1, sel.Head, "")
	case ev.Key == key.KeyDelete:
		if !sel.IsEmpty() {
			return s.ReplaceSelection("")
		}
		if sel.Head >= s.Len() {
			return s
		}
		next := s.Splice(sel.Head, sel.Head+1, "")
		return next.WithCaret(sel.Head)
	case ev.IsModified():
		return s
	}

	if r, ok := ev.Char(); ok && ev.IsChar() {
		return s.ReplaceSelection(string(r))
	}
	return s
}
