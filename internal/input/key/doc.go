// Package key provides key event types and parsing for masked text fields.
//
// This package defines the keystroke vocabulary the masking engines consume:
//
//   - Key: Identifies a keyboard key (editing, navigation, keypad, or rune)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers and timestamp
//   - Sequence: An ordered series of events (a replayed paste or a key script)
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape", "KP5"
//   - With modifiers: "Ctrl+V", "Shift+Left"
//   - Bracketed: "<C-v>", "<BS>", "<Del>", "<S-Left>"
//
// A key script such as "555<BS>1" or "5 5 5 <BS> 1" parses into a Sequence.
package key
