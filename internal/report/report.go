// Package report writes and reads JSON-lines transcripts of mask changes.
//
// Each line records one change of one field:
//
//	{"field":"amount","raw":12.5,"formatted":"$12.50","caret":6}
//
// raw is null when the field is empty, a number for currency fields and a
// string for pattern fields.
package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keymask/internal/event"
	"github.com/dshills/keymask/internal/mask"
)

// Entry is one transcript line.
type Entry struct {
	Field     string
	Raw       any
	Formatted string
	// Caret is the caret offset after the change, or -1 when unknown.
	Caret int
}

// FromChange builds an entry for a mask change.
func FromChange(fieldName string, c mask.Change, caret int) Entry {
	return Entry{Field: fieldName, Raw: c.Raw, Formatted: c.Formatted, Caret: caret}
}

// Marshal encodes e as a single JSON object without a trailing newline.
func (e Entry) Marshal() ([]byte, error) {
	b := []byte(`{}`)
	var err error
	if b, err = sjson.SetBytes(b, "field", e.Field); err != nil {
		return nil, err
	}
	if b, err = sjson.SetBytes(b, "raw", e.Raw); err != nil {
		return nil, err
	}
	if b, err = sjson.SetBytes(b, "formatted", e.Formatted); err != nil {
		return nil, err
	}
	if e.Caret >= 0 {
		if b, err = sjson.SetBytes(b, "caret", e.Caret); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Unmarshal decodes one transcript line.
func Unmarshal(line []byte) (Entry, error) {
	if !gjson.ValidBytes(line) {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidLine, line)
	}
	doc := gjson.ParseBytes(line)
	name := doc.Get("field")
	if !name.Exists() {
		return Entry{}, fmt.Errorf("%w: missing field name", ErrInvalidLine)
	}

	e := Entry{
		Field:     name.String(),
		Formatted: doc.Get("formatted").String(),
		Caret:     -1,
	}
	if c := doc.Get("caret"); c.Exists() {
		e.Caret = int(c.Int())
	}
	switch raw := doc.Get("raw"); raw.Type {
	case gjson.Number:
		e.Raw = raw.Float()
	case gjson.String:
		e.Raw = raw.String()
	case gjson.True, gjson.False:
		e.Raw = raw.Bool()
	}
	return e, nil
}

// Writer appends entries to an io.Writer, one per line. It is safe for
// concurrent use.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
	n  int
}

// NewWriter creates a transcript writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends e.
func (w *Writer) Write(e Entry) error {
	b, err := e.Marshal()
	if err != nil {
		return fmt.Errorf("encoding %s entry: %w", e.Field, err)
	}
	b = append(b, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	w.n++
	return nil
}

// Count returns the number of entries written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

// Handler returns a bus handler that records mask change events. The
// field name is the last segment of the event topic. caret may be nil.
func (w *Writer) Handler(caret func(fieldName string) int) event.Handler {
	return event.Typed(func(_ context.Context, ev event.Event[mask.Change]) error {
		name := ev.Type.Base()
		pos := -1
		if caret != nil {
			pos = caret(name)
		}
		return w.Write(FromChange(name, ev.Payload, pos))
	})
}

// Read decodes every line of r. Blank lines are skipped.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		e, err := Unmarshal(b)
		if err != nil {
			return entries, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, sc.Err()
}

// Last returns the final entry of each field, keyed by field name.
func Last(entries []Entry) map[string]Entry {
	out := make(map[string]Entry)
	for _, e := range entries {
		out[e.Field] = e
	}
	return out
}
