package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/keymask/internal/binding"
	"github.com/dshills/keymask/internal/event"
	"github.com/dshills/keymask/internal/field"
	"github.com/dshills/keymask/internal/mask"
	"github.com/dshills/keymask/internal/mask/currency"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "currency",
			entry: Entry{Field: "amount", Raw: 12.5, Formatted: "$12.50", Caret: 6},
			want:  `{"field":"amount","raw":12.5,"formatted":"$12.50","caret":6}`,
		},
		{
			name:  "pattern",
			entry: Entry{Field: "phone", Raw: "555", Formatted: "(555) ", Caret: 6},
			want:  `{"field":"phone","raw":"555","formatted":"(555) ","caret":6}`,
		},
		{
			name:  "null without caret",
			entry: Entry{Field: "amount", Raw: nil, Formatted: "", Caret: -1},
			want:  `{"field":"amount","raw":null,"formatted":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.entry.Marshal()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))

			got, err := Unmarshal(b)
			require.NoError(t, err)
			assert.Equal(t, tt.entry, got)
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := Unmarshal([]byte(`{"field":`))
	assert.ErrorIs(t, err, ErrInvalidLine)

	_, err = Unmarshal([]byte(`{"raw":1}`))
	assert.ErrorIs(t, err, ErrInvalidLine)
}

func TestWriterAndRead(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(Entry{Field: "amount", Raw: 0.05, Formatted: "$0.05", Caret: 5}))
	require.NoError(t, w.Write(Entry{Field: "amount", Raw: 0.5, Formatted: "$0.50", Caret: 5}))
	require.NoError(t, w.Write(Entry{Field: "phone", Raw: "5", Formatted: "(5", Caret: 2}))
	assert.Equal(t, 3, w.Count())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "$0.50", gjson.Get(lines[1], "formatted").String())

	entries, err := Read(strings.NewReader(buf.String() + "\n"))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	last := Last(entries)
	assert.Equal(t, 0.5, last["amount"].Raw)
	assert.Equal(t, "(5", last["phone"].Formatted)
}

func TestReadReportsLine(t *testing.T) {
	_, err := Read(strings.NewReader("{\"field\":\"a\"}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.ErrorIs(t, err, ErrInvalidLine)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	w := NewWriter(failingWriter{})
	assert.Error(t, w.Write(Entry{Field: "x", Caret: -1}))
	assert.Zero(t, w.Count())
}

func TestHandlerRecordsBusChanges(t *testing.T) {
	eng, err := currency.New(currency.DefaultOptions())
	require.NoError(t, err)

	bus := event.NewBus()
	buf := field.NewBuffer("")

	var out bytes.Buffer
	w := NewWriter(&out)
	_, err = bus.Subscribe("mask.changed.*", w.Handler(func(string) int { return buf.State().Caret() }))
	require.NoError(t, err)

	_, err = binding.Bind(binding.Options{Name: "amount", Field: buf, Engine: eng, Bus: bus})
	require.NoError(t, err)

	buf.Dispatch(field.Paste("1250"))

	entries, err := Read(&out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Field: "amount", Raw: 12.5, Formatted: "$12.50", Caret: 6}, entries[0])
}

func TestFromChange(t *testing.T) {
	e := FromChange("ssn", mask.Change{Raw: "123", Formatted: "123-"}, -1)
	assert.Equal(t, Entry{Field: "ssn", Raw: "123", Formatted: "123-", Caret: -1}, e)
}
