package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/keymask/internal/mask"
)

// DataType selects the date/time semantics of a mask.
type DataType int

const (
	None DataType = iota
	Date
	DateTime
	DateTimeShort
	Time
	TimeShort
)

var dataTypeNames = map[DataType]string{
	None:          "none",
	Date:          "date",
	DateTime:      "datetime",
	DateTimeShort: "datetimeshort",
	Time:          "time",
	TimeShort:     "timeshort",
}

// String returns the lowercase data type name.
func (d DataType) String() string {
	if s, ok := dataTypeNames[d]; ok {
		return s
	}
	return fmt.Sprintf("DataType(%d)", int(d))
}

// ParseDataType parses a data type name, ignoring case. The empty string
// is None.
func ParseDataType(s string) (DataType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for d, name := range dataTypeNames {
		if name == s {
			return d, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidDataType, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d DataType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DataType) UnmarshalText(b []byte) error {
	v, err := ParseDataType(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// HasDate reports whether the type carries a calendar date.
func (d DataType) HasDate() bool {
	return d >= Date && d <= DateTimeShort
}

// HasTime reports whether the type carries a clock time.
func (d DataType) HasTime() bool {
	return d >= DateTime && d <= TimeShort
}

// Template returns the preset template matching the data type, or "" for
// None. New uses it when Options.Mask is empty.
func (d DataType) Template() string {
	switch d {
	case Date:
		return mask.Date
	case DateTime:
		return mask.DateTime
	case DateTimeShort:
		return mask.DateTimeShort
	case Time:
		return mask.Time
	case TimeShort:
		return mask.TimeShort
	}
	return ""
}

var dateLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDateTime interprets value according to d. Values that cannot be
// parsed resolve to now.
func parseDateTime(d DataType, value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return now
	}

	if d.HasDate() {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t
			}
		}
		return now
	}

	segs := strings.Split(value, ":")
	var hms [3]int
	for i := 0; i < len(segs) && i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(segs[i]))
		if err != nil {
			return now
		}
		hms[i] = n
	}
	// Out-of-range parts roll over the way a clock does.
	return time.Date(now.Year(), now.Month(), now.Day(), hms[0], hms[1], hms[2], 0, time.UTC)
}

// canonical renders t in the zero-padded form for d.
func canonical(d DataType, t time.Time) string {
	switch d {
	case Date:
		return t.Format("01/02/2006")
	case DateTime:
		return t.Format("01/02/2006 15:04:05")
	case DateTimeShort:
		return t.Format("01/02/2006 15:04")
	case Time:
		return t.Format("15:04:05")
	case TimeShort:
		return t.Format("15:04")
	}
	return ""
}

// validDateTime checks calendar and clock semantics of a complete value.
func validDateTime(d DataType, value string) bool {
	datePart, timePart := "", value
	if d.HasDate() {
		datePart, timePart, _ = strings.Cut(value, " ")
		if !validDate(datePart) {
			return false
		}
	}
	if d.HasTime() {
		return validClock(timePart)
	}
	return true
}

func validDate(s string) bool {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return false
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	if year <= 1000 || month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && t.Month() == time.Month(month)
}

func validClock(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return false
	}
	limits := []int{23, 59, 59}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return false
		}
	}
	return true
}
