package mask

// Preset templates.
const (
	Date          = "99/99/9999"
	DateTime      = "99/99/9999 99:99:99"
	DateTimeShort = "99/99/9999 99:99"
	Time          = "99:99:99"
	TimeShort     = "99:99"
	Ssn           = "999-99-9999"
	Phone         = "(999) 999-9999"
)

// Masks maps preset names to templates.
var Masks = map[string]string{
	"Date":          Date,
	"DateTime":      DateTime,
	"DateTimeShort": DateTimeShort,
	"Time":          Time,
	"TimeShort":     TimeShort,
	"Ssn":           Ssn,
	"Phone":         Phone,
}

// Lookup resolves name as a preset, falling back to treating it as a
// literal template.
func Lookup(name string) string {
	if m, ok := Masks[name]; ok {
		return m
	}
	return name
}

// Literal format characters a template may contain between slots.
const literals = "-_()[]:.,$%@ /"

// IsLiteral reports whether r is a template literal.
func IsLiteral(r rune) bool {
	for _, l := range literals {
		if r == l {
			return true
		}
	}
	return false
}
