package topic

import "strings"

// Topic names the events published on the bus, for example
// "mask.changed.phone" or "control.value.amount". A subscription pattern is
// a Topic that may hold wildcard segments.
type Topic string

const (
	sep     = "."
	anyOne  = "*"
	anyMany = "**"
)

// Join builds a topic from segments. A dot inside a segment becomes an
// underscore, so a field named "billing.total" stays one segment.
func Join(segments ...string) Topic {
	clean := make([]string, len(segments))
	for i, s := range segments {
		clean[i] = strings.ReplaceAll(s, sep, "_")
	}
	return Topic(strings.Join(clean, sep))
}

func (t Topic) String() string {
	return string(t)
}

// Base returns the last segment, which is the field or control name for
// keymask topics.
func (t Topic) Base() string {
	s := string(t)
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+1:]
	}
	return s
}

// IsValid reports whether t is non-empty and has no empty segment.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range strings.Split(string(t), sep) {
		if seg == "" {
			return false
		}
	}
	return true
}

// IsWildcard reports whether t holds a wildcard segment.
func (t Topic) IsWildcard() bool {
	for _, seg := range strings.Split(string(t), sep) {
		if seg == anyOne || seg == anyMany {
			return true
		}
	}
	return false
}

// Matches reports whether t matches pattern. In a pattern "*" stands for
// exactly one segment and "**" for any number of segments, including none.
func (t Topic) Matches(pattern Topic) bool {
	if t == pattern {
		return true
	}
	return match(strings.Split(string(t), sep), strings.Split(string(pattern), sep))
}

// match walks both segment lists, remembering the last "**" so a failed
// comparison can retry with that wildcard absorbing one more segment.
func match(segs, pat []string) bool {
	si, pi := 0, 0
	star, mark := -1, 0
	for si < len(segs) {
		switch {
		case pi < len(pat) && pat[pi] == anyMany:
			star, mark = pi, si
			pi++
		case pi < len(pat) && (pat[pi] == anyOne || pat[pi] == segs[si]):
			si++
			pi++
		case star >= 0:
			mark++
			si, pi = mark, star+1
		default:
			return false
		}
	}
	for pi < len(pat) && pat[pi] == anyMany {
		pi++
	}
	return pi == len(pat)
}
