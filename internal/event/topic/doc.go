// Package topic provides hierarchical topic names and pattern matching for
// the event bus.
//
// # Topic Format
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	mask.changed.phone
//	mask.changed.amount
//	control.value.amount
//
// # Wildcards
//
// Two wildcard patterns are supported:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	mask.changed.*    matches mask.changed.phone (not mask.changed)
//	mask.**           matches mask.changed, mask.changed.phone
//	*.changed.phone   matches mask.changed.phone
//	**                matches everything
package topic
