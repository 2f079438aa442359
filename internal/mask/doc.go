// Package mask defines the contracts shared by the input-masking engines.
//
// An Engine is a transition function from a field state and a field event
// to a Result. Engines never touch a field directly; the binding layer
// writes Result.State back to the field and forwards Result.Change to the
// application.
//
// Two engines are provided in sub-packages:
//
//   - pattern: fixed-width templates of literals and typed slots
//   - currency: locale-formatted fixed-point amounts
package mask
