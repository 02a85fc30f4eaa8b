// Package core defines the shared language of the LeapAdmin system.
//
// This package contains:
//   - Resource metadata types (Property, Kind)
//   - Query inputs (Filter, Clause, RawParams)
//   - The compiled query representation (Condition, Predicate)
//   - Error types surfaced by resource operations
//
// The Golden Rule: pkg/core imports ONLY the stdlib.
// All other packages depend on core, not the reverse.
package core
