// Package numbered provides the generic interning core of the lexicon library.
//
// A manager assigns small dense integer identifiers to logically distinct
// values and guarantees that content-equal inputs always resolve to the same
// canonical, id-bearing instance.
//
// # Core Concepts
//
// The package is built from three pieces:
//
//   - Entity: the capability contract for managed values. An entity exposes an
//     ID that starts out Unassigned and is set exactly once, by a manager.
//   - Manager: the generic registry. It pairs a dedup table (keyed by a
//     content key that excludes the id) with a dense id-indexed array, so that
//     deduplication is correct under arbitrary content equality while lookup
//     by id stays O(1).
//   - Policy: a miss-handling strategy layered on the string-keyed manager.
//     It defines what Get returns for keys that were never registered.
//
// # Identity Model
//
// Two entities are "the same" when their content keys are equal; the id never
// participates in identity. Ids are allocated densely from 0 in registration
// order and are never recycled, so for every manager m and every i in
// [0, m.Len()):
//
//	m.MustAt(numbered.ID(i)).ID() == numbered.ID(i)
//
// # Miss Policies
//
// Three interchangeable policies cover the common lookup disciplines:
//
//   - Strict: a miss is absence; the caller handles the (zero, false) pair.
//   - Sentinel: a miss yields a fixed unknown entity, so callers always
//     receive a usable value.
//   - Template: a miss normalizes the key once (e.g. folding digits) and
//     retries through the sentinel path before giving up. The retry uses the
//     plain lookup directly, so a template that maps a key to itself still
//     terminates.
//
// # Concurrency
//
// Managers are process-local mutable state with no internal locking. Callers
// that need concurrent access must serialize around the whole manager; its two
// internal structures are updated together and must never be observed in a
// half-updated state.
package numbered
