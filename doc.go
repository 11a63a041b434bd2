// Package lexicon provides interning and symbol-table primitives for
// sequence-labeling vocabularies.
//
// The library assigns small dense integer identifiers to logically distinct
// values (tokens, categories, labels) and guarantees that equal logical values
// always resolve to the same identifier and the same canonical instance.
//
// # Core Concepts
//
// The library is organized around several key concepts:
//
//   - Entities: values that carry a dense, assigned-once integer id
//   - Managers: registries that deduplicate entities and allocate ids
//   - Miss policies: strategies that define what a read-only lookup returns
//     when a key was never registered (strict, sentinel, template fallback)
//   - Snapshots: persistable listings of a vocabulary's (id, key) pairs
//
// # Architecture
//
// The packages form a small layered stack:
//
//   - numbered: the generic interning core (Manager, StringManager, policies)
//   - token: token and category vocabularies built on the core
//   - template: key normalizers for rare-word fallback, including CEL rules
//   - config: YAML-driven manager construction
//   - store: snapshot persistence backends (Redis, etcd)
//   - telemetry: OpenTelemetry instrumentation around a vocabulary
//
// The root package holds the shared error model.
//
// # Getting Started
//
// Build a token vocabulary with a sentinel unknown:
//
//	vocab := token.NewManager(token.WithSentinel("<unk>"))
//
//	cat, err := vocab.GetOrCreate("cat")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Read-only lookups never register; misses yield the sentinel.
//	tok, _ := vocab.Get("bird")
//	fmt.Println(tok.Surface()) // <unk>
//
// # Error Handling
//
// The library uses structured errors (Error) together with sentinel errors
// that work with errors.Is() and errors.As():
//
//	_, err := vocab.Manager().AssignID(alreadyNumbered)
//	if errors.Is(err, lexicon.ErrIDAssigned) {
//		// caller bug: the entity was registered twice
//	}
//
// Lookup misses are never errors; they are data, expressed through the
// (value, ok) pair shaped by the active miss policy.
//
// # Concurrency
//
// Managers hold process-local mutable state with no internal synchronization.
// Callers that share a manager across goroutines must serialize access to it
// as a whole; the dedup table and the dense id array are updated together and
// must never be observed in a half-updated state.
package lexicon
