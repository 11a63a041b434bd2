package numbered

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nlpkit/lexicon"
)

// Manager is a generic interning registry for entities of type T.
//
// It maintains two structures in lock-step: a dedup table keyed by a content
// key K (derived from an entity with the id excluded) and a dense array of
// canonical instances indexed by id. The pairing keeps deduplication correct
// under arbitrary content equality while id lookup stays O(1).
//
// Both hooks are supplied at construction:
//
//   - key derives the content identity of an entity; it must ignore the id.
//   - withID produces the canonical, id-bearing form of an unassigned entity;
//     the returned instance must carry exactly the id it was given and be
//     content-equal to its input.
//
// Manager is not safe for concurrent use.
type Manager[T Entity, K comparable] struct {
	key    func(T) K
	withID func(T, ID) T

	byKey   map[K]T // dedup table: content key -> canonical instance
	objects []T     // dense array: objects[i].ID() == i
}

// NewManager creates an empty manager with the given hooks.
// Both hooks are required; passing nil panics, as the manager is unusable
// without them.
func NewManager[T Entity, K comparable](key func(T) K, withID func(T, ID) T) *Manager[T, K] {
	if key == nil || withID == nil {
		panic("numbered: NewManager requires key and withID hooks")
	}
	return &Manager[T, K]{
		key:    key,
		withID: withID,
		byKey:  make(map[K]T),
	}
}

// Len returns the number of interned entities.
func (m *Manager[T, K]) Len() int {
	return len(m.objects)
}

// Values returns the full interned set in id order.
// The returned slice is a copy; mutating it does not affect the manager.
func (m *Manager[T, K]) Values() []T {
	return slices.Clone(m.objects)
}

// At returns the entity with the given id.
// Returns lexicon.ErrIDRange if i is outside [0, Len()).
func (m *Manager[T, K]) At(i ID) (T, error) {
	if i < 0 || int(i) >= len(m.objects) {
		var zero T
		return zero, lexicon.NewNotFoundError("Manager.At", lexicon.ErrIDRange).
			WithContext(map[string]any{"id": int(i), "size": len(m.objects)})
	}
	return m.objects[i], nil
}

// MustAt returns the entity with the given id and panics if the id is out of
// range. Intended for callers that obtained the id from this manager and can
// treat a miss as a programmer error.
func (m *Manager[T, K]) MustAt(i ID) T {
	v, err := m.At(i)
	if err != nil {
		panic(err)
	}
	return v
}

// Contains reports whether an entity content-equal to candidate is interned.
func (m *Manager[T, K]) Contains(candidate T) bool {
	_, ok := m.byKey[m.key(candidate)]
	return ok
}

// Canonical returns the canonical instance content-equal to candidate, if one
// is interned. The candidate's own id is ignored.
func (m *Manager[T, K]) Canonical(candidate T) (T, bool) {
	canon, ok := m.byKey[m.key(candidate)]
	return canon, ok
}

// AssignID interns an entity and returns its canonical, id-bearing form.
//
// The original must not carry an id yet; otherwise a precondition error
// wrapping lexicon.ErrIDAssigned is returned and no state changes. If an
// entity content-equal to original is already interned, the existing
// canonical instance is returned and no id is consumed. Otherwise the withID
// hook wraps original with the next free id and the result is registered in
// both the dense array and the dedup table.
//
// AssignID is idempotent under content equality: content-equal inputs always
// yield the same canonical instance with the same id.
func (m *Manager[T, K]) AssignID(original T) (T, error) {
	var zero T

	if original.ID().Assigned() {
		return zero, lexicon.NewPreconditionError("Manager.AssignID", lexicon.ErrIDAssigned).
			WithContext(map[string]any{"id": int(original.ID())})
	}

	k := m.key(original)
	if canon, ok := m.byKey[k]; ok {
		return canon, nil
	}

	next := ID(len(m.objects))
	canon := m.withID(original, next)
	if canon.ID() != next {
		return zero, lexicon.NewInternalError("Manager.AssignID", lexicon.ErrHookContract).
			WithContext(map[string]any{"want": int(next), "got": int(canon.ID())})
	}

	m.objects = append(m.objects, canon)
	m.byKey[k] = canon
	return canon, nil
}

// String returns a debug listing of (id, entity) pairs in id order.
// The format is for diagnostics only and is not a stable serialization.
func (m *Manager[T, K]) String() string {
	var b strings.Builder
	b.WriteString("numbered.Manager[")
	for i, obj := range m.objects {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "(%d, %v)", i, obj)
	}
	b.WriteString("]")
	return b.String()
}
