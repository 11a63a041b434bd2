package numbered

// ID is a dense integer identifier assigned by a Manager.
//
// Ids are allocated from 0 in registration order, so an ID doubles as the
// index of its entity in the manager's dense array.
type ID int

// Unassigned is the id of an entity that has not been registered yet.
// A manager rejects entities that already carry a real id, which makes the
// assignment effectively settable-once.
const Unassigned ID = -1

// Assigned reports whether the id has been set by a manager.
func (i ID) Assigned() bool { return i != Unassigned }

// Entity is the capability contract for values managed by a Manager.
//
// Implementations are expected to be immutable values: the manager never
// mutates an entity, it derives the id-bearing canonical form through the
// WithID hook supplied at construction. Content equality between entities
// must be independent of the id, which is exactly what the content-key hook
// expresses.
type Entity interface {
	// ID returns the entity's identifier, or Unassigned before registration.
	ID() ID
}
