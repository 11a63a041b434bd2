package numbered

import (
	"github.com/nlpkit/lexicon"
)

// Hooks bundles the factory functions a string-keyed manager needs to build
// and identify domain entities. All three are required.
type Hooks[T Entity] struct {
	// Key derives the content identity of an entity, excluding the id.
	// For most vocabularies this is the entity's surface text.
	Key func(T) string

	// New builds a fresh, unassigned-id entity from a raw text key. It must
	// be content-equal to what WithID later wraps with an id.
	New func(key string) T

	// WithID produces the canonical, id-bearing form of an unassigned entity.
	WithID func(original T, id ID) T
}

func (h Hooks[T]) validate() error {
	if h.Key == nil || h.New == nil || h.WithID == nil {
		return lexicon.NewConfigurationError("NewStringManager", lexicon.ErrInvalidConfig).
			WithContext(map[string]any{"reason": "all hooks (Key, New, WithID) are required"})
	}
	return nil
}

// Resolver is the overridable "is this key resolvable" predicate of a
// StringManager. The manager parameter gives the resolver access to the plain
// index lookup so it can broaden matching (for example by normalizing the key
// first) without touching assignment logic.
type Resolver[T Entity] func(m *StringManager[T], key string) (T, bool)

// StringOption configures a StringManager.
type StringOption[T Entity] func(*StringManager[T])

// WithResolver overrides GetOrNone's lookup. The default resolver consults
// only the text index; a broadened resolver can fall back to coarser keys.
// Assignment always records the exact key in the index regardless of the
// resolver in use.
func WithResolver[T Entity](r Resolver[T]) StringOption[T] {
	return func(m *StringManager[T]) {
		m.resolver = r
	}
}

// StringManager is the text-keyed specialization of Manager.
//
// It adds an auxiliary text->id index maintained in lock-step with the dense
// array, so callers can look keys up in O(1) without constructing a throwaway
// domain entity, and it layers a miss-handling Policy over the read-only path.
//
// StringManager is not safe for concurrent use.
type StringManager[T Entity] struct {
	manager  *Manager[T, string]
	index    map[string]ID
	hooks    Hooks[T]
	policy   Policy[T]
	resolver Resolver[T]
}

// NewStringManager creates an empty string-keyed manager with the given hooks
// and miss policy. A nil policy defaults to Strict.
func NewStringManager[T Entity](hooks Hooks[T], policy Policy[T], opts ...StringOption[T]) (*StringManager[T], error) {
	if err := hooks.validate(); err != nil {
		return nil, err
	}
	if policy == nil {
		policy = Strict[T]()
	}

	m := &StringManager[T]{
		manager: NewManager[T, string](hooks.Key, hooks.WithID),
		index:   make(map[string]ID),
		hooks:   hooks,
		policy:  policy,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Manager exposes the underlying generic manager for id-indexed access.
func (s *StringManager[T]) Manager() *Manager[T, string] {
	return s.manager
}

// Len returns the number of interned entities.
func (s *StringManager[T]) Len() int { return s.manager.Len() }

// Values returns the full interned set in id order.
func (s *StringManager[T]) Values() []T { return s.manager.Values() }

// At returns the entity with the given id, or lexicon.ErrIDRange.
func (s *StringManager[T]) At(i ID) (T, error) { return s.manager.At(i) }

// MustAt returns the entity with the given id and panics if out of range.
func (s *StringManager[T]) MustAt(i ID) T { return s.manager.MustAt(i) }

// GetOrCreate returns the entity registered under key, registering it first
// if needed.
//
// A hit resolves through the text index alone: no content-equality
// comparisons and no allocation. A miss builds the unassigned instance via
// the New hook, interns it through AssignID, and records the key in the
// index. GetOrCreate is the only operation that registers; Get and GetOrNone
// never do.
func (s *StringManager[T]) GetOrCreate(key string) (T, error) {
	if id, ok := s.index[key]; ok {
		return s.manager.objects[id], nil
	}

	canon, err := s.manager.AssignID(s.hooks.New(key))
	if err != nil {
		var zero T
		return zero, err
	}
	s.index[key] = canon.ID()
	return canon, nil
}

// GetOrNone returns the entity registered under key, if any.
//
// This is the single source of truth for "is this key registered". By
// default it consults the text index only; a WithResolver override may
// broaden the search without affecting assignment.
func (s *StringManager[T]) GetOrNone(key string) (T, bool) {
	if s.resolver != nil {
		return s.resolver(s, key)
	}
	return s.Lookup(key)
}

// Lookup resolves key through the text index only, bypassing any broadened
// resolver. Broadened resolvers use it as their base case.
func (s *StringManager[T]) Lookup(key string) (T, bool) {
	if id, ok := s.index[key]; ok {
		return s.manager.objects[id], true
	}
	var zero T
	return zero, false
}

// Get resolves key under the active miss policy. It never registers.
//
// Under Strict a miss is (zero, false); under Sentinel it is the unknown
// entity; under Template the key is normalized once and retried before the
// unknown entity is returned.
func (s *StringManager[T]) Get(key string) (T, bool) {
	return s.policy.Resolve(s.GetOrNone, key)
}

// Unknown returns the policy-defined miss value.
func (s *StringManager[T]) Unknown() (T, bool) {
	return s.policy.Unknown()
}

// RegisterTemplate eagerly registers the template-normalized form of a raw
// key, so future misses for related surface forms resolve to a real entity
// instead of the sentinel. It requires a policy that implements Extractor
// (Template); with any other policy it returns a configuration error.
func (s *StringManager[T]) RegisterTemplate(original string) (T, error) {
	ex, ok := s.policy.(Extractor)
	if !ok {
		var zero T
		return zero, lexicon.NewConfigurationError("StringManager.RegisterTemplate", lexicon.ErrInvalidConfig).
			WithContext(map[string]any{"reason": "active miss policy has no template extractor"})
	}
	return s.GetOrCreate(ex.Extract(original))
}

// String returns the underlying manager's debug listing.
func (s *StringManager[T]) String() string {
	return s.manager.String()
}
