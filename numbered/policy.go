package numbered

// Policy defines what a read-only Get returns for keys that were never
// registered. Policies are pure strategies: they only consult the lookup
// function they are handed and never register anything themselves.
//
// The lookup function is the manager's "is this key registered" predicate
// (StringManager.GetOrNone, including any broadened resolver).
type Policy[T Entity] interface {
	// Resolve maps a key to an entity under this policy's miss discipline.
	// The second return mirrors the optional nature of the strict policy:
	// sentinel-style policies always report true.
	Resolve(lookup func(string) (T, bool), key string) (T, bool)

	// Unknown returns the policy-defined miss value: (zero, false) for the
	// strict policy, (sentinel, true) otherwise.
	Unknown() (T, bool)
}

// Extractor is implemented by policies that normalize keys before a fallback
// lookup. StringManager.RegisterTemplate uses it to eagerly register the
// normalized form of a surface key.
type Extractor interface {
	// Extract returns the template-normalized form of a raw key.
	Extract(key string) string
}

// strictPolicy treats a miss as absence.
type strictPolicy[T Entity] struct{}

// Strict returns the strict miss policy: Get behaves exactly like GetOrNone
// and callers must handle absence explicitly.
func Strict[T Entity]() Policy[T] {
	return strictPolicy[T]{}
}

func (strictPolicy[T]) Resolve(lookup func(string) (T, bool), key string) (T, bool) {
	return lookup(key)
}

func (strictPolicy[T]) Unknown() (T, bool) {
	var zero T
	return zero, false
}

// sentinelPolicy substitutes a fixed unknown entity on miss.
type sentinelPolicy[T Entity] struct {
	unknown T
}

// Sentinel returns the sentinel miss policy: Get always yields a usable
// entity, trading strictness for convenience. The unknown value is typically
// a pre-registered entity such as an "<unk>" token.
func Sentinel[T Entity](unknown T) Policy[T] {
	return sentinelPolicy[T]{unknown: unknown}
}

func (p sentinelPolicy[T]) Resolve(lookup func(string) (T, bool), key string) (T, bool) {
	if v, ok := lookup(key); ok {
		return v, true
	}
	return p.unknown, true
}

func (p sentinelPolicy[T]) Unknown() (T, bool) {
	return p.unknown, true
}

// templatePolicy retries a miss once against the template-normalized key
// before falling back to the sentinel.
type templatePolicy[T Entity] struct {
	sentinelPolicy[T]
	extract func(string) string
}

// Template returns the template-fallback miss policy. On a miss the raw key
// is normalized once through extract and the lookup is retried; if the
// normalized key is registered its entity is returned, otherwise the
// sentinel. The retry goes straight through the plain lookup, never back
// through Resolve, so a template that maps a key to itself still terminates.
func Template[T Entity](unknown T, extract func(string) string) Policy[T] {
	if extract == nil {
		// A template policy without a rule degrades to the sentinel policy.
		extract = func(key string) string { return key }
	}
	return templatePolicy[T]{
		sentinelPolicy: sentinelPolicy[T]{unknown: unknown},
		extract:        extract,
	}
}

func (p templatePolicy[T]) Resolve(lookup func(string) (T, bool), key string) (T, bool) {
	if v, ok := lookup(key); ok {
		return v, true
	}
	if v, ok := lookup(p.extract(key)); ok {
		return v, true
	}
	return p.unknown, true
}

func (p templatePolicy[T]) Extract(key string) string {
	return p.extract(key)
}
