package token

import (
	"github.com/nlpkit/lexicon/numbered"
)

// UnknownSurface is the conventional surface form of the unknown token.
const UnknownSurface = "<unk>"

// Token is an immutable interned surface form. Content identity is the
// surface text; the id never participates in equality.
type Token struct {
	id      numbered.ID
	surface string
}

// New builds an unassigned token for the given surface form.
func New(surface string) Token {
	return Token{id: numbered.Unassigned, surface: surface}
}

// ID returns the token's dense identifier, or numbered.Unassigned.
func (t Token) ID() numbered.ID { return t.id }

// Surface returns the token's surface text.
func (t Token) Surface() string { return t.surface }

func (t Token) String() string { return t.surface }

// hooks wires Token into the numbered core.
func hooks() numbered.Hooks[Token] {
	return numbered.Hooks[Token]{
		Key: func(t Token) string { return t.surface },
		New: New,
		WithID: func(t Token, id numbered.ID) Token {
			return Token{id: id, surface: t.surface}
		},
	}
}

type options struct {
	policy func() numbered.Policy[Token]
	// unknownSurface is non-empty for sentinel and template policies; it is
	// pre-registered so the unknown token is a real entity with id 0.
	unknownSurface string
}

// Option configures a Manager.
type Option func(*options)

// WithStrict selects the strict miss policy: Get behaves like GetOrNone and
// a miss is absence. This is the default.
func WithStrict() Option {
	return func(o *options) {
		o.policy = numbered.Strict[Token]
		o.unknownSurface = ""
	}
}

// WithSentinel selects the sentinel miss policy. The surface is registered
// first, reserving id 0 for the unknown token, and every miss resolves to it.
func WithSentinel(surface string) Option {
	return func(o *options) {
		unknown := Token{id: 0, surface: surface}
		o.policy = func() numbered.Policy[Token] { return numbered.Sentinel(unknown) }
		o.unknownSurface = surface
	}
}

// WithTemplate selects the template-fallback miss policy. A miss normalizes
// the key once through extract and retries before resolving to the unknown
// token. The surface is registered first, reserving id 0.
func WithTemplate(surface string, extract func(string) string) Option {
	return func(o *options) {
		unknown := Token{id: 0, surface: surface}
		o.policy = func() numbered.Policy[Token] { return numbered.Template(unknown, extract) }
		o.unknownSurface = surface
	}
}

// Manager is a string-keyed token vocabulary.
//
// It wraps the generic StringManager with token factory hooks and the
// configured miss policy. Manager is not safe for concurrent use.
type Manager struct {
	*numbered.StringManager[Token]
}

// NewManager creates an empty token vocabulary. Without options the manager
// is strict; WithSentinel and WithTemplate pre-register their unknown
// surface as the first entity, so it carries id 0.
func NewManager(opts ...Option) *Manager {
	o := options{policy: numbered.Strict[Token]}
	for _, opt := range opts {
		opt(&o)
	}

	// Hooks are statically valid, construction cannot fail.
	sm, err := numbered.NewStringManager(hooks(), o.policy())
	if err != nil {
		panic(err)
	}

	m := &Manager{StringManager: sm}
	if o.unknownSurface != "" {
		if _, err := m.GetOrCreate(o.unknownSurface); err != nil {
			panic(err)
		}
	}
	return m
}
