package token

import (
	"strings"

	"github.com/nlpkit/lexicon/numbered"
)

// Category is an immutable interned tag, such as a part-of-speech label.
// Content identity is the name; the id never participates in equality.
type Category struct {
	id   numbered.ID
	name string
}

// NewCategory builds an unassigned category for the given name.
func NewCategory(name string) Category {
	return Category{id: numbered.Unassigned, name: name}
}

// ID returns the category's dense identifier, or numbered.Unassigned.
func (c Category) ID() numbered.ID { return c.id }

// Name returns the category's tag name.
func (c Category) Name() string { return c.name }

func (c Category) String() string { return c.name }

// Base returns the tag name with any "-subtype" suffix removed:
// "NNP-company" yields "NNP". Names without a suffix are returned unchanged.
func (c Category) Base() string {
	base, _, _ := strings.Cut(c.name, "-")
	return base
}

func categoryHooks() numbered.Hooks[Category] {
	return numbered.Hooks[Category]{
		Key: func(c Category) string { return c.name },
		New: NewCategory,
		WithID: func(c Category, id numbered.ID) Category {
			return Category{id: id, name: c.name}
		},
	}
}

// baseTagResolver broadens the read-only lookup: a miss on a subtyped tag
// falls back to its base tag. Assignment logic is untouched; only lookups
// broaden.
func baseTagResolver(m *numbered.StringManager[Category], key string) (Category, bool) {
	if c, ok := m.Lookup(key); ok {
		return c, true
	}
	if base, _, found := strings.Cut(key, "-"); found {
		return m.Lookup(base)
	}
	return Category{}, false
}

// CategoryManager is a string-keyed tag vocabulary with subtype-aware
// lookups. It is strict: a miss on Get is absence.
//
// CategoryManager is not safe for concurrent use.
type CategoryManager struct {
	*numbered.StringManager[Category]
}

// NewCategoryManager creates an empty category vocabulary.
func NewCategoryManager() *CategoryManager {
	sm, err := numbered.NewStringManager(
		categoryHooks(),
		numbered.Strict[Category](),
		numbered.WithResolver(baseTagResolver),
	)
	if err != nil {
		panic(err)
	}
	return &CategoryManager{StringManager: sm}
}
