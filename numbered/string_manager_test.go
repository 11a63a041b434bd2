package numbered

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpkit/lexicon"
)

// wordHooks are the standard factory hooks for the word test entity.
func wordHooks() Hooks[word] {
	return Hooks[word]{
		Key:    func(w word) string { return w.text },
		New:    newWord,
		WithID: func(w word, id ID) word { return word{id: id, text: w.text} },
	}
}

// foldDigits is a toy rare-word template: every digit becomes '0'.
func foldDigits(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return '0'
		}
		return r
	}, key)
}

func newStringManager(t *testing.T, policy Policy[word], opts ...StringOption[word]) *StringManager[word] {
	t.Helper()

	m, err := NewStringManager(wordHooks(), policy, opts...)
	require.NoError(t, err)
	return m
}

func TestNewStringManager(t *testing.T) {
	t.Run("rejects missing hooks", func(t *testing.T) {
		_, err := NewStringManager[word](Hooks[word]{}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, lexicon.ErrInvalidConfig)
	})

	t.Run("nil policy defaults to strict", func(t *testing.T) {
		m := newStringManager(t, nil)

		_, ok := m.Get("anything")
		assert.False(t, ok)
		_, ok = m.Unknown()
		assert.False(t, ok)
	})
}

func TestStringManagerGetOrCreate(t *testing.T) {
	t.Run("registers and deduplicates", func(t *testing.T) {
		m := newStringManager(t, nil)

		cat1, err := m.GetOrCreate("cat")
		require.NoError(t, err)
		dog, err := m.GetOrCreate("dog")
		require.NoError(t, err)
		cat2, err := m.GetOrCreate("cat")
		require.NoError(t, err)

		assert.Equal(t, ID(0), cat1.ID())
		assert.Equal(t, ID(1), dog.ID())
		assert.Equal(t, cat1, cat2)
		assert.Equal(t, 2, m.Len())
	})

	t.Run("hit path resolves through the index", func(t *testing.T) {
		m := newStringManager(t, nil)

		first, err := m.GetOrCreate("cat")
		require.NoError(t, err)

		// The second call must return the canonical instance by id lookup.
		second, err := m.GetOrCreate("cat")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("keeps index and array in lock-step", func(t *testing.T) {
		m := newStringManager(t, nil)

		for _, key := range []string{"a", "b", "c"} {
			_, err := m.GetOrCreate(key)
			require.NoError(t, err)
		}

		for _, key := range []string{"a", "b", "c"} {
			got, ok := m.GetOrNone(key)
			require.True(t, ok, "key %q", key)
			byID, err := m.At(got.ID())
			require.NoError(t, err)
			assert.Equal(t, got, byID)
		}
	})
}

func TestStringManagerGetOrNone(t *testing.T) {
	m := newStringManager(t, nil)
	cat, err := m.GetOrCreate("cat")
	require.NoError(t, err)

	t.Run("hit", func(t *testing.T) {
		got, ok := m.GetOrNone("cat")
		assert.True(t, ok)
		assert.Equal(t, cat, got)
	})

	t.Run("miss is data, not an error", func(t *testing.T) {
		_, ok := m.GetOrNone("bird")
		assert.False(t, ok)
		// A read-only miss never registers.
		assert.Equal(t, 1, m.Len())
	})
}

func TestStringManagerStrictPolicy(t *testing.T) {
	m := newStringManager(t, Strict[word]())
	cat, err := m.GetOrCreate("cat")
	require.NoError(t, err)

	got, ok := m.Get("cat")
	assert.True(t, ok)
	assert.Equal(t, cat, got)

	_, ok = m.Get("bird")
	assert.False(t, ok)
}

func TestStringManagerSentinelPolicy(t *testing.T) {
	m := newStringManager(t, nil)
	unk, err := m.GetOrCreate("<unk>")
	require.NoError(t, err)

	m = newStringManager(t, Sentinel(unk))
	// Rebuild with the sentinel policy and a fresh table; re-register the
	// unknown entity first so id 0 stays reserved for it.
	unk2, err := m.GetOrCreate("<unk>")
	require.NoError(t, err)
	assert.Equal(t, unk, unk2)

	cat, err := m.GetOrCreate("cat")
	require.NoError(t, err)
	_, err = m.GetOrCreate("dog")
	require.NoError(t, err)
	_, err = m.GetOrCreate("cat")
	require.NoError(t, err)

	// "<unk>", "cat", "dog": the duplicate "cat" consumed no id.
	assert.Equal(t, 3, m.Len())

	got, ok := m.Get("cat")
	assert.True(t, ok)
	assert.Equal(t, cat, got)

	// Miss yields the sentinel, and the table does not grow.
	got, ok = m.Get("bird")
	assert.True(t, ok)
	assert.Equal(t, unk, got)
	assert.Equal(t, 3, m.Len())

	unknown, ok := m.Unknown()
	assert.True(t, ok)
	assert.Equal(t, unk, unknown)
}

func TestStringManagerTemplatePolicy(t *testing.T) {
	unk := word{id: Unassigned, text: "<unk>"}

	t.Run("falls back to the registered template", func(t *testing.T) {
		m := newStringManager(t, Template(unk, foldDigits))

		tmpl, err := m.GetOrCreate("0000")
		require.NoError(t, err)

		// "1984" was never registered, but its template "0000" was.
		got, ok := m.Get("1984")
		assert.True(t, ok)
		assert.Equal(t, tmpl, got)
	})

	t.Run("falls back to the sentinel when the template misses too", func(t *testing.T) {
		m := newStringManager(t, Template(unk, foldDigits))

		got, ok := m.Get("1984")
		assert.True(t, ok)
		assert.Equal(t, unk, got)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("terminates when a key is its own template", func(t *testing.T) {
		identity := func(key string) string { return key }
		m := newStringManager(t, Template(unk, identity))

		got, ok := m.Get("X")
		assert.True(t, ok)
		assert.Equal(t, unk, got)
	})

	t.Run("RegisterTemplate registers the normalized form", func(t *testing.T) {
		m := newStringManager(t, Template(unk, foldDigits))

		tmpl, err := m.RegisterTemplate("1984")
		require.NoError(t, err)
		assert.Equal(t, "0000", tmpl.text)

		// Related surface forms now resolve to a real entity.
		got, ok := m.Get("2038")
		assert.True(t, ok)
		assert.Equal(t, tmpl, got)
	})

	t.Run("RegisterTemplate requires a template policy", func(t *testing.T) {
		m := newStringManager(t, Strict[word]())

		_, err := m.RegisterTemplate("1984")
		require.Error(t, err)
		assert.ErrorIs(t, err, lexicon.ErrInvalidConfig)
	})
}

func TestStringManagerResolverSeam(t *testing.T) {
	// A broadened resolver that strips a "-subtype" suffix before giving up,
	// the CategoryManager shape. Assignment is untouched: only the exact key
	// lands in the index.
	broadened := func(m *StringManager[word], key string) (word, bool) {
		if v, ok := m.Lookup(key); ok {
			return v, true
		}
		if base, _, found := strings.Cut(key, "-"); found {
			return m.Lookup(base)
		}
		var zero word
		return zero, false
	}

	m := newStringManager(t, nil, WithResolver(broadened))

	nnp, err := m.GetOrCreate("NNP")
	require.NoError(t, err)

	got, ok := m.GetOrNone("NNP-company")
	assert.True(t, ok)
	assert.Equal(t, nnp, got)

	_, ok = m.GetOrNone("VB-aux")
	assert.False(t, ok)

	// GetOrCreate still registers the exact key as its own entity.
	sub, err := m.GetOrCreate("NNP-company")
	require.NoError(t, err)
	assert.NotEqual(t, nnp.ID(), sub.ID())
	assert.Equal(t, 2, m.Len())
}
