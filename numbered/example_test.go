package numbered_test

import (
	"fmt"

	"github.com/nlpkit/lexicon/numbered"
)

// label is a minimal entity: content identity is the name, id excluded.
type label struct {
	id   numbered.ID
	name string
}

func (l label) ID() numbered.ID { return l.id }
func (l label) String() string  { return l.name }

func labelHooks() numbered.Hooks[label] {
	return numbered.Hooks[label]{
		Key:    func(l label) string { return l.name },
		New:    func(name string) label { return label{id: numbered.Unassigned, name: name} },
		WithID: func(l label, id numbered.ID) label { return label{id: id, name: l.name} },
	}
}

// ExampleNewStringManager demonstrates interning with a sentinel unknown.
func ExampleNewStringManager() {
	unknown := label{id: numbered.Unassigned, name: "<unk>"}

	m, err := numbered.NewStringManager(labelHooks(), numbered.Sentinel(unknown))
	if err != nil {
		panic(err)
	}

	cat, _ := m.GetOrCreate("cat")
	dog, _ := m.GetOrCreate("dog")
	again, _ := m.GetOrCreate("cat")

	fmt.Println(cat.ID(), dog.ID(), again.ID(), m.Len())

	// A miss yields the sentinel instead of an error.
	miss, _ := m.Get("bird")
	fmt.Println(miss)

	// Output:
	// 0 1 0 2
	// <unk>
}

// ExampleTemplate demonstrates rare-key normalization with eager registration.
func ExampleTemplate() {
	unknown := label{id: numbered.Unassigned, name: "<unk>"}
	foldDigits := func(key string) string {
		out := []rune(key)
		for i, r := range out {
			if r >= '0' && r <= '9' {
				out[i] = '0'
			}
		}
		return string(out)
	}

	m, err := numbered.NewStringManager(labelHooks(), numbered.Template(unknown, foldDigits))
	if err != nil {
		panic(err)
	}

	// Register the template form of a numeric key.
	tmpl, _ := m.RegisterTemplate("1984")
	fmt.Println(tmpl)

	// A related, unseen surface form resolves to the template entity.
	got, _ := m.Get("2038")
	fmt.Println(got, got.ID() == tmpl.ID())

	// Output:
	// 0000
	// 0000 true
}
