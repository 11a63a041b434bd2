package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nlpkit/lexicon"
	"github.com/nlpkit/lexicon/numbered"
	"github.com/nlpkit/lexicon/token"
)

// Vocabulary is the read surface a snapshot needs from a token manager.
// *token.Manager satisfies it.
type Vocabulary interface {
	// Values returns the interned tokens in id order.
	Values() []token.Token

	// Len returns the number of interned tokens.
	Len() int
}

// Entry is one (id, surface) pair of a snapshot. Entries appear in id order,
// so Entries[i].ID == i for a valid snapshot.
type Entry struct {
	ID      int    `json:"id"`
	Surface string `json:"surface"`
}

// Snapshot is a persistable listing of a vocabulary.
//
// The snapshot id is a fresh UUID per capture; Name is the caller-chosen
// storage key under which backends file the snapshot.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Entries   []Entry   `json:"entries"`
}

// Capture builds a snapshot of the vocabulary under the given name.
func Capture(name string, vocab Vocabulary) Snapshot {
	values := vocab.Values()
	entries := make([]Entry, len(values))
	for i, tok := range values {
		entries[i] = Entry{ID: int(tok.ID()), Surface: tok.Surface()}
	}

	return Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Entries:   entries,
	}
}

// Validate checks the snapshot's dense-id invariant and name.
func (s Snapshot) Validate() error {
	if s.Name == "" {
		return lexicon.NewValidationError("Snapshot.Validate", lexicon.ErrInvalidConfig).
			WithContext(map[string]any{"reason": "snapshot name is empty"})
	}
	for i, e := range s.Entries {
		if e.ID != i {
			return lexicon.NewValidationError("Snapshot.Validate", lexicon.ErrInvalidConfig).
				WithContext(map[string]any{"index": i, "id": e.ID, "reason": "ids are not dense"})
		}
	}
	return nil
}

// Restore rebuilds a token manager from the snapshot by replaying surfaces
// in id order. The options must match the ones the captured manager was
// built with; in particular a sentinel manager's unknown surface must equal
// the snapshot's entry 0, otherwise the replay cannot reproduce the ids and
// an error is returned.
func Restore(s Snapshot, opts ...token.Option) (*token.Manager, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	m := token.NewManager(opts...)
	for _, e := range s.Entries {
		tok, err := m.GetOrCreate(e.Surface)
		if err != nil {
			return nil, err
		}
		if tok.ID() != numbered.ID(e.ID) {
			return nil, lexicon.NewValidationError("store.Restore", lexicon.ErrInvalidConfig).
				WithContext(map[string]any{
					"surface": e.Surface,
					"want":    e.ID,
					"got":     int(tok.ID()),
					"reason":  "replay did not reproduce snapshot ids",
				})
		}
	}
	return m, nil
}

// Store persists vocabulary snapshots by name.
//
// Saving under an existing name replaces the previous snapshot; vocabularies
// only grow, so the newest snapshot supersedes older ones.
type Store interface {
	// Save persists the snapshot under its name.
	Save(ctx context.Context, snapshot Snapshot) error

	// Load retrieves the snapshot saved under name.
	// Returns lexicon.ErrSnapshotNotFound if no snapshot exists.
	Load(ctx context.Context, name string) (*Snapshot, error)

	// Delete removes the snapshot saved under name.
	// Returns lexicon.ErrSnapshotNotFound if no snapshot exists.
	Delete(ctx context.Context, name string) error

	// List returns the names of all saved snapshots in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend connection.
	Close() error
}
