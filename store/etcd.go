package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/nlpkit/lexicon"
)

// EtcdConfig configures the etcd connection.
type EtcdConfig struct {
	// Endpoints is the list of etcd endpoints (e.g., ["localhost:2379"]).
	Endpoints []string

	// Namespace prefixes every snapshot key. Default: "lexicon".
	Namespace string

	// DialTimeout is the maximum time to wait for connection establishment.
	// Default: 5s.
	DialTimeout time.Duration
}

// EtcdStore implements Store using etcd client/v3.
//
// Snapshots are stored as JSON values under "/<namespace>/snapshots/<name>",
// so List is a prefix query and snapshots live alongside whatever other
// coordination state the cluster keeps in etcd.
type EtcdStore struct {
	client    *clientv3.Client
	namespace string
}

// NewEtcdStore creates an etcd-backed snapshot store with the given config.
// Connectivity is verified with a bounded read before the store is returned.
func NewEtcdStore(cfg EtcdConfig) (*EtcdStore, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, lexicon.NewConfigurationError("NewEtcdStore", lexicon.ErrInvalidConfig).
			WithContext(map[string]any{"reason": "endpoints cannot be empty"})
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "lexicon"
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	// Verify connectivity with a quick health check
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := cli.Get(ctx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	return &EtcdStore{client: cli, namespace: namespace}, nil
}

// Save persists the snapshot under its name, replacing any previous one.
func (s *EtcdStore) Save(ctx context.Context, snapshot Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return lexicon.NewStorageError("EtcdStore.Save",
			fmt.Errorf("failed to marshal snapshot: %w", err))
	}

	if _, err := s.client.Put(ctx, s.key(snapshot.Name), string(data)); err != nil {
		return lexicon.NewStorageError("EtcdStore.Save",
			fmt.Errorf("%w: %v", lexicon.ErrStorageFailed, err)).
			WithContext(map[string]any{"name": snapshot.Name})
	}
	return nil
}

// Load retrieves the snapshot saved under name.
func (s *EtcdStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	resp, err := s.client.Get(ctx, s.key(name))
	if err != nil {
		return nil, lexicon.NewStorageError("EtcdStore.Load",
			fmt.Errorf("%w: %v", lexicon.ErrStorageFailed, err)).
			WithContext(map[string]any{"name": name})
	}
	if resp.Count == 0 {
		return nil, lexicon.NewNotFoundError("EtcdStore.Load", lexicon.ErrSnapshotNotFound).
			WithContext(map[string]any{"name": name})
	}

	var snapshot Snapshot
	if err := json.Unmarshal(resp.Kvs[0].Value, &snapshot); err != nil {
		return nil, lexicon.NewStorageError("EtcdStore.Load",
			fmt.Errorf("failed to unmarshal snapshot: %w", err)).
			WithContext(map[string]any{"name": name})
	}
	return &snapshot, nil
}

// Delete removes the snapshot saved under name.
func (s *EtcdStore) Delete(ctx context.Context, name string) error {
	resp, err := s.client.Delete(ctx, s.key(name))
	if err != nil {
		return lexicon.NewStorageError("EtcdStore.Delete",
			fmt.Errorf("%w: %v", lexicon.ErrStorageFailed, err)).
			WithContext(map[string]any{"name": name})
	}
	if resp.Deleted == 0 {
		return lexicon.NewNotFoundError("EtcdStore.Delete", lexicon.ErrSnapshotNotFound).
			WithContext(map[string]any{"name": name})
	}
	return nil
}

// List returns the names of all saved snapshots.
func (s *EtcdStore) List(ctx context.Context) ([]string, error) {
	prefix := s.key("")
	resp, err := s.client.Get(ctx, prefix, clientv3.WithPrefix(), clientv3.WithKeysOnly())
	if err != nil {
		return nil, lexicon.NewStorageError("EtcdStore.List",
			fmt.Errorf("%w: %v", lexicon.ErrStorageFailed, err))
	}

	names := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		names = append(names, string(kv.Key[len(prefix):]))
	}
	return names, nil
}

// Close closes the etcd client.
func (s *EtcdStore) Close() error {
	return s.client.Close()
}

// key constructs the etcd key for a snapshot name.
//
// Format: /namespace/snapshots/name
func (s *EtcdStore) key(name string) string {
	return fmt.Sprintf("/%s/snapshots/%s", s.namespace, name)
}
