package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nlpkit/lexicon"
)

const (
	// snapshotKeyPrefix prefixes the key holding one snapshot's JSON value.
	snapshotKeyPrefix = "lexicon:snapshot:"

	// snapshotSetKey is the set of all saved snapshot names.
	snapshotSetKey = "lexicon:snapshots"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

// RedisStore implements Store using go-redis/v9.
//
// Each snapshot is stored as a JSON value under "lexicon:snapshot:<name>",
// and the set "lexicon:snapshots" tracks the saved names for List.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed snapshot store with the given options.
// The connection is verified with a ping before the store is returned.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Save persists the snapshot under its name, replacing any previous one.
func (s *RedisStore) Save(ctx context.Context, snapshot Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return lexicon.NewStorageError("RedisStore.Save",
			fmt.Errorf("failed to marshal snapshot: %w", err))
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, snapshotKeyPrefix+snapshot.Name, data, 0)
	pipe.SAdd(ctx, snapshotSetKey, snapshot.Name)
	if _, err := pipe.Exec(ctx); err != nil {
		return lexicon.NewStorageError("RedisStore.Save",
			fmt.Errorf("%w: %v", lexicon.ErrStorageFailed, err)).
			WithContext(map[string]any{"name": snapshot.Name})
	}
	return nil
}

// Load retrieves the snapshot saved under name.
func (s *RedisStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotKeyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, lexicon.NewNotFoundError("RedisStore.Load", lexicon.ErrSnapshotNotFound).
			WithContext(map[string]any{"name": name})
	}
	if err != nil {
		return nil, lexicon.NewStorageError("RedisStore.Load",
			fmt.Errorf("%w: %v", lexicon.ErrStorageFailed, err)).
			WithContext(map[string]any{"name": name})
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, lexicon.NewStorageError("RedisStore.Load",
			fmt.Errorf("failed to unmarshal snapshot: %w", err)).
			WithContext(map[string]any{"name": name})
	}
	return &snapshot, nil
}

// Delete removes the snapshot saved under name.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	deleted, err := s.client.Del(ctx, snapshotKeyPrefix+name).Result()
	if err != nil {
		return lexicon.NewStorageError("RedisStore.Delete",
			fmt.Errorf("%w: %v", lexicon.ErrStorageFailed, err)).
			WithContext(map[string]any{"name": name})
	}
	if deleted == 0 {
		return lexicon.NewNotFoundError("RedisStore.Delete", lexicon.ErrSnapshotNotFound).
			WithContext(map[string]any{"name": name})
	}

	if err := s.client.SRem(ctx, snapshotSetKey, name).Err(); err != nil {
		return lexicon.NewStorageError("RedisStore.Delete",
			fmt.Errorf("%w: %v", lexicon.ErrStorageFailed, err)).
			WithContext(map[string]any{"name": name})
	}
	return nil
}

// List returns the names of all saved snapshots.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, snapshotSetKey).Result()
	if err != nil {
		return nil, lexicon.NewStorageError("RedisStore.List",
			fmt.Errorf("%w: %v", lexicon.ErrStorageFailed, err))
	}
	return names, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
