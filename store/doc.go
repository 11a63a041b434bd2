// Package store provides snapshot persistence for vocabularies.
//
// A vocabulary is append-only and its ids are dense, so its entire state is
// captured by the ordered list of (id, surface) pairs. A Snapshot records
// that list together with a unique id and a timestamp; Restore replays the
// surfaces in id order to rebuild an identical manager.
//
// # Backends
//
// Two Store implementations are provided:
//
//   - RedisStore: snapshots as JSON values in Redis, suitable for sharing
//     vocabularies between short-lived workers.
//   - EtcdStore: snapshots under a namespace prefix in etcd, suitable for
//     cluster-wide distribution alongside other coordination state.
//
// Both implement the same Store interface, so callers can switch backends
// through configuration.
//
// # Example
//
//	vocab := token.NewManager(token.WithSentinel("<unk>"))
//	// ... fill the vocabulary ...
//
//	st, err := store.NewRedisStore(store.RedisOptions{URL: "redis://localhost:6379"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer st.Close()
//
//	if err := st.Save(ctx, store.Capture("tagger-v1", vocab)); err != nil {
//		log.Fatal(err)
//	}
package store
