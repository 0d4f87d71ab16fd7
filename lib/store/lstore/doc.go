// Package lstore implements a local, in-memory, single-node store engine based on the
// store.IStore interface. Data is stored entirely in memory and is not persisted
// between process restarts.
//
// Implementation Details:
//
//   - Key Space: A plain map from key to store.Value. Values returned to callers are
//     copies, so a caller can never mutate a stored list behind the store's back.
//
//   - Statistics: A store.StatsTable updated once per call, inside the same critical
//     section as the mutation it counts.
//
// Thread Safety:
//
//	All operations take one exclusive lock around the key space and the statistics.
//	Every command is therefore a single atomic step for concurrent callers.
//
// Usage Example:
//
//	s := lstore.NewLocalStore()
//	_, _ = s.Put("foo", store.Int(42))
//	v, err := s.Get("foo") // store.Int(42), nil
package lstore
