// Package lstore implements a local, in-memory store based on the
// store.IStore interface. It is a thin wrapper around any db.HashTable
// implementation. Data lives only in memory and is gone when the process exits.
//
// Key Features:
//   - Direct integration with db.HashTable implementations
//   - Validation of keys before they reach the table
//   - Feature detection to handle unsupported operations gracefully
//   - Operation and miss counters exported in Prometheus text format
//
// Implementation Details:
//
//   - Key Validation: The empty key is rejected with RetCInvalidOperation.
//     The table itself would accept it (it hashes to bucket 0), the store keeps
//     it out because it cannot be typed into the shell unambiguously.
//
//   - Not Found: Read and Update of a missing key return RetCNotFound.
//     Delete of a missing key returns nil (best effort delete), the miss is
//     only visible in the hmap_misses_total{op="delete"} counter.
//
//   - Duplicate Create: Creating an existing key returns the existing entry and
//     no error. The first value wins.
//
//   - Metrics: Every store has its own metrics.Set with the counters
//     hmap_ops_total{op="..."} and hmap_misses_total{op="..."}.
//
// Thread Safety:
//
//	The store is not thread-safe. It must be owned by a single goroutine, the
//	same way as the db.HashTable it wraps.
//
// Usage Example:
//
//	factory := func() (db.HashTable, error) {
//		return chain.NewChainDB(&chain.DBOptions{Capacity: 1024})
//	}
//	s, err := lstore.NewLocalStore(factory)
//
//	_, err = s.Create("session:123", "alice")
//	entry, err := s.Read("session:123")
package lstore
