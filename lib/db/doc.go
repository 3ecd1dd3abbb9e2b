// Package db provides a standardized interface for fixed-capacity hash table
// implementations. It defines the HashTable interface that allows for
// consistent interaction with different table engines while abstracting
// implementation details.
//
// The package focuses on:
//   - A unified interface for create/read/update/delete/enumerate
//   - Feature discovery through capability flags
//   - Comprehensive metadata reporting
//
// Key Components:
//
//   - HashTable Interface: The core interface that all table implementations must satisfy.
//     It provides methods for the basic operations (Create, Read, Update, Delete),
//     enumeration (All), metadata retrieval (GetInfo) and destruction (Close).
//
//   - Entry: A value snapshot of a stored key/value pair and its bucket index.
//     The table never hands out references into its own storage, so an Entry
//     stays valid no matter how the table changes afterwards.
//
//   - Feature Flags: The Feature type defines capability flags that implementations
//     can advertise through the SupportsFeature method.
//
//   - Implementation Identifiers: The Implementation type provides string constants
//     for different table engines (currently "chain").
//
// Note on Semantics:
//   - Create is idempotent: creating a key that is already present keeps the
//     original value and returns the existing entry.
//   - Update never inserts. Use Create for that.
//   - Delete of an absent key is a no-op.
//   - Capacity is fixed for the lifetime of the table, there is no rehashing.
//
// Related Packages:
//
// The engines/chain package (github.com/ValentinKolb/hmap/lib/db/engines/chain)
// implements HashTable with separate chaining and a polynomial string hash.
//
// The testing package (github.com/ValentinKolb/hmap/lib/db/testing) provides
// a conformance suite and benchmarks for any HashTable implementation.
package db
