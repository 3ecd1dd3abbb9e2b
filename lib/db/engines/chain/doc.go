// Package chain implements a fixed-capacity hash table (db.HashTable) that
// resolves collisions with separate chaining.
//
// The package focuses on:
//   - A bucket array whose size is chosen once and never changes (no rehashing)
//   - Iterative chain traversal, so chain length never affects stack depth
//   - Value semantics at the API boundary: callers only ever receive copies
//
// Key Components:
//
//   - chainImpl: The table structure implementing db.HashTable. It owns the
//     bucket array and the entry count and routes every operation to the
//     chain of the bucket selected by the hash function.
//
//   - Node (internal): One key-value pair. Each node owns its successor, so a
//     chain is an owned singly linked list. Deleting a node hands the tail of
//     the chain to the predecessor; deleting the head promotes its successor.
//
// Internal Mechanisms:
//
//   - Hashing: The bucket of a key is util.PolyHash(key) mod capacity, a
//     polynomial hash (acc = c + acc*31 over the bytes of the key). The hash is
//     deterministic and unsalted, so the bucket of a key is predictable and can
//     be checked from the outside via BucketIndex.
//
//   - Idempotent Create: Create walks the chain once. If it meets the key it
//     returns the existing node unchanged (first write wins), otherwise it
//     appends a new node at the tail. Chains therefore keep insertion order.
//
//   - Ownership: Keys and values are cloned when they enter the table.
//     Read, Update and All return db.Entry copies instead of references to
//     nodes, which rules out dangling references after later mutations.
//
//   - Destruction: Close walks every chain in a loop, detaches each node and
//     drops the bucket array. After Close writes fail with db.ErrClosed.
//
// The table is not safe for concurrent use. Wrap it (see lib/store) if it has
// to be shared.
package chain
