// Package store provides the boundary between a hash table and its callers.
// It wraps the lower-level db.HashTable implementations and turns their
// found/absent results into a unified error reporting scheme.
//
// The package focuses on:
//   - A unified interface (IStore) for create/read/update/delete/list
//   - Input validation that does not belong into the table itself
//   - Pluggable table backends through the DBFactory pattern
//
// Key Components:
//
//   - IStore Interface: The abstraction the command layer talks to. All
//     methods return a *Error carrying a RetCode so callers can decide what
//     to report without knowing the table implementation.
//
//   - Error System: Typed return codes (RetCNotFound, RetCInvalidOperation, ...)
//     with a descriptive message. CodeOf extracts the code from any error.
//
//   - DBFactory: A function type that abstracts the creation of the underlying
//     db.HashTable, so the capacity and engine are chosen by the caller.
//
// Implementations:
//
//	- Local Store (lstore): Uses a db.HashTable directly and counts every
//	  operation with VictoriaMetrics counters.
//	  Available in the "github.com/ValentinKolb/hmap/lib/store/lstore" package.
package store
