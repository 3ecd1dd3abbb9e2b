// Package testing provides standardised tests and benchmarks for
// hash table implementations that satisfy the db.HashTable interface.
//
// The package contains:
//   - testing: A test suite checking the HashTable contract (idempotent create,
//     update without insert, best effort delete, bucket consistency, complete
//     and ordered enumeration, collision handling, destruction)
//   - benchmark: Performance tests for the common table operations
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func(capacity int) (db.HashTable, error) {
//		return NewMyTable(capacity)
//	}
//
//	// Running the standard test suite
//	dbtesting.RunHashTableTests(t, "MyTable", factory)
//
//	// Running performance benchmarks
//	dbtesting.RunHashTableBenchmarks(b, "MyTable", factory)
package testing
