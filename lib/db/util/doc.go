// Package util provides utility components for
// hash table implementations that satisfy the db.HashTable interface.
//
// The package contains:
//   - functions: The polynomial string hash and the bucket index derived from it
//   - statistics: Summary statistics and a ChainHistogram for reporting how
//     entries are spread over the bucket array
package util
