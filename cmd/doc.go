// Package cmd implements the command-line interface of hmap, a fixed capacity
// hash table with separate chaining. It provides a small command structure
// around one in-memory table.
//
// The package is organized into several subpackages:
//
//   - shell: The interactive shell (create, read, update, delete, print entries)
//   - perf: Benchmarks of the table operations through a local store
//   - util: Shared utilities for command-line processing, configuration and logging (internal use)
//
// See hmap -help for a list of all commands.
package cmd
