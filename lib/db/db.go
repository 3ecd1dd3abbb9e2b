package db

import (
	"errors"
	"iter"
)

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplChain Implementation = "chain"
)

// Feature represents hash table features as bit flags
type Feature uint64

const (
	FeatureCreate    Feature = 1 << iota // Support for Create operations
	FeatureRead                          // Support for Read operations
	FeatureUpdate                        // Support for Update operations
	FeatureDelete                        // Support for Delete operations
	FeatureEnumerate                     // Support for All (enumeration)
	FeatureInfo                          // Support for GetInfo
)

func (f Feature) String() string {
	switch f {
	case FeatureCreate:
		return "Create"
	case FeatureRead:
		return "Read"
	case FeatureUpdate:
		return "Update"
	case FeatureDelete:
		return "Delete"
	case FeatureEnumerate:
		return "Enumerate"
	case FeatureInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

type DatabaseInfo struct {
	SizeBytes         int            `json:"size_bytes"`
	DbType            Implementation `json:"db_type"`
	SupportedFeatures []Feature      `json:"supported_features"`
	Metadata          interface{}    `json:"metadata"`
}

// Entry is a snapshot of one stored key/value pair together with the bucket
// it lives in. Entries are copies: mutating the table afterwards never
// changes an Entry a caller already holds.
type Entry struct {
	Bucket int
	Key    string
	Value  string
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrInvalidCapacity is returned when a table is constructed with a capacity < 1.
	ErrInvalidCapacity = errors.New("capacity must be a positive integer")

	// ErrClosed is returned by write operations on a table that was closed.
	ErrClosed = errors.New("hash table is closed")
)

// --------------------------------------------------------------------------
// Hash Table Interface
// --------------------------------------------------------------------------

// HashTable defines an interface for fixed-capacity hash table implementations.
// The number of buckets is chosen at construction and never changes.
// Implementations are not safe for concurrent use; the caller owns the table
// exclusively for its entire lifetime.
type HashTable interface {

	// --------------------------------------------------------------------------
	// Write Operations
	// --------------------------------------------------------------------------

	// Create inserts a new entry for key. If the key already exists the table is
	// left untouched and the existing entry is returned (first write wins).
	// The inserted flag reports whether a new entry was created.
	Create(key, value string) (entry Entry, inserted bool, err error)

	// Update replaces the value of an existing key.
	// It never creates an entry; found is false if the key is absent.
	Update(key, value string) (entry Entry, found bool)

	// Delete removes the entry for key. Deleting an absent key is a no-op.
	// The return value reports whether an entry was actually removed.
	Delete(key string) (removed bool)

	// --------------------------------------------------------------------------
	// Query Operations
	// --------------------------------------------------------------------------

	// Read retrieves the entry for key without mutating the table.
	Read(key string) (entry Entry, found bool)

	// All returns a lazy sequence over every entry, ordered by ascending bucket
	// index and by insertion order within a bucket. The sequence can be ranged
	// over any number of times.
	All() iter.Seq[Entry]

	// BucketIndex returns the bucket a key maps to, or -1 once the table is closed.
	BucketIndex(key string) int

	// Capacity returns the fixed number of buckets.
	Capacity() int

	// Len returns the number of stored entries.
	Len() int

	// --------------------------------------------------------------------------
	// Feature Support
	// --------------------------------------------------------------------------

	// SupportsFeature checks if the implementation supports the specified feature.
	// Multiple features can be checked at once using bitwise OR (|) operator.
	SupportsFeature(feature Feature) (ok bool)

	// GetInfo returns information about the table.
	GetInfo() (info DatabaseInfo)

	// Close releases every entry and the bucket array.
	Close() (err error)
}
