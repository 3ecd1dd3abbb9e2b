package chain

import (
	"iter"

	"github.com/ValentinKolb/hmap/lib/db"
	"github.com/ValentinKolb/hmap/lib/db/engines/chain/internal"
	"github.com/ValentinKolb/hmap/lib/db/util"
	"github.com/lni/dragonboat/v4/logger"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	defaultCapacity = 1024 // Default number of buckets
	nodeOverhead    = 40   // Estimated bytes per node: two string headers and the next pointer
)

var log = logger.GetLogger("table")

// --------------------------------------------------------------------------
// Core table structure
// --------------------------------------------------------------------------

// chainImpl implements db.HashTable with separate chaining
type chainImpl struct {
	buckets []*internal.Node // Chain heads, nil for an empty bucket
	size    int              // Number of stored entries
	closed  bool
}

// DBOptions configures the chainImpl during initialization
type DBOptions struct {
	Capacity int // Number of buckets, fixed for the lifetime of the table
}

// DefaultOptions returns the default chainImpl options
func DefaultOptions() *DBOptions {
	return &DBOptions{
		Capacity: defaultCapacity,
	}
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// NewChainDB creates a new hash table with the specified options (optional).
// A capacity below 1 is rejected with db.ErrInvalidCapacity.
func NewChainDB(opts *DBOptions) (db.HashTable, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if opts.Capacity < 1 {
		return nil, db.ErrInvalidCapacity
	}

	log.Debugf("creating table with %d buckets", opts.Capacity)

	return &chainImpl{
		buckets: make([]*internal.Node, opts.Capacity),
	}, nil
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// BucketIndex returns the index of the bucket the key belongs to, or -1 once the table is closed
func (c *chainImpl) BucketIndex(key string) int {
	if len(c.buckets) == 0 {
		return -1
	}
	return util.BucketIndex(key, c.Capacity())
}

// toEntry copies a node into an entry so no reference to the node escapes
func toEntry(bucket int, n *internal.Node) db.Entry {
	return db.Entry{
		Bucket: bucket,
		Key:    n.Key(),
		Value:  n.Value,
	}
}

// --------------------------------------------------------------------------
// Write Operations
// --------------------------------------------------------------------------

// Create inserts a new entry. If the key is already present, nothing is changed
// and the existing entry is returned with inserted=false.
func (c *chainImpl) Create(key, value string) (db.Entry, bool, error) {
	if c.closed {
		return db.Entry{}, false, db.ErrClosed
	}

	idx := c.BucketIndex(key)

	head, node, inserted := internal.Insert(c.buckets[idx], key, value)
	c.buckets[idx] = head

	if inserted {
		c.size++
	}

	return toEntry(idx, node), inserted, nil
}

// Update replaces the value of an existing entry. A missing key is not created.
func (c *chainImpl) Update(key, value string) (db.Entry, bool) {
	if c.closed {
		return db.Entry{}, false
	}

	idx := c.BucketIndex(key)

	node := internal.Update(c.buckets[idx], key, value)
	if node == nil {
		return db.Entry{}, false
	}

	return toEntry(idx, node), true
}

// Delete removes the entry for key and reports whether there was one.
func (c *chainImpl) Delete(key string) bool {
	if c.closed {
		return false
	}

	idx := c.BucketIndex(key)

	head, removed := internal.Delete(c.buckets[idx], key)
	c.buckets[idx] = head

	if removed {
		c.size--
	}

	return removed
}

// --------------------------------------------------------------------------
// Read Operations
// --------------------------------------------------------------------------

// Read returns a copy of the entry for key.
func (c *chainImpl) Read(key string) (db.Entry, bool) {
	if c.closed {
		return db.Entry{}, false
	}

	idx := c.BucketIndex(key)

	node := internal.Find(c.buckets[idx], key)
	if node == nil {
		return db.Entry{}, false
	}

	return toEntry(idx, node), true
}

// All yields every entry bucket by bucket in ascending index order
// and in insertion order inside a bucket.
//
// The table must not be modified while the sequence is being ranged over.
func (c *chainImpl) All() iter.Seq[db.Entry] {
	return func(yield func(db.Entry) bool) {
		for idx, head := range c.buckets {
			for n := head; n != nil; n = n.Next() {
				if !yield(toEntry(idx, n)) {
					return
				}
			}
		}
	}
}

// Capacity returns the number of buckets (0 after Close)
func (c *chainImpl) Capacity() int {
	return len(c.buckets)
}

// Len returns the number of stored entries
func (c *chainImpl) Len() int {
	return c.size
}

// --------------------------------------------------------------------------
// HashTable Interface Implementation - Features and Metadata
// --------------------------------------------------------------------------

// GetInfo walks all chains and reports on size and key distribution
func (c *chainImpl) GetInfo() db.DatabaseInfo {
	histogram := util.NewChainHistogram()
	chainLengths := make([]float64, len(c.buckets))

	usedBuckets := 0
	payload := 0
	for idx, head := range c.buckets {
		length := 0
		for n := head; n != nil; n = n.Next() {
			length++
			payload += len(n.Key()) + len(n.Value)
		}

		histogram.AddChain(length)
		chainLengths[idx] = float64(length)
		if length > 0 {
			usedBuckets++
		}
	}

	labels, percentages := histogram.Distribution()
	chainHistogram := make(map[string]float64, len(labels))
	for i, label := range labels {
		chainHistogram[label] = percentages[i]
	}

	var loadFactor float64
	if len(c.buckets) > 0 {
		loadFactor = float64(c.size) / float64(len(c.buckets))
	}

	// Metadata for this specific table implementation
	meta := &struct {
		Entries           int                    `json:"entries"`
		Capacity          int                    `json:"capacity"`
		UsedBuckets       int                    `json:"used_buckets"`
		LoadFactor        float64                `json:"load_factor"`
		LongestChain      int                    `json:"longest_chain"`
		ChainDistribution util.DistributionStats `json:"chain_distribution"`
		ChainHistogram    map[string]float64     `json:"chain_histogram"`
		Closed            bool                   `json:"closed"`
	}{
		Entries:           c.size,
		Capacity:          len(c.buckets),
		UsedBuckets:       usedBuckets,
		LoadFactor:        loadFactor,
		LongestChain:      histogram.Longest(),
		ChainDistribution: util.NewDistributionStats(chainLengths),
		ChainHistogram:    chainHistogram,
		Closed:            c.closed,
	}

	// one pointer per bucket, the payload of every entry and a fixed overhead per node
	sizeBytes := len(c.buckets)*8 + payload + c.size*nodeOverhead

	supportedFeatures := []db.Feature{
		db.FeatureCreate, db.FeatureRead,
		db.FeatureUpdate, db.FeatureDelete,
		db.FeatureEnumerate, db.FeatureInfo,
	}

	return db.DatabaseInfo{
		SizeBytes:         sizeBytes,
		DbType:            db.ImplChain,
		SupportedFeatures: supportedFeatures,
		Metadata:          meta,
	}
}

// SupportsFeature checks if this implementation supports a specific feature
func (c *chainImpl) SupportsFeature(feature db.Feature) bool {
	supportedFeatures := db.FeatureCreate |
		db.FeatureRead |
		db.FeatureUpdate |
		db.FeatureDelete |
		db.FeatureEnumerate |
		db.FeatureInfo
	return supportedFeatures&feature == feature
}

// Close releases all chains and the bucket array.
// Writes after Close fail with db.ErrClosed, reads find nothing.
// Calling Close more than once is a no-op.
func (c *chainImpl) Close() error {
	if c.closed {
		return nil
	}

	released := 0
	for idx := range c.buckets {
		released += internal.Release(c.buckets[idx])
		c.buckets[idx] = nil
	}

	log.Debugf("closed table, released %d entries from %d buckets", released, len(c.buckets))

	c.buckets = nil
	c.size = 0
	c.closed = true

	return nil
}
