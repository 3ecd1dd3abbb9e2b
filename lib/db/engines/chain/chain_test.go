package chain

import (
	"errors"
	"testing"

	"github.com/ValentinKolb/hmap/lib/db"
	"github.com/ValentinKolb/hmap/lib/db/util"
)

func TestNewChainDBDefaults(t *testing.T) {
	table, err := NewChainDB(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer table.Close()

	if table.Capacity() != defaultCapacity {
		t.Errorf("expected default capacity %d, got %d", defaultCapacity, table.Capacity())
	}
}

func TestNewChainDBRejectsCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -1024} {
		table, err := NewChainDB(&DBOptions{Capacity: capacity})
		if !errors.Is(err, db.ErrInvalidCapacity) {
			t.Errorf("capacity %d: expected ErrInvalidCapacity, got %v", capacity, err)
		}
		if table != nil {
			t.Errorf("capacity %d: expected no table", capacity)
		}
	}
}

func TestGetInfo(t *testing.T) {
	table, err := NewChainDB(&DBOptions{Capacity: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer table.Close()

	// 'a' and 'e' collide in bucket 1, 'b' is alone in bucket 2
	for _, k := range []string{"a", "e", "b"} {
		if _, _, err := table.Create(k, "v"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	info := table.GetInfo()
	if info.DbType != db.ImplChain {
		t.Errorf("expected db type %s, got %s", db.ImplChain, info.DbType)
	}
	if info.SizeBytes <= 0 {
		t.Errorf("expected a positive size estimate, got %d", info.SizeBytes)
	}

	meta, ok := info.Metadata.(*struct {
		Entries           int                    `json:"entries"`
		Capacity          int                    `json:"capacity"`
		UsedBuckets       int                    `json:"used_buckets"`
		LoadFactor        float64                `json:"load_factor"`
		LongestChain      int                    `json:"longest_chain"`
		ChainDistribution util.DistributionStats `json:"chain_distribution"`
		ChainHistogram    map[string]float64     `json:"chain_histogram"`
		Closed            bool                   `json:"closed"`
	})
	if !ok {
		t.Fatalf("unexpected metadata type %T", info.Metadata)
	}

	if meta.Entries != 3 || meta.Capacity != 4 {
		t.Errorf("expected 3 entries in 4 buckets, got %d in %d", meta.Entries, meta.Capacity)
	}
	if meta.UsedBuckets != 2 {
		t.Errorf("expected 2 used buckets, got %d", meta.UsedBuckets)
	}
	if meta.LongestChain != 2 {
		t.Errorf("expected longest chain 2, got %d", meta.LongestChain)
	}
	if meta.LoadFactor != 0.75 {
		t.Errorf("expected load factor 0.75, got %v", meta.LoadFactor)
	}
	if meta.ChainHistogram["0"] != 50 {
		t.Errorf("expected half of the buckets to be empty, got %v%%", meta.ChainHistogram["0"])
	}
}

func TestClosedTable(t *testing.T) {
	table, err := NewChainDB(&DBOptions{Capacity: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table.Create("a", "1")
	if err := table.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}

	if _, _, err := table.Create("b", "2"); !errors.Is(err, db.ErrClosed) {
		t.Errorf("expected ErrClosed on create after close, got %v", err)
	}
	if _, ok := table.Read("a"); ok {
		t.Errorf("closed table must not return entries")
	}
	if _, ok := table.Update("a", "x"); ok {
		t.Errorf("closed table must not update entries")
	}
	if table.Delete("a") {
		t.Errorf("closed table must not delete entries")
	}
	if table.BucketIndex("a") != -1 {
		t.Errorf("expected bucket index -1 after close")
	}
	for e := range table.All() {
		t.Errorf("closed table yielded %v", e)
	}
	if table.Len() != 0 || table.Capacity() != 0 {
		t.Errorf("expected empty table after close, got len=%d cap=%d", table.Len(), table.Capacity())
	}

	if err := table.Close(); err != nil {
		t.Errorf("second close must be a no-op, got %v", err)
	}
}
