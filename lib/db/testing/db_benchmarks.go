package testing

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ValentinKolb/hmap/lib/db"
)

// benchCapacity is the bucket count used by all benchmarks
const benchCapacity = 1024

// RunHashTableBenchmarks runs all benchmarks for a hash table implementation
func RunHashTableBenchmarks(b *testing.B, name string, factory TableFactory) {

	b.Run("Create", func(b *testing.B) {
		benchmarkCreate(b, newTable(b, factory, benchCapacity))
	})

	b.Run("CreateExisting", func(b *testing.B) {
		benchmarkCreateExisting(b, newTable(b, factory, benchCapacity))
	})

	b.Run("Read", func(b *testing.B) {
		benchmarkRead(b, newTable(b, factory, benchCapacity))
	})

	b.Run("Read(not)", func(b *testing.B) {
		benchmarkReadNot(b, newTable(b, factory, benchCapacity))
	})

	b.Run("Update", func(b *testing.B) {
		benchmarkUpdate(b, newTable(b, factory, benchCapacity))
	})

	b.Run("Delete", func(b *testing.B) {
		benchmarkDelete(b, newTable(b, factory, benchCapacity))
	})

	b.Run("Enumerate", func(b *testing.B) {
		benchmarkEnumerate(b, newTable(b, factory, benchCapacity))
	})

	b.Run("LongChain", func(b *testing.B) {
		benchmarkLongChain(b, newTable(b, factory, 1))
	})

	b.Run("MixedUsage", func(b *testing.B) {
		benchmarkMixedUsage(b, newTable(b, factory, benchCapacity))
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// prepareKeys creates n keys with the given prefix
func prepareKeys(prefix string, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return keys
}

// fill creates every key in the table
func fill(b *testing.B, table db.HashTable, keys []string) {
	b.Helper()

	for _, k := range keys {
		if _, _, err := table.Create(k, "value"); err != nil {
			b.Fatalf("Unexpected error: %v", err)
		}
	}
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

func benchmarkCreate(b *testing.B, table db.HashTable) {
	defer table.Close()

	// a bounded key space keeps the chains at a realistic length
	keys := prepareKeys("create", 4*benchCapacity)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[i%len(keys)]
		if i%len(keys) == 0 && i > 0 {
			b.StopTimer()
			for _, k := range keys {
				table.Delete(k)
			}
			b.StartTimer()
		}
		table.Create(key, "value")
	}
}

func benchmarkCreateExisting(b *testing.B, table db.HashTable) {
	defer table.Close()

	keys := prepareKeys("existing", benchCapacity)
	fill(b, table, keys)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Create(keys[i%len(keys)], "other")
	}
}

func benchmarkRead(b *testing.B, table db.HashTable) {
	defer table.Close()

	keys := prepareKeys("read", 2*benchCapacity)
	fill(b, table, keys)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Read(keys[i%len(keys)])
	}
}

func benchmarkReadNot(b *testing.B, table db.HashTable) {
	defer table.Close()

	fill(b, table, prepareKeys("present", 2*benchCapacity))
	missing := prepareKeys("missing", 2*benchCapacity)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Read(missing[i%len(missing)])
	}
}

func benchmarkUpdate(b *testing.B, table db.HashTable) {
	defer table.Close()

	keys := prepareKeys("update", 2*benchCapacity)
	fill(b, table, keys)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Update(keys[i%len(keys)], "updated")
	}
}

func benchmarkDelete(b *testing.B, table db.HashTable) {
	defer table.Close()

	keys := prepareKeys("delete", 2*benchCapacity)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx := i % len(keys)
		if idx == 0 {
			b.StopTimer()
			fill(b, table, keys)
			b.StartTimer()
		}
		table.Delete(keys[idx])
	}
}

func benchmarkEnumerate(b *testing.B, table db.HashTable) {
	defer table.Close()

	fill(b, table, prepareKeys("enum", 4*benchCapacity))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for range table.All() {
		}
	}
}

// benchmarkLongChain reads from a table where every key shares one bucket
func benchmarkLongChain(b *testing.B, table db.HashTable) {
	defer table.Close()

	keys := prepareKeys("chain", 256)
	fill(b, table, keys)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Read(keys[i%len(keys)])
	}
}

func benchmarkMixedUsage(b *testing.B, table db.HashTable) {
	defer table.Close()

	keys := prepareKeys("mixed", 2*benchCapacity)
	fill(b, table, keys[:len(keys)/2])

	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[rng.Intn(len(keys))]

		// 70% reads, 15% creates, 10% updates, 5% deletes
		switch op := rng.Intn(100); {
		case op < 70:
			table.Read(key)
		case op < 85:
			table.Create(key, "value")
		case op < 95:
			table.Update(key, "updated")
		default:
			table.Delete(key)
		}
	}
}
