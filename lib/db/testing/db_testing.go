package testing

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/ValentinKolb/hmap/lib/db"
	"github.com/ValentinKolb/hmap/lib/db/util"
)

// TableFactory is a function that creates a new instance of a HashTable implementation
// with the given number of buckets
type TableFactory func(capacity int) (db.HashTable, error)

// RunHashTableTests runs a comprehensive test suite for a HashTable implementation.
func RunHashTableTests(t *testing.T, name string, factory TableFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Create&Read", func(t *testing.T) {
			testCreateRead(t, newTable(t, factory, 16))
		})

		t.Run("DuplicateCreate", func(t *testing.T) {
			testDuplicateCreate(t, newTable(t, factory, 16))
		})

		t.Run("Update", func(t *testing.T) {
			testUpdate(t, newTable(t, factory, 16))
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, newTable(t, factory, 16))
		})

		t.Run("Scenario", func(t *testing.T) {
			testScenario(t, newTable(t, factory, 4))
		})

		t.Run("BucketConsistency", func(t *testing.T) {
			testBucketConsistency(t, newTable(t, factory, 7))
		})

		t.Run("EnumerationCompleteness", func(t *testing.T) {
			testEnumerationCompleteness(t, newTable(t, factory, 32))
		})

		t.Run("CollisionHandling", func(t *testing.T) {
			testCollisionHandling(t, newTable(t, factory, 1))
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, newTable(t, factory, 8))
		})

		t.Run("ReturnsCopies", func(t *testing.T) {
			testReturnsCopies(t, newTable(t, factory, 8))
		})

		t.Run("FixedCapacity", func(t *testing.T) {
			testFixedCapacity(t, newTable(t, factory, 3))
		})

		t.Run("Close", func(t *testing.T) {
			testClose(t, newTable(t, factory, 1))
		})

		t.Run("InvalidCapacity", func(t *testing.T) {
			testInvalidCapacity(t, factory)
		})

		t.Run("RealisticUsage", func(t *testing.T) {
			testRealisticUsage(t, newTable(t, factory, 1024))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// newTable creates a table or fails the test
func newTable(t testing.TB, factory TableFactory, capacity int) db.HashTable {
	t.Helper()

	table, err := factory(capacity)
	if err != nil {
		t.Fatalf("Unexpected error creating table with capacity %d: %v", capacity, err)
	}
	return table
}

// Checks if the table supports the specified feature
// Skip the test if it is not supported
func requireFeature(t testing.TB, table db.HashTable, feature db.Feature) {
	if !table.SupportsFeature(feature) {
		t.Skip()
	}
}

// mustCreate creates an entry and fails the test on error
func mustCreate(t testing.TB, table db.HashTable, key, value string) db.Entry {
	t.Helper()

	entry, _, err := table.Create(key, value)
	if err != nil {
		t.Fatalf("Unexpected error creating key %q: %v", key, err)
	}
	return entry
}

// expectValue checks that key is readable and holds value
func expectValue(t testing.TB, table db.HashTable, key, value string) {
	t.Helper()

	entry, found := table.Read(key)
	if !found {
		t.Errorf("Expected key %q to exist", key)
		return
	}
	if entry.Value != value {
		t.Errorf("Expected value %q for key %q, got %q", value, key, entry.Value)
	}
}

// expectMissing checks that key is not readable
func expectMissing(t testing.TB, table db.HashTable, key string) {
	t.Helper()

	if entry, found := table.Read(key); found {
		t.Errorf("Expected key %q to be missing, got %+v", key, entry)
	}
}

// collect drains the enumeration of a table
func collect(table db.HashTable) []db.Entry {
	var entries []db.Entry
	for e := range table.All() {
		entries = append(entries, e)
	}
	return entries
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testCreateRead(t *testing.T, table db.HashTable) {
	defer table.Close()

	requireFeature(t, table, db.FeatureCreate|db.FeatureRead)

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key-%d", i)
		value := fmt.Sprintf("value-%d", i)

		entry, inserted, err := table.Create(key, value)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !inserted {
			t.Errorf("Expected key %q to be inserted", key)
		}
		if entry.Key != key || entry.Value != value {
			t.Errorf("Create returned %+v, expected key=%q value=%q", entry, key, value)
		}

		expectValue(t, table, key, value)
	}

	if table.Len() != 100 {
		t.Errorf("Expected 100 entries, got %d", table.Len())
	}

	expectMissing(t, table, "nonexistent-key")
}

func testDuplicateCreate(t *testing.T, table db.HashTable) {
	defer table.Close()

	requireFeature(t, table, db.FeatureCreate|db.FeatureRead)

	first, inserted, err := table.Create("dup", "v1")
	if err != nil || !inserted {
		t.Fatalf("Expected first create to insert, got inserted=%v err=%v", inserted, err)
	}

	second, inserted, err := table.Create("dup", "v2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if inserted {
		t.Errorf("Duplicate create must not insert")
	}
	if second != first {
		t.Errorf("Duplicate create must return the existing entry %+v, got %+v", first, second)
	}

	expectValue(t, table, "dup", "v1")

	if table.Len() != 1 {
		t.Errorf("Expected exactly one entry, got %d", table.Len())
	}
}

func testUpdate(t *testing.T, table db.HashTable) {
	defer table.Close()

	requireFeature(t, table, db.FeatureCreate|db.FeatureRead|db.FeatureUpdate)

	if _, found := table.Update("missing", "v"); found {
		t.Errorf("Update of a missing key must report not found")
	}
	expectMissing(t, table, "missing")
	if table.Len() != 0 {
		t.Errorf("Update must not insert, table has %d entries", table.Len())
	}

	mustCreate(t, table, "key", "old")

	entry, found := table.Update("key", "new")
	if !found {
		t.Fatalf("Expected update of existing key to succeed")
	}
	if entry.Value != "new" || entry.Key != "key" {
		t.Errorf("Update returned %+v", entry)
	}
	expectValue(t, table, "key", "new")

	// a later create must not undo the update
	mustCreate(t, table, "key", "create-again")
	expectValue(t, table, "key", "new")
}

func testDelete(t *testing.T, table db.HashTable) {
	defer table.Close()

	requireFeature(t, table, db.FeatureCreate|db.FeatureRead|db.FeatureDelete)

	mustCreate(t, table, "a", "1")
	mustCreate(t, table, "b", "2")

	if !table.Delete("a") {
		t.Errorf("Expected delete of existing key to report removal")
	}
	expectMissing(t, table, "a")
	expectValue(t, table, "b", "2")

	// deleting again and deleting unknown keys is a no-op
	if table.Delete("a") {
		t.Errorf("Second delete must not report removal")
	}
	if table.Delete("never-created") {
		t.Errorf("Delete of unknown key must not report removal")
	}

	if table.Len() != 1 {
		t.Errorf("Expected 1 entry after delete, got %d", table.Len())
	}

	// the key can be created again after deletion
	mustCreate(t, table, "a", "3")
	expectValue(t, table, "a", "3")
}

// testScenario runs the reference scenario on a table with 4 buckets
func testScenario(t *testing.T, table db.HashTable) {
	defer table.Close()

	mustCreate(t, table, "a", "1")
	mustCreate(t, table, "b", "2")
	mustCreate(t, table, "a", "99")
	expectValue(t, table, "a", "1")

	table.Delete("b")
	expectMissing(t, table, "b")

	if _, found := table.Update("a", "7"); !found {
		t.Errorf("Expected update of a to succeed")
	}
	expectValue(t, table, "a", "7")
}

func testBucketConsistency(t *testing.T, table db.HashTable) {
	defer table.Close()

	requireFeature(t, table, db.FeatureEnumerate)

	capacity := table.Capacity()
	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("bucket-key-%d", i)
		entry := mustCreate(t, table, key, "v")

		want := util.BucketIndex(key, capacity)
		if entry.Bucket != want {
			t.Errorf("Create reported bucket %d for %q, expected %d", entry.Bucket, key, want)
		}
		if got := table.BucketIndex(key); got != want {
			t.Errorf("BucketIndex(%q) = %d, expected %d", key, got, want)
		}
	}

	for e := range table.All() {
		if want := util.BucketIndex(e.Key, capacity); e.Bucket != want {
			t.Errorf("All reported bucket %d for %q, expected %d", e.Bucket, e.Key, want)
		}
	}
}

func testEnumerationCompleteness(t *testing.T, table db.HashTable) {
	defer table.Close()

	requireFeature(t, table, db.FeatureEnumerate)

	// random operations mirrored in a reference map
	rng := rand.New(rand.NewSource(42))
	reference := make(map[string]string)

	for i := 0; i < 5000; i++ {
		key := fmt.Sprintf("k%d", rng.Intn(300))
		value := fmt.Sprintf("v%d", i)

		switch rng.Intn(4) {
		case 0, 1:
			mustCreate(t, table, key, value)
			if _, ok := reference[key]; !ok {
				reference[key] = value
			}
		case 2:
			if _, found := table.Update(key, value); found {
				reference[key] = value
			}
		case 3:
			table.Delete(key)
			delete(reference, key)
		}
	}

	entries := collect(table)
	if len(entries) != len(reference) {
		t.Errorf("Enumeration returned %d entries, expected %d", len(entries), len(reference))
	}
	if table.Len() != len(reference) {
		t.Errorf("Len returned %d, expected %d", table.Len(), len(reference))
	}

	seen := make(map[string]bool, len(entries))
	lastBucket := -1
	for _, e := range entries {
		if seen[e.Key] {
			t.Errorf("Key %q enumerated twice", e.Key)
		}
		seen[e.Key] = true

		if want, ok := reference[e.Key]; !ok {
			t.Errorf("Enumerated key %q that should not exist", e.Key)
		} else if e.Value != want {
			t.Errorf("Enumerated %q=%q, expected %q", e.Key, e.Value, want)
		}

		if e.Bucket < lastBucket {
			t.Errorf("Buckets not in ascending order: %d after %d", e.Bucket, lastBucket)
		}
		lastBucket = e.Bucket
	}

	for key, value := range reference {
		expectValue(t, table, key, value)
	}

	// enumeration is restartable and does not change state
	again := collect(table)
	if len(again) != len(entries) {
		t.Fatalf("Second enumeration returned %d entries, expected %d", len(again), len(entries))
	}
	for i := range entries {
		if entries[i] != again[i] {
			t.Errorf("Enumeration not stable at %d: %+v vs %+v", i, entries[i], again[i])
		}
	}

	// stopping early is allowed
	count := 0
	for range table.All() {
		count++
		if count == 3 {
			break
		}
	}
	if len(entries) >= 3 && count != 3 {
		t.Errorf("Expected to stop after 3 entries, got %d", count)
	}
}

// testCollisionHandling uses a single bucket so every key collides
func testCollisionHandling(t *testing.T, table db.HashTable) {
	defer table.Close()

	keys := []string{"first", "second", "third", "fourth", "fifth"}
	for _, k := range keys {
		mustCreate(t, table, k, "v-"+k)
	}

	order := func() string {
		var got []string
		for e := range table.All() {
			if e.Bucket != 0 {
				t.Errorf("Expected bucket 0, got %d", e.Bucket)
			}
			got = append(got, e.Key)
		}
		return strings.Join(got, ",")
	}

	if got := order(); got != "first,second,third,fourth,fifth" {
		t.Errorf("Expected insertion order, got %s", got)
	}

	// remove head, middle and tail, the rest keeps its relative order
	table.Delete("first")
	if got := order(); got != "second,third,fourth,fifth" {
		t.Errorf("Unexpected order after deleting the head: %s", got)
	}
	table.Delete("third")
	if got := order(); got != "second,fourth,fifth" {
		t.Errorf("Unexpected order after deleting the middle: %s", got)
	}
	table.Delete("fifth")
	if got := order(); got != "second,fourth" {
		t.Errorf("Unexpected order after deleting the tail: %s", got)
	}

	// updates keep the position of an entry
	table.Update("second", "changed")
	if got := order(); got != "second,fourth" {
		t.Errorf("Update must not move entries: %s", got)
	}
	expectValue(t, table, "second", "changed")
	expectValue(t, table, "fourth", "v-fourth")

	for _, k := range []string{"first", "third", "fifth"} {
		expectMissing(t, table, k)
	}
}

func testEdgeCases(t *testing.T, table db.HashTable) {
	defer table.Close()

	// the table itself accepts the empty key, it hashes to bucket 0
	entry := mustCreate(t, table, "", "value for empty key")
	if entry.Bucket != 0 {
		t.Errorf("Expected empty key in bucket 0, got %d", entry.Bucket)
	}
	expectValue(t, table, "", "value for empty key")
	if !table.Delete("") {
		t.Errorf("Expected empty key to be deletable")
	}
	expectMissing(t, table, "")

	mustCreate(t, table, "empty-value", "")
	expectValue(t, table, "empty-value", "")

	mustCreate(t, table, "x", "single character key")
	expectValue(t, table, "x", "single character key")

	longKey := strings.Repeat("long-key-", 10_000)
	longValue := strings.Repeat("long-value-", 10_000)
	mustCreate(t, table, longKey, longValue)
	expectValue(t, table, longKey, longValue)

	specialKeys := []string{"key with spaces", "ключ", "键", "🔑", "tab\tkey", "new\nline"}
	for _, k := range specialKeys {
		mustCreate(t, table, k, "special-"+k)
	}
	for _, k := range specialKeys {
		expectValue(t, table, k, "special-"+k)
	}

	// keys differing only in case are different keys
	mustCreate(t, table, "Case", "upper")
	mustCreate(t, table, "case", "lower")
	expectValue(t, table, "Case", "upper")
	expectValue(t, table, "case", "lower")
}

func testReturnsCopies(t *testing.T, table db.HashTable) {
	defer table.Close()

	created := mustCreate(t, table, "key", "v1")
	read, _ := table.Read("key")

	table.Update("key", "v2")

	if created.Value != "v1" || read.Value != "v1" {
		t.Errorf("Entries held by the caller changed after update: %+v, %+v", created, read)
	}

	table.Delete("key")
	if read.Key != "key" || read.Value != "v1" {
		t.Errorf("Entry held by the caller changed after delete: %+v", read)
	}

	// the caller's buffer can be reused after create
	buf := []byte("buffer-key buffer-value")
	line := string(buf)
	mustCreate(t, table, line[:10], line[11:])
	expectValue(t, table, "buffer-key", "buffer-value")
}

func testFixedCapacity(t *testing.T, table db.HashTable) {
	defer table.Close()

	capacity := table.Capacity()
	for i := 0; i < 1000; i++ {
		mustCreate(t, table, fmt.Sprintf("k%d", i), "v")
	}

	if table.Capacity() != capacity {
		t.Errorf("Capacity changed from %d to %d", capacity, table.Capacity())
	}
	for i := 0; i < 1000; i++ {
		expectValue(t, table, fmt.Sprintf("k%d", i), "v")
	}
}

// testClose destroys a table with a long chain
func testClose(t *testing.T, table db.HashTable) {
	for i := 0; i < 5000; i++ {
		mustCreate(t, table, fmt.Sprintf("k%d", i), "v")
	}

	if err := table.Close(); err != nil {
		t.Fatalf("Unexpected error on close: %v", err)
	}

	expectMissing(t, table, "k0")
	if entries := collect(table); len(entries) != 0 {
		t.Errorf("Closed table still enumerates %d entries", len(entries))
	}

	if err := table.Close(); err != nil {
		t.Errorf("Second close returned %v", err)
	}
}

func testInvalidCapacity(t *testing.T, factory TableFactory) {
	for _, capacity := range []int{0, -1} {
		table, err := factory(capacity)
		if err == nil {
			table.Close()
			t.Errorf("Expected capacity %d to be rejected", capacity)
		}
	}
}

func testRealisticUsage(t *testing.T, table db.HashTable) {
	defer table.Close()

	// user sessions created, refreshed and logged out
	for i := 0; i < 200; i++ {
		mustCreate(t, table, fmt.Sprintf("session:%d", i), fmt.Sprintf("user-%d", i%20))
	}
	for i := 0; i < 200; i += 2 {
		if _, found := table.Update(fmt.Sprintf("session:%d", i), "refreshed"); !found {
			t.Errorf("Expected session %d to exist", i)
		}
	}
	for i := 0; i < 200; i += 5 {
		table.Delete(fmt.Sprintf("session:%d", i))
	}

	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("session:%d", i)
		switch {
		case i%5 == 0:
			expectMissing(t, table, key)
		case i%2 == 0:
			expectValue(t, table, key, "refreshed")
		default:
			expectValue(t, table, key, fmt.Sprintf("user-%d", i%20))
		}
	}

	if want := 200 - 40; table.Len() != want {
		t.Errorf("Expected %d sessions, got %d", want, table.Len())
	}
}
