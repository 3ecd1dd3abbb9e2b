package perf

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/hmap/cmd/util"
	"github.com/ValentinKolb/hmap/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logger.GetLogger("perf")

var (
	// PerfCmd runs benchmarks of the table operations through a local store
	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the hash table",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix = "__test"
	perfKeySpread = 1000
	perfSkip      = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. create,read)"))
	key = "keys"
	PerfCmd.Flags().Int(key, 1000, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	perfKeySpread = viper.GetInt("keys")
	if perfKeySpread < 1 {
		return fmt.Errorf("keys must be at least 1, got %d", perfKeySpread)
	}
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

// benchmark describes one test of the perf run
type benchmark struct {
	name string
	// prefill creates all keys before the timer starts
	prefill bool
	op      func(s store.IStore, key string) error
	// cycle runs outside of the timer every time the key space wraps around
	cycle func(s store.IStore, keys func(func(string)))
}

// drain deletes every key so the next round creates them again
func drain(s store.IStore, keys func(func(string))) {
	keys(func(k string) { _ = s.Delete(k) })
}

// refill creates every key so the next round finds them again
func refill(s store.IStore, keys func(func(string))) {
	keys(func(k string) { _, _ = s.Create(k, "test") })
}

var benchmarks = []benchmark{
	{name: "create", cycle: drain, op: func(s store.IStore, key string) error {
		_, err := s.Create(key, "test")
		return err
	}},
	{name: "create-existing", prefill: true, op: func(s store.IStore, key string) error {
		_, err := s.Create(key, "other")
		return err
	}},
	{name: "read", prefill: true, op: func(s store.IStore, key string) error {
		_, err := s.Read(key)
		return err
	}},
	{name: "read-not", op: func(s store.IStore, key string) error {
		// not found is the expected outcome
		if _, err := s.Read(key); store.CodeOf(err) != store.RetCNotFound {
			return err
		}
		return nil
	}},
	{name: "update", prefill: true, op: func(s store.IStore, key string) error {
		_, err := s.Update(key, "updated")
		return err
	}},
	{name: "delete", prefill: true, cycle: refill, op: func(s store.IStore, key string) error {
		return s.Delete(key)
	}},
	{name: "list", prefill: true, op: func(s store.IStore, _ string) error {
		entries, err := s.List()
		if err != nil {
			return err
		}
		for range entries {
		}
		return nil
	}},
	{name: "mixed", prefill: true, op: mixed()},
}

// mixed cycles through create, read, update and delete
func mixed() func(s store.IStore, key string) error {
	counter := 0
	return func(s store.IStore, key string) error {
		var err error
		switch counter % 4 {
		case 0:
			_, err = s.Create(key, "test")
		case 1:
			_, err = s.Read(key)
			if store.CodeOf(err) == store.RetCNotFound {
				err = nil
			}
		case 2:
			_, err = s.Update(key, "updated")
			if store.CodeOf(err) == store.RetCNotFound {
				err = nil
			}
		case 3:
			err = s.Delete(key)
		}
		counter++
		return err
	}
}

// result is the outcome of one benchmark
type result struct {
	bench   testing.BenchmarkResult
	latency metrics.Timer
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	capacity := util.GetCapacity()

	fmt.Fprintln(out, "Performance testing tool for the hash table")

	// Print configuration
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "Capacity: %d\n", capacity)
	fmt.Fprintf(out, "Keys: %d\n", perfKeySpread)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "starting tests...")

	registry := metrics.NewRegistry()
	results := make(map[string]result)
	names := make([]string, 0, len(benchmarks))

	for _, bm := range benchmarks {
		r, err := runBenchmark(bm, capacity, registry)
		if err != nil {
			return err
		}
		results[bm.name] = r
		names = append(names, bm.name)
		printResult(out, bm.name, r)
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		file, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer file.Close()

		if err := writeResultsToCSV(file, names, results, capacity); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		fmt.Fprintln(out, "Export complete")
	}

	return nil
}

// runBenchmark runs bm against a fresh store and records the latency of every operation
func runBenchmark(bm benchmark, capacity int, registry metrics.Registry) (result, error) {
	latency := metrics.GetOrRegisterTimer(bm.name, registry)

	if shouldSkip(bm.name) {
		return result{latency: latency}, nil
	}

	s, err := util.NewStore(capacity)
	if err != nil {
		return result{}, err
	}
	defer s.Close()

	getKey, iterKeys := getKeys(bm.name)

	var failed int
	bench := testing.Benchmark(func(b *testing.B) {
		// testing.Benchmark runs the function for growing b.N,
		// only the samples of the last round are kept
		registry.Unregister(bm.name)
		latency = metrics.GetOrRegisterTimer(bm.name, registry)
		failed = 0

		if bm.prefill {
			refill(s, iterKeys)
		} else {
			drain(s, iterKeys)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			key := getKey(i)
			start := time.Now()
			if err := bm.op(s, key); err != nil {
				failed++
				log.Debugf("(%s) - error for key %s: %v", bm.name, key, err)
			}
			latency.UpdateSince(start)

			if bm.cycle != nil && (i+1)%perfKeySpread == 0 {
				b.StopTimer()
				bm.cycle(s, iterKeys)
				b.StartTimer()
			}
		}
	})

	if failed > 0 {
		log.Warningf("(%s) - %d operations failed", bm.name, failed)
	}

	return result{bench: bench, latency: latency}, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == strings.TrimSpace(skip) {
			return true
		}
	}
	return false
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// stats returns ns/op, ops/sec and the latency percentiles of a result
func (r result) stats() (nsPerOp, opsPerSec, p50, p99 float64, skipped bool) {
	if r.bench.NsPerOp() == 0 {
		return 0, 0, 0, 0, true
	}

	nsPerOp = math.Max(float64(r.bench.NsPerOp()), 1) // prevent division by zero
	opsPerSec = 1.0 / (nsPerOp / 1e9)

	ps := r.latency.Percentiles([]float64{0.5, 0.99})
	return nsPerOp, opsPerSec, ps[0], ps[1], false
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(w io.Writer, test string, r result) {
	nsPerOp, opsPerSec, p50, p99, skipped := r.stats()
	if skipped {
		fmt.Fprintf(w, "%-20sskipped\n", test)
		return
	}

	fmt.Fprintf(w, "%-20s%.0fns/op (%s/op)\t%.0f ops/sec\tp50 %s\tp99 %s\n",
		test, nsPerOp, time.Duration(nsPerOp), opsPerSec, time.Duration(p50), time.Duration(p99))
}

// writeResultsToCSV writes benchmark results as CSV, one row per test in the given order
func writeResultsToCSV(w io.Writer, names []string, results map[string]result, capacity int) error {
	writer := csv.NewWriter(w)

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "P50Ns", "P99Ns", "Samples", "Skipped",
		"Capacity", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write test results
	for _, test := range names {
		r := results[test]
		nsPerOp, opsPerSec, p50, p99, skipped := r.stats()

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			fmt.Sprintf("%.0f", p50),
			fmt.Sprintf("%.0f", p99),
			strconv.FormatInt(r.latency.Count(), 10),
			strconv.FormatBool(skipped),
			strconv.Itoa(capacity),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %w", test, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
