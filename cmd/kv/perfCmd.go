package kv

import (
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/nKV/cmd/util"
	"github.com/ValentinKolb/nKV/lib/store"
	"github.com/ValentinKolb/nKV/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for nKV servers",
		Long:    "Runs a set of parallel benchmarks (put, put-list, get, increment, append, delete, mixed) against a running server. Every request opens a new connection, so the numbers include the connection setup.",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix  = "__test"
	perfListLength = 10
	perfNumThreads = 10
	perfKeySpread  = 100
	perfSkip       = make([]string, 0)
	perfBenchmarks = []perfBenchmark{
		{name: "put", op: func(key string, _ int) (store.Result, error) {
			return rpcStore.Put(key, store.Text("test"))
		}},
		{name: "put-list", op: func(key string, _ int) (store.Result, error) {
			return rpcStore.PutList(key, perfList())
		}},
		{name: "get", prepare: putText, op: func(key string, _ int) (store.Result, error) {
			return rpcStore.Get(key)
		}},
		{name: "increment", prepare: putInt, op: func(key string, _ int) (store.Result, error) {
			return rpcStore.Increment(key)
		}},
		{name: "append", prepare: putList, op: func(key string, _ int) (store.Result, error) {
			return rpcStore.Append(key, store.Text("x"))
		}},
		{name: "delete", prepare: putText, op: func(key string, _ int) (store.Result, error) {
			return rpcStore.Delete(key)
		}},
		{name: "mixed", prepare: putInt, op: func(key string, counter int) (store.Result, error) {
			switch counter % 4 {
			case 0:
				return rpcStore.Put(key, store.Int(counter))
			case 1:
				return rpcStore.Get(key)
			case 2:
				return rpcStore.Increment(key)
			default:
				return rpcStore.Do(common.NewRequest(store.KindStats, "", nil))
			}
		}},
	}
)

// perfBenchmark is a single benchmark. prepare is called once per key before the timer starts.
type perfBenchmark struct {
	name    string
	prepare func(key string) (store.Result, error)
	op      func(key string, counter int) (store.Result, error)
}

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. put,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "list-length"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of elements of the lists used by the put-list and append tests"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfListLength = viper.GetInt("list-length")
	perfKeySpread  = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfSkip       = strings.Split(viper.GetString("skip"), ",")

	if perfKeySpread <= 0 {
		return fmt.Errorf("keys must be positive, got %d", perfKeySpread)
	}
	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {
	config := util.GetClientConfig()

	fmt.Println("Performance testing tool for nKV servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(config.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	results := make(map[string]testing.BenchmarkResult)
	for _, bench := range perfBenchmarks {
		result := testing.Benchmark(bench.run)
		results[bench.name] = result
		printBenchmark(bench.name, result)
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, config); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// run executes the benchmark in parallel on perfKeySpread keys and deletes the keys afterwards
func (p perfBenchmark) run(b *testing.B) {
	if shouldSkip(p.name) {
		return
	}

	// prepare keys
	getKey, iter := getKeys(p.name)
	if p.prepare != nil {
		iter(func(k string) {
			logFailure(p.name+"/prepare", k)(p.prepare(k))
		})
	}

	// cleanup
	b.Cleanup(func() {
		iter(func(k string) {
			if _, err := rpcStore.Delete(k); err != nil {
				log.Printf("(%s) - error deleting key: %v\n", p.name, err)
			}
		})
	})

	b.SetParallelism(perfNumThreads)

	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := getKey(counter)
			if _, err := p.op(key, counter); err != nil {
				log.Printf("(%s) - error on key %s: %v\n", p.name, key, err)
			}
			counter++
		}
	})
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func putText(key string) (store.Result, error) { return rpcStore.Put(key, store.Text("test")) }

func putInt(key string) (store.Result, error) { return rpcStore.Put(key, store.Int(0)) }

func putList(key string) (store.Result, error) { return rpcStore.PutList(key, perfList()) }

func perfList() store.List {
	list := make(store.List, perfListLength)
	for i := range list {
		list[i] = strconv.Itoa(i)
	}
	return list
}

// logFailure logs transport errors and failed results
func logFailure(test, key string) func(store.Result, error) {
	return func(res store.Result, err error) {
		switch {
		case err != nil:
			log.Printf("(%s) - error on key %s: %v\n", test, key, err)
		case !res.Ok:
			log.Printf("(%s) - command failed on key %s: %s\n", test, key, res.Payload)
		}
	}
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
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

// printBenchmark prints the result of a benchmark test in a formatted way
func printBenchmark(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, config common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Endpoints", "TimeoutSec", "RetryCount", "Serializer", "Transport",
		"Threads", "ListLength", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results in a stable order
	for _, bench := range perfBenchmarks {
		result, ok := results[bench.name]
		if !ok {
			continue
		}

		var nsPerOp, opsPerSec float64
		skipped := "true"
		if result.NsPerOp() != 0 {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			bench.name,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			strings.Join(config.Transport.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.Transport.RetryCount),
			viper.GetString("serializer"),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfListLength),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", bench.name, err)
		}
	}

	return nil
}
