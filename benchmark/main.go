// Package main provides a performance benchmarking tool for the mapmykidz CLI.
// It measures execution times of the main commands with the built-in tables
// and with tables read from a SQLite reference database, running each test
// multiple times, treating the first successful run as cold and averaging the
// rest as warm, and writes the results as CSV.
//
// Prerequisites:
// - mapmykidz binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the benchmark SQLite database
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (built-in average, cold run and average of warm runs).
type BenchmarkResult struct {
	Scenario    string
	Command     string
	BuiltinTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DBPath      string
	Timeout     time.Duration
	BuiltinRuns int
	DBRuns      int
	Scenarios   map[string][]string
}

// commands are the subcommands benchmarked for every scenario.
var commands = [][]string{
	{"calc", "-o", "json"},
	{"chart", "-o", "csv"},
	{"check"},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		DBPath:      filepath.Join(os.Args[1], "benchmark_reference.db"),
		Timeout:     30 * time.Second,
		BuiltinRuns: 5,
		DBRuns:      5,
		Scenarios: map[string][]string{
			"infant": {"--gender", "male", "--dob", "2024-01-01", "--date", "2024-07-01",
				"--height", "67.6", "--weight", "7.9", "-m", "all",
				"--mother-height", "165", "--father-height", "180"},
			"school-age": {"--gender", "female", "--dob", "2018-01-01", "--date", "2024-01-01",
				"--height", "115", "--weight", "20", "-m", "all",
				"--mother-height", "165", "--father-height", "180"},
			"adolescent": {"--gender", "male", "--dob", "2008-03-15", "--date", "2024-03-15",
				"--height", "172", "--weight", "61", "-m", "all",
				"--mother-height", "162", "--father-height", "178"},
		},
	}

	if _, err := exec.LookPath("mapmykidz"); err != nil {
		fmt.Printf("Prerequisites check failed: mapmykidz binary not found in PATH\n")
		os.Exit(1)
	}

	// Load the reference database once
	fmt.Printf("Importing built-in tables into %s...\n", config.DBPath)
	importCmd := exec.Command("mapmykidz", "db", "import", "--db-backend", "sqlite", "--db-connect", config.DBPath)
	if output, err := importCmd.CombinedOutput(); err != nil {
		fmt.Printf("Failed to import reference tables: %v\nOutput: %s\n", err, string(output))
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes every command for every scenario.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d scenarios, %v timeout, built-in: %d runs, database: %d runs\n",
		len(config.Scenarios), config.Timeout, config.BuiltinRuns, config.DBRuns)

	for name, childArgs := range config.Scenarios {
		fmt.Printf("Benchmarking %s\n", name)
		for _, command := range commands {
			args := append(append([]string{}, command...), childArgs...)
			results = append(results, runBenchmarkSuite(config, name, args))
		}
	}

	return results
}

// runBenchmarkSuite runs the built-in and database phases for one command.
func runBenchmarkSuite(config BenchmarkConfig, scenario string, args []string) BenchmarkResult {
	command := args[0]
	fmt.Printf("Running %s on %s\n", command, scenario)

	runPhase := func(dbArgs []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, append(append([]string{}, args...), dbArgs...), numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	_, builtinAvg := runPhase([]string{"--db-backend", "none"}, config.BuiltinRuns, "Built-in")
	coldTime, warmAvg := runPhase([]string{"--db-backend", "sqlite", "--db-connect", config.DBPath}, config.DBRuns, "Database")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Built-in average: %s, Cold time: %s, Warm average: %s\n", builtinAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Scenario:    scenario,
		Command:     command,
		BuiltinTime: builtinAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a command multiple times and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, args []string, numRuns int) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("mapmykidz", args...)
		done := make(chan error, 1)
		go func() {
			_, err := cmd.Output()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("mapmykidz_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"scenario", "cmd", "builtin_avg", "db_cold_time", "db_warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Scenario, result.Command, result.BuiltinTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range commands {
		fmt.Printf("%s:\n", command[0])
		for _, result := range results {
			if result.Command == command[0] {
				fmt.Printf("  %-12s: Built-in: %s, Cold: %s, Warm: %s\n", result.Scenario, result.BuiltinTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
