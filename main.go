// ABOUTME: Entry point for teamforge
// ABOUTME: Handles command-line parsing, profiling, and routing to CLI mode

// Package main provides the entry point for teamforge, a genetic
// algorithm-based team-forming tool.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	debugLog := flag.Bool("debug", false, "enable debug logging to teamforge-debug.log")
	dryRun := flag.Bool("dry-run", false, "preview team assignment without writing changes")
	output := flag.String("output", "", "write team assignment to this file (default: stdout)")
	teamSizes := flag.String("team-sizes", "", "comma-separated team sizes, must sum to roster size")
	days := flag.Int("days", 5, "number of schedule days in the roster's schedule column")
	slots := flag.Int("slots", 0, "number of schedule slots per day in the roster's schedule column")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 || *teamSizes == "" {
		fmt.Println("Usage: teamforge [flags] --team-sizes=<sizes> <roster.csv>")
		fmt.Println("Example: teamforge --team-sizes=4,4,3 roster.csv")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	rosterPath := args[0]

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	sizes, err := parseTeamSizes(*teamSizes)
	if err != nil {
		log.Printf("Invalid --team-sizes: %v", err)

		return 1
	}

	if err := RunCLI(RunOptions{
		RosterPath: rosterPath,
		TeamSizes:  sizes,
		Days:       *days,
		Slots:      *slots,
		DryRun:     *dryRun,
		OutputPath: *output,
		DebugLog:   *debugLog,
	}); err != nil {
		log.Printf("CLI error: %v", err)

		return 1
	}

	return 0
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
