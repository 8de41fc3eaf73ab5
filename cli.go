// ABOUTME: CLI mode implementation for non-interactive team optimization
// ABOUTME: Handles progress display, result output, and signal handling for command-line usage

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"text/tabwriter"
	"time"
)

const (
	spinnerUpdateInterval   = 500 * time.Millisecond
	scoreImprovementEpsilon = 1e-10
)

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// RunCLI executes CLI mode optimization.
func RunCLI(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog("teamforge-debug.log"); err != nil {
			return err
		}
	}

	rc, err := InitializeRoster(opts)
	if err != nil {
		return err
	}

	cancel := &atomic.Bool{}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		cancel.Store(true)
	}()

	fmt.Printf("Loaded %d students into %d teams\n", len(rc.Roster.students), len(rc.TeamSizes))
	debugf("loaded roster: %d students, team_sizes=%v, population_size=%d", len(rc.Roster.students), rc.TeamSizes, rc.Config.PopulationSize)
	fmt.Println("\nForming teams... (press Ctrl+C to stop early)")

	bestGenome, bestScore, perTeam := cliRunDriver(rc, cancel)

	fmt.Println("\nTeam assignment:")
	printTeams(os.Stdout, rc, bestGenome, perTeam)

	fmt.Printf("\nFinal aggregate score: %.4f\n", bestScore)

	if opts.DryRun {
		fmt.Println("\n--dry-run mode: nothing written")
		return nil
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		return nil
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close output file: %v", err)
		}
	}()

	printTeams(f, rc, bestGenome, perTeam)
	fmt.Printf("\nWrote team assignment to: %s\n", outputPath)

	return nil
}

// cliRunDriver runs the Driver to completion, printing a progress line every
// time the best score improves, mirroring the teacher's spinner/progress
// loop in cliGeneticSort.
func cliRunDriver(rc *RunContext, cancel *atomic.Bool) ([]int, float64, []float64) {
	startTime := time.Now()
	updateChan := make(chan ProgressEvent, 10)

	driver := NewDriver(uint64(time.Now().UnixNano()), rc.Roster.studentIDs(), rc.TeamSizes, rc.Roster, rc.Data, rc.Opts, rc.Config, runtime.NumCPU(), cancel)
	defer driver.Close()

	type result struct {
		genome  []int
		score   float64
		perTeam []float64
	}
	done := make(chan result, 1)

	go func() {
		genome, score, perTeam := driver.Run(updateChan)
		done <- result{genome, score, perTeam}
	}()

	isTerminal := isTTY(os.Stdout)
	previousBest := -1e300
	lastSpin := time.Time{}

	var res result
loop:
	for {
		select {
		case event, ok := <-updateChan:
			if !ok {
				res = <-done
				break loop
			}
			if hasScoreImproved(event.BestScore, previousBest, scoreImprovementEpsilon) {
				elapsed := time.Since(startTime).Round(time.Millisecond)
				fmt.Printf("%8v Gen %6d - score: %s (stability %.2f)\n", elapsed, event.Generation,
					FormatMinimalPrecision(previousBest, event.BestScore), event.Stability)
				debugf("gen %d: best score %.6f (was %.6f), gen/sec %.1f", event.Generation, event.BestScore, previousBest, event.GenPerSec)
				previousBest = event.BestScore
			} else if isTerminal && time.Since(lastSpin) >= spinnerUpdateInterval {
				fmt.Printf("\r%8v Gen %6d ...", time.Since(startTime).Round(time.Millisecond), event.Generation)
				lastSpin = time.Now()
			}
		case res = <-done:
			break loop
		}
	}

	if isTerminal {
		fmt.Print("\r\033[K")
	}
	fmt.Printf("\nDone in %v\n", time.Since(startTime).Round(time.Millisecond))

	return res.genome, res.score, res.perTeam
}

// studentIDs returns the roster's ids in underlying array order.
func (r *Roster) studentIDs() []int {
	ids := make([]int, len(r.students))
	for i, s := range r.students {
		ids[i] = s.ID
	}
	return ids
}

// printTeams writes a column-aligned team roster to out, one team per block.
func printTeams(out io.Writer, rc *RunContext, genome []int, perTeam []float64) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	start, _ := teamOffsets(rc.TeamSizes)
	for k, size := range rc.TeamSizes {
		fmt.Fprintf(w, "\nTeam %d (score %.2f)\n", k+1, perTeam[k])
		fmt.Fprintln(w, "ID\tGender\tURM")
		for _, id := range genome[start[k] : start[k]+size] {
			st := rc.Roster.ByID(id)
			fmt.Fprintf(w, "%d\t%v\t%v\n", st.ID, st.Gender, st.URM)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush team output: %v", err)
	}
}
