// ABOUTME: Shared initialization code for CLI mode
// ABOUTME: Roster loading, default teaming options, config setup, and validation

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"teamforge/config"
	"teamforge/roster"
)

// Debug logger - writes to file for debugging
var debugLog *log.Logger

// RunOptions contains command-line options for CLI mode.
type RunOptions struct {
	RosterPath string
	TeamSizes  []int
	Days       int
	Slots      int
	DryRun     bool
	OutputPath string
	DebugLog   bool
}

// RunContext holds the loaded roster and resolved run inputs for a
// teamforge invocation.
type RunContext struct {
	Roster    *Roster
	Data      *DataOptions
	Opts      *TeamingOptions
	TeamSizes []int
	Config    config.GAConfig
}

// InitializeRoster loads the roster CSV, builds default teaming options, and
// validates the whole configuration before a run starts.
func InitializeRoster(opts RunOptions) (*RunContext, error) {
	students, data, err := roster.Load(opts.RosterPath, opts.Days, opts.Slots)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	mainStudents := make([]Student, len(students))
	for i, s := range students {
		mainStudents[i] = Student{
			ID:                s.ID,
			Gender:            Gender(s.Gender),
			URM:               s.URM,
			Attributes:        s.Attributes,
			Schedule:          s.Schedule,
			AmbiguousSchedule: s.AmbiguousSchedule,
			RequiredWith:      s.RequiredWith,
			PreventedWith:     s.PreventedWith,
			RequestedWith:     s.RequestedWith,
		}
	}
	mainData := &DataOptions{
		Attributes:  make([]AttributeOptions, len(data.Attributes)),
		Days:        data.Days,
		Slots:       data.Slots,
		HasGender:   data.HasGender,
		HasURM:      data.HasURM,
		HasSchedule: data.HasSchedule,
	}
	for i, a := range data.Attributes {
		mainData.Attributes[i] = AttributeOptions{IsOrdered: a.IsOrdered, Min: a.Min, Max: a.Max}
	}

	teamingOpts := defaultTeamingOptions(mainData)

	if err := ValidateConfig(mainStudents, mainData, teamingOpts, opts.TeamSizes); err != nil {
		return nil, err
	}

	gaCfg, _ := config.LoadConfig(config.GetConfigPath())

	return &RunContext{
		Roster:    NewRoster(mainStudents),
		Data:      mainData,
		Opts:      teamingOpts,
		TeamSizes: opts.TeamSizes,
		Config:    gaCfg,
	}, nil
}

// defaultTeamingOptions builds a TeamingOptions with equal weight on every
// attribute (diversity-seeking), no incompatible pairs, and schedule scoring
// enabled only when the roster carries schedule data. A full deployment
// would source these from user input; teamforge's CLI keeps them fixed
// since TeamingOptions is explicitly not persisted (SPEC_FULL.md §1).
func defaultTeamingOptions(data *DataOptions) *TeamingOptions {
	n := len(data.Attributes)
	weight := make([]float64, n)
	homogeneous := make([]bool, n)
	pairs := make([]map[pairKey]struct{}, n)
	for a := range weight {
		weight[a] = 1
		pairs[a] = map[pairKey]struct{}{}
	}

	opts := &TeamingOptions{
		AttributeWeight:                    weight,
		DesireHomogeneous:                  homogeneous,
		IncompatiblePairs:                  pairs,
		RequestedTeammatesFulfillmentCount: 1,
	}

	if data.HasSchedule {
		opts.ScheduleWeight = 1
		opts.MeetingBlockSize = 1
		opts.MinOverlap = 1
		opts.DesiredOverlap = 2
	}

	return opts
}

// parseTeamSizes parses a comma-separated list of team sizes, e.g. "4,4,3".
func parseTeamSizes(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid team size %q: %w", p, err)
		}
		sizes = append(sizes, v)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no team sizes given")
	}
	return sizes, nil
}

// SetupDebugLog initializes debug logging to the specified file
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	fileInfo, _ := os.Stdout.Stat()
	if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging to a file
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages to file if debug logger is enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// hasScoreImproved returns true if newScore is significantly better than
// oldScore. teamforge maximizes score, the inverse of the teacher's
// fitness-minimization direction.
func hasScoreImproved(newScore, oldScore, epsilon float64) bool {
	return newScore > oldScore+epsilon
}
