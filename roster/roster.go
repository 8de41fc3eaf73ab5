// ABOUTME: Reads a flat CSV roster file into Student/DataOptions
// ABOUTME: Fixed format: id, gender, urm, attr_1..attr_A, schedule, required/prevented/requested

package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Gender mirrors the main package's Gender enum without importing it, so
// this package stays free of a dependency on package main.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderWoman
	GenderMan
	GenderNonbinary
)

// UnknownAttribute is the sentinel value for an unanswered attribute question.
const UnknownAttribute = -1

// Student is the roster loader's output row, shaped to convert 1:1 into the
// main package's Student type.
type Student struct {
	ID                int
	Gender            Gender
	URM               bool
	Attributes        []int
	Schedule          []bool
	AmbiguousSchedule bool
	RequiredWith      []int
	PreventedWith     []int
	RequestedWith     []int
}

// AttributeOptions describes one attribute column's observed domain.
type AttributeOptions struct {
	IsOrdered bool
	Min       int
	Max       int
}

// DataOptions describes the shape of a loaded roster.
type DataOptions struct {
	Attributes  []AttributeOptions
	Days        int
	Slots       int
	HasGender   bool
	HasURM      bool
	HasSchedule bool
}

const (
	colID = iota
	colGender
	colURM
	numFixedCols
)

// header column names for the trailing, order-independent columns.
const (
	colSchedule  = "schedule"
	colRequired  = "required_with"
	colPrevented = "prevented_with"
	colRequested = "requested_with"
)

// Load reads a roster CSV from path. The header row must start with
// id,gender,urm followed by one attr_N column per attribute (in attribute
// index order), then optionally schedule, required_with, prevented_with,
// requested_with in any order. Schedule is a string of '0'/'1'/'?' of length
// days*slots; id lists are semicolon-separated. days and slots describe how
// to reshape the schedule string into a Days*Slots bitmap.
func Load(path string, days, slots int) ([]Student, *DataOptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read roster header: %w", err)
	}
	cols, attrCount, err := parseHeader(header)
	if err != nil {
		return nil, nil, err
	}

	data := &DataOptions{
		Attributes:  make([]AttributeOptions, attrCount),
		Days:        days,
		Slots:       slots,
		HasGender:   true,
		HasURM:      true,
		HasSchedule: cols.schedule >= 0,
	}

	var students []Student
	seen := make([]bool, attrCount)

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read roster row: %w", err)
		}

		st, err := parseRow(record, cols, attrCount, days, slots)
		if err != nil {
			return nil, nil, err
		}

		for a, v := range st.Attributes {
			if v == UnknownAttribute {
				continue
			}
			if !seen[a] {
				data.Attributes[a].Min, data.Attributes[a].Max = v, v
				seen[a] = true
				continue
			}
			if v < data.Attributes[a].Min {
				data.Attributes[a].Min = v
			}
			if v > data.Attributes[a].Max {
				data.Attributes[a].Max = v
			}
		}

		students = append(students, st)
	}

	return students, data, nil
}

type columnLayout struct {
	attrStart int
	schedule  int
	required  int
	prevented int
	requested int
}

func parseHeader(header []string) (columnLayout, int, error) {
	if len(header) < numFixedCols {
		return columnLayout{}, 0, fmt.Errorf("roster header has %d columns, need at least %d", len(header), numFixedCols)
	}
	if header[colID] != "id" || header[colGender] != "gender" || header[colURM] != "urm" {
		return columnLayout{}, 0, fmt.Errorf("roster header must start with id,gender,urm, got %q", strings.Join(header[:numFixedCols], ","))
	}

	cols := columnLayout{attrStart: numFixedCols, schedule: -1, required: -1, prevented: -1, requested: -1}
	attrCount := 0

	for i := numFixedCols; i < len(header); i++ {
		name := header[i]
		switch name {
		case colSchedule:
			cols.schedule = i
		case colRequired:
			cols.required = i
		case colPrevented:
			cols.prevented = i
		case colRequested:
			cols.requested = i
		default:
			if !strings.HasPrefix(name, "attr_") {
				return columnLayout{}, 0, fmt.Errorf("unrecognized roster column %q", name)
			}
			attrCount++
		}
	}

	return cols, attrCount, nil
}

func parseRow(record []string, cols columnLayout, attrCount, days, slots int) (Student, error) {
	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return Student{}, fmt.Errorf("invalid id %q: %w", record[colID], err)
	}

	st := Student{ID: id, Attributes: make([]int, attrCount)}

	st.Gender, err = parseGender(record[colGender])
	if err != nil {
		return Student{}, fmt.Errorf("student %d: %w", id, err)
	}

	st.URM, err = parseBool(record[colURM])
	if err != nil {
		return Student{}, fmt.Errorf("student %d: invalid urm %q: %w", id, record[colURM], err)
	}

	for a := 0; a < attrCount; a++ {
		raw := strings.TrimSpace(record[cols.attrStart+a])
		if raw == "" || raw == "?" {
			st.Attributes[a] = UnknownAttribute
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Student{}, fmt.Errorf("student %d: invalid attr_%d %q: %w", id, a+1, raw, err)
		}
		st.Attributes[a] = v
	}

	if cols.schedule >= 0 {
		sched, ambiguous, err := parseSchedule(record[cols.schedule], days*slots)
		if err != nil {
			return Student{}, fmt.Errorf("student %d: %w", id, err)
		}
		st.Schedule = sched
		st.AmbiguousSchedule = ambiguous
	}

	if cols.required >= 0 {
		st.RequiredWith, err = parseIDList(record[cols.required])
		if err != nil {
			return Student{}, fmt.Errorf("student %d: required_with: %w", id, err)
		}
	}
	if cols.prevented >= 0 {
		st.PreventedWith, err = parseIDList(record[cols.prevented])
		if err != nil {
			return Student{}, fmt.Errorf("student %d: prevented_with: %w", id, err)
		}
	}
	if cols.requested >= 0 {
		st.RequestedWith, err = parseIDList(record[cols.requested])
		if err != nil {
			return Student{}, fmt.Errorf("student %d: requested_with: %w", id, err)
		}
	}

	return st, nil
}

func parseGender(raw string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "?", "unknown":
		return GenderUnknown, nil
	case "w", "woman", "f", "female":
		return GenderWoman, nil
	case "m", "man", "male":
		return GenderMan, nil
	case "n", "nonbinary", "nb":
		return GenderNonbinary, nil
	default:
		return GenderUnknown, fmt.Errorf("invalid gender %q", raw)
	}
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no":
		return false, nil
	case "1", "true", "yes":
		return true, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}

func parseSchedule(raw string, want int) (schedule []bool, ambiguous bool, err error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != want {
		return nil, false, fmt.Errorf("schedule has %d characters, want %d (days*slots)", len(raw), want)
	}

	schedule = make([]bool, want)
	allTrue, allFalse := true, true

	for i, c := range raw {
		switch c {
		case '1':
			schedule[i] = true
			allFalse = false
		case '0', '?':
			allTrue = false
		default:
			return nil, false, fmt.Errorf("invalid schedule character %q at position %d", c, i)
		}
	}

	return schedule, allTrue || allFalse, nil
}

func parseIDList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ";")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q in list %q: %w", p, raw, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
