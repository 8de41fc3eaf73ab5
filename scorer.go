// ABOUTME: Composite team-score function: attribute, schedule, demographic
// ABOUTME: and teammate-preference penalties, aggregated by harmonic mean

package main

import "math"

// Roster is the full, read-only student array indexed by stable id.
type Roster struct {
	students  []Student
	indexByID map[int]int
}

// NewRoster builds an id-indexed view over students.
func NewRoster(students []Student) *Roster {
	idx := make(map[int]int, len(students))
	for i, s := range students {
		idx[s.ID] = i
	}
	return &Roster{students: students, indexByID: idx}
}

// ByID returns the student with the given id. Callers are trusted to pass
// ids drawn from the active roster; this mirrors the closed-input-domain
// error policy in SPEC_FULL.md §7.
func (r *Roster) ByID(id int) *Student {
	return &r.students[r.indexByID[id]]
}

// scoreScratch holds per-worker reusable buffers so scoring a genome
// allocates nothing on the hot path (SPEC_FULL.md §4.6).
type scoreScratch struct {
	attrSet       map[int]struct{}
	memberSet     map[int]struct{}
	scheduleAvail []bool
}

func newScoreScratch(data *DataOptions) *scoreScratch {
	return &scoreScratch{
		attrSet:       make(map[int]struct{}),
		memberSet:     make(map[int]struct{}),
		scheduleAvail: make([]bool, data.Days*data.Slots),
	}
}

// Scorer computes per-team and aggregate scores for a genome. It is a pure
// function of its immutable inputs and is safe to call concurrently from
// multiple goroutines as long as each caller supplies its own scoreScratch.
type Scorer struct {
	roster    *Roster
	data      *DataOptions
	opts      *TeamingOptions
	teamSizes []int
	teamStart []int
}

// NewScorer precomputes team start offsets from teamSizes.
func NewScorer(roster *Roster, data *DataOptions, opts *TeamingOptions, teamSizes []int) *Scorer {
	start := make([]int, len(teamSizes))
	pos := 0
	for k, sz := range teamSizes {
		start[k] = pos
		pos += sz
	}
	return &Scorer{roster: roster, data: data, opts: opts, teamSizes: teamSizes, teamStart: start}
}

func (s *Scorer) TeamCount() int { return len(s.teamSizes) }

// Score computes the aggregate score for genome, filling perTeam (which
// must have length TeamCount()) with each team's individual score.
func (s *Scorer) Score(genome []int, perTeam []float64, scratch *scoreScratch) float64 {
	for k, sz := range s.teamSizes {
		members := genome[s.teamStart[k] : s.teamStart[k]+sz]
		perTeam[k] = s.scoreTeam(members, scratch)
	}
	return aggregateScore(perTeam)
}

func (s *Scorer) scoreTeam(members []int, scratch *scoreScratch) float64 {
	f := s.opts.NormalizationFactor()

	var attrSum float64
	penalty := 0

	for a := range s.data.Attributes {
		weight := s.opts.AttributeWeight[a]
		pairs := s.opts.IncompatiblePairs[a]
		if weight <= 0 && len(pairs) == 0 {
			continue
		}

		clear(scratch.attrSet)
		for _, id := range members {
			scratch.attrSet[s.roster.ByID(id).Attributes[a]] = struct{}{}
		}

		for pk := range pairs {
			if _, uOK := scratch.attrSet[pk[0]]; !uOK {
				continue
			}
			if _, vOK := scratch.attrSet[pk[1]]; vOK {
				penalty++
			}
		}

		if weight > 0 {
			delete(scratch.attrSet, UnknownAttribute)

			attrOpts := s.data.Attributes[a]
			span := float64(attrOpts.Max - attrOpts.Min)

			var raw float64
			if len(scratch.attrSet) > 0 && span > 0 {
				if attrOpts.IsOrdered {
					mn, mx := attributeMinMax(scratch.attrSet)
					raw = float64(mx-mn) / span
				} else {
					raw = float64(len(scratch.attrSet)-1) / span
				}
			}

			if s.opts.DesireHomogeneous[a] {
				raw = 1 - raw
			}

			attrSum += raw * weight
		}
	}

	var scheduleContribution float64
	if s.opts.ScheduleWeight > 0 {
		contribution, schedPenalty := s.scoreSchedule(members, scratch)
		scheduleContribution = contribution
		penalty += schedPenalty
	}

	penalty += s.scoreDemographics(members)
	penalty += s.scoreRequired(members, scratch)
	penalty += s.scorePrevented(members)
	penalty += s.scoreRequested(members, scratch)

	if penalty > 0 && scheduleContribution > s.opts.ScheduleWeight {
		scheduleContribution = s.opts.ScheduleWeight
	}

	sum := attrSum + scheduleContribution

	// Rescale so the used weights sum to F (norm = F / total weight).
	totalWeight := s.opts.ScheduleWeight
	for _, w := range s.opts.AttributeWeight {
		totalWeight += w
	}
	if totalWeight > 0 {
		sum *= f / totalWeight
	}

	return (sum/f - float64(penalty)) * 100
}

func attributeMinMax(values map[int]struct{}) (min, max int) {
	first := true
	for v := range values {
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// scoreSchedule returns the schedule contribution and penalty (0 or 1) for
// a team. SPEC_FULL.md §4.1 bullet 2.
func (s *Scorer) scoreSchedule(members []int, scratch *scoreScratch) (contribution float64, penalty int) {
	slots := s.data.Days * s.data.Slots
	avail := scratch.scheduleAvail[:slots]
	for i := range avail {
		avail[i] = true
	}

	nonAmbiguous := 0
	for _, id := range members {
		st := s.roster.ByID(id)
		if st.AmbiguousSchedule {
			continue
		}
		nonAmbiguous++
		for i, busy := range st.Schedule {
			if busy {
				avail[i] = false
			}
		}
	}

	teamSize := len(members)
	if teamSize > 2 && nonAmbiguous < teamSize-2 {
		return 0, 0
	}

	var c int
	if s.opts.MeetingBlockSize == 1 {
		for _, a := range avail {
			if a {
				c++
			}
		}
	} else {
		for d := 0; d < s.data.Days; d++ {
			base := d * s.data.Slots
			for t := 0; t+1 < s.data.Slots; t++ {
				if avail[base+t] && avail[base+t+1] {
					c++
				}
			}
		}
	}

	var normalized float64
	switch {
	case c > s.opts.DesiredOverlap:
		normalized = 1 + float64(c-s.opts.DesiredOverlap)/(6*float64(s.opts.DesiredOverlap))
	case c >= s.opts.MinOverlap:
		normalized = float64(c) / float64(s.opts.DesiredOverlap)
	default:
		penalty = 1
	}

	return normalized * s.opts.ScheduleWeight, penalty
}

func (s *Scorer) scoreDemographics(members []int) int {
	penalty := 0
	var women, men, urm int

	for _, id := range members {
		st := s.roster.ByID(id)
		switch st.Gender {
		case GenderWoman:
			women++
		case GenderMan:
			men++
		}
		if st.URM {
			urm++
		}
	}

	if s.opts.IsolatedWomenPrevented && women == 1 {
		penalty++
	}
	if s.opts.IsolatedMenPrevented && men == 1 {
		penalty++
	}
	if s.opts.SingleGenderPrevented && (women == 0 || men == 0) {
		penalty++
	}
	if s.opts.IsolatedURMPrevented && urm == 1 {
		penalty++
	}

	return penalty
}

func (s *Scorer) scoreRequired(members []int, scratch *scoreScratch) int {
	clear(scratch.memberSet)
	for _, id := range members {
		scratch.memberSet[id] = struct{}{}
	}

	penalty := 0
	for _, id := range members {
		for _, j := range s.roster.ByID(id).RequiredWith {
			if _, onRoster := s.roster.indexByID[j]; !onRoster {
				continue
			}
			if _, onTeam := scratch.memberSet[j]; !onTeam {
				penalty++
			}
		}
	}
	return penalty
}

func (s *Scorer) scorePrevented(members []int) int {
	penalty := 0
	for i := 0; i < len(members); i++ {
		si := s.roster.ByID(members[i])
		for j := i + 1; j < len(members); j++ {
			if containsID(si.PreventedWith, members[j]) || containsID(s.roster.ByID(members[j]).PreventedWith, members[i]) {
				penalty++
			}
		}
	}
	return penalty
}

func (s *Scorer) scoreRequested(members []int, scratch *scoreScratch) int {
	clear(scratch.memberSet)
	for _, id := range members {
		scratch.memberSet[id] = struct{}{}
	}

	penalty := 0
	for _, id := range members {
		st := s.roster.ByID(id)
		r := len(st.RequestedWith)
		if r == 0 {
			continue
		}

		present := 0
		for _, j := range st.RequestedWith {
			if _, onTeam := scratch.memberSet[j]; onTeam {
				present++
			}
		}

		want := r
		if s.opts.RequestedTeammatesFulfillmentCount < want {
			want = s.opts.RequestedTeammatesFulfillmentCount
		}
		if present < want {
			penalty++
		}
	}
	return penalty
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// aggregateScore computes the harmonic mean of per-team scores, falling
// back to a shifted arithmetic mean when any team score is <= 0 (harmonic
// mean is ill-defined there). SPEC_FULL.md §4.1.
func aggregateScore(perTeam []float64) float64 {
	anyNonPositive := false
	for _, v := range perTeam {
		if v <= 0 {
			anyNonPositive = true
			break
		}
	}

	if anyNonPositive {
		var sum float64
		for _, v := range perTeam {
			sum += v
		}
		mean := sum / float64(len(perTeam))
		return mean - math.Abs(mean)/2
	}

	var sumInv float64
	for _, v := range perTeam {
		sumInv += 1 / v
	}
	return float64(len(perTeam)) / sumInv
}
