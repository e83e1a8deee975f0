package model

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// placementUnit is the set of lab-slots a course consumes as a whole: Monday/Wednesday (and Tuesday/Thursday) at the same
// timeslot and lab form one unit since a main session on either day occupies both, Friday and Saturday slots are units on their own
type placementUnit struct {
	anchor   Day
	timeslot string
	lab      uint64
}

func unitOf(candidate Candidate, calendar Calendar) (placementUnit, bool) {
	if _, ok := calendar.SlotIndex(candidate.Day, candidate.Timeslot); !ok {
		return placementUnit{}, false
	}

	anchor := candidate.Day
	if pair, ok := candidate.Pair(); ok {
		// The dual must exist on the paired day for the candidate to be usable at all
		if _, ok := calendar.SlotIndex(pair.Day, pair.Timeslot); !ok {
			return placementUnit{}, false
		}
		anchor = min(candidate.Day, pair.Day)
	}
	return placementUnit{anchor, candidate.Timeslot, candidate.Lab}, true
}

// capacityCheck matches courses to placement units. Every course of a feasible instance takes a unit of its own,
// so a largest matching smaller than the number of courses proves the instance infeasible
func capacityCheck(calendar Calendar, courses []string, domains map[string]Domain) (bool, error) {
	reachable := make(map[string]map[placementUnit]bool, len(courses))
	units := make([]placementUnit, 0)
	known := make(map[placementUnit]bool)

	for _, course := range courses {
		reachable[course] = make(map[placementUnit]bool)
		for _, candidate := range domains[course] {
			unit, ok := unitOf(candidate, calendar)
			if !ok {
				continue
			}
			reachable[course][unit] = true
			if !known[unit] {
				known[unit] = true
				units = append(units, unit)
			}
		}
	}

	// A course without any usable unit makes the matching trivially deficient
	if len(units) == 0 || lo.SomeBy(courses, func(course string) bool { return len(reachable[course]) == 0 }) {
		return false, nil
	}

	neighbors := func(courseAny any, unitAny any) (bool, error) {
		return reachable[courseAny.(string)][unitAny.(placementUnit)], nil
	}

	coursesAny := lo.Map(courses, func(course string, _ int) any { return course })
	unitsAny := lo.Map(units, func(unit placementUnit, _ int) any { return unit })

	graph, err := bipartitegraph.NewBipartiteGraph(coursesAny, unitsAny, neighbors)
	if err != nil {
		return false, err
	}

	return len(graph.LargestMatching()) == len(courses), nil
}
