package model

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"time"
)

// SearchOptions bound the run time of a search. Zero values mean no limit
type SearchOptions struct {
	NodeLimit     uint64
	Timeout       time.Duration
	CapacityCheck bool // Reject instances failing the lab-capacity matching before searching
}

var errSearchLimit = errors.New("search limit exceeded")

// Deadline checks are amortized over this many nodes
const deadlineInterval = 1024

type searchContext struct {
	state    *searchState
	order    []string
	domains  map[string]Domain
	maxRun   int
	options  SearchOptions
	deadline time.Time
	stats    SearchStats
}

// Solve assigns every course one candidate of its domain (plus the paired dual session when the candidate's day has a pair)
// by depth-first backtracking over the courses ordered by ascending domain size.
// An infeasible instance is a normal result, errors are only returned for malformed input
func Solve(calendar Calendar, courses []string, domains map[string]Domain, maxBackToBack int, options SearchOptions) (Result, error) {
	if maxBackToBack < 1 {
		return Result{}, InvalidInputError{Err: fmt.Errorf("maximum back-to-back run must be positive: %v", maxBackToBack)}
	}

	seen := make(map[string]bool, len(courses))
	for _, course := range courses {
		if seen[course] {
			return Result{}, DuplicateCourseError{Course: course}
		}
		seen[course] = true

		domain, ok := domains[course]
		if !ok {
			return Result{}, MissingDomainError{Course: course}
		} else if len(domain) == 0 {
			return Result{}, EmptyDomainError{Course: course}
		}
	}

	//** Fail-first ordering
	order := slices.Clone(courses)
	slices.SortStableFunc(order, func(course1, course2 string) int {
		return len(domains[course1]) - len(domains[course2])
	})

	search := searchContext{
		state:   newSearchState(calendar),
		order:   order,
		domains: domains,
		maxRun:  maxBackToBack,
		options: options,
	}

	start := time.Now()
	if options.Timeout > 0 {
		search.deadline = start.Add(options.Timeout)
	}

	solved, err := search.backtrack(0)
	search.stats.Duration = time.Since(start)

	result := Result{
		Order: order,
		Stats: search.stats,
	}

	switch {
	case errors.Is(err, errSearchLimit):
		result.Status = SearchLimit
		result.Reason = err.Error()
	case err != nil:
		return Result{}, err
	case !solved:
		result.Status = Infeasible
		result.Reason = "search exhausted"
	default:
		if err := search.state.consistent(); err != nil {
			log.Panicf("internal inconsistency: %v", err)
		}
		result.Status = Solved
		result.Assignment = search.state.assignment
	}
	return result, nil
}

func (search *searchContext) backtrack(index int) (bool, error) {
	if index >= len(search.order) {
		return true, nil
	}

	course := search.order[index]
	for _, candidate := range search.domains[course] {
		if err := search.visit(); err != nil {
			return false, err
		}

		if !admissible(search.state, candidate, course, search.maxRun) {
			continue
		}

		var dual *Candidate
		if pair, ok := candidate.Pair(); ok {
			if !admissible(search.state, pair, course, search.maxRun) {
				continue
			}
			dual = &pair
		}

		search.state.commit(course, candidate, dual)

		solved, err := search.backtrack(index + 1)
		if err != nil {
			return false, err
		} else if solved {
			return true, nil
		}

		search.state.undo(course)
		search.stats.Backtracks++
	}

	return false, nil
}

func (search *searchContext) visit() error {
	search.stats.Nodes++
	if search.options.NodeLimit > 0 && search.stats.Nodes > search.options.NodeLimit {
		return fmt.Errorf("%w: more than %d nodes", errSearchLimit, search.options.NodeLimit)
	}
	if !search.deadline.IsZero() && search.stats.Nodes%deadlineInterval == 0 && time.Now().After(search.deadline) {
		return fmt.Errorf("%w: timeout of %v", errSearchLimit, search.options.Timeout)
	}
	return nil
}
