package model

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// domainBuilder enumerates every (day, timeslot, lab, lecturer) tuple a course may take
type domainBuilder interface {
	// Returns the full domain of the course in day, timeslot, lab and lecturer order
	Build(course string) (Domain, error)
}

type domainBuilderStandard struct {
	calendar     Calendar
	labs         uint64
	rosters      map[string][]string
	prefixLength int
}

func newDomainBuilder(calendar Calendar, labs uint64, rosters map[string][]string, prefixLength int) domainBuilder {
	return &domainBuilderStandard{
		calendar:     calendar,
		labs:         labs,
		rosters:      rosters,
		prefixLength: prefixLength,
	}
}

func (builder *domainBuilderStandard) Build(course string) (Domain, error) {
	department := Department(course, builder.prefixLength)
	lecturers := builder.rosters[department]
	if len(lecturers) == 0 {
		return nil, InvalidCourseCodeError{Course: course, Department: department}
	}

	if builder.labs > MaxLabs {
		return nil, InvalidInputError{Err: fmt.Errorf("at most %d labs are supported, got %d", MaxLabs, builder.labs)}
	}
	size := uint64(builder.calendar.Size()) * uint64(len(lecturers))
	if size > 0 && builder.labs > math.MaxInt/size {
		return nil, InvalidInputError{Err: fmt.Errorf("domain of %v is too large", course)}
	}

	domain := make(Domain, 0, size*builder.labs)
	for _, day := range builder.calendar.Days() {
		for _, timeslot := range builder.calendar.Timeslots(day) {
			for lab := uint64(1); lab <= builder.labs; lab++ {
				for _, lecturer := range lecturers {
					domain = append(domain, Candidate{
						Day:      day,
						Timeslot: timeslot,
						Lab:      lab,
						Lecturer: lecturer,
					})
				}
			}
		}
	}

	if len(domain) == 0 {
		return nil, EmptyDomainError{Course: course}
	}
	return domain, nil
}

// Department returns the department prefix of a course code
func Department(course string, prefixLength int) string {
	if prefixLength <= 0 || len(course) < prefixLength {
		return course
	}
	return course[:prefixLength]
}

// BuildDomains builds the domain of every course. When shuffle is set each domain is permuted once using seed
func BuildDomains(courses []string, calendar Calendar, labs uint64, rosters map[string][]string, prefixLength int, shuffle bool, seed uint64) (map[string]Domain, error) {
	builder := newDomainBuilder(calendar, labs, rosters, prefixLength)
	random := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	domains := make(map[string]Domain, len(courses))
	for _, course := range courses {
		if _, ok := domains[course]; ok {
			continue
		}

		domain, err := builder.Build(course)
		if err != nil {
			return nil, err
		}
		if shuffle {
			random.Shuffle(len(domain), func(i, j int) {
				domain[i], domain[j] = domain[j], domain[i]
			})
		}
		domains[course] = domain
	}
	return domains, nil
}
