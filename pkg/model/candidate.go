package model

import "fmt"

// Candidate is a single (day, timeslot, lab, lecturer) placement offered by a domain
type Candidate struct {
	Day      Day
	Timeslot string
	Lab      uint64
	Lecturer string
}

func (candidate Candidate) String() string {
	return fmt.Sprintf("%v %v lab %v %v", candidate.Day, candidate.Timeslot, candidate.Lab, candidate.Lecturer)
}

// Domain is the ordered set of candidates a course may be assigned to
type Domain []Candidate

// Sessions is the two-slot record of a course: its main session and, for paired days, its dual session
type Sessions struct {
	Main *Candidate
	Dual *Candidate
}

// All returns the present sessions, main first
func (sessions Sessions) All() []Candidate {
	all := make([]Candidate, 0, 2)
	if sessions.Main != nil {
		all = append(all, *sessions.Main)
	}
	if sessions.Dual != nil {
		all = append(all, *sessions.Dual)
	}
	return all
}

// Assignment maps each course to its committed sessions
type Assignment map[string]Sessions

func (assignment Assignment) Clone() Assignment {
	clone := make(Assignment, len(assignment))
	for course, sessions := range assignment {
		var copied Sessions
		if sessions.Main != nil {
			main := *sessions.Main
			copied.Main = &main
		}
		if sessions.Dual != nil {
			dual := *sessions.Dual
			copied.Dual = &dual
		}
		clone[course] = copied
	}
	return clone
}

type roomKey struct {
	day      Day
	timeslot string
	lab      uint64
}

type lecturerKey struct {
	day      Day
	timeslot string
	lecturer string
}

func (candidate Candidate) room() roomKey {
	return roomKey{candidate.Day, candidate.Timeslot, candidate.Lab}
}

func (candidate Candidate) lecturerSlot() lecturerKey {
	return lecturerKey{candidate.Day, candidate.Timeslot, candidate.Lecturer}
}
