package model

// DayPattern groups days into the weekly rhythms a course may follow
type DayPattern uint64

const (
	MondayWednesday DayPattern = iota
	TuesdayThursday
	FridaySaturday
)

func (pattern DayPattern) String() string {
	switch pattern {
	case MondayWednesday:
		return "MW"
	case TuesdayThursday:
		return "TTh"
	case FridaySaturday:
		return "FriSat"
	}
	return "Other"
}

func PatternOf(day Day) DayPattern {
	switch day {
	case Monday, Wednesday:
		return MondayWednesday
	case Tuesday, Thursday:
		return TuesdayThursday
	}
	return FridaySaturday
}

// PairedDay returns the mirror day of a symmetric weekly pattern (Mon<->Wed, Tue<->Thu). Friday and Saturday have no pair
func PairedDay(day Day) (Day, bool) {
	switch day {
	case Monday:
		return Wednesday, true
	case Wednesday:
		return Monday, true
	case Tuesday:
		return Thursday, true
	case Thursday:
		return Tuesday, true
	}
	return 0, false
}

// Pair returns the dual session of candidate: same timeslot, lab and lecturer on the paired day
func (candidate Candidate) Pair() (Candidate, bool) {
	day, ok := PairedDay(candidate.Day)
	if !ok {
		return Candidate{}, false
	}
	dual := candidate
	dual.Day = day
	return dual, true
}
