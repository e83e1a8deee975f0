package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Day uint64

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var (
	dayNames     = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	longDayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
)

var weekDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func (day Day) String() string {
	if day > Saturday {
		return fmt.Sprintf("Day(%d)", uint64(day))
	}
	return dayNames[day]
}

// ParseDay accepts short ("Mon") and long ("Monday") names in any case
func ParseDay(name string) (Day, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, day := range weekDays {
		if name == strings.ToLower(dayNames[day]) || name == strings.ToLower(longDayNames[day]) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("unknown day \"%v\"", name)
}

// Calendar holds the ordered timeslot labels of every teaching day. A slot's position within its day is its slot-index
type Calendar struct {
	slots   map[Day][]string
	indices map[Day]map[string]int
}

func NewCalendar(slotsByDay map[Day][]string) (Calendar, error) {
	calendar := Calendar{
		slots:   make(map[Day][]string),
		indices: make(map[Day]map[string]int),
	}

	for day, labels := range slotsByDay {
		if day > Saturday {
			return Calendar{}, fmt.Errorf("day %v is out of range", day)
		}
		if len(labels) == 0 {
			continue
		}

		indices := make(map[string]int, len(labels))
		for i, label := range labels {
			if _, ok := indices[label]; ok {
				return Calendar{}, fmt.Errorf("timeslot \"%v\" is repeated on %v", label, day)
			}
			indices[label] = i
		}
		calendar.slots[day] = append([]string(nil), labels...)
		calendar.indices[day] = indices
	}

	if len(calendar.slots) == 0 {
		return Calendar{}, fmt.Errorf("calendar must contain at least one timeslot")
	}
	return calendar, nil
}

// CalendarFromNames builds a calendar whose keys are day names (e.g. as read from an input file)
func CalendarFromNames(slotsByName map[string][]string) (Calendar, error) {
	slotsByDay := make(map[Day][]string, len(slotsByName))
	for name, labels := range slotsByName {
		day, err := ParseDay(name)
		if err != nil {
			return Calendar{}, err
		}
		if _, ok := slotsByDay[day]; ok {
			return Calendar{}, fmt.Errorf("day %v is defined more than once", day)
		}
		slotsByDay[day] = labels
	}
	return NewCalendar(slotsByDay)
}

// DefaultCalendar is the six-day week used when no calendar is supplied: seven slots Monday to Thursday, three on Friday and two on Saturday
func DefaultCalendar() Calendar {
	weekday := []string{"7:00-8:40", "9:00-10:40", "11:00-12:40", "1:20-3:00", "3:30-5:10", "5:30-7:10", "7:30-9:00"}
	calendar, err := NewCalendar(map[Day][]string{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    {"8:00-11:20", "1:20-4:40", "5:40-9:00"},
		Saturday:  {"9:00-12:20", "1:20-4:40"},
	})
	if err != nil {
		panic(err)
	}
	return calendar
}

// Days returns the days having at least one timeslot, in week order
func (calendar Calendar) Days() []Day {
	return lo.Filter(weekDays, func(day Day, _ int) bool {
		return len(calendar.slots[day]) > 0
	})
}

func (calendar Calendar) Timeslots(day Day) []string {
	return calendar.slots[day]
}

func (calendar Calendar) SlotIndex(day Day, timeslot string) (int, bool) {
	index, ok := calendar.indices[day][timeslot]
	return index, ok
}

// Size returns the total number of (day, timeslot) pairs
func (calendar Calendar) Size() int {
	return lo.SumBy(calendar.Days(), func(day Day) int { return len(calendar.slots[day]) })
}
