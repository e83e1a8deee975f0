package report

import (
	"fmt"
	"io"

	"github.com/limaJavier/labscheduling/pkg/model"
)

// Entry is a single course as shown by a lookup
type Entry struct {
	Course   string `json:"course"`
	Days     string `json:"days"`
	Time     string `json:"time"`
	Lab      uint64 `json:"lab"`
	Lecturer string `json:"lecturer"`
}

// Describe renders a stored course. Days read "main/dual"; when only one half is present and its day has a pair,
// the partner day is shown next to it
func Describe(record model.CourseSchedule) Entry {
	entry := Entry{Course: record.Course, Days: "Unknown"}

	session, ok := record.Session()
	if !ok {
		return entry
	}
	entry.Time, entry.Lab, entry.Lecturer = session.Timeslot, session.Lab, session.Lecturer

	if record.Main != nil && record.Dual != nil {
		entry.Days = fmt.Sprintf("%v/%v", record.Main.Day, record.Dual.Day)
	} else if paired, ok := model.PairedDay(session.Day); ok {
		entry.Days = fmt.Sprintf("%v/%v", session.Day, paired)
	} else {
		entry.Days = session.Day.String()
	}
	return entry
}

// Lookup finds a course in a schedule, the code is normalized first
func Lookup(schedule model.Schedule, course string) (Entry, bool) {
	record, ok := schedule.Lookup(model.NormalizeCourse(course))
	if !ok {
		return Entry{}, false
	}
	return Describe(record), true
}

func WriteEntry(w io.Writer, entry Entry) error {
	_, err := fmt.Fprintf(w, "Course found: %v\nDay(s): %v\nTime: %v\nLab: %d\nLecturer: %v\n", entry.Course, entry.Days, entry.Time, entry.Lab, entry.Lecturer)
	return err
}
