package report

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/samber/lo"
)

var header = []string{"Course", "Day", "Time", "Lab", "Lecturer"}

// Row is the presentation of one course: both session days joined in week order, time, lab and lecturer of the main session
type Row struct {
	Course   string `json:"course"`
	Day      string `json:"day"`
	Time     string `json:"time"`
	Lab      uint64 `json:"lab"`
	Lecturer string `json:"lecturer"`

	days []model.Day
	slot int
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Rows builds one row per scheduled course sorted by day, time and course
func Rows(schedule model.Schedule, calendar model.Calendar) []Row {
	rows := lo.FilterMap(schedule, func(record model.CourseSchedule, _ int) (Row, bool) {
		session, ok := record.Session()
		if !ok {
			return Row{}, false
		}

		days := record.Days()
		slot, known := calendar.SlotIndex(session.Day, session.Timeslot)
		if !known {
			slot = -1
		}

		return Row{
			Course:   record.Course,
			Day:      joinDays(days),
			Time:     session.Timeslot,
			Lab:      session.Lab,
			Lecturer: session.Lecturer,
			days:     days,
			slot:     slot,
		}, true
	})

	slices.SortFunc(rows, func(a, b Row) int {
		if comparison := slices.Compare(a.days, b.days); comparison != 0 {
			return comparison
		}
		if comparison := cmp.Compare(a.slot, b.slot); comparison != 0 {
			return comparison
		}
		if comparison := strings.Compare(a.Time, b.Time); comparison != 0 {
			return comparison
		}
		return strings.Compare(a.Course, b.Course)
	})
	return rows
}

// Summary counts the rows of every day string in the order rows present them
func Summary(rows []Row) []DayCount {
	counts := lo.CountValuesBy(rows, func(row Row) string { return row.Day })
	return lo.Map(lo.Uniq(lo.Map(rows, func(row Row, _ int) string { return row.Day })), func(day string, _ int) DayCount {
		return DayCount{Day: day, Count: counts[day]}
	})
}

func WriteTable(w io.Writer, rows []Row) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintf(writer, "%v\t%v\t%v\t%d\t%v\n", row.Course, row.Day, row.Time, row.Lab, row.Lecturer)
	}
	return writer.Flush()
}

func WriteSummary(w io.Writer, summary []DayCount) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "Day\tCount")
	for _, count := range summary {
		fmt.Fprintf(writer, "%v\t%d\n", count.Day, count.Count)
	}
	return writer.Flush()
}

func WriteCsv(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Course,
			row.Day,
			row.Time,
			fmt.Sprintf("%d", row.Lab),
			row.Lecturer,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func joinDays(days []model.Day) string {
	return strings.Join(lo.Map(days, func(day model.Day, _ int) string { return day.String() }), "/")
}
