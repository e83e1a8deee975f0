package report

import (
	"bytes"
	"testing"

	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	wednesday := model.Candidate{Day: model.Wednesday, Timeslot: "9:00-10:40", Lab: 2, Lecturer: "DSA_Lec1"}
	monday := model.Candidate{Day: model.Monday, Timeslot: "9:00-10:40", Lab: 2, Lecturer: "DSA_Lec1"}
	saturday := model.Candidate{Day: model.Saturday, Timeslot: "9:00-12:20", Lab: 1, Lecturer: "STA_Lec1"}

	for name, test := range map[string]struct {
		record model.CourseSchedule
		days   string
	}{
		"Main then dual":          {model.CourseSchedule{Course: "DSA1060_A", Main: &wednesday, Dual: &monday}, "Wed/Mon"},
		"Only main shows partner": {model.CourseSchedule{Course: "DSA1060_A", Main: &monday}, "Mon/Wed"},
		"Only dual shows partner": {model.CourseSchedule{Course: "DSA1060_A", Dual: &wednesday}, "Wed/Mon"},
		"Unpaired day on its own": {model.CourseSchedule{Course: "STA1020_A", Main: &saturday}, "Sat"},
		"No sessions":             {model.CourseSchedule{Course: "STA1020_A"}, "Unknown"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.days, Describe(test.record).Days)
		})
	}

	t.Run("Details come from the main session", func(t *testing.T) {
		entry := Describe(model.CourseSchedule{Course: "DSA1060_A", Main: &wednesday, Dual: &monday})

		assert.Equal(t, Entry{Course: "DSA1060_A", Days: "Wed/Mon", Time: "9:00-10:40", Lab: 2, Lecturer: "DSA_Lec1"}, entry)
	})
}

func TestLookup(t *testing.T) {
	t.Run("Code is normalized", func(t *testing.T) {
		entry, ok := Lookup(sampleSchedule(), "  sta1020_a ")

		assert.True(t, ok)
		assert.Equal(t, "Fri", entry.Days)
	})

	t.Run("Unknown course", func(t *testing.T) {
		_, ok := Lookup(sampleSchedule(), "CHE1010_A")

		assert.False(t, ok)
	})

	t.Run("Written entry", func(t *testing.T) {
		entry, _ := Lookup(sampleSchedule(), "IST1020_A")
		var buffer bytes.Buffer

		require.NoError(t, WriteEntry(&buffer, entry))
		assert.Contains(t, buffer.String(), "Day(s): Thu/Tue\n")
	})
}
