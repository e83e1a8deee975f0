package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

const (
	DefaultLabs          uint64 = 5
	DefaultMaxBackToBack uint64 = 2
	DefaultPrefixLength  uint64 = 3
	DefaultRosterSize    uint64 = 5

	// Upper bounds on the sizes a user can ask for. Domains grow with their product
	MaxLabs         uint64 = 1000
	MaxPlaceholders uint64 = 1000
)

// DefaultCourses is the Data Science course list the scheduler was first used with
var DefaultCourses = []string{
	"APT1050_A", "APT1050_B", "APT1050_C", "APT2060_A", "APT2060_B",
	"APT3040_A", "APT3040_B", "DSA1060_A", "DSA1060_B", "DSA1080_A", "DSA1080_B", "DSA2020_A", "DSA2040_A",
	"DSA3020_A", "DSA3020_B", "DSA3030_A", "DSA3050_A", "DSA3900_A", "DSA4020_A", "DSA4030_A", "DSA4050_A",
	"DSA4900_A", "DSA4910_A", "DSA4000_A", "IST1020_A", "IST1020_B", "IST1020_C", "MTH1040_A", "MTH1040_B",
	"MTH1050_A", "MTH1050_B", "MTH1050_C", "MTH1060_A", "MTH1060_B", "MTH1109_A", "MTH1109_B", "MTH1110_A",
	"MTH1110_B", "MTH1110_C", "MTH2020_A", "MTH2020_B", "MTH2030_A", "MTH2030_B", "MTH2215_A", "MTH2215_B",
	"MTH2215_C", "MTH3010_A", "MTH3010_B", "STA1020_A", "STA1040_A", "STA2010_A", "STA2010_B", "STA2030_A",
	"STA2050_A", "STA2050_B", "STA2060_A", "STA3010_A", "STA3020_A", "STA3040_A", "STA3040_B", "STA3050_A",
	"STA4010_A", "STA4020_A", "STA4030_A", "STA4030_B",
}

// Placeholder roster sizes of the departments the scheduler knows about
var defaultPlaceholders = map[string]uint64{
	"STA": 8,
	"DSA": 10,
	"MTH": 15,
	"APT": 9,
	"IST": 7,
}

type RawModelInput struct {
	Courses       []string            `validate:"required,min=1,dive,required"`
	Departments   []string            `validate:"dive,required"`
	Lecturers     map[string][]string `validate:"dive,keys,required,endkeys,dive,required"`
	Placeholders  map[string]uint64   `validate:"dive,keys,required,endkeys,lte=1000"`
	Labs          *uint64             `validate:"omitempty,lte=1000"`
	MaxBackToBack *uint64             `validate:"omitempty,gte=1"`
	Shuffle       bool
	Seed          uint64
	Calendar      map[string][]string `validate:"dive,keys,required,endkeys,dive,required"`
	PrefixLength  *uint64             `validate:"omitempty,gte=1"`
}

type ModelInput struct {
	Courses       []string
	Rosters       map[string][]string // Department -> lecturers, fully resolved
	Labs          uint64
	MaxBackToBack uint64
	Shuffle       bool
	Seed          uint64
	Calendar      Calendar
	PrefixLength  uint64
}

var validate = validator.New()

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	// Courses may be given the way they're pasted: a single comma or newline separated string
	for key, value := range inputJson {
		if courses, ok := value.(string); ok && strings.EqualFold(key, "courses") {
			inputJson[key] = SplitCourses(courses)
		}
	}

	var rawInput RawModelInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: integralNumberHook,
		Result:     &rawInput,
	})
	if err != nil {
		return ModelInput{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return ModelInput{}, InvalidInputError{Err: err}
	}
	return ProcessRawInput(rawInput)
}

// integralNumberHook refuses JSON numbers with a fractional part where an integer is expected
func integralNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	number, ok := data.(float64)
	if !ok {
		return data, nil
	}
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if math.Trunc(number) != number {
			return nil, fmt.Errorf("expected an integer but got %v", number)
		}
	}
	return data, nil
}

func ProcessRawInput(rawInput RawModelInput) (ModelInput, error) {
	if err := validate.Struct(rawInput); err != nil {
		return ModelInput{}, InvalidInputError{Err: err}
	}

	input := ModelInput{
		Labs:          lo.FromPtrOr(rawInput.Labs, DefaultLabs),
		MaxBackToBack: lo.FromPtrOr(rawInput.MaxBackToBack, DefaultMaxBackToBack),
		Shuffle:       rawInput.Shuffle,
		Seed:          rawInput.Seed,
		PrefixLength:  lo.FromPtrOr(rawInput.PrefixLength, DefaultPrefixLength),
	}

	//** Manage courses
	input.Courses = lo.FilterMap(rawInput.Courses, func(course string, _ int) (string, bool) {
		course = NormalizeCourse(course)
		return course, course != ""
	})
	if len(input.Courses) == 0 {
		return ModelInput{}, InvalidInputError{Err: fmt.Errorf("at least one course must be given")}
	}
	if duplicates := lo.FindDuplicates(input.Courses); len(duplicates) > 0 {
		return ModelInput{}, DuplicateCourseError{Course: duplicates[0]}
	}

	//** Manage calendar
	if len(rawInput.Calendar) == 0 {
		input.Calendar = DefaultCalendar()
	} else {
		calendar, err := CalendarFromNames(rawInput.Calendar)
		if err != nil {
			return ModelInput{}, InvalidInputError{Err: err}
		}
		input.Calendar = calendar
	}

	//** Manage rosters
	input.Rosters = ResolveRosters(rawInput.Departments, input.Courses, rawInput.Lecturers, rawInput.Placeholders, int(input.PrefixLength))

	return input, nil
}

// ResolveRosters produces the lecturers of every department that is either listed, referenced by a course or given a roster.
// Departments without lecturers get deterministic placeholders named "<DEPT>_Lec<k>"
func ResolveRosters(departments []string, courses []string, lecturers map[string][]string, placeholders map[string]uint64, prefixLength int) map[string][]string {
	all := slices.Concat(
		lo.Keys(defaultPlaceholders),
		lo.Map(departments, func(department string, _ int) string { return strings.ToUpper(strings.TrimSpace(department)) }),
		lo.Map(courses, func(course string, _ int) string { return Department(course, prefixLength) }),
		lo.Map(lo.Keys(lecturers), func(department string, _ int) string { return strings.ToUpper(strings.TrimSpace(department)) }),
	)
	all = lo.Uniq(lo.Compact(all))
	slices.Sort(all)

	given := lo.MapKeys(lecturers, func(_ []string, department string) string {
		return strings.ToUpper(strings.TrimSpace(department))
	})
	sizes := lo.MapKeys(placeholders, func(_ uint64, department string) string {
		return strings.ToUpper(strings.TrimSpace(department))
	})

	rosters := make(map[string][]string, len(all))
	for _, department := range all {
		roster := lo.Uniq(lo.Compact(lo.Map(given[department], func(lecturer string, _ int) string {
			return strings.TrimSpace(lecturer)
		})))
		if len(roster) > 0 {
			rosters[department] = roster
			continue
		}

		size, ok := sizes[department]
		if !ok {
			size, ok = defaultPlaceholders[department]
		}
		if !ok {
			size = DefaultRosterSize
		}
		rosters[department] = PlaceholderRoster(department, size)
	}
	return rosters
}

// PlaceholderRoster names size placeholder lecturers of department. Sizes above MaxPlaceholders are cut down to it
func PlaceholderRoster(department string, size uint64) []string {
	return lo.Times(int(min(size, MaxPlaceholders)), func(i int) string {
		return fmt.Sprintf("%v_Lec%d", department, i+1)
	})
}

func NormalizeCourse(course string) string {
	return strings.ToUpper(strings.TrimSpace(course))
}

func SplitCourses(courses string) []string {
	return lo.FilterMap(strings.FieldsFunc(courses, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	}), func(course string, _ int) (string, bool) {
		course = strings.TrimSpace(course)
		return course, course != ""
	})
}
