package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/labscheduling/pkg/model"
)

const (
	satisfiableTestDirectory           = "../../pkg/model/testdata/satisfiable/"
	unsatisfiableTestDirectory         = "../../pkg/model/testdata/unsatisfiable/"
	MB                         float32 = 1024 * 1024
)

type TimetablerType int

const (
	plain TimetablerType = iota
	precheck
)

var (
	timetablerTypes = map[TimetablerType]string{
		plain:    "plain",
		precheck: "precheck",
	}
	courseCounts = []int{10, 20, 40, len(model.DefaultCourses)}
	labCounts    = []uint64{3, 4, 5}
	seeds        = []uint64{1, 2, 3}
)

type TestMetadata struct {
	Name          string
	Satisfiable   *bool
	Courses       int
	Departments   int
	Lecturers     int
	Labs          uint64
	CalendarSlots int
	Shuffle       bool
	Seed          uint64

	input model.ModelInput
}

type BenchmarkResult struct {
	Timetabler TimetablerType
	Test       TestMetadata
	Duration   int64
	Memory     float32
	Nodes      uint64
	Backtracks uint64
	Result     model.Status
}

type benchmarkFlags struct {
	out       string
	nodeLimit uint64
	timeout   time.Duration
	files     bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := benchmarkFlags{}

	cmd := &cobra.Command{
		Use:          "benchmark",
		Short:        "Solve generated lab scheduling instances and write CSV metrics",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tests := generateTests()
			if flags.files {
				tests = append(tests, getTests()...)
			}
			timetablers := getTimetablers()
			results := make([]BenchmarkResult, 0, len(tests)*len(timetablers))
			options := model.SearchOptions{NodeLimit: flags.nodeLimit, Timeout: flags.timeout}

			for _, test := range tests {
				for _, timetabler := range timetablers {
					fmt.Fprintf(cmd.OutOrStdout(), "Benchmarking test \"%v\" with strategy \"%v\"\n", test.Name, timetablerTypes[timetabler])
					results = append(results, measure(timetabler, options, test))
				}
			}

			file, err := os.Create(flags.out)
			if err != nil {
				return fmt.Errorf("cannot create CSV file: %w", err)
			}
			defer file.Close()

			return toCsv(file, results)
		},
	}

	cmd.Flags().StringVar(&flags.out, "out", "benchmark_results.csv", "Path of the CSV file with the results")
	cmd.Flags().Uint64Var(&flags.nodeLimit, "node-limit", 2_000_000, "Maximum number of search nodes per instance")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 30*time.Second, "Maximum search duration per instance")
	cmd.Flags().BoolVar(&flags.files, "files", false, "Also benchmark the instances of the test directories")

	return cmd
}

// generateTests builds instances from prefixes of the default course list with every lab count, in order and shuffled
func generateTests() []TestMetadata {
	tests := make([]TestMetadata, 0, len(courseCounts)*len(labCounts)*(len(seeds)+1))
	for _, count := range courseCounts {
		for _, labs := range labCounts {
			tests = append(tests, generateTest(count, labs, false, 0))
			for _, seed := range seeds {
				tests = append(tests, generateTest(count, labs, true, seed))
			}
		}
	}
	return tests
}

func generateTest(courses int, labs uint64, shuffle bool, seed uint64) TestMetadata {
	raw := model.RawModelInput{
		Courses: model.DefaultCourses[:min(courses, len(model.DefaultCourses))],
		Labs:    &labs,
		Shuffle: shuffle,
		Seed:    seed,
	}
	input, err := model.ProcessRawInput(raw)
	if err != nil {
		log.Fatalf("cannot generate instance: %v", err)
	}

	name := fmt.Sprintf("courses=%d,labs=%d", courses, labs)
	if shuffle {
		name += fmt.Sprintf(",seed=%d", seed)
	}
	return describe(name, nil, input)
}

func getTests() []TestMetadata {
	tests := make([]TestMetadata, 0)
	for _, tuple := range lo.Zip2([]string{satisfiableTestDirectory, unsatisfiableTestDirectory}, []bool{true, false}) {
		directory, satisfiable := tuple.A, tuple.B
		testFiles, err := os.ReadDir(directory)
		if err != nil {
			log.Fatalf("cannot read directory: %v", err)
		}

		for _, file := range testFiles {
			filename := filepath.Join(directory, file.Name())
			input, err := model.InputFromJson(filename)
			if err != nil {
				log.Fatalf("cannot parse input file: %v", err)
			}
			tests = append(tests, describe(filename, &satisfiable, input))
		}
	}

	return tests
}

func describe(name string, satisfiable *bool, input model.ModelInput) TestMetadata {
	departments := lo.Uniq(lo.Map(input.Courses, func(course string, _ int) string {
		return model.Department(course, int(input.PrefixLength))
	}))

	return TestMetadata{
		Name:          name,
		Satisfiable:   satisfiable,
		Courses:       len(input.Courses),
		Departments:   len(departments),
		Lecturers:     lo.SumBy(departments, func(department string) int { return len(input.Rosters[department]) }),
		Labs:          input.Labs,
		CalendarSlots: input.Calendar.Size(),
		Shuffle:       input.Shuffle,
		Seed:          input.Seed,
		input:         input,
	}
}

func getTimetablers() []TimetablerType {
	return []TimetablerType{plain, precheck}
}

func measure(timetablerType TimetablerType, options model.SearchOptions, test TestMetadata) BenchmarkResult {
	options.CapacityCheck = timetablerType == precheck
	timetabler := model.NewBacktrackingTimetabler(zap.NewNop(), options)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()

	result, err := timetabler.Build(test.input)

	duration := time.Since(start)
	runtime.ReadMemStats(&after)

	if err != nil {
		log.Fatalf("an error occurred at test \"%v\" using strategy \"%v\": %v", test.Name, timetablerTypes[timetablerType], err)
	} else if result.Status == model.Solved && !timetabler.Verify(result, test.input) {
		log.Fatalf("schedule of test \"%v\" using strategy \"%v\" failed verification", test.Name, timetablerTypes[timetablerType])
	}

	return BenchmarkResult{
		Timetabler: timetablerType,
		Test:       test,
		Duration:   duration.Milliseconds(),
		Memory:     float32(after.TotalAlloc-before.TotalAlloc) / MB,
		Nodes:      result.Stats.Nodes,
		Backtracks: result.Stats.Backtracks,
		Result:     result.Status,
	}
}

func toCsv(w io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(w)

	header := []string{"Timetabler", "Test", "Satisfiable", "Courses", "Departments", "Lecturers", "Labs", "Calendar Slots", "Shuffle", "Seed", "Duration(ms)", "Allocated(MB)", "Nodes", "Backtracks", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		satisfiable := "unknown"
		if result.Test.Satisfiable != nil {
			satisfiable = fmt.Sprintf("%v", *result.Test.Satisfiable)
		}

		record := []string{
			timetablerTypes[result.Timetabler],
			result.Test.Name,
			satisfiable,
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.Departments),
			fmt.Sprintf("%d", result.Test.Lecturers),
			fmt.Sprintf("%d", result.Test.Labs),
			fmt.Sprintf("%d", result.Test.CalendarSlots),
			fmt.Sprintf("%v", result.Test.Shuffle),
			fmt.Sprintf("%d", result.Test.Seed),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.Nodes),
			fmt.Sprintf("%d", result.Backtracks),
			result.Result.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

