package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/limaJavier/labscheduling/pkg/report"
)

type solveFlags struct {
	file      string
	csv       string
	json      bool
	shuffle   bool
	seed      uint64
	precheck  bool
	nodeLimit uint64
	timeout   string
	noStore   bool
}

type solveOutput struct {
	Status   string            `json:"status"`
	Reason   string            `json:"reason,omitempty"`
	Nodes    uint64            `json:"nodes"`
	Duration string            `json:"duration"`
	Rows     []report.Row      `json:"rows,omitempty"`
	Summary  []report.DayCount `json:"summary,omitempty"`
}

func (app *cli) solveCmd() *cobra.Command {
	flags := solveFlags{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build a lab schedule",
		Long:  "Build a lab schedule from a JSON input file, or from the built-in course list when no file is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			//** Extract input
			input, err := loadInput(flags.file)
			if err != nil {
				return fmt.Errorf("cannot parse input file: %w", err)
			}
			if cmd.Flags().Changed("shuffle") {
				input.Shuffle = flags.shuffle
			}
			if cmd.Flags().Changed("seed") {
				input.Seed = flags.seed
			}

			options := model.SearchOptions{
				NodeLimit:     app.cfg.Search.NodeLimit,
				Timeout:       app.cfg.Search.Timeout,
				CapacityCheck: app.cfg.Search.CapacityCheck || flags.precheck,
			}
			if cmd.Flags().Changed("node-limit") {
				options.NodeLimit = flags.nodeLimit
			}
			if cmd.Flags().Changed("timeout") {
				timeout, err := parseTimeout(flags.timeout)
				if err != nil {
					return err
				}
				options.Timeout = timeout
			}

			//** Build timetable
			timetabler := model.NewBacktrackingTimetabler(app.logger, options)
			result, err := timetabler.Build(input)
			if err != nil {
				return fmt.Errorf("an error occurred during timetable construction: %w", err)
			}

			//** Verify timetable correctness
			if result.Status == model.Solved && !timetabler.Verify(result, input) {
				app.logger.Error("schedule failed verification", zap.Int("courses", len(input.Courses)))
				app.exitCode = exitUnverified
				return nil
			}

			if !flags.noStore {
				if err := app.saveResult(cmd, result); err != nil {
					return err
				}
			}

			if err := app.writeResult(cmd, flags, input, result); err != nil {
				return err
			}

			switch result.Status {
			case model.Solved:
				app.exitCode = exitSolved
			case model.Infeasible:
				app.exitCode = exitInfeasible
			case model.SearchLimit:
				app.exitCode = exitSearchLimit
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Path to the input file; the built-in course list is used when empty")
	cmd.Flags().StringVar(&flags.csv, "csv", "", "Path to a CSV file where the schedule will be written")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Write the result as JSON instead of tables")
	cmd.Flags().BoolVar(&flags.shuffle, "shuffle", false, "Randomize the order in which candidates are tried")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Seed used when shuffling")
	cmd.Flags().BoolVar(&flags.precheck, "precheck", false, "Reject instances without enough lab capacity before searching")
	cmd.Flags().Uint64Var(&flags.nodeLimit, "node-limit", 0, "Maximum number of search nodes, 0 means unbounded (or LABSCHED_NODE_LIMIT)")
	cmd.Flags().StringVar(&flags.timeout, "timeout", "", "Maximum search duration such as 30s, empty means unbounded (or LABSCHED_TIMEOUT)")
	cmd.Flags().BoolVar(&flags.noStore, "no-store", false, "Do not record the run for later lookups")

	return cmd
}

func loadInput(file string) (model.ModelInput, error) {
	if file == "" {
		return model.ProcessRawInput(model.RawModelInput{Courses: model.DefaultCourses})
	}
	return model.InputFromJson(file)
}

func parseTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout < 0 {
		return 0, fmt.Errorf("invalid timeout \"%v\"", raw)
	}
	return timeout, nil
}

func (app *cli) saveResult(cmd *cobra.Command, result model.Result) error {
	runs, err := app.openStore()
	if err != nil {
		return err
	}
	defer runs.Close()

	id, err := runs.Save(cmd.Context(), result)
	if err != nil {
		return fmt.Errorf("cannot store run: %w", err)
	}
	app.logger.Debug("run stored", zap.String("run", id), zap.String("path", app.cfg.Store.Path))
	return nil
}

func (app *cli) writeResult(cmd *cobra.Command, flags solveFlags, input model.ModelInput, result model.Result) error {
	out := cmd.OutOrStdout()

	var rows []report.Row
	if result.Status == model.Solved {
		rows = report.Rows(result.Schedule(), input.Calendar)
	}

	if flags.csv != "" && result.Status == model.Solved {
		file, err := os.Create(flags.csv)
		if err != nil {
			return fmt.Errorf("cannot create CSV file: %w", err)
		}
		defer file.Close()

		if err := report.WriteCsv(file, rows); err != nil {
			return err
		}
	}

	if flags.json {
		output := solveOutput{
			Status:   result.Status.String(),
			Reason:   result.Reason,
			Nodes:    result.Stats.Nodes,
			Duration: result.Stats.Duration.String(),
			Rows:     rows,
			Summary:  report.Summary(rows),
		}
		outputJson, err := json.Marshal(output)
		if err != nil {
			return fmt.Errorf("an error occurred while building output json: %w", err)
		}
		fmt.Fprintln(out, string(outputJson))
		return nil
	}

	switch result.Status {
	case model.Solved:
		fmt.Fprintf(out, "Schedule found in %.1fs\n\n", result.Stats.Duration.Seconds())
		if err := report.WriteTable(out, rows); err != nil {
			return err
		}
		fmt.Fprintln(out, "\nSummary by day")
		return report.WriteSummary(out, report.Summary(rows))
	case model.Infeasible:
		fmt.Fprintf(out, "No feasible schedule found (search finished in %.1fs). Try adding more lecturers or labs, or reduce course list.\n", result.Stats.Duration.Seconds())
	case model.SearchLimit:
		fmt.Fprintf(out, "Search stopped before a schedule was found: %v\n", result.Reason)
	}
	return nil
}
