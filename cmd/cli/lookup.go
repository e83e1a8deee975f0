package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limaJavier/labscheduling/internal/store"
	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/limaJavier/labscheduling/pkg/report"
)

func (app *cli) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <course>",
		Short: "Show where a course was placed by the latest solve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course := model.NormalizeCourse(args[0])

			runs, err := app.openStore()
			if err != nil {
				return err
			}
			defer runs.Close()

			record, err := runs.Lookup(cmd.Context(), course)
			if errors.Is(err, store.ErrNoSchedule) {
				return fmt.Errorf("no schedule stored, run \"solve\" first")
			} else if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("course \"%v\" is not in the latest schedule", course)
			} else if err != nil {
				return fmt.Errorf("cannot look up course \"%v\": %w", course, err)
			}

			return report.WriteEntry(cmd.OutOrStdout(), report.Describe(record))
		},
	}
}
