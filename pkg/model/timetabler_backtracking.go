package model

import "go.uber.org/zap"

type backtrackingTimetabler struct {
	logger  *zap.Logger
	options SearchOptions
}

func NewBacktrackingTimetabler(logger *zap.Logger, options SearchOptions) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &backtrackingTimetabler{
		logger:  logger,
		options: options,
	}
}

func (timetabler *backtrackingTimetabler) Build(modelInput ModelInput) (Result, error) {
	//** Build domains
	domains, err := BuildDomains(
		modelInput.Courses,
		modelInput.Calendar,
		modelInput.Labs,
		modelInput.Rosters,
		int(modelInput.PrefixLength),
		modelInput.Shuffle,
		modelInput.Seed,
	)
	if err != nil {
		return Result{}, err
	}
	timetabler.logger.Debug("domains built",
		zap.Int("courses", len(modelInput.Courses)),
		zap.Int("calendarSlots", modelInput.Calendar.Size()),
		zap.Uint64("labs", modelInput.Labs),
		zap.Bool("shuffled", modelInput.Shuffle),
	)

	//** Discard instances without enough lab capacity
	if timetabler.options.CapacityCheck {
		fits, err := capacityCheck(modelInput.Calendar, modelInput.Courses, domains)
		if err != nil {
			return Result{}, err
		} else if !fits {
			timetabler.logger.Info("capacity check failed", zap.Int("courses", len(modelInput.Courses)))
			return Result{Status: Infeasible, Reason: "capacity"}, nil
		}
	}

	//** Search
	result, err := Solve(modelInput.Calendar, modelInput.Courses, domains, int(modelInput.MaxBackToBack), timetabler.options)
	if err != nil {
		return Result{}, err
	}

	timetabler.logger.Info("search finished",
		zap.Int("courses", len(modelInput.Courses)),
		zap.Stringer("status", result.Status),
		zap.Uint64("nodes", result.Stats.Nodes),
		zap.Uint64("backtracks", result.Stats.Backtracks),
		zap.Duration("duration", result.Stats.Duration),
	)
	return result, nil
}

func (timetabler *backtrackingTimetabler) Verify(result Result, modelInput ModelInput) bool {
	return verify(result, modelInput)
}
