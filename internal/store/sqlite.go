package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/limaJavier/labscheduling/pkg/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL,
    status TEXT NOT NULL,
    reason TEXT NOT NULL,
    nodes INTEGER NOT NULL,
    backtracks INTEGER NOT NULL,
    duration INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS course_sessions (
    run_id TEXT NOT NULL,
    course TEXT NOT NULL,
    role TEXT NOT NULL,
    day INTEGER NOT NULL,
    timeslot TEXT NOT NULL,
    lab INTEGER NOT NULL,
    lecturer TEXT NOT NULL,
    PRIMARY KEY (run_id, course, role),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

const (
	roleMain = "main"
	roleDual = "dual"
)

var statuses = map[string]model.Status{
	model.Solved.String():      model.Solved,
	model.Infeasible.String():  model.Infeasible,
	model.SearchLimit.String(): model.SearchLimit,
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// Every connection to ":memory:" opens a database of its own
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save records a run and, when it's solved, the sessions of every course. The new run's id is returned
func (s *SQLiteStore) Save(ctx context.Context, result model.Result) (string, error) {
	if _, ok := statuses[result.Status.String()]; !ok {
		return "", fmt.Errorf("cannot save a run with status %v", result.Status)
	}
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, created_at, status, reason, nodes, backtracks, duration) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, time.Now().UnixNano(), result.Status.String(), result.Reason,
		int64(result.Stats.Nodes), int64(result.Stats.Backtracks), int64(result.Stats.Duration),
	)
	if err != nil {
		return "", fmt.Errorf("cannot insert run: %w", err)
	}

	for _, record := range result.Schedule() {
		for role, session := range map[string]*model.Candidate{roleMain: record.Main, roleDual: record.Dual} {
			if session == nil {
				continue
			}
			_, err = tx.ExecContext(ctx,
				"INSERT INTO course_sessions (run_id, course, role, day, timeslot, lab, lecturer) VALUES (?, ?, ?, ?, ?, ?, ?)",
				id, record.Course, role, int64(session.Day), session.Timeslot, int64(session.Lab), session.Lecturer,
			)
			if err != nil {
				return "", fmt.Errorf("cannot insert sessions of course \"%v\": %w", record.Course, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// LatestRun returns the most recently saved run
func (s *SQLiteStore) LatestRun(ctx context.Context) (Run, error) {
	var (
		run                              Run
		createdAt                        int64
		status                           string
		nodes, backtracks, duration, cnt int64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.created_at, r.status, r.reason, r.nodes, r.backtracks, r.duration,
		       (SELECT COUNT(DISTINCT course) FROM course_sessions WHERE run_id = r.id)
		FROM runs r
		ORDER BY r.seq DESC
		LIMIT 1
	`).Scan(&run.ID, &createdAt, &status, &run.Reason, &nodes, &backtracks, &duration, &cnt)
	if err == sql.ErrNoRows {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, err
	}

	parsed, ok := statuses[status]
	if !ok {
		return Run{}, fmt.Errorf("run \"%v\" has an unknown status \"%v\"", run.ID, status)
	}

	run.CreatedAt = time.Unix(0, createdAt)
	run.Status = parsed
	run.Stats = model.SearchStats{
		Nodes:      uint64(nodes),
		Backtracks: uint64(backtracks),
		Duration:   time.Duration(duration),
	}
	run.Courses = int(cnt)
	return run, nil
}

// Lookup returns a course's record from the most recent run. ErrNoSchedule is returned when there is no run or the
// most recent one wasn't solved, and ErrNotFound when the run doesn't hold the course
func (s *SQLiteStore) Lookup(ctx context.Context, course string) (model.CourseSchedule, error) {
	run, err := s.LatestRun(ctx)
	if err == ErrNotFound {
		return model.CourseSchedule{}, ErrNoSchedule
	} else if err != nil {
		return model.CourseSchedule{}, err
	} else if run.Status != model.Solved {
		return model.CourseSchedule{}, ErrNoSchedule
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT role, day, timeslot, lab, lecturer FROM course_sessions WHERE run_id = ? AND course = ?",
		run.ID, model.NormalizeCourse(course),
	)
	if err != nil {
		return model.CourseSchedule{}, err
	}
	defer rows.Close()

	record := model.CourseSchedule{Course: model.NormalizeCourse(course)}
	for rows.Next() {
		var (
			role     string
			day, lab int64
			session  model.Candidate
		)
		if err := rows.Scan(&role, &day, &session.Timeslot, &lab, &session.Lecturer); err != nil {
			return model.CourseSchedule{}, err
		}
		session.Day, session.Lab = model.Day(day), uint64(lab)

		switch role {
		case roleMain:
			record.Main = &session
		case roleDual:
			record.Dual = &session
		}
	}
	if err := rows.Err(); err != nil {
		return model.CourseSchedule{}, err
	}

	if record.Main == nil && record.Dual == nil {
		return model.CourseSchedule{}, ErrNotFound
	}
	return record, nil
}
