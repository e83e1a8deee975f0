package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/labscheduling/pkg/model"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func solvedResult() model.Result {
	return model.Result{
		Status: model.Solved,
		Assignment: model.Assignment{
			"DSA1060_A": {
				Main: &model.Candidate{Day: model.Wednesday, Timeslot: "9:00-10:40", Lab: 2, Lecturer: "DSA_Lec1"},
				Dual: &model.Candidate{Day: model.Monday, Timeslot: "9:00-10:40", Lab: 2, Lecturer: "DSA_Lec1"},
			},
			"STA1020_A": {
				Main: &model.Candidate{Day: model.Friday, Timeslot: "8:00-11:20", Lab: 1, Lecturer: "STA_Lec3"},
			},
		},
		Stats: model.SearchStats{Nodes: 3, Duration: 2 * time.Millisecond},
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Save and lookup", func(t *testing.T) {
		//** Arrange
		store := newStore(t)

		//** Act
		id, err := store.Save(ctx, solvedResult())
		require.NoError(t, err)
		record, err := store.Lookup(ctx, " dsa1060_a")

		//** Assert
		require.NoError(t, err)
		assert.NoError(t, uuid.Validate(id))
		assert.Equal(t, "DSA1060_A", record.Course)
		assert.Equal(t, *solvedResult().Assignment["DSA1060_A"].Main, *record.Main)
		assert.Equal(t, *solvedResult().Assignment["DSA1060_A"].Dual, *record.Dual)
	})

	t.Run("Single session course", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Save(ctx, solvedResult())
		require.NoError(t, err)

		record, err := store.Lookup(ctx, "STA1020_A")

		require.NoError(t, err)
		assert.Nil(t, record.Dual)
		assert.Equal(t, model.Friday, record.Main.Day)
	})

	t.Run("Unknown course", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Save(ctx, solvedResult())
		require.NoError(t, err)

		_, err = store.Lookup(ctx, "MTH1040_A")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Empty store", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Lookup(ctx, "DSA1060_A")
		assert.ErrorIs(t, err, ErrNoSchedule)

		_, err = store.LatestRun(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Infeasible latest run hides older schedules", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Save(ctx, solvedResult())
		require.NoError(t, err)
		_, err = store.Save(ctx, model.Result{Status: model.Infeasible, Reason: "search exhausted"})
		require.NoError(t, err)

		_, err = store.Lookup(ctx, "DSA1060_A")

		assert.ErrorIs(t, err, ErrNoSchedule)
	})

	t.Run("Result without a status is refused", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Save(ctx, model.Result{})
		assert.Error(t, err)

		_, err = store.LatestRun(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Latest run", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Save(ctx, model.Result{Status: model.SearchLimit, Reason: "node limit reached"})
		require.NoError(t, err)
		id, err := store.Save(ctx, solvedResult())
		require.NoError(t, err)

		run, err := store.LatestRun(ctx)

		require.NoError(t, err)
		assert.Equal(t, id, run.ID)
		assert.Equal(t, model.Solved, run.Status)
		assert.Equal(t, 2, run.Courses)
		assert.Equal(t, solvedResult().Stats, run.Stats)
		assert.WithinDuration(t, time.Now(), run.CreatedAt, time.Minute)
	})

	t.Run("File database persists across opens", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runs.db")
		store, err := NewSQLite(path)
		require.NoError(t, err)
		_, err = store.Save(ctx, solvedResult())
		require.NoError(t, err)
		require.NoError(t, store.Close())

		reopened, err := NewSQLite(path)
		require.NoError(t, err)
		defer reopened.Close()
		record, err := reopened.Lookup(ctx, "STA1020_A")

		require.NoError(t, err)
		assert.Equal(t, "STA_Lec3", record.Main.Lecturer)
	})
}
