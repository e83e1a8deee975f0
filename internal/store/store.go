package store

import (
	"errors"
	"time"

	"github.com/limaJavier/labscheduling/pkg/model"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrNoSchedule = errors.New("no schedule stored")
)

// Run is the stored summary of one solve
type Run struct {
	ID        string
	CreatedAt time.Time
	Status    model.Status
	Reason    string
	Stats     model.SearchStats
	Courses   int
}
