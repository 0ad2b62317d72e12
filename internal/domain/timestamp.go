package domain

import (
	"context"
	"time"
)

// Timestamp is one worked time interval inside a day sheet. Times are wall-clock
// times of day stored as HH:MM:SS.
type Timestamp struct {
	ID         uint64 `gorm:"primaryKey"`
	DaySheetID uint64 `gorm:"not null;index"`
	StartTime  string `gorm:"size:8"`
	EndTime    string `gorm:"size:8"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Timestamp) TableName() string { return "timestamps" }

// Interval returns the parsed interval, ok=false when either bound is absent or malformed.
func (t Timestamp) Interval() (Interval, bool) {
	start, err := ParseTimeOfDay(t.StartTime)
	if err != nil {
		return Interval{}, false
	}
	end, err := ParseTimeOfDay(t.EndTime)
	if err != nil {
		return Interval{}, false
	}
	return Interval{ID: t.ID, Start: start, End: end}, true
}

// TimestampRepository persists time intervals.
type TimestampRepository interface {
	Create(ctx context.Context, t *Timestamp) error
	FindByID(ctx context.Context, id uint64) (*Timestamp, error)
	ListByDaySheet(ctx context.Context, daySheetID uint64) ([]Timestamp, error)
	Update(ctx context.Context, t *Timestamp) error
	Delete(ctx context.Context, id uint64) error
}
