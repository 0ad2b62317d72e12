package domain

import (
	"context"
	"time"
)

const DateLayout = "2006-01-02"

// DaySheet is the per-user, per-date record. Children are owned and deleted with it.
type DaySheet struct {
	ID        uint64 `gorm:"primaryKey"`
	Date      string `gorm:"size:10;not null;uniqueIndex:uidx_daysheet_owner_date,priority:2"`
	DayNotes  string `gorm:"type:text"`
	Confirmed bool   `gorm:"not null;default:false;index"`
	OwnerID   string `gorm:"size:128;not null;uniqueIndex:uidx_daysheet_owner_date,priority:1"`
	Owner     *User  `gorm:"foreignKey:OwnerID"`

	Timestamps []Timestamp `gorm:"foreignKey:DaySheetID;constraint:OnDelete:CASCADE"`
	Ratings    []Rating    `gorm:"foreignKey:DaySheetID;constraint:OnDelete:CASCADE"`
	Incidents  []Incident  `gorm:"foreignKey:DaySheetID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DaySheet) TableName() string { return "day_sheets" }

// ParseDate validates an ISO calendar date and returns it normalized.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

// MonthRange returns the first and last day of a YYYY-MM month, both inclusive.
func MonthRange(month string) (from, to string, err error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", ErrInvalidMonth
	}
	last := t.AddDate(0, 1, -1)
	return t.Format(DateLayout), last.Format(DateLayout), nil
}

// DaySheetRepository loads day sheets with their children preloaded.
type DaySheetRepository interface {
	Create(ctx context.Context, d *DaySheet) error
	FindByID(ctx context.Context, id uint64) (*DaySheet, error)
	FindByOwnerAndDate(ctx context.Context, ownerID, date string) (*DaySheet, error)
	ListUnconfirmedByOwnerRole(ctx context.Context, role Role) ([]DaySheet, error)
	ListBetween(ctx context.Context, from, to string) ([]DaySheet, error)
	ListByOwnerBetween(ctx context.Context, ownerID, from, to string) ([]DaySheet, error)
	UpdateNotes(ctx context.Context, id uint64, notes string) error
	SetConfirmed(ctx context.Context, id uint64, confirmed bool) error
	Delete(ctx context.Context, id uint64) error
}
