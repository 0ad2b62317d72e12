package domain

import (
	"context"
	"time"
)

// Rating is one value on a category scale for a day sheet. At most one per
// (day sheet, category, rating role).
type Rating struct {
	ID         uint64     `gorm:"primaryKey"`
	Value      int        `gorm:"column:rating;not null"`
	RatingRole RatingRole `gorm:"size:16;not null;uniqueIndex:uidx_rating_sheet_category_role,priority:3"`
	CategoryID uint64     `gorm:"not null;uniqueIndex:uidx_rating_sheet_category_role,priority:2"`
	Category   *Category  `gorm:"foreignKey:CategoryID"`
	DaySheetID uint64     `gorm:"not null;uniqueIndex:uidx_rating_sheet_category_role,priority:1"`
	CreatedAt  time.Time
}

func (Rating) TableName() string { return "ratings" }

type RatingRepository interface {
	ListByDaySheet(ctx context.Context, daySheetID uint64) ([]Rating, error)
	CreateBatch(ctx context.Context, ratings []Rating) error
}
