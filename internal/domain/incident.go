package domain

import (
	"context"
	"time"
)

// Incident is a report attached to a day sheet.
type Incident struct {
	ID          uint64    `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	DaySheetID  uint64    `gorm:"not null;index"`
	DaySheet    *DaySheet `gorm:"foreignKey:DaySheetID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Incident) TableName() string { return "incidents" }

type IncidentRepository interface {
	Create(ctx context.Context, i *Incident) error
	FindByID(ctx context.Context, id uint64) (*Incident, error)
	Update(ctx context.Context, i *Incident) error
	Delete(ctx context.Context, id uint64) error
	// List preloads each incident's day sheet.
	List(ctx context.Context) ([]Incident, error)
}
