package domain

import (
	"context"
	"time"
)

// Category is a rating scale. No owners means the category is global.
type Category struct {
	ID           uint64 `gorm:"primaryKey"`
	Name         string `gorm:"size:128;not null;uniqueIndex"`
	MinimumValue int    `gorm:"not null"`
	MaximumValue int    `gorm:"not null"`
	Owners       []User `gorm:"many2many:category_owners"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Category) TableName() string { return "categories" }

func (c Category) IsGlobal() bool { return len(c.Owners) == 0 }

// IsValidRating reports whether value lies within the inclusive bounds.
func (c Category) IsValidRating(value int) bool {
	return value >= c.MinimumValue && value <= c.MaximumValue
}

// IsValidOwner reports whether u may own a personal category.
func IsValidOwner(u User) bool { return u.Role == RoleParticipant }

// HasOwner reports whether id is already among the owners.
func (c Category) HasOwner(id string) bool {
	for _, o := range c.Owners {
		if o.ID == id {
			return true
		}
	}
	return false
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uint64) (*Category, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	ListGlobal(ctx context.Context) ([]Category, error)
	ListOwnedBy(ctx context.Context, userID string) ([]Category, error)
	AddOwners(ctx context.Context, c *Category, owners []User) error
}
