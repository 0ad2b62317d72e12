package domain

import (
	"context"
	"time"
)

// User is the local record for an identity-provider account. Only the role lives here;
// profile fields are owned by the identity provider.
type User struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	Role      Role      `gorm:"size:16;not null;default:NO_ROLE;index" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Profile is the subset of identity-provider fields the service consumes.
type Profile struct {
	UserID     string
	Email      string
	GivenName  string
	FamilyName string
	Blocked    bool
}

// UserRepository persists local user roles.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDs(ctx context.Context, ids []string) ([]User, error)
	List(ctx context.Context) ([]User, error)
	Save(ctx context.Context, u *User) error
}
