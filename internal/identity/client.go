// Package identity talks to the external identity provider that owns user
// profiles (email, names, blocked flag). Only the role is kept locally.
package identity

import (
	"context"
	"fmt"

	"compass-backend/internal/domain"
)

// ErrUnavailable is returned when the provider cannot be reached or answers
// with a server-side failure.
var ErrUnavailable = fmt.Errorf("identity provider unreachable: %w", domain.ErrUnavailable)

type Client interface {
	FetchProfile(ctx context.Context, id string) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	CreateProfile(ctx context.Context, in NewProfile) (*domain.Profile, error)
	PatchProfile(ctx context.Context, id string, in ProfilePatch) (*domain.Profile, error)
	Ping(ctx context.Context) error
}

type NewProfile struct {
	Email      string
	GivenName  string
	FamilyName string
	Password   string
	Connection string
}

// ProfilePatch leaves zero-valued fields untouched on the provider side.
type ProfilePatch struct {
	Email      string
	GivenName  string
	FamilyName string
	Blocked    *bool
}
