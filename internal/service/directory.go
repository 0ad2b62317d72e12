package service

import (
	"context"
	"errors"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/identity"
	"compass-backend/internal/repo"
)

// directory joins identity-provider profiles with locally stored roles.
type directory struct {
	users domain.UserRepository
	idp   identity.Client
}

func newDirectory(r *repo.Repository, idp identity.Client) *directory {
	return &directory{users: r.Users, idp: idp}
}

// user returns nil without error when the provider does not know id.
func (d *directory) user(ctx context.Context, id string) (*dto.UserDto, error) {
	p, err := d.idp.FetchProfile(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	role := domain.RoleNone
	if u, err := d.users.FindByID(ctx, id); err == nil {
		role = u.Role
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if p.UserID == "" {
		p.UserID = id
	}
	out := dto.NewUserDto(*p, role)
	return &out, nil
}

// all returns every provider profile that has a local user row, keyed by id.
func (d *directory) all(ctx context.Context) (map[string]dto.UserDto, error) {
	profiles, err := d.idp.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	local, err := d.users.List(ctx)
	if err != nil {
		return nil, err
	}
	roles := make(map[string]domain.Role, len(local))
	for _, u := range local {
		roles[u.ID] = u.Role
	}
	out := make(map[string]dto.UserDto, len(profiles))
	for _, p := range profiles {
		role, ok := roles[p.UserID]
		if !ok {
			continue
		}
		out[p.UserID] = dto.NewUserDto(p, role)
	}
	return out, nil
}

func lookup(users map[string]dto.UserDto, id string) *dto.UserDto {
	u, ok := users[id]
	if !ok {
		return nil
	}
	return &u
}
