package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/identity"
	"compass-backend/internal/repo"
)

type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, p domain.Principal) (*dto.UserDto, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, p domain.Principal) (*dto.UserDto, error)
	Block(ctx context.Context, id string, p domain.Principal) (*dto.UserDto, error)
	Restore(ctx context.Context, id string, p domain.Principal) (*dto.UserDto, error)
	Get(ctx context.Context, id string) (*dto.UserDto, error)
	List(ctx context.Context) ([]dto.UserDto, error)
	ListParticipants(ctx context.Context) ([]dto.UserDto, error)
}

type userService struct {
	repo   *repo.Repository
	idp    identity.Client
	dir    *directory
	logger *zap.Logger
}

func NewUserService(r *repo.Repository, idp identity.Client, logger *zap.Logger) UserService {
	return &userService{repo: r, idp: idp, dir: newDirectory(r, idp), logger: logger}
}

// Create registers the account with the identity provider, then stores its role locally.
func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, p domain.Principal) (*dto.UserDto, error) {
	if p.Role != domain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	role, err := roleOrDefault(req.Role, domain.RoleNone)
	if err != nil {
		return nil, err
	}
	conn := req.Connection
	if conn == "" {
		conn = identity.DefaultConnection
	}
	prof, err := s.idp.CreateProfile(ctx, identity.NewProfile{
		Email:      req.Email,
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Password:   req.Password,
		Connection: conn,
	})
	if err != nil {
		s.logger.Warn("identity provider rejected user", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	if err := s.repo.Users.Save(ctx, &domain.User{ID: prof.UserID, Role: role}); err != nil {
		s.logger.Error("store user role failed", zap.String("user", prof.UserID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("user created", zap.String("user", prof.UserID), zap.String("role", string(role)))
	out := dto.NewUserDto(*prof, role)
	return &out, nil
}

// Update patches the provider profile; an empty role keeps the stored one.
func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, p domain.Principal) (*dto.UserDto, error) {
	if p.Role != domain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	return s.patch(ctx, id, identity.ProfilePatch{
		Email:      req.Email,
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Blocked:    req.Blocked,
	}, req.Role)
}

func (s *userService) Block(ctx context.Context, id string, p domain.Principal) (*dto.UserDto, error) {
	return s.setBlocked(ctx, id, true, p)
}

func (s *userService) Restore(ctx context.Context, id string, p domain.Principal) (*dto.UserDto, error) {
	return s.setBlocked(ctx, id, false, p)
}

func (s *userService) setBlocked(ctx context.Context, id string, blocked bool, p domain.Principal) (*dto.UserDto, error) {
	if p.Role != domain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	return s.patch(ctx, id, identity.ProfilePatch{Blocked: &blocked}, "")
}

func (s *userService) patch(ctx context.Context, id string, in identity.ProfilePatch, want domain.Role) (*dto.UserDto, error) {
	current := domain.RoleNone
	if u, err := s.repo.Users.FindByID(ctx, id); err == nil {
		current = u.Role
	} else if !isNotFound(err) {
		return nil, err
	}
	role, err := roleOrDefault(want, current)
	if err != nil {
		return nil, err
	}
	prof, err := s.idp.PatchProfile(ctx, id, in)
	if err != nil {
		s.logger.Warn("identity provider patch failed", zap.String("user", id), zap.Error(err))
		return nil, err
	}
	if err := s.repo.Users.Save(ctx, &domain.User{ID: id, Role: role}); err != nil {
		s.logger.Error("store user role failed", zap.String("user", id), zap.Error(err))
		return nil, err
	}
	if prof.UserID == "" {
		prof.UserID = id
	}
	out := dto.NewUserDto(*prof, role)
	return &out, nil
}

func (s *userService) Get(ctx context.Context, id string) (*dto.UserDto, error) {
	u, err := s.dir.user(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// List returns provider profiles that have a local role, ordered by id.
func (s *userService) List(ctx context.Context) ([]dto.UserDto, error) {
	users, err := s.dir.all(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.UserDto, 0, len(users))
	for _, u := range users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *userService) ListParticipants(ctx context.Context) ([]dto.UserDto, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserDto, 0, len(all))
	for _, u := range all {
		if u.Role == domain.RoleParticipant {
			out = append(out, u)
		}
	}
	return out, nil
}

func roleOrDefault(r, def domain.Role) (domain.Role, error) {
	if r == "" {
		return def, nil
	}
	role, ok := domain.ParseRole(string(r))
	if !ok {
		return "", domain.ErrInvalidInput
	}
	return role, nil
}
