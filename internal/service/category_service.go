package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/repo"
)

type CategoryService interface {
	Create(ctx context.Context, req *dto.CategoryRequest, p domain.Principal) (*dto.CategoryDto, error)
	LinkOwners(ctx context.Context, req *dto.CategoryRequest, p domain.Principal) (*dto.CategoryDto, error)
	ListForUser(ctx context.Context, userID string) ([]dto.CategoryDto, error)
	List(ctx context.Context) ([]dto.CategoryDto, error)
}

type categoryService struct {
	repo   *repo.Repository
	dir    *directory
	logger *zap.Logger
}

func NewCategoryService(r *repo.Repository, dir *directory, logger *zap.Logger) CategoryService {
	return &categoryService{repo: r, dir: dir, logger: logger}
}

func (s *categoryService) Create(ctx context.Context, req *dto.CategoryRequest, p domain.Principal) (*dto.CategoryDto, error) {
	if !p.Role.IsPrivileged() {
		return nil, domain.ErrNotPrivileged
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.MinimumValue > req.MaximumValue {
		return nil, domain.ErrCategoryBounds
	}
	if _, err := s.repo.Categories.FindByName(ctx, name); err == nil {
		return nil, domain.ErrCategoryExists
	} else if !isNotFound(err) {
		return nil, err
	}
	owners, err := s.owners(ctx, req.CategoryOwners)
	if err != nil {
		return nil, err
	}

	c := &domain.Category{
		Name:         name,
		MinimumValue: req.MinimumValue,
		MaximumValue: req.MaximumValue,
		Owners:       owners,
	}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		if !isConflict(err) {
			s.logger.Error("create category failed", zap.String("name", name), zap.Error(err))
		}
		return nil, err
	}
	s.logger.Info("category created", zap.Uint64("id", c.ID), zap.String("name", name), zap.Int("owners", len(owners)))
	return s.withProfiles(ctx, c)
}

// LinkOwners merges new owners into a personal category. Global categories stay global.
func (s *categoryService) LinkOwners(ctx context.Context, req *dto.CategoryRequest, p domain.Principal) (*dto.CategoryDto, error) {
	if !p.Role.IsPrivileged() {
		return nil, domain.ErrNotPrivileged
	}
	c, err := s.repo.Categories.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if c.IsGlobal() {
		return nil, domain.ErrGlobalCategoryLink
	}
	owners, err := s.owners(ctx, req.CategoryOwners)
	if err != nil {
		return nil, err
	}
	fresh := make([]domain.User, 0, len(owners))
	for _, o := range owners {
		if !c.HasOwner(o.ID) {
			fresh = append(fresh, o)
		}
	}
	if err := s.repo.Categories.AddOwners(ctx, c, fresh); err != nil {
		s.logger.Error("link category owners failed", zap.Uint64("id", c.ID), zap.Error(err))
		return nil, err
	}
	c, err = s.repo.Categories.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return s.withProfiles(ctx, c)
}

// ListForUser returns global categories followed by the user's personal ones,
// without owner lists.
func (s *categoryService) ListForUser(ctx context.Context, userID string) ([]dto.CategoryDto, error) {
	u, err := s.repo.Users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotParticipant
		}
		return nil, err
	}
	if u.Role != domain.RoleParticipant {
		return nil, domain.ErrNotParticipant
	}
	global, err := s.repo.Categories.ListGlobal(ctx)
	if err != nil {
		s.logger.Error("list global categories failed", zap.Error(err))
		return nil, err
	}
	personal, err := s.repo.Categories.ListOwnedBy(ctx, userID)
	if err != nil {
		s.logger.Error("list personal categories failed", zap.String("user", userID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.CategoryDto, 0, len(global)+len(personal))
	for _, c := range append(global, personal...) {
		out = append(out, dto.NewCategoryDto(c))
	}
	return out, nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryDto, error) {
	cats, err := s.repo.Categories.List(ctx)
	if err != nil {
		s.logger.Error("list categories failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.CategoryDto, 0, len(cats))
	if len(cats) == 0 {
		return out, nil
	}
	users, err := s.dir.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		out = append(out, categoryWithOwners(c, users))
	}
	return out, nil
}

// owners resolves refs to stored users; each must be a participant.
func (s *categoryService) owners(ctx context.Context, refs []dto.UserRef) ([]domain.User, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, r := range refs {
		if r.UserID == "" || seen[r.UserID] {
			continue
		}
		seen[r.UserID] = true
		ids = append(ids, r.UserID)
	}
	users, err := s.repo.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, domain.ErrInvalidCategoryOwner
	}
	for _, u := range users {
		if !domain.IsValidOwner(u) {
			return nil, domain.ErrInvalidCategoryOwner
		}
	}
	return users, nil
}

func (s *categoryService) withProfiles(ctx context.Context, c *domain.Category) (*dto.CategoryDto, error) {
	users := map[string]dto.UserDto{}
	if !c.IsGlobal() {
		var err error
		if users, err = s.dir.all(ctx); err != nil {
			return nil, err
		}
	}
	out := categoryWithOwners(*c, users)
	return &out, nil
}

// categoryWithOwners falls back to the local record when the provider has no profile.
func categoryWithOwners(c domain.Category, users map[string]dto.UserDto) dto.CategoryDto {
	out := dto.NewCategoryDto(c)
	for _, o := range c.Owners {
		if u := lookup(users, o.ID); u != nil {
			out.CategoryOwners = append(out.CategoryOwners, *u)
			continue
		}
		out.CategoryOwners = append(out.CategoryOwners, dto.UserDto{UserID: o.ID, Role: o.Role})
	}
	return out
}
