package service

import (
	"context"

	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/repo"
)

type RatingService interface {
	CreateRatings(ctx context.Context, daySheetID uint64, reqs []dto.CreateRatingRequest, p domain.Principal) ([]dto.RatingDto, error)
}

type ratingService struct {
	repo         *repo.Repository
	enforceRange bool
	logger       *zap.Logger
}

func NewRatingService(r *repo.Repository, enforceRange bool, logger *zap.Logger) RatingService {
	return &ratingService{repo: r, enforceRange: enforceRange, logger: logger}
}

// CreateRatings validates the whole batch before a single transactional insert.
// The rating role is derived from the submitter, so a sheet holds at most one
// participant and one social-worker rating per category.
func (s *ratingService) CreateRatings(ctx context.Context, daySheetID uint64, reqs []dto.CreateRatingRequest, p domain.Principal) ([]dto.RatingDto, error) {
	sheet, err := s.repo.DaySheets.FindByID(ctx, daySheetID)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(sheet.OwnerID) {
		return nil, domain.ErrDaySheetNotFound
	}

	ids := make([]uint64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.CategoryID)
	}
	found, err := s.repo.Categories.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("load categories failed", zap.Error(err))
		return nil, err
	}
	categories := make(map[uint64]domain.Category, len(found))
	for _, c := range found {
		categories[c.ID] = c
	}

	role := domain.RatingRoleFor(p.Role)
	taken := make(map[uint64]bool, len(sheet.Ratings)+len(reqs))
	for _, r := range sheet.Ratings {
		if r.RatingRole == role {
			taken[r.CategoryID] = true
		}
	}

	batch := make([]domain.Rating, 0, len(reqs))
	for _, r := range reqs {
		c, ok := categories[r.CategoryID]
		if !ok {
			return nil, domain.ErrCategoryNotFound
		}
		if taken[c.ID] {
			return nil, &domain.RatingConflictError{CategoryID: c.ID}
		}
		if s.enforceRange && !c.IsValidRating(r.Rating) {
			return nil, domain.ErrRatingOutOfRange
		}
		taken[c.ID] = true
		cat := c
		batch = append(batch, domain.Rating{
			Value:      r.Rating,
			RatingRole: role,
			CategoryID: c.ID,
			Category:   &cat,
			DaySheetID: sheet.ID,
		})
	}

	if err := s.repo.Ratings.CreateBatch(ctx, batch); err != nil {
		if !isConflict(err) {
			s.logger.Error("store ratings failed", zap.Uint64("day_sheet_id", sheet.ID), zap.Error(err))
		}
		return nil, err
	}
	s.logger.Debug("ratings stored",
		zap.Uint64("day_sheet_id", sheet.ID), zap.Int("count", len(batch)), zap.String("role", string(role)))

	out := make([]dto.RatingDto, 0, len(batch))
	for _, r := range batch {
		out = append(out, ratingDto(r))
	}
	return out, nil
}
