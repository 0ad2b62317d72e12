package service

import (
	"context"

	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/repo"
)

type TimestampService interface {
	Create(ctx context.Context, req *dto.TimestampRequest, p domain.Principal) (*dto.TimestampDto, error)
	Update(ctx context.Context, req *dto.TimestampRequest, p domain.Principal) (*dto.TimestampDto, error)
	Delete(ctx context.Context, id uint64, p domain.Principal) error
	GetByID(ctx context.Context, id uint64, p domain.Principal) (*dto.TimestampDto, error)
	ListByDaySheet(ctx context.Context, daySheetID uint64, p domain.Principal) ([]dto.TimestampDto, error)
}

type timestampService struct {
	repo   *repo.Repository
	logger *zap.Logger
}

func NewTimestampService(r *repo.Repository, logger *zap.Logger) TimestampService {
	return &timestampService{repo: r, logger: logger}
}

func (s *timestampService) Create(ctx context.Context, req *dto.TimestampRequest, p domain.Principal) (*dto.TimestampDto, error) {
	iv, err := parseInterval(0, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	sheet, err := s.writableSheet(ctx, req.DaySheetID, p)
	if err != nil {
		// an unknown sheet is a bad reference in the body, not a missing resource
		if isNotFound(err) {
			return nil, domain.ErrDaySheetReference
		}
		return nil, err
	}
	if err := s.validate(ctx, sheet.ID, iv); err != nil {
		return nil, err
	}

	t := &domain.Timestamp{
		DaySheetID: sheet.ID,
		StartTime:  domain.FormatTimeOfDay(iv.Start),
		EndTime:    domain.FormatTimeOfDay(iv.End),
	}
	if err := s.repo.Timestamps.Create(ctx, t); err != nil {
		s.logger.Error("create timestamp failed", zap.Uint64("day_sheet_id", sheet.ID), zap.Error(err))
		return nil, err
	}
	out := timestampDto(*t)
	return &out, nil
}

// Update keeps the interval on its stored day sheet; the body's day_sheet_id is ignored.
func (s *timestampService) Update(ctx context.Context, req *dto.TimestampRequest, p domain.Principal) (*dto.TimestampDto, error) {
	iv, err := parseInterval(req.ID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.Timestamps.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.writableSheet(ctx, t.DaySheetID, p); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, t.DaySheetID, iv); err != nil {
		return nil, err
	}

	t.StartTime = domain.FormatTimeOfDay(iv.Start)
	t.EndTime = domain.FormatTimeOfDay(iv.End)
	if err := s.repo.Timestamps.Update(ctx, t); err != nil {
		if !isNotFound(err) {
			s.logger.Error("update timestamp failed", zap.Uint64("id", t.ID), zap.Error(err))
		}
		return nil, err
	}
	out := timestampDto(*t)
	return &out, nil
}

func (s *timestampService) Delete(ctx context.Context, id uint64, p domain.Principal) error {
	t, err := s.repo.Timestamps.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.writableSheet(ctx, t.DaySheetID, p); err != nil {
		return err
	}
	if err := s.repo.Timestamps.Delete(ctx, id); err != nil {
		if !isNotFound(err) {
			s.logger.Error("delete timestamp failed", zap.Uint64("id", id), zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *timestampService) GetByID(ctx context.Context, id uint64, p domain.Principal) (*dto.TimestampDto, error) {
	t, err := s.repo.Timestamps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.visibleSheet(ctx, t.DaySheetID, p); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrTimestampNotFound
		}
		return nil, err
	}
	out := timestampDto(*t)
	return &out, nil
}

func (s *timestampService) ListByDaySheet(ctx context.Context, daySheetID uint64, p domain.Principal) ([]dto.TimestampDto, error) {
	if _, err := s.visibleSheet(ctx, daySheetID, p); err != nil {
		return nil, err
	}
	ts, err := s.repo.Timestamps.ListByDaySheet(ctx, daySheetID)
	if err != nil {
		s.logger.Error("list timestamps failed", zap.Uint64("day_sheet_id", daySheetID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.TimestampDto, 0, len(ts))
	for _, t := range ts {
		out = append(out, timestampDto(t))
	}
	return out, nil
}

// visibleSheet hides sheets the principal may not see behind NotFound.
func (s *timestampService) visibleSheet(ctx context.Context, id uint64, p domain.Principal) (*domain.DaySheet, error) {
	d, err := s.repo.DaySheets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(d.OwnerID) {
		return nil, domain.ErrDaySheetNotFound
	}
	return d, nil
}

// writableSheet additionally rejects confirmed sheets.
func (s *timestampService) writableSheet(ctx context.Context, id uint64, p domain.Principal) (*domain.DaySheet, error) {
	d, err := s.visibleSheet(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if d.Confirmed {
		return nil, domain.ErrDaySheetConfirmed
	}
	return d, nil
}

func (s *timestampService) validate(ctx context.Context, daySheetID uint64, iv domain.Interval) error {
	stored, err := s.repo.Timestamps.ListByDaySheet(ctx, daySheetID)
	if err != nil {
		s.logger.Error("list timestamps failed", zap.Uint64("day_sheet_id", daySheetID), zap.Error(err))
		return err
	}
	existing := make([]domain.Interval, 0, len(stored))
	for _, t := range stored {
		if e, ok := t.Interval(); ok {
			existing = append(existing, e)
		}
	}
	return domain.ValidateInterval(iv, existing)
}

// parseInterval rejects malformed times and reversed intervals before any lookup.
func parseInterval(id uint64, start, end string) (domain.Interval, error) {
	from, err := domain.ParseTimeOfDay(start)
	if err != nil {
		return domain.Interval{}, err
	}
	to, err := domain.ParseTimeOfDay(end)
	if err != nil {
		return domain.Interval{}, err
	}
	iv := domain.Interval{ID: id, Start: from, End: to}
	if iv.Start >= iv.End {
		return domain.Interval{}, domain.ErrIntervalOrder
	}
	return iv, nil
}
