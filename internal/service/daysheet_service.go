package service

import (
	"context"

	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/repo"
)

type DaySheetService interface {
	Create(ctx context.Context, req *dto.CreateDaySheetRequest, p domain.Principal) (*dto.DaySheetDto, error)
	GetByID(ctx context.Context, id uint64, p domain.Principal) (*dto.DaySheetDto, error)
	GetByDate(ctx context.Context, date string, p domain.Principal) (*dto.DaySheetDto, error)
	GetByParticipantAndDate(ctx context.Context, ownerID, date string, p domain.Principal) (*dto.DaySheetDto, error)
	ListUnconfirmed(ctx context.Context, p domain.Principal) ([]dto.DaySheetDto, error)
	ListByMonth(ctx context.Context, month string, p domain.Principal) ([]dto.DaySheetDto, error)
	ListByOwnerAndMonth(ctx context.Context, ownerID, month string, p domain.Principal) ([]dto.DaySheetDto, error)
	UpdateNotes(ctx context.Context, req *dto.UpdateDayNotesRequest, p domain.Principal) (*dto.DaySheetDto, error)
	SetConfirmed(ctx context.Context, id uint64, confirmed bool, p domain.Principal) (*dto.DaySheetDto, error)
	Delete(ctx context.Context, id uint64, p domain.Principal) error
}

type daySheetService struct {
	repo   *repo.Repository
	dir    *directory
	logger *zap.Logger
}

func NewDaySheetService(r *repo.Repository, dir *directory, logger *zap.Logger) DaySheetService {
	return &daySheetService{repo: r, dir: dir, logger: logger}
}

// Create stores a blank sheet for (owner, date). Privileged callers may name
// another owner; everyone else always creates their own.
func (s *daySheetService) Create(ctx context.Context, req *dto.CreateDaySheetRequest, p domain.Principal) (*dto.DaySheetDto, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	ownerID := p.ID
	if p.Role.IsPrivileged() && req.Owner != nil && req.Owner.UserID != "" {
		ownerID = req.Owner.UserID
	}
	if _, err := s.repo.Users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if _, err := s.repo.DaySheets.FindByOwnerAndDate(ctx, ownerID, date); err == nil {
		return nil, domain.ErrDaySheetExists
	} else if !isNotFound(err) {
		s.logger.Error("day sheet lookup failed", zap.String("owner", ownerID), zap.Error(err))
		return nil, err
	}

	d := &domain.DaySheet{Date: date, DayNotes: req.DayNotes, OwnerID: ownerID}
	if err := s.repo.DaySheets.Create(ctx, d); err != nil {
		if !isConflict(err) {
			s.logger.Error("create day sheet failed", zap.String("owner", ownerID), zap.Error(err))
		}
		return nil, err
	}
	view := buildDaySheetView(d, p.Role, nil)
	return &view, nil
}

// GetByID hides sheets of other owners behind NotFound for unprivileged callers.
func (s *daySheetService) GetByID(ctx context.Context, id uint64, p domain.Principal) (*dto.DaySheetDto, error) {
	d, err := s.repo.DaySheets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(d.OwnerID) {
		return nil, domain.ErrDaySheetNotFound
	}
	owner, err := s.dir.user(ctx, d.OwnerID)
	if err != nil {
		s.logger.Error("owner profile lookup failed", zap.String("owner", d.OwnerID), zap.Error(err))
		return nil, err
	}
	view := buildDaySheetView(d, p.Role, owner)
	return &view, nil
}

func (s *daySheetService) GetByDate(ctx context.Context, date string, p domain.Principal) (*dto.DaySheetDto, error) {
	return s.getByOwnerAndDate(ctx, p.ID, date, p)
}

func (s *daySheetService) GetByParticipantAndDate(ctx context.Context, ownerID, date string, p domain.Principal) (*dto.DaySheetDto, error) {
	if !p.CanAccess(ownerID) {
		return nil, domain.ErrDaySheetNotFound
	}
	return s.getByOwnerAndDate(ctx, ownerID, date, p)
}

func (s *daySheetService) getByOwnerAndDate(ctx context.Context, ownerID, date string, p domain.Principal) (*dto.DaySheetDto, error) {
	date, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.DaySheets.FindByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	view := buildDaySheetView(d, p.Role, nil)
	return &view, nil
}

func (s *daySheetService) ListUnconfirmed(ctx context.Context, p domain.Principal) ([]dto.DaySheetDto, error) {
	if !p.Role.IsPrivileged() {
		return nil, domain.ErrNotPrivileged
	}
	sheets, err := s.repo.DaySheets.ListUnconfirmedByOwnerRole(ctx, domain.RoleParticipant)
	if err != nil {
		s.logger.Error("list unconfirmed day sheets failed", zap.Error(err))
		return nil, err
	}
	return s.viewsWithOwners(ctx, sheets, p)
}

func (s *daySheetService) ListByMonth(ctx context.Context, month string, p domain.Principal) ([]dto.DaySheetDto, error) {
	if !p.Role.IsPrivileged() {
		return nil, domain.ErrNotPrivileged
	}
	from, to, err := domain.MonthRange(month)
	if err != nil {
		return nil, err
	}
	sheets, err := s.repo.DaySheets.ListBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("list day sheets by month failed", zap.String("month", month), zap.Error(err))
		return nil, err
	}
	return s.viewsWithOwners(ctx, sheets, p)
}

// ListByOwnerAndMonth is open to privileged callers and to the owner.
func (s *daySheetService) ListByOwnerAndMonth(ctx context.Context, ownerID, month string, p domain.Principal) ([]dto.DaySheetDto, error) {
	if !p.CanAccess(ownerID) {
		return nil, domain.ErrNotPrivileged
	}
	from, to, err := domain.MonthRange(month)
	if err != nil {
		return nil, err
	}
	sheets, err := s.repo.DaySheets.ListByOwnerBetween(ctx, ownerID, from, to)
	if err != nil {
		s.logger.Error("list owner day sheets failed", zap.String("owner", ownerID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.DaySheetDto, 0, len(sheets))
	for i := range sheets {
		out = append(out, buildDaySheetView(&sheets[i], p.Role, nil))
	}
	return out, nil
}

func (s *daySheetService) UpdateNotes(ctx context.Context, req *dto.UpdateDayNotesRequest, p domain.Principal) (*dto.DaySheetDto, error) {
	if !p.Role.IsPrivileged() {
		return nil, domain.ErrNotPrivileged
	}
	if err := s.repo.DaySheets.UpdateNotes(ctx, req.ID, req.DayNotes); err != nil {
		return nil, err
	}
	return s.reload(ctx, req.ID, p)
}

func (s *daySheetService) SetConfirmed(ctx context.Context, id uint64, confirmed bool, p domain.Principal) (*dto.DaySheetDto, error) {
	if !p.Role.IsPrivileged() {
		return nil, domain.ErrNotPrivileged
	}
	if err := s.repo.DaySheets.SetConfirmed(ctx, id, confirmed); err != nil {
		return nil, err
	}
	s.logger.Info("day sheet confirmation changed",
		zap.Uint64("id", id), zap.Bool("confirmed", confirmed), zap.String("by", p.ID))
	return s.reload(ctx, id, p)
}

func (s *daySheetService) Delete(ctx context.Context, id uint64, p domain.Principal) error {
	if !p.Role.IsPrivileged() {
		return domain.ErrNotPrivileged
	}
	if err := s.repo.DaySheets.Delete(ctx, id); err != nil {
		if !isNotFound(err) {
			s.logger.Error("delete day sheet failed", zap.Uint64("id", id), zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *daySheetService) reload(ctx context.Context, id uint64, p domain.Principal) (*dto.DaySheetDto, error) {
	d, err := s.repo.DaySheets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := buildDaySheetView(d, p.Role, nil)
	return &view, nil
}

func (s *daySheetService) viewsWithOwners(ctx context.Context, sheets []domain.DaySheet, p domain.Principal) ([]dto.DaySheetDto, error) {
	out := make([]dto.DaySheetDto, 0, len(sheets))
	if len(sheets) == 0 {
		return out, nil
	}
	users, err := s.dir.all(ctx)
	if err != nil {
		s.logger.Error("list profiles failed", zap.Error(err))
		return nil, err
	}
	for i := range sheets {
		out = append(out, buildDaySheetView(&sheets[i], p.Role, lookup(users, sheets[i].OwnerID)))
	}
	return out, nil
}
