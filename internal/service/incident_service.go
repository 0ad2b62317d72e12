package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/repo"
)

type IncidentService interface {
	Create(ctx context.Context, req *dto.IncidentRequest, p domain.Principal) (*dto.IncidentDto, error)
	Update(ctx context.Context, req *dto.IncidentRequest, p domain.Principal) (*dto.IncidentDto, error)
	Delete(ctx context.Context, id uint64, p domain.Principal) error
	List(ctx context.Context, p domain.Principal) ([]dto.IncidentDto, error)
}

type incidentService struct {
	repo   *repo.Repository
	dir    *directory
	logger *zap.Logger
}

func NewIncidentService(r *repo.Repository, dir *directory, logger *zap.Logger) IncidentService {
	return &incidentService{repo: r, dir: dir, logger: logger}
}

// Create attaches the incident to the reported user's sheet for the date,
// creating an empty sheet when none exists yet.
func (s *incidentService) Create(ctx context.Context, req *dto.IncidentRequest, p domain.Principal) (*dto.IncidentDto, error) {
	if !p.Role.IsPrivileged() {
		return nil, domain.ErrNotPrivileged
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	userID := p.ID
	if req.User != nil && req.User.UserID != "" {
		userID = req.User.UserID
	}
	sheet, err := s.sheetFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	i := &domain.Incident{Title: req.Title, Description: req.Description, DaySheetID: sheet.ID}
	if err := s.repo.Incidents.Create(ctx, i); err != nil {
		s.logger.Error("create incident failed", zap.Uint64("day_sheet_id", sheet.ID), zap.Error(err))
		return nil, err
	}
	return &dto.IncidentDto{ID: i.ID, Title: i.Title, Description: i.Description, Date: sheet.Date}, nil
}

func (s *incidentService) sheetFor(ctx context.Context, userID, date string) (*domain.DaySheet, error) {
	sheet, err := s.repo.DaySheets.FindByOwnerAndDate(ctx, userID, date)
	if err == nil {
		return sheet, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	if _, err := s.repo.Users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	sheet = &domain.DaySheet{OwnerID: userID, Date: date}
	err = s.repo.DaySheets.Create(ctx, sheet)
	if errors.Is(err, domain.ErrDaySheetExists) {
		// created concurrently
		return s.repo.DaySheets.FindByOwnerAndDate(ctx, userID, date)
	}
	if err != nil {
		s.logger.Error("create day sheet for incident failed", zap.String("owner", userID), zap.Error(err))
		return nil, err
	}
	return sheet, nil
}

// Update changes title and description only.
func (s *incidentService) Update(ctx context.Context, req *dto.IncidentRequest, p domain.Principal) (*dto.IncidentDto, error) {
	if !p.Role.IsPrivileged() {
		return nil, domain.ErrNotPrivileged
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	i, err := s.repo.Incidents.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	i.Title = req.Title
	i.Description = req.Description
	if err := s.repo.Incidents.Update(ctx, i); err != nil {
		if !isNotFound(err) {
			s.logger.Error("update incident failed", zap.Uint64("id", i.ID), zap.Error(err))
		}
		return nil, err
	}
	out := dto.IncidentDto{ID: i.ID, Title: i.Title, Description: i.Description}
	if i.DaySheet != nil {
		out.Date = i.DaySheet.Date
	}
	return &out, nil
}

func (s *incidentService) Delete(ctx context.Context, id uint64, p domain.Principal) error {
	if !p.Role.IsPrivileged() {
		return domain.ErrNotPrivileged
	}
	return s.repo.Incidents.Delete(ctx, id)
}

// List attaches the day-sheet owner's profile to every incident.
func (s *incidentService) List(ctx context.Context, p domain.Principal) ([]dto.IncidentDto, error) {
	if !p.Role.IsPrivileged() {
		return nil, domain.ErrNotPrivileged
	}
	incidents, err := s.repo.Incidents.List(ctx)
	if err != nil {
		s.logger.Error("list incidents failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.IncidentDto, 0, len(incidents))
	if len(incidents) == 0 {
		return out, nil
	}
	users, err := s.dir.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, i := range incidents {
		v := dto.IncidentDto{ID: i.ID, Title: i.Title, Description: i.Description}
		if i.DaySheet != nil {
			v.Date = i.DaySheet.Date
			v.User = lookup(users, i.DaySheet.OwnerID)
		}
		out = append(out, v)
	}
	return out, nil
}
