package handler

import (
	"context"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/service"
)

type stubTimestamps struct {
	service.TimestampService
	err error
	got *dto.TimestampRequest
}

func (s *stubTimestamps) Create(_ context.Context, req *dto.TimestampRequest, _ domain.Principal) (*dto.TimestampDto, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.TimestampDto{ID: 3, DaySheetID: req.DaySheetID, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func (s *stubTimestamps) Update(_ context.Context, req *dto.TimestampRequest, _ domain.Principal) (*dto.TimestampDto, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.TimestampDto{ID: req.ID, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func (s *stubTimestamps) Delete(_ context.Context, _ uint64, _ domain.Principal) error { return s.err }

type stubRatings struct {
	err        error
	daySheetID uint64
	reqs       []dto.CreateRatingRequest
}

func (s *stubRatings) CreateRatings(_ context.Context, id uint64, reqs []dto.CreateRatingRequest, p domain.Principal) ([]dto.RatingDto, error) {
	s.daySheetID, s.reqs = id, reqs
	if s.err != nil {
		return nil, s.err
	}
	out := make([]dto.RatingDto, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.RatingDto{
			Category:   dto.CategoryDto{ID: r.CategoryID, CategoryOwners: []dto.UserDto{}},
			Rating:     r.Rating,
			RatingRole: domain.RatingRoleFor(p.Role),
		})
	}
	return out, nil
}

type stubCategories struct {
	service.CategoryService
	err error
}

func (s *stubCategories) Create(_ context.Context, req *dto.CategoryRequest, _ domain.Principal) (*dto.CategoryDto, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CategoryDto{ID: 1, Name: req.Name, MinimumValue: req.MinimumValue, MaximumValue: req.MaximumValue, CategoryOwners: []dto.UserDto{}}, nil
}

func (s *stubCategories) ListForUser(_ context.Context, _ string) ([]dto.CategoryDto, error) {
	return []dto.CategoryDto{}, s.err
}

type stubIncidents struct {
	service.IncidentService
	list []dto.IncidentDto
	err  error
}

func (s *stubIncidents) List(_ context.Context, _ domain.Principal) ([]dto.IncidentDto, error) {
	return s.list, s.err
}

type stubUsers struct {
	service.UserService
	err     error
	updated string
}

func (s *stubUsers) Get(_ context.Context, id string) (*dto.UserDto, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UserDto{UserID: id, Role: domain.RoleParticipant}, nil
}

func (s *stubUsers) Update(_ context.Context, id string, req *dto.UpdateUserRequest, _ domain.Principal) (*dto.UserDto, error) {
	s.updated = id
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UserDto{UserID: id, GivenName: req.GivenName, Role: req.Role}, nil
}

type stubSystem struct{}

func (stubSystem) Status(context.Context) dto.SystemStatusDto {
	return dto.SystemStatusDto{CommitID: "abc123", BackendIsReachable: true, DatabaseIsReachable: true}
}
