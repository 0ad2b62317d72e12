package service

import (
	"context"

	"go.uber.org/zap"

	"compass-backend/internal/identity"
	"compass-backend/internal/repo"
)

// Pinger reports whether the backing database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	CommitID           string
	EnforceRatingRange bool
}

// Service is the entry point the transport layer is wired against.
type Service struct {
	DaySheet  DaySheetService
	Timestamp TimestampService
	Rating    RatingService
	Category  CategoryService
	Incident  IncidentService
	User      UserService
	System    SystemService
	Export    ExportService
}

func New(r *repo.Repository, idp identity.Client, db Pinger, opts Options, logger *zap.Logger) *Service {
	dir := newDirectory(r, idp)
	return &Service{
		DaySheet:  NewDaySheetService(r, dir, logger),
		Timestamp: NewTimestampService(r, logger),
		Rating:    NewRatingService(r, opts.EnforceRatingRange, logger),
		Category:  NewCategoryService(r, dir, logger),
		Incident:  NewIncidentService(r, dir, logger),
		User:      NewUserService(r, idp, logger),
		System:    NewSystemService(opts.CommitID, db, idp, logger),
		Export:    NewExportService(r, dir, logger),
	}
}
