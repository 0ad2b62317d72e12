package repo

import (
	"context"

	"gorm.io/gorm"

	"compass-backend/internal/domain"
)

// Repository bundles the stores the services depend on. Fields are interfaces
// so tests can swap in memory-backed fakes.
type Repository struct {
	db *gorm.DB

	Users      domain.UserRepository
	DaySheets  domain.DaySheetRepository
	Timestamps domain.TimestampRepository
	Categories domain.CategoryRepository
	Ratings    domain.RatingRepository
	Incidents  domain.IncidentRepository
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Users:      NewUserRepo(db),
		DaySheets:  NewDaySheetRepo(db),
		Timestamps: NewTimestampRepo(db),
		Categories: NewCategoryRepo(db),
		Ratings:    NewRatingRepo(db),
		Incidents:  NewIncidentRepo(db),
	}
}

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Category{},
		&domain.DaySheet{},
		&domain.Timestamp{},
		&domain.Rating{},
		&domain.Incident{},
	}
}

func (r *Repository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(Models()...)
}

// Ping checks that the underlying connection pool can reach the database.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
