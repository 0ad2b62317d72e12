package repo

import (
	"context"

	"gorm.io/gorm"

	"compass-backend/internal/domain"
)

type DaySheetRepo struct{ db *gorm.DB }

func NewDaySheetRepo(db *gorm.DB) *DaySheetRepo { return &DaySheetRepo{db: db} }

// withChildren preloads everything the day-sheet view is assembled from.
func withChildren(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Owner").
		Preload("Timestamps", func(db *gorm.DB) *gorm.DB { return db.Order("start_time") }).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Ratings.Category").
		Preload("Incidents", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

func (r *DaySheetRepo) Create(ctx context.Context, d *domain.DaySheet) error {
	err := r.db.WithContext(ctx).Omit("Owner").Create(d).Error
	if isDupKey(err) {
		return domain.ErrDaySheetExists
	}
	return err
}

func (r *DaySheetRepo) FindByID(ctx context.Context, id uint64) (*domain.DaySheet, error) {
	var d domain.DaySheet
	if err := withChildren(r.db.WithContext(ctx)).First(&d, id).Error; err != nil {
		return nil, notFound(err, domain.ErrDaySheetNotFound)
	}
	return &d, nil
}

func (r *DaySheetRepo) FindByOwnerAndDate(ctx context.Context, ownerID, date string) (*domain.DaySheet, error) {
	var d domain.DaySheet
	err := withChildren(r.db.WithContext(ctx)).
		Where("owner_id = ? AND date = ?", ownerID, date).
		First(&d).Error
	if err != nil {
		return nil, notFound(err, domain.ErrDaySheetNotFound)
	}
	return &d, nil
}

func (r *DaySheetRepo) ListUnconfirmedByOwnerRole(ctx context.Context, role domain.Role) ([]domain.DaySheet, error) {
	var out []domain.DaySheet
	err := withChildren(r.db.WithContext(ctx)).
		Joins("JOIN users ON users.id = day_sheets.owner_id").
		Where("day_sheets.confirmed = ? AND users.role = ?", false, role).
		Order("day_sheets.date, day_sheets.id").
		Find(&out).Error
	return out, err
}

func (r *DaySheetRepo) ListBetween(ctx context.Context, from, to string) ([]domain.DaySheet, error) {
	var out []domain.DaySheet
	err := withChildren(r.db.WithContext(ctx)).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date, id").
		Find(&out).Error
	return out, err
}

func (r *DaySheetRepo) ListByOwnerBetween(ctx context.Context, ownerID, from, to string) ([]domain.DaySheet, error) {
	var out []domain.DaySheet
	err := withChildren(r.db.WithContext(ctx)).
		Where("owner_id = ? AND date BETWEEN ? AND ?", ownerID, from, to).
		Order("date, id").
		Find(&out).Error
	return out, err
}

func (r *DaySheetRepo) UpdateNotes(ctx context.Context, id uint64, notes string) error {
	return r.updateColumn(ctx, id, "day_notes", notes)
}

func (r *DaySheetRepo) SetConfirmed(ctx context.Context, id uint64, confirmed bool) error {
	return r.updateColumn(ctx, id, "confirmed", confirmed)
}

func (r *DaySheetRepo) updateColumn(ctx context.Context, id uint64, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&domain.DaySheet{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDaySheetNotFound
	}
	return nil
}

// Delete removes the sheet and its children in one transaction.
func (r *DaySheetRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&domain.Timestamp{}, &domain.Rating{}, &domain.Incident{}} {
			if err := tx.Where("day_sheet_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&domain.DaySheet{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrDaySheetNotFound
		}
		return nil
	})
}
