package repo

import (
	"context"

	"gorm.io/gorm"

	"compass-backend/internal/domain"
)

type TimestampRepo struct{ db *gorm.DB }

func NewTimestampRepo(db *gorm.DB) *TimestampRepo { return &TimestampRepo{db: db} }

func (r *TimestampRepo) Create(ctx context.Context, t *domain.Timestamp) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TimestampRepo) FindByID(ctx context.Context, id uint64) (*domain.Timestamp, error) {
	var t domain.Timestamp
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound(err, domain.ErrTimestampNotFound)
	}
	return &t, nil
}

func (r *TimestampRepo) ListByDaySheet(ctx context.Context, daySheetID uint64) ([]domain.Timestamp, error) {
	var out []domain.Timestamp
	err := r.db.WithContext(ctx).
		Where("day_sheet_id = ?", daySheetID).
		Order("start_time, id").
		Find(&out).Error
	return out, err
}

func (r *TimestampRepo) Update(ctx context.Context, t *domain.Timestamp) error {
	res := r.db.WithContext(ctx).Model(&domain.Timestamp{}).Where("id = ?", t.ID).
		Updates(map[string]any{"start_time": t.StartTime, "end_time": t.EndTime})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTimestampNotFound
	}
	return nil
}

func (r *TimestampRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Timestamp{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTimestampNotFound
	}
	return nil
}
