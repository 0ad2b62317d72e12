package repo

import (
	"context"

	"gorm.io/gorm"

	"compass-backend/internal/domain"
)

type RatingRepo struct{ db *gorm.DB }

func NewRatingRepo(db *gorm.DB) *RatingRepo { return &RatingRepo{db: db} }

func (r *RatingRepo) ListByDaySheet(ctx context.Context, daySheetID uint64) ([]domain.Rating, error) {
	var out []domain.Rating
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("day_sheet_id = ?", daySheetID).
		Order("id").
		Find(&out).Error
	return out, err
}

// CreateBatch inserts all ratings or none.
func (r *RatingRepo) CreateBatch(ctx context.Context, ratings []domain.Rating) error {
	if len(ratings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range ratings {
			err := tx.Omit("Category").Create(&ratings[i]).Error
			if isDupKey(err) {
				return &domain.RatingConflictError{CategoryID: ratings[i].CategoryID}
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
