package repo

import (
	"context"

	"gorm.io/gorm"

	"compass-backend/internal/domain"
)

type IncidentRepo struct{ db *gorm.DB }

func NewIncidentRepo(db *gorm.DB) *IncidentRepo { return &IncidentRepo{db: db} }

func (r *IncidentRepo) Create(ctx context.Context, i *domain.Incident) error {
	return r.db.WithContext(ctx).Omit("DaySheet").Create(i).Error
}

func (r *IncidentRepo) FindByID(ctx context.Context, id uint64) (*domain.Incident, error) {
	var i domain.Incident
	if err := r.db.WithContext(ctx).Preload("DaySheet").First(&i, id).Error; err != nil {
		return nil, notFound(err, domain.ErrIncidentNotFound)
	}
	return &i, nil
}

func (r *IncidentRepo) Update(ctx context.Context, i *domain.Incident) error {
	res := r.db.WithContext(ctx).Model(&domain.Incident{}).Where("id = ?", i.ID).
		Updates(map[string]any{"title": i.Title, "description": i.Description})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrIncidentNotFound
	}
	return nil
}

func (r *IncidentRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Incident{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrIncidentNotFound
	}
	return nil
}

func (r *IncidentRepo) List(ctx context.Context) ([]domain.Incident, error) {
	var out []domain.Incident
	err := r.db.WithContext(ctx).Preload("DaySheet").Order("id").Find(&out).Error
	return out, err
}
