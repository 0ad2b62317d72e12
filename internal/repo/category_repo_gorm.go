package repo

import (
	"context"

	"gorm.io/gorm"

	"compass-backend/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	// owners already exist; only the join rows are written
	err := r.db.WithContext(ctx).Omit("Owners.*").Create(c).Error
	if isDupKey(err) {
		return domain.ErrCategoryExists
	}
	return err
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uint64) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).Preload("Owners").First(&c, id).Error; err != nil {
		return nil, notFound(err, domain.ErrCategoryNotFound)
	}
	return &c, nil
}

func (r *CategoryRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Category, error) {
	var out []domain.Category
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).Preload("Owners").Where("name = ?", name).First(&c).Error; err != nil {
		return nil, notFound(err, domain.ErrCategoryNotFound)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.WithContext(ctx).Preload("Owners").Order("id").Find(&out).Error
	return out, err
}

// ListGlobal returns categories without any owner row.
func (r *CategoryRepo) ListGlobal(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM category_owners co WHERE co.category_id = categories.id)").
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *CategoryRepo) ListOwnedBy(ctx context.Context, userID string) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.WithContext(ctx).
		Joins("JOIN category_owners co ON co.category_id = categories.id").
		Where("co.user_id = ?", userID).
		Order("categories.id").
		Find(&out).Error
	return out, err
}

func (r *CategoryRepo) AddOwners(ctx context.Context, c *domain.Category, owners []domain.User) error {
	if len(owners) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Owners.*").Model(c).Association("Owners").Append(owners)
}
