package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"gorm.io/gorm"
)

type StyleRepo interface {
	Create(ctx context.Context, m *model.StyleMigration) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.StyleMigration, error)
	ByOriginal(ctx context.Context, originalAssetID uuid.UUID) ([]*model.StyleMigration, error)
	ByStyle(ctx context.Context, styleTag string) ([]*model.StyleMigration, error)
	ByProject(ctx context.Context, projectID uuid.UUID) ([]*model.StyleMigration, error)
}

type styleRepo struct{ db *gorm.DB }

func NewStyleRepo(db *gorm.DB) StyleRepo {
	return &styleRepo{db: db}
}

func (r *styleRepo) Create(ctx context.Context, m *model.StyleMigration) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *styleRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.StyleMigration, error) {
	var m model.StyleMigration
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *styleRepo) ByOriginal(ctx context.Context, originalAssetID uuid.UUID) ([]*model.StyleMigration, error) {
	var ms []*model.StyleMigration
	return ms, r.db.WithContext(ctx).
		Where("original_asset_id = ?", originalAssetID).
		Order("created_at DESC").
		Find(&ms).Error
}

func (r *styleRepo) ByStyle(ctx context.Context, styleTag string) ([]*model.StyleMigration, error) {
	var ms []*model.StyleMigration
	return ms, r.db.WithContext(ctx).
		Where("style_tag = ?", styleTag).
		Order("created_at DESC").
		Find(&ms).Error
}

func (r *styleRepo) ByProject(ctx context.Context, projectID uuid.UUID) ([]*model.StyleMigration, error) {
	var ms []*model.StyleMigration
	return ms, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&ms).Error
}
