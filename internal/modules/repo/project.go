package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetByEnginePath(ctx context.Context, enginePath string) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// AddAsset inserts a membership row; returns false when the pair already
	// exists. AddAssets returns how many rows were actually inserted.
	AddAsset(ctx context.Context, pa *model.ProjectAsset) (bool, error)
	AddAssets(ctx context.Context, pas []*model.ProjectAsset) (int, error)
	RemoveAsset(ctx context.Context, projectID, assetID uuid.UUID) (bool, error)

	AssetsOf(ctx context.Context, projectID uuid.UUID) ([]*model.Asset, error)
	ProjectsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Project, error)
	MemberCount(ctx context.Context, projectID uuid.UUID) (int64, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) GetByEnginePath(ctx context.Context, enginePath string) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).
		Where("engine_path = ? AND is_deleted = ?", enginePath, false).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	return projects, r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&projects).Error
}

func (r *projectRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *projectRepo) AddAsset(ctx context.Context, pa *model.ProjectAsset) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(pa)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *projectRepo) AddAssets(ctx context.Context, pas []*model.ProjectAsset) (int, error) {
	added := 0
	for _, pa := range pas {
		ok, err := r.AddAsset(ctx, pa)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

func (r *projectRepo) RemoveAsset(ctx context.Context, projectID, assetID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND asset_id = ?", projectID, assetID).
		Delete(&model.ProjectAsset{})
	return res.RowsAffected > 0, res.Error
}

func (r *projectRepo) AssetsOf(ctx context.Context, projectID uuid.UUID) ([]*model.Asset, error) {
	var assets []*model.Asset
	return assets, r.db.WithContext(ctx).
		Joins("INNER JOIN project_assets ON project_assets.asset_id = assets.id").
		Where("project_assets.project_id = ? AND assets.is_deleted = ?", projectID, false).
		Order("assets.created_at DESC").
		Find(&assets).Error
}

func (r *projectRepo) ProjectsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Project, error) {
	var projects []*model.Project
	return projects, r.db.WithContext(ctx).
		Joins("INNER JOIN project_assets ON project_assets.project_id = projects.id").
		Where("project_assets.asset_id = ? AND projects.is_deleted = ?", assetID, false).
		Order("projects.created_at DESC").
		Find(&projects).Error
}

func (r *projectRepo) MemberCount(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var n int64
	return n, r.db.WithContext(ctx).
		Model(&model.ProjectAsset{}).
		Where("project_id = ?", projectID).
		Count(&n).Error
}
