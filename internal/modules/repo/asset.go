package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"gorm.io/gorm"
)

// AssetRepo owns the assets table. Lookups only see live (non-deleted) rows;
// Get* methods return (nil, nil) when no row matches.
type AssetRepo interface {
	Create(ctx context.Context, a *model.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	GetByDigest(ctx context.Context, digest string) (*model.Asset, error)
	GetByDigests(ctx context.Context, digests []string) ([]*model.Asset, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Asset, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Asset, error)
	ListBefore(ctx context.Context, before time.Time, beforeID uuid.UUID, limit int) ([]*model.Asset, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, a *model.Asset) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type assetRepo struct{ db *gorm.DB }

func NewAssetRepo(db *gorm.DB) AssetRepo {
	return &assetRepo{db: db}
}

func (r *assetRepo) Create(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assetRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var a model.Asset
	err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) GetByDigest(ctx context.Context, digest string) (*model.Asset, error) {
	var a model.Asset
	err := r.db.WithContext(ctx).
		Where("content_digest = ? AND is_deleted = ?", digest, false).
		Limit(1).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) GetByDigests(ctx context.Context, digests []string) ([]*model.Asset, error) {
	var assets []*model.Asset
	return assets, r.db.WithContext(ctx).
		Where("content_digest IN ? AND is_deleted = ?", digests, false).
		Find(&assets).Error
}

func (r *assetRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Asset, error) {
	if len(ids) == 0 {
		return []*model.Asset{}, nil
	}
	var assets []*model.Asset
	return assets, r.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Order("created_at DESC").
		Find(&assets).Error
}

func (r *assetRepo) List(ctx context.Context, page, pageSize int) ([]*model.Asset, error) {
	if page < 1 {
		page = 1
	}
	var assets []*model.Asset
	return assets, r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&assets).Error
}

// ListBefore pages by (created_at, id) keyset instead of offset; a zero
// before time means start from the newest row.
func (r *assetRepo) ListBefore(ctx context.Context, before time.Time, beforeID uuid.UUID, limit int) ([]*model.Asset, error) {
	q := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if !before.IsZero() {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)", before, before, beforeID)
	}
	var assets []*model.Asset
	return assets, q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&assets).Error
}

func (r *assetRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	return n, r.db.WithContext(ctx).
		Model(&model.Asset{}).
		Where("is_deleted = ?", false).
		Count(&n).Error
}

func (r *assetRepo) Update(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *assetRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.Asset{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
