package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo interface {
	Create(ctx context.Context, t *model.Tag) error
	GetByID(ctx context.Context, id uint) (*model.Tag, error)
	GetByName(ctx context.Context, name string) (*model.Tag, error)
	List(ctx context.Context, category string) ([]*model.Tag, error)
	Update(ctx context.Context, t *model.Tag) error
	Delete(ctx context.Context, id uint) error

	// Attach inserts an (asset, tag) pair; returns false when the pair was
	// already present. AttachMany returns how many pairs were actually added.
	Attach(ctx context.Context, assetID uuid.UUID, tagID uint, createdBy *string) (bool, error)
	AttachMany(ctx context.Context, assetID uuid.UUID, tagIDs []uint, createdBy *string) (int, error)
	Detach(ctx context.Context, assetID uuid.UUID, tagID uint) (bool, error)
	ClearTags(ctx context.Context, assetID uuid.UUID) (int, error)

	TagsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Tag, error)
	AssetsWithTag(ctx context.Context, tagID uint) ([]*model.Asset, error)
	AssetIDsWithAllTags(ctx context.Context, tagIDs []uint) ([]uuid.UUID, error)
}

type tagRepo struct{ db *gorm.DB }

func NewTagRepo(db *gorm.DB) TagRepo {
	return &tagRepo{db: db}
}

func (r *tagRepo) Create(ctx context.Context, t *model.Tag) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tagRepo) GetByID(ctx context.Context, id uint) (*model.Tag, error) {
	var t model.Tag
	err := r.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	var t model.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) List(ctx context.Context, category string) ([]*model.Tag, error) {
	q := r.db.WithContext(ctx).Order("category, sort_order, name")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var tags []*model.Tag
	return tags, q.Find(&tags).Error
}

func (r *tagRepo) Update(ctx context.Context, t *model.Tag) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete removes the tag; its asset_tags rows go with it via FK cascade.
func (r *tagRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.AssetTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *tagRepo) Attach(ctx context.Context, assetID uuid.UUID, tagID uint, createdBy *string) (bool, error) {
	at := model.AssetTag{AssetID: assetID, TagID: tagID, CreatedBy: createdBy}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&at)
	if res.Error != nil {
		// A concurrent attach of the same pair is a benign no-op.
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *tagRepo) AttachMany(ctx context.Context, assetID uuid.UUID, tagIDs []uint, createdBy *string) (int, error) {
	added := 0
	for _, tagID := range tagIDs {
		ok, err := r.Attach(ctx, assetID, tagID, createdBy)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

func (r *tagRepo) Detach(ctx context.Context, assetID uuid.UUID, tagID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("asset_id = ? AND tag_id = ?", assetID, tagID).
		Delete(&model.AssetTag{})
	return res.RowsAffected > 0, res.Error
}

func (r *tagRepo) ClearTags(ctx context.Context, assetID uuid.UUID) (int, error) {
	res := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Delete(&model.AssetTag{})
	return int(res.RowsAffected), res.Error
}

func (r *tagRepo) TagsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Tag, error) {
	var tags []*model.Tag
	return tags, r.db.WithContext(ctx).
		Joins("INNER JOIN asset_tags ON asset_tags.tag_id = tags.id").
		Where("asset_tags.asset_id = ?", assetID).
		Order("tags.category, tags.sort_order, tags.name").
		Find(&tags).Error
}

func (r *tagRepo) AssetsWithTag(ctx context.Context, tagID uint) ([]*model.Asset, error) {
	var assets []*model.Asset
	return assets, r.db.WithContext(ctx).
		Joins("INNER JOIN asset_tags ON asset_tags.asset_id = assets.id").
		Where("asset_tags.tag_id = ? AND assets.is_deleted = ?", tagID, false).
		Order("assets.created_at DESC").
		Find(&assets).Error
}

// AssetIDsWithAllTags answers AND-combination queries: an asset qualifies only
// if it carries every requested tag. Counting distinct tag ids per asset and
// comparing to the request size avoids double counting.
func (r *tagRepo) AssetIDsWithAllTags(ctx context.Context, tagIDs []uint) ([]uuid.UUID, error) {
	if len(tagIDs) == 0 {
		return []uuid.UUID{}, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.AssetTag{}).
		Joins("INNER JOIN assets ON assets.id = asset_tags.asset_id").
		Where("asset_tags.tag_id IN ? AND assets.is_deleted = ?", tagIDs, false).
		Group("asset_tags.asset_id").
		Having("COUNT(DISTINCT asset_tags.tag_id) = ?", len(tagIDs)).
		Pluck("asset_tags.asset_id", &ids).Error
	return ids, err
}
