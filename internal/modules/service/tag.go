package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/helioworks/artvault/internal/modules/repo"
	"github.com/helioworks/artvault/internal/pkg/apperr"
	"go.uber.org/zap"
)

type TagService interface {
	CreateTag(ctx context.Context, in CreateTagInput) (*model.Tag, error)
	GetTag(ctx context.Context, id uint) (*model.Tag, error)
	ListTags(ctx context.Context, category string) ([]*model.Tag, error)
	UpdateTag(ctx context.Context, id uint, in UpdateTagInput) (*model.Tag, error)
	DeleteTag(ctx context.Context, id uint) error

	Attach(ctx context.Context, assetID uuid.UUID, tagID uint, actor string) (bool, error)
	AttachMany(ctx context.Context, assetID uuid.UUID, tagIDs []uint, actor string) (int, error)
	Detach(ctx context.Context, assetID uuid.UUID, tagID uint) (bool, error)
	DetachMany(ctx context.Context, assetID uuid.UUID, tagIDs []uint) (int, error)
	ClearTags(ctx context.Context, assetID uuid.UUID) (int, error)
	TagsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Tag, error)

	AssetsWithTag(ctx context.Context, tagID uint) ([]*model.Asset, error)
	AssetsWithAllTags(ctx context.Context, tagIDs []uint) ([]*model.Asset, error)
}

type CreateTagInput struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	SortOrder   int     `json:"sort_order"`
}

type UpdateTagInput struct {
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	SortOrder   *int    `json:"sort_order"`
}

type tagService struct {
	tags   repo.TagRepo
	assets repo.AssetRepo
	log    *zap.Logger
}

func NewTagService(tags repo.TagRepo, assets repo.AssetRepo, log *zap.Logger) TagService {
	return &tagService{tags: tags, assets: assets, log: log}
}

func (s *tagService) CreateTag(ctx context.Context, in CreateTagInput) (*model.Tag, error) {
	if in.Name == "" {
		return nil, apperr.Invalidf("tag name is empty")
	}
	existing, err := s.tags.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflictf("tag %q already exists", in.Name)
	}
	t := &model.Tag{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Color:       in.Color,
		SortOrder:   in.SortOrder,
	}
	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tagService) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	t, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFoundf("tag %d", id)
	}
	return t, nil
}

func (s *tagService) ListTags(ctx context.Context, category string) ([]*model.Tag, error) {
	return s.tags.List(ctx, category)
}

func (s *tagService) UpdateTag(ctx context.Context, id uint, in UpdateTagInput) (*model.Tag, error) {
	t, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Color != nil {
		t.Color = in.Color
	}
	if in.SortOrder != nil {
		t.SortOrder = *in.SortOrder
	}
	if err := s.tags.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id uint) error {
	if _, err := s.GetTag(ctx, id); err != nil {
		return err
	}
	return s.tags.Delete(ctx, id)
}

// Attach links a tag to an asset. Re-attaching the same pair is a no-op that
// reports added=false.
func (s *tagService) Attach(ctx context.Context, assetID uuid.UUID, tagID uint, actor string) (bool, error) {
	if err := s.requireLiveAsset(ctx, assetID); err != nil {
		return false, err
	}
	if _, err := s.GetTag(ctx, tagID); err != nil {
		return false, err
	}
	var createdBy *string
	if actor != "" {
		createdBy = &actor
	}
	return s.tags.Attach(ctx, assetID, tagID, createdBy)
}

func (s *tagService) AttachMany(ctx context.Context, assetID uuid.UUID, tagIDs []uint, actor string) (int, error) {
	if err := s.requireLiveAsset(ctx, assetID); err != nil {
		return 0, err
	}
	for _, tagID := range tagIDs {
		if _, err := s.GetTag(ctx, tagID); err != nil {
			return 0, err
		}
	}
	var createdBy *string
	if actor != "" {
		createdBy = &actor
	}
	return s.tags.AttachMany(ctx, assetID, tagIDs, createdBy)
}

func (s *tagService) Detach(ctx context.Context, assetID uuid.UUID, tagID uint) (bool, error) {
	if err := s.requireLiveAsset(ctx, assetID); err != nil {
		return false, err
	}
	if _, err := s.GetTag(ctx, tagID); err != nil {
		return false, err
	}
	return s.tags.Detach(ctx, assetID, tagID)
}

func (s *tagService) DetachMany(ctx context.Context, assetID uuid.UUID, tagIDs []uint) (int, error) {
	if err := s.requireLiveAsset(ctx, assetID); err != nil {
		return 0, err
	}
	removed := 0
	for _, tagID := range tagIDs {
		ok, err := s.tags.Detach(ctx, assetID, tagID)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

func (s *tagService) ClearTags(ctx context.Context, assetID uuid.UUID) (int, error) {
	if err := s.requireLiveAsset(ctx, assetID); err != nil {
		return 0, err
	}
	return s.tags.ClearTags(ctx, assetID)
}

func (s *tagService) TagsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Tag, error) {
	if err := s.requireLiveAsset(ctx, assetID); err != nil {
		return nil, err
	}
	return s.tags.TagsOf(ctx, assetID)
}

func (s *tagService) AssetsWithTag(ctx context.Context, tagID uint) ([]*model.Asset, error) {
	if _, err := s.GetTag(ctx, tagID); err != nil {
		return nil, err
	}
	return s.tags.AssetsWithTag(ctx, tagID)
}

// AssetsWithAllTags is the AND-combination query: only assets carrying every
// requested tag qualify. An empty tag set matches nothing.
func (s *tagService) AssetsWithAllTags(ctx context.Context, tagIDs []uint) ([]*model.Asset, error) {
	if len(tagIDs) == 0 {
		return []*model.Asset{}, nil
	}
	for _, tagID := range tagIDs {
		if _, err := s.GetTag(ctx, tagID); err != nil {
			return nil, err
		}
	}
	ids, err := s.tags.AssetIDsWithAllTags(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Asset{}, nil
	}
	return s.assets.GetByIDs(ctx, ids)
}

func (s *tagService) requireLiveAsset(ctx context.Context, assetID uuid.UUID) error {
	a, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return err
	}
	if a == nil {
		return apperr.NotFoundf("asset %s", assetID)
	}
	return nil
}
