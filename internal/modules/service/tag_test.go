package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/helioworks/artvault/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTagService() (TagService, *MockTagRepo, *MockAssetRepo) {
	tags := &MockTagRepo{}
	assets := &MockAssetRepo{}
	return NewTagService(tags, assets, zap.NewNop()), tags, assets
}

func TestTagService_CreateTagConflict(t *testing.T) {
	svc, tags, _ := newTestTagService()

	tags.On("GetByName", mock.Anything, "character").
		Return(&model.Tag{ID: 1, Name: "character"}, nil)

	_, err := svc.CreateTag(context.Background(), CreateTagInput{Name: "character", Category: "subject"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	tags.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTagService_CreateTag(t *testing.T) {
	svc, tags, _ := newTestTagService()

	tags.On("GetByName", mock.Anything, "cartoon").Return(nil, nil)
	tags.On("Create", mock.Anything, mock.MatchedBy(func(tg *model.Tag) bool {
		return tg.Name == "cartoon" && tg.Category == "style"
	})).Return(nil).Once()

	got, err := svc.CreateTag(context.Background(), CreateTagInput{Name: "cartoon", Category: "style"})
	require.NoError(t, err)
	assert.Equal(t, "cartoon", got.Name)
	tags.AssertExpectations(t)
}

func TestTagService_AttachUnknownAsset(t *testing.T) {
	svc, _, assets := newTestTagService()
	assetID := uuid.New()

	assets.On("GetByID", mock.Anything, assetID).Return(nil, nil)

	_, err := svc.Attach(context.Background(), assetID, 1, "alice")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestTagService_AttachPassesActor(t *testing.T) {
	svc, tags, assets := newTestTagService()
	assetID := uuid.New()

	assets.On("GetByID", mock.Anything, assetID).Return(&model.Asset{ID: assetID}, nil)
	tags.On("GetByID", mock.Anything, uint(1)).Return(&model.Tag{ID: 1}, nil)
	tags.On("Attach", mock.Anything, assetID, uint(1), mock.MatchedBy(func(by *string) bool {
		return by != nil && *by == "alice"
	})).Return(true, nil).Once()

	added, err := svc.Attach(context.Background(), assetID, 1, "alice")
	require.NoError(t, err)
	assert.True(t, added)
	tags.AssertExpectations(t)
}

func TestTagService_DetachManyCountsOnlyRemoved(t *testing.T) {
	svc, tags, assets := newTestTagService()
	assetID := uuid.New()

	assets.On("GetByID", mock.Anything, assetID).Return(&model.Asset{ID: assetID}, nil)
	tags.On("Detach", mock.Anything, assetID, uint(1)).Return(true, nil)
	tags.On("Detach", mock.Anything, assetID, uint(2)).Return(false, nil)

	removed, err := svc.DetachMany(context.Background(), assetID, []uint{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestTagService_ClearTags(t *testing.T) {
	svc, tags, assets := newTestTagService()
	assetID := uuid.New()

	assets.On("GetByID", mock.Anything, assetID).Return(&model.Asset{ID: assetID}, nil)
	tags.On("ClearTags", mock.Anything, assetID).Return(3, nil).Once()

	removed, err := svc.ClearTags(context.Background(), assetID)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	tags.AssertExpectations(t)
}

func TestTagService_AssetsWithAllTags(t *testing.T) {
	svc, tags, assets := newTestTagService()
	ids := []uuid.UUID{uuid.New()}
	want := []*model.Asset{{ID: ids[0]}}

	tags.On("GetByID", mock.Anything, uint(1)).Return(&model.Tag{ID: 1}, nil)
	tags.On("GetByID", mock.Anything, uint(2)).Return(&model.Tag{ID: 2}, nil)
	tags.On("AssetIDsWithAllTags", mock.Anything, []uint{1, 2}).Return(ids, nil)
	assets.On("GetByIDs", mock.Anything, ids).Return(want, nil)

	got, err := svc.AssetsWithAllTags(context.Background(), []uint{1, 2})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTagService_AssetsWithAllTagsEmptyInput(t *testing.T) {
	svc, tags, _ := newTestTagService()

	got, err := svc.AssetsWithAllTags(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	tags.AssertNotCalled(t, "AssetIDsWithAllTags", mock.Anything, mock.Anything)
}

func TestTagService_AssetsWithAllTagsUnknownTag(t *testing.T) {
	svc, tags, _ := newTestTagService()

	tags.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)

	_, err := svc.AssetsWithAllTags(context.Background(), []uint{99})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
