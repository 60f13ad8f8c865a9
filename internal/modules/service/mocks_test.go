package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/helioworks/artvault/internal/pkg/media"
	"github.com/stretchr/testify/mock"
)

// MockAssetRepo is a mock implementation of repo.AssetRepo
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, a *model.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssetRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) GetByDigest(ctx context.Context, digest string) (*model.Asset, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) GetByDigests(ctx context.Context, digests []string) ([]*model.Asset, error) {
	args := m.Called(ctx, digests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Asset, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) List(ctx context.Context, page, pageSize int) ([]*model.Asset, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) ListBefore(ctx context.Context, before time.Time, beforeID uuid.UUID, limit int) ([]*model.Asset, error) {
	args := m.Called(ctx, before, beforeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetRepo) Update(ctx context.Context, a *model.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssetRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTagRepo is a mock implementation of repo.TagRepo
type MockTagRepo struct {
	mock.Mock
}

func (m *MockTagRepo) Create(ctx context.Context, t *model.Tag) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTagRepo) GetByID(ctx context.Context, id uint) (*model.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepo) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepo) List(ctx context.Context, category string) ([]*model.Tag, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Tag), args.Error(1)
}

func (m *MockTagRepo) Update(ctx context.Context, t *model.Tag) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTagRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTagRepo) Attach(ctx context.Context, assetID uuid.UUID, tagID uint, createdBy *string) (bool, error) {
	args := m.Called(ctx, assetID, tagID, createdBy)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepo) AttachMany(ctx context.Context, assetID uuid.UUID, tagIDs []uint, createdBy *string) (int, error) {
	args := m.Called(ctx, assetID, tagIDs, createdBy)
	return args.Int(0), args.Error(1)
}

func (m *MockTagRepo) Detach(ctx context.Context, assetID uuid.UUID, tagID uint) (bool, error) {
	args := m.Called(ctx, assetID, tagID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepo) ClearTags(ctx context.Context, assetID uuid.UUID) (int, error) {
	args := m.Called(ctx, assetID)
	return args.Int(0), args.Error(1)
}

func (m *MockTagRepo) TagsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Tag, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Tag), args.Error(1)
}

func (m *MockTagRepo) AssetsWithTag(ctx context.Context, tagID uint) ([]*model.Asset, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Asset), args.Error(1)
}

func (m *MockTagRepo) AssetIDsWithAllTags(ctx context.Context, tagIDs []uint) ([]uuid.UUID, error) {
	args := m.Called(ctx, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockProjectRepo is a mock implementation of repo.ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) GetByEnginePath(ctx context.Context, enginePath string) (*model.Project, error) {
	args := m.Called(ctx, enginePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepo) AddAsset(ctx context.Context, pa *model.ProjectAsset) (bool, error) {
	args := m.Called(ctx, pa)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepo) AddAssets(ctx context.Context, pas []*model.ProjectAsset) (int, error) {
	args := m.Called(ctx, pas)
	return args.Int(0), args.Error(1)
}

func (m *MockProjectRepo) RemoveAsset(ctx context.Context, projectID, assetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, assetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepo) AssetsOf(ctx context.Context, projectID uuid.UUID) ([]*model.Asset, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Asset), args.Error(1)
}

func (m *MockProjectRepo) ProjectsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Project, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectRepo) MemberCount(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRouteRepo is a mock implementation of repo.RouteRepo
type MockRouteRepo struct {
	mock.Mock
}

func (m *MockRouteRepo) CreateWithHistory(ctx context.Context, route *model.UnityRoute, h *model.RouteHistory) error {
	args := m.Called(ctx, route, h)
	return args.Error(0)
}

func (m *MockRouteRepo) UpdateWithHistory(ctx context.Context, route *model.UnityRoute, h *model.RouteHistory) error {
	args := m.Called(ctx, route, h)
	return args.Error(0)
}

func (m *MockRouteRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.UnityRoute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnityRoute), args.Error(1)
}

func (m *MockRouteRepo) GetActiveByGUID(ctx context.Context, unityGUID string) (*model.UnityRoute, error) {
	args := m.Called(ctx, unityGUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnityRoute), args.Error(1)
}

func (m *MockRouteRepo) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]*model.UnityRoute, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UnityRoute), args.Error(1)
}

func (m *MockRouteRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.UnityRoute, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UnityRoute), args.Error(1)
}

func (m *MockRouteRepo) History(ctx context.Context, routeID uuid.UUID) ([]*model.RouteHistory, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RouteHistory), args.Error(1)
}

func (m *MockRouteRepo) LatestReplace(ctx context.Context, routeID uuid.UUID) (*model.RouteHistory, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RouteHistory), args.Error(1)
}

// MockStyleRepo is a mock implementation of repo.StyleRepo
type MockStyleRepo struct {
	mock.Mock
}

func (m *MockStyleRepo) Create(ctx context.Context, mg *model.StyleMigration) error {
	args := m.Called(ctx, mg)
	return args.Error(0)
}

func (m *MockStyleRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.StyleMigration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StyleMigration), args.Error(1)
}

func (m *MockStyleRepo) ByOriginal(ctx context.Context, originalAssetID uuid.UUID) ([]*model.StyleMigration, error) {
	args := m.Called(ctx, originalAssetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.StyleMigration), args.Error(1)
}

func (m *MockStyleRepo) ByStyle(ctx context.Context, styleTag string) ([]*model.StyleMigration, error) {
	args := m.Called(ctx, styleTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.StyleMigration), args.Error(1)
}

func (m *MockStyleRepo) ByProject(ctx context.Context, projectID uuid.UUID) ([]*model.StyleMigration, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.StyleMigration), args.Error(1)
}

// stubHasher hashes by lookup table instead of reading files.
type stubHasher struct {
	digests map[string]string
	errs    map[string]error
}

func (s stubHasher) ComputeDigest(path string) (string, error) {
	if err, ok := s.errs[path]; ok {
		return "", err
	}
	return s.digests[path], nil
}

// stubExtractor returns canned metadata derived from the path.
type stubExtractor struct{}

func (stubExtractor) Extract(path string) (*media.Metadata, error) {
	base := filepath.Base(path)
	return &media.Metadata{
		Name:     strings.TrimSuffix(base, filepath.Ext(base)),
		FilePath: path,
		FileType: strings.TrimPrefix(filepath.Ext(base), "."),
		SizeB:    1024,
	}, nil
}
