package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/helioworks/artvault/internal/modules/repo"
	"github.com/helioworks/artvault/internal/pkg/apperr"
	"go.uber.org/zap"
)

type ProjectService interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	AddAsset(ctx context.Context, in AddAssetInput) (bool, error)
	AddAssets(ctx context.Context, projectID uuid.UUID, ins []AddAssetInput) (int, error)
	RemoveAsset(ctx context.Context, projectID, assetID uuid.UUID) (bool, error)

	AssetsOf(ctx context.Context, projectID uuid.UUID) ([]*model.Asset, error)
	ProjectsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Project, error)
	MemberCount(ctx context.Context, projectID uuid.UUID) (int64, error)
}

type CreateProjectInput struct {
	Name        string  `json:"name" binding:"required"`
	EnginePath  string  `json:"engine_path" binding:"required"`
	Description *string `json:"description"`
}

type AddAssetInput struct {
	ProjectID  uuid.UUID `json:"project_id"`
	AssetID    uuid.UUID `json:"asset_id" binding:"required"`
	ImportName string    `json:"import_name"`
	ImportPath string    `json:"import_path"`
	IsOriginal bool      `json:"is_original"`
}

type projectService struct {
	projects repo.ProjectRepo
	assets   repo.AssetRepo
	log      *zap.Logger
}

func NewProjectService(projects repo.ProjectRepo, assets repo.AssetRepo, log *zap.Logger) ProjectService {
	return &projectService{projects: projects, assets: assets, log: log}
}

// CreateProject registers an engine workspace. Engine paths identify a
// checkout on disk, so two live projects may not share one.
func (s *projectService) CreateProject(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if in.Name == "" || in.EnginePath == "" {
		return nil, apperr.Invalidf("project name and engine path are required")
	}
	existing, err := s.projects.GetByEnginePath(ctx, in.EnginePath)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflictf("engine path %q is already registered", in.EnginePath)
	}
	p := &model.Project{
		ID:          uuid.New(),
		Name:        in.Name,
		EnginePath:  in.EnginePath,
		Description: in.Description,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFoundf("project %s", id)
	}
	return p, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProject(ctx, id); err != nil {
		return err
	}
	return s.projects.SoftDelete(ctx, id)
}

// AddAsset records that a project uses an asset. Adding an existing member
// again is a no-op that reports added=false.
func (s *projectService) AddAsset(ctx context.Context, in AddAssetInput) (bool, error) {
	if _, err := s.GetProject(ctx, in.ProjectID); err != nil {
		return false, err
	}
	a, err := s.assets.GetByID(ctx, in.AssetID)
	if err != nil {
		return false, err
	}
	if a == nil {
		return false, apperr.NotFoundf("asset %s", in.AssetID)
	}
	pa := &model.ProjectAsset{
		ProjectID:  in.ProjectID,
		AssetID:    in.AssetID,
		ImportName: in.ImportName,
		ImportPath: in.ImportPath,
		IsOriginal: in.IsOriginal,
	}
	if pa.ImportName == "" {
		pa.ImportName = a.Name
	}
	return s.projects.AddAsset(ctx, pa)
}

func (s *projectService) AddAssets(ctx context.Context, projectID uuid.UUID, ins []AddAssetInput) (int, error) {
	added := 0
	for _, in := range ins {
		in.ProjectID = projectID
		ok, err := s.AddAsset(ctx, in)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

func (s *projectService) RemoveAsset(ctx context.Context, projectID, assetID uuid.UUID) (bool, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return false, err
	}
	return s.projects.RemoveAsset(ctx, projectID, assetID)
}

func (s *projectService) AssetsOf(ctx context.Context, projectID uuid.UUID) ([]*model.Asset, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.projects.AssetsOf(ctx, projectID)
}

func (s *projectService) ProjectsOf(ctx context.Context, assetID uuid.UUID) ([]*model.Project, error) {
	a, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFoundf("asset %s", assetID)
	}
	return s.projects.ProjectsOf(ctx, assetID)
}

func (s *projectService) MemberCount(ctx context.Context, projectID uuid.UUID) (int64, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return 0, err
	}
	return s.projects.MemberCount(ctx, projectID)
}
