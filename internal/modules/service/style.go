package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/helioworks/artvault/internal/modules/repo"
	"github.com/helioworks/artvault/internal/pkg/apperr"
	"github.com/helioworks/artvault/internal/pkg/match"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type StyleService interface {
	UploadStyled(ctx context.Context, in UploadStyledInput, actor string) (*UploadStyledResult, error)
	CreateMigration(ctx context.Context, in CreateMigrationInput, actor string) (*model.StyleMigration, error)
	VariantsOf(ctx context.Context, originalAssetID uuid.UUID) ([]*model.StyleMigration, error)
	MigrationsByStyle(ctx context.Context, styleTag string) ([]*model.StyleMigration, error)
	MigrationsOfProject(ctx context.Context, projectID uuid.UUID) ([]*model.StyleMigration, error)
}

type UploadStyledInput struct {
	Path      string     `json:"path" binding:"required"`
	StyleTag  string     `json:"style_tag" binding:"required"`
	ProjectID *uuid.UUID `json:"project_id"`
}

// UploadStyledResult reports the ingest outcome plus whether an original was
// found. Matched=false is not an error: the styled asset is stored either way
// and can be linked manually later.
type UploadStyledResult struct {
	AssetID     uuid.UUID    `json:"asset_id"`
	IsNew       bool         `json:"is_new"`
	Matched     bool         `json:"matched"`
	Match       *match.Match `json:"match,omitempty"`
	MigrationID *uuid.UUID   `json:"migration_id,omitempty"`
}

type CreateMigrationInput struct {
	OriginalAssetID uuid.UUID  `json:"original_asset_id" binding:"required"`
	StyledAssetID   uuid.UUID  `json:"styled_asset_id" binding:"required"`
	StyleTag        string     `json:"style_tag" binding:"required"`
	ProjectID       *uuid.UUID `json:"project_id"`
}

type styleService struct {
	styles repo.StyleRepo
	assets repo.AssetRepo
	tags   repo.TagRepo
	ingest AssetService
	log    *zap.Logger
	opts   match.Options
	origin string
}

func NewStyleService(
	styles repo.StyleRepo,
	assets repo.AssetRepo,
	tags repo.TagRepo,
	ingest AssetService,
	log *zap.Logger,
	opts match.Options,
	originTag string,
) StyleService {
	if originTag == "" {
		originTag = "org"
	}
	return &styleService{
		styles: styles,
		assets: assets,
		tags:   tags,
		ingest: ingest,
		log:    log,
		opts:   opts,
		origin: originTag,
	}
}

// UploadStyled ingests a styled variant and tries to pair it with its
// original by fuzzy name match against assets carrying the origin tag.
func (s *styleService) UploadStyled(ctx context.Context, in UploadStyledInput, actor string) (*UploadStyledResult, error) {
	if in.StyleTag == "" {
		return nil, apperr.Invalidf("style tag is empty")
	}

	ingested, err := s.ingest.Ingest(ctx, in.Path)
	if err != nil {
		return nil, err
	}
	styled, err := s.assets.GetByID(ctx, ingested.AssetID)
	if err != nil {
		return nil, err
	}
	if styled == nil {
		return nil, apperr.NotFoundf("asset %s", ingested.AssetID)
	}

	result := &UploadStyledResult{AssetID: styled.ID, IsNew: ingested.IsNew}

	candidates, err := s.originCandidates(ctx, styled.ID)
	if err != nil {
		return nil, err
	}
	best := match.FindBestMatch(styled.Name, candidates, s.opts)
	if best == nil {
		s.log.Sugar().Infow("styled upload left unmatched",
			"asset_id", styled.ID, "name", styled.Name, "style", in.StyleTag)
		return result, nil
	}

	m := &model.StyleMigration{
		ID:              uuid.New(),
		OriginalAssetID: best.AssetID,
		StyledAssetID:   styled.ID,
		StyleTag:        in.StyleTag,
		ProjectID:       in.ProjectID,
		Meta: datatypes.JSONMap{
			"distance":   best.Distance,
			"similarity": best.Similarity,
			"exact":      best.Exact,
		},
		CreatedBy: actor,
	}
	if err := s.styles.Create(ctx, m); err != nil {
		return nil, err
	}

	result.Matched = true
	result.Match = best
	result.MigrationID = &m.ID
	return result, nil
}

// CreateMigration links a styled asset to its original by hand, for the cases
// the matcher cannot decide.
func (s *styleService) CreateMigration(ctx context.Context, in CreateMigrationInput, actor string) (*model.StyleMigration, error) {
	if in.StyleTag == "" {
		return nil, apperr.Invalidf("style tag is empty")
	}
	if in.OriginalAssetID == in.StyledAssetID {
		return nil, apperr.Invalidf("original and styled asset must differ")
	}
	for _, id := range []uuid.UUID{in.OriginalAssetID, in.StyledAssetID} {
		a, err := s.assets.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, apperr.NotFoundf("asset %s", id)
		}
	}

	m := &model.StyleMigration{
		ID:              uuid.New(),
		OriginalAssetID: in.OriginalAssetID,
		StyledAssetID:   in.StyledAssetID,
		StyleTag:        in.StyleTag,
		ProjectID:       in.ProjectID,
		Meta:            datatypes.JSONMap{"manual": true},
		CreatedBy:       actor,
	}
	if err := s.styles.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *styleService) VariantsOf(ctx context.Context, originalAssetID uuid.UUID) ([]*model.StyleMigration, error) {
	a, err := s.assets.GetByID(ctx, originalAssetID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFoundf("asset %s", originalAssetID)
	}
	return s.styles.ByOriginal(ctx, originalAssetID)
}

func (s *styleService) MigrationsByStyle(ctx context.Context, styleTag string) ([]*model.StyleMigration, error) {
	if styleTag == "" {
		return nil, apperr.Invalidf("style tag is empty")
	}
	return s.styles.ByStyle(ctx, styleTag)
}

func (s *styleService) MigrationsOfProject(ctx context.Context, projectID uuid.UUID) ([]*model.StyleMigration, error) {
	return s.styles.ByProject(ctx, projectID)
}

// originCandidates loads assets carrying the origin tag, minus the styled
// asset itself (a duplicate upload must not match itself).
func (s *styleService) originCandidates(ctx context.Context, excludeID uuid.UUID) ([]match.Candidate, error) {
	origin, err := s.tags.GetByName(ctx, s.origin)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, nil
	}
	originals, err := s.tags.AssetsWithTag(ctx, origin.ID)
	if err != nil {
		return nil, err
	}
	candidates := make([]match.Candidate, 0, len(originals))
	for _, a := range originals {
		if a.ID == excludeID {
			continue
		}
		candidates = append(candidates, match.Candidate{ID: a.ID, Name: a.Name})
	}
	return candidates, nil
}
