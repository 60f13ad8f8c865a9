package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/helioworks/artvault/internal/modules/repo"
	"github.com/helioworks/artvault/internal/pkg/apperr"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type RouteService interface {
	Create(ctx context.Context, in CreateRouteInput, actor string) (*model.UnityRoute, error)
	Get(ctx context.Context, id uuid.UUID) (*model.UnityRoute, error)
	GetByGUID(ctx context.Context, unityGUID string) (*model.UnityRoute, error)
	RoutesOfAsset(ctx context.Context, assetID uuid.UUID) ([]*model.UnityRoute, error)
	RoutesOfProject(ctx context.Context, projectID uuid.UUID) ([]*model.UnityRoute, error)

	UpdatePath(ctx context.Context, id uuid.UUID, newPath, newName, actor string) (*model.UnityRoute, error)
	Replace(ctx context.Context, id, newAssetID uuid.UUID, actor string) (*model.UnityRoute, error)
	BatchReplace(ctx context.Context, pairs []ReplacePair, actor string) (*BatchReplaceResult, error)
	Rollback(ctx context.Context, id uuid.UUID, actor string) (bool, error)
	Deactivate(ctx context.Context, id uuid.UUID, actor string) error

	HistoryOf(ctx context.Context, id uuid.UUID) ([]*model.RouteHistory, error)
}

type CreateRouteInput struct {
	AssetID            uuid.UUID `json:"asset_id" binding:"required"`
	ProjectID          uuid.UUID `json:"project_id" binding:"required"`
	UnityGUID          string    `json:"unity_guid" binding:"required"`
	UnityPath          string    `json:"unity_path" binding:"required"`
	UnityName          string    `json:"unity_name"`
	OriginalImportPath string    `json:"original_import_path"`
}

type ReplacePair struct {
	RouteID    uuid.UUID `json:"route_id" binding:"required"`
	NewAssetID uuid.UUID `json:"new_asset_id" binding:"required"`
}

type ReplaceError struct {
	RouteID uuid.UUID `json:"route_id"`
	Message string    `json:"message"`
}

type BatchReplaceResult struct {
	Total    int            `json:"total"`
	Replaced int            `json:"replaced"`
	Failures int            `json:"failures"`
	Errors   []ReplaceError `json:"errors"`
}

type routeService struct {
	routes   repo.RouteRepo
	assets   repo.AssetRepo
	projects repo.ProjectRepo
	log      *zap.Logger
	mq       *amqp.Connection
	queue    string
}

func NewRouteService(
	routes repo.RouteRepo,
	assets repo.AssetRepo,
	projects repo.ProjectRepo,
	log *zap.Logger,
	mqConn *amqp.Connection,
	queue string,
) RouteService {
	return &routeService{
		routes:   routes,
		assets:   assets,
		projects: projects,
		log:      log,
		mq:       mqConn,
		queue:    queue,
	}
}

// Create binds an asset to an engine slot and writes the opening history row.
// A GUID with a live route already attached is rejected; deactivate it first.
func (s *routeService) Create(ctx context.Context, in CreateRouteInput, actor string) (*model.UnityRoute, error) {
	if in.UnityGUID == "" || in.UnityPath == "" {
		return nil, apperr.Invalidf("unity guid and path are required")
	}
	if err := s.requireLiveAsset(ctx, in.AssetID); err != nil {
		return nil, err
	}
	p, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFoundf("project %s", in.ProjectID)
	}
	active, err := s.routes.GetActiveByGUID(ctx, in.UnityGUID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, apperr.Conflictf("guid %s already has an active route", in.UnityGUID)
	}

	route := &model.UnityRoute{
		ID:                 uuid.New(),
		AssetID:            in.AssetID,
		ProjectID:          in.ProjectID,
		UnityGUID:          in.UnityGUID,
		UnityPath:          in.UnityPath,
		UnityName:          in.UnityName,
		OriginalImportPath: in.OriginalImportPath,
		IsActive:           true,
	}
	h := &model.RouteHistory{
		ID:           uuid.New(),
		NewAssetID:   &in.AssetID,
		NewUnityPath: &in.UnityPath,
		Action:       model.RouteActionCreate,
		CreatedBy:    actor,
	}
	if err := s.routes.CreateWithHistory(ctx, route, h); err != nil {
		return nil, err
	}

	s.publish(ctx, "route.created", map[string]any{
		"route_id":   route.ID,
		"asset_id":   route.AssetID,
		"project_id": route.ProjectID,
		"unity_guid": route.UnityGUID,
	})
	return route, nil
}

func (s *routeService) Get(ctx context.Context, id uuid.UUID) (*model.UnityRoute, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, apperr.NotFoundf("route %s", id)
	}
	return route, nil
}

func (s *routeService) GetByGUID(ctx context.Context, unityGUID string) (*model.UnityRoute, error) {
	if unityGUID == "" {
		return nil, apperr.Invalidf("unity guid is empty")
	}
	route, err := s.routes.GetActiveByGUID(ctx, unityGUID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, apperr.NotFoundf("no active route for guid %s", unityGUID)
	}
	return route, nil
}

func (s *routeService) RoutesOfAsset(ctx context.Context, assetID uuid.UUID) ([]*model.UnityRoute, error) {
	return s.routes.ListByAsset(ctx, assetID)
}

func (s *routeService) RoutesOfProject(ctx context.Context, projectID uuid.UUID) ([]*model.UnityRoute, error) {
	return s.routes.ListByProject(ctx, projectID)
}

func (s *routeService) UpdatePath(ctx context.Context, id uuid.UUID, newPath, newName, actor string) (*model.UnityRoute, error) {
	if newPath == "" {
		return nil, apperr.Invalidf("new path is empty")
	}
	route, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !route.IsActive {
		return nil, apperr.Conflictf("route %s is inactive", id)
	}

	oldPath := route.UnityPath
	route.UnityPath = newPath
	if newName != "" {
		route.UnityName = newName
	}
	h := &model.RouteHistory{
		ID:           uuid.New(),
		OldUnityPath: &oldPath,
		NewUnityPath: &newPath,
		Action:       model.RouteActionUpdate,
		CreatedBy:    actor,
	}
	if err := s.routes.UpdateWithHistory(ctx, route, h); err != nil {
		return nil, err
	}
	return route, nil
}

// Replace swaps the asset behind a route while the engine slot stays put. The
// old and new asset ids land in history so the swap can be rolled back.
func (s *routeService) Replace(ctx context.Context, id, newAssetID uuid.UUID, actor string) (*model.UnityRoute, error) {
	route, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !route.IsActive {
		return nil, apperr.Conflictf("route %s is inactive", id)
	}
	if route.AssetID == newAssetID {
		return nil, apperr.Invalidf("route %s already points at asset %s", id, newAssetID)
	}
	if err := s.requireLiveAsset(ctx, newAssetID); err != nil {
		return nil, err
	}

	oldAssetID := route.AssetID
	route.AssetID = newAssetID
	h := &model.RouteHistory{
		ID:         uuid.New(),
		OldAssetID: &oldAssetID,
		NewAssetID: &newAssetID,
		Action:     model.RouteActionReplace,
		CreatedBy:  actor,
	}
	if err := s.routes.UpdateWithHistory(ctx, route, h); err != nil {
		return nil, err
	}

	s.publish(ctx, "route.replaced", map[string]any{
		"route_id":     route.ID,
		"old_asset_id": oldAssetID,
		"new_asset_id": newAssetID,
	})
	return route, nil
}

// BatchReplace applies swaps one by one; each commits independently and a
// failed pair never blocks the rest.
func (s *routeService) BatchReplace(ctx context.Context, pairs []ReplacePair, actor string) (*BatchReplaceResult, error) {
	result := &BatchReplaceResult{Total: len(pairs), Errors: []ReplaceError{}}
	for _, pair := range pairs {
		if _, err := s.Replace(ctx, pair.RouteID, pair.NewAssetID, actor); err != nil {
			result.Failures++
			result.Errors = append(result.Errors, ReplaceError{RouteID: pair.RouteID, Message: err.Error()})
			continue
		}
		result.Replaced++
	}
	return result, nil
}

// Rollback undoes the most recent replace by swapping the route back to the
// prior asset. The undo is itself a replace event, so history never loses a
// step. Returns false when there is no replace to undo.
func (s *routeService) Rollback(ctx context.Context, id uuid.UUID, actor string) (bool, error) {
	route, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	last, err := s.routes.LatestReplace(ctx, id)
	if err != nil {
		return false, err
	}
	if last == nil || last.OldAssetID == nil {
		return false, nil
	}
	if route.AssetID == *last.OldAssetID {
		// Already back where the last replace started.
		return false, nil
	}

	currentAssetID := route.AssetID
	route.AssetID = *last.OldAssetID
	h := &model.RouteHistory{
		ID:         uuid.New(),
		OldAssetID: &currentAssetID,
		NewAssetID: last.OldAssetID,
		Action:     model.RouteActionReplace,
		Meta:       datatypes.JSONMap{"rollback": true, "undoes": last.ID.String()},
		CreatedBy:  actor,
	}
	if err := s.routes.UpdateWithHistory(ctx, route, h); err != nil {
		return false, err
	}

	s.publish(ctx, "route.rolled_back", map[string]any{
		"route_id":          route.ID,
		"restored_asset_id": route.AssetID,
	})
	return true, nil
}

// Deactivate retires a route, freeing its GUID for a future binding. History
// keeps the full trail; nothing is deleted.
func (s *routeService) Deactivate(ctx context.Context, id uuid.UUID, actor string) error {
	route, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !route.IsActive {
		return apperr.Conflictf("route %s is already inactive", id)
	}

	route.IsActive = false
	h := &model.RouteHistory{
		ID:           uuid.New(),
		OldAssetID:   &route.AssetID,
		OldUnityPath: &route.UnityPath,
		Action:       model.RouteActionDelete,
		CreatedBy:    actor,
	}
	return s.routes.UpdateWithHistory(ctx, route, h)
}

func (s *routeService) HistoryOf(ctx context.Context, id uuid.UUID) ([]*model.RouteHistory, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.routes.History(ctx, id)
}

func (s *routeService) requireLiveAsset(ctx context.Context, assetID uuid.UUID) error {
	a, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return err
	}
	if a == nil {
		return apperr.NotFoundf("asset %s", assetID)
	}
	return nil
}

func (s *routeService) publish(ctx context.Context, event string, payload map[string]any) {
	publishEvent(ctx, s.mq, s.queue, s.log, event, payload)
}
