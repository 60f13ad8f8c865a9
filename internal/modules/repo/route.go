package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"gorm.io/gorm"
)

// RouteRepo owns unity_routes and the append-only route_history table. Every
// route mutation commits together with its history row in one transaction.
type RouteRepo interface {
	CreateWithHistory(ctx context.Context, route *model.UnityRoute, h *model.RouteHistory) error
	UpdateWithHistory(ctx context.Context, route *model.UnityRoute, h *model.RouteHistory) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.UnityRoute, error)
	GetActiveByGUID(ctx context.Context, unityGUID string) (*model.UnityRoute, error)
	ListByAsset(ctx context.Context, assetID uuid.UUID) ([]*model.UnityRoute, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.UnityRoute, error)

	History(ctx context.Context, routeID uuid.UUID) ([]*model.RouteHistory, error)
	LatestReplace(ctx context.Context, routeID uuid.UUID) (*model.RouteHistory, error)
}

type routeRepo struct{ db *gorm.DB }

func NewRouteRepo(db *gorm.DB) RouteRepo {
	return &routeRepo{db: db}
}

func (r *routeRepo) CreateWithHistory(ctx context.Context, route *model.UnityRoute, h *model.RouteHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(route).Error; err != nil {
			return err
		}
		h.RouteID = route.ID
		return tx.Create(h).Error
	})
}

func (r *routeRepo) UpdateWithHistory(ctx context.Context, route *model.UnityRoute, h *model.RouteHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(route).Error; err != nil {
			return err
		}
		h.RouteID = route.ID
		return tx.Create(h).Error
	})
}

func (r *routeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.UnityRoute, error) {
	var route model.UnityRoute
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *routeRepo) GetActiveByGUID(ctx context.Context, unityGUID string) (*model.UnityRoute, error) {
	var route model.UnityRoute
	err := r.db.WithContext(ctx).
		Where("unity_guid = ? AND is_active = ?", unityGUID, true).
		First(&route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *routeRepo) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]*model.UnityRoute, error) {
	var routes []*model.UnityRoute
	return routes, r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at DESC").
		Find(&routes).Error
}

func (r *routeRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.UnityRoute, error) {
	var routes []*model.UnityRoute
	return routes, r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&routes).Error
}

func (r *routeRepo) History(ctx context.Context, routeID uuid.UUID) ([]*model.RouteHistory, error) {
	var events []*model.RouteHistory
	return events, r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("created_at DESC").
		Find(&events).Error
}

// LatestReplace fetches only the newest replace event via the
// (route_id, created_at) index instead of loading the whole history.
func (r *routeRepo) LatestReplace(ctx context.Context, routeID uuid.UUID) (*model.RouteHistory, error) {
	var h model.RouteHistory
	err := r.db.WithContext(ctx).
		Where("route_id = ? AND action = ?", routeID, model.RouteActionReplace).
		Order("created_at DESC").
		Limit(1).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}
