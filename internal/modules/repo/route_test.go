package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type routeFixture struct {
	routes   RouteRepo
	assets   AssetRepo
	projects ProjectRepo
	asset    *model.Asset
	project  *model.Project
}

func newRouteFixture(t *testing.T) *routeFixture {
	t.Helper()
	db := newTestDB(t)
	f := &routeFixture{
		routes:   NewRouteRepo(db),
		assets:   NewAssetRepo(db),
		projects: NewProjectRepo(db),
		asset:    makeAsset("hero_idle", digestA),
		project:  makeProject("rpg", "/projects/rpg"),
	}
	ctx := context.Background()
	require.NoError(t, f.assets.Create(ctx, f.asset))
	require.NoError(t, f.projects.Create(ctx, f.project))
	return f
}

func (f *routeFixture) makeRoute(guid string) *model.UnityRoute {
	return &model.UnityRoute{
		ID:        uuid.New(),
		AssetID:   f.asset.ID,
		ProjectID: f.project.ID,
		UnityGUID: guid,
		UnityPath: "Assets/Art/hero_idle.png",
		UnityName: "hero_idle",
		IsActive:  true,
	}
}

func createHistory(route *model.UnityRoute) *model.RouteHistory {
	return &model.RouteHistory{
		ID:           uuid.New(),
		NewAssetID:   &route.AssetID,
		NewUnityPath: &route.UnityPath,
		Action:       model.RouteActionCreate,
		CreatedBy:    "tester",
	}
}

func TestRouteRepo_CreateWithHistory(t *testing.T) {
	f := newRouteFixture(t)
	ctx := context.Background()

	route := f.makeRoute("guid-1")
	require.NoError(t, f.routes.CreateWithHistory(ctx, route, createHistory(route)))

	got, err := f.routes.GetActiveByGUID(ctx, "guid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, route.ID, got.ID)

	events, err := f.routes.History(ctx, route.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.RouteActionCreate, events[0].Action)
}

func TestRouteRepo_OneActiveRoutePerGUID(t *testing.T) {
	f := newRouteFixture(t)
	ctx := context.Background()

	first := f.makeRoute("guid-1")
	require.NoError(t, f.routes.CreateWithHistory(ctx, first, createHistory(first)))

	dup := f.makeRoute("guid-1")
	err := f.routes.CreateWithHistory(ctx, dup, createHistory(dup))
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	// deactivating the first frees the guid
	first.IsActive = false
	require.NoError(t, f.routes.UpdateWithHistory(ctx, first, &model.RouteHistory{
		ID:        uuid.New(),
		Action:    model.RouteActionDelete,
		CreatedBy: "tester",
	}))

	second := f.makeRoute("guid-1")
	require.NoError(t, f.routes.CreateWithHistory(ctx, second, createHistory(second)))
}

func TestRouteRepo_LatestReplace(t *testing.T) {
	f := newRouteFixture(t)
	ctx := context.Background()

	route := f.makeRoute("guid-1")
	require.NoError(t, f.routes.CreateWithHistory(ctx, route, createHistory(route)))

	// no replace yet
	got, err := f.routes.LatestReplace(ctx, route.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	a2 := uuid.New()
	a3 := uuid.New()
	base := time.Now().Add(-time.Minute)

	older := &model.RouteHistory{
		ID: uuid.New(), RouteID: route.ID,
		OldAssetID: &f.asset.ID, NewAssetID: &a2,
		Action: model.RouteActionReplace, CreatedBy: "tester",
		CreatedAt: base,
	}
	newer := &model.RouteHistory{
		ID: uuid.New(), RouteID: route.ID,
		OldAssetID: &a2, NewAssetID: &a3,
		Action: model.RouteActionReplace, CreatedBy: "tester",
		CreatedAt: base.Add(30 * time.Second),
	}
	route.AssetID = a3
	require.NoError(t, f.routes.UpdateWithHistory(ctx, route, older))
	require.NoError(t, f.routes.UpdateWithHistory(ctx, route, newer))

	got, err = f.routes.LatestReplace(ctx, route.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newer.ID, got.ID)
	assert.Equal(t, a2, *got.OldAssetID)
}

func TestRouteRepo_HistoryReplayReconstructsState(t *testing.T) {
	f := newRouteFixture(t)
	ctx := context.Background()

	route := f.makeRoute("guid-1")
	require.NoError(t, f.routes.CreateWithHistory(ctx, route, createHistory(route)))

	replacement := uuid.New()
	base := time.Now()
	newPath := "Assets/Art/Moved/hero_idle.png"
	oldPath := route.UnityPath

	route.AssetID = replacement
	require.NoError(t, f.routes.UpdateWithHistory(ctx, route, &model.RouteHistory{
		ID: uuid.New(), OldAssetID: &f.asset.ID, NewAssetID: &replacement,
		Action: model.RouteActionReplace, CreatedBy: "tester", CreatedAt: base,
	}))

	route.UnityPath = newPath
	require.NoError(t, f.routes.UpdateWithHistory(ctx, route, &model.RouteHistory{
		ID: uuid.New(), OldUnityPath: &oldPath, NewUnityPath: &newPath,
		Action: model.RouteActionUpdate, CreatedBy: "tester", CreatedAt: base.Add(time.Second),
	}))

	events, err := f.routes.History(ctx, route.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// replay oldest-first; the trail alone must yield the current state
	var replayAsset uuid.UUID
	var replayPath string
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if e.NewAssetID != nil {
			replayAsset = *e.NewAssetID
		}
		if e.NewUnityPath != nil {
			replayPath = *e.NewUnityPath
		}
	}

	current, err := f.routes.GetByID(ctx, route.ID)
	require.NoError(t, err)
	assert.Equal(t, current.AssetID, replayAsset)
	assert.Equal(t, current.UnityPath, replayPath)
}

func TestRouteRepo_ListByAssetAndProject(t *testing.T) {
	f := newRouteFixture(t)
	ctx := context.Background()

	r1 := f.makeRoute("guid-1")
	r2 := f.makeRoute("guid-2")
	require.NoError(t, f.routes.CreateWithHistory(ctx, r1, createHistory(r1)))
	require.NoError(t, f.routes.CreateWithHistory(ctx, r2, createHistory(r2)))

	byAsset, err := f.routes.ListByAsset(ctx, f.asset.ID)
	require.NoError(t, err)
	assert.Len(t, byAsset, 2)

	byProject, err := f.routes.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Len(t, byProject, 2)
}
