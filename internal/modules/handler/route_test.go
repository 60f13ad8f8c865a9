package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/helioworks/artvault/internal/modules/service"
	"github.com/helioworks/artvault/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRouteService is a mock implementation of service.RouteService
type MockRouteService struct {
	mock.Mock
}

func (m *MockRouteService) Create(ctx context.Context, in service.CreateRouteInput, actor string) (*model.UnityRoute, error) {
	args := m.Called(ctx, in, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnityRoute), args.Error(1)
}

func (m *MockRouteService) Get(ctx context.Context, id uuid.UUID) (*model.UnityRoute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnityRoute), args.Error(1)
}

func (m *MockRouteService) GetByGUID(ctx context.Context, unityGUID string) (*model.UnityRoute, error) {
	args := m.Called(ctx, unityGUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnityRoute), args.Error(1)
}

func (m *MockRouteService) RoutesOfAsset(ctx context.Context, assetID uuid.UUID) ([]*model.UnityRoute, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UnityRoute), args.Error(1)
}

func (m *MockRouteService) RoutesOfProject(ctx context.Context, projectID uuid.UUID) ([]*model.UnityRoute, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UnityRoute), args.Error(1)
}

func (m *MockRouteService) UpdatePath(ctx context.Context, id uuid.UUID, newPath, newName, actor string) (*model.UnityRoute, error) {
	args := m.Called(ctx, id, newPath, newName, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnityRoute), args.Error(1)
}

func (m *MockRouteService) Replace(ctx context.Context, id, newAssetID uuid.UUID, actor string) (*model.UnityRoute, error) {
	args := m.Called(ctx, id, newAssetID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnityRoute), args.Error(1)
}

func (m *MockRouteService) BatchReplace(ctx context.Context, pairs []service.ReplacePair, actor string) (*service.BatchReplaceResult, error) {
	args := m.Called(ctx, pairs, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchReplaceResult), args.Error(1)
}

func (m *MockRouteService) Rollback(ctx context.Context, id uuid.UUID, actor string) (bool, error) {
	args := m.Called(ctx, id, actor)
	return args.Bool(0), args.Error(1)
}

func (m *MockRouteService) Deactivate(ctx context.Context, id uuid.UUID, actor string) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MockRouteService) HistoryOf(ctx context.Context, id uuid.UUID) ([]*model.RouteHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RouteHistory), args.Error(1)
}

func setupRouteRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRouteHandler_CreateRoute(t *testing.T) {
	assetID := uuid.New()
	projectID := uuid.New()

	tests := []struct {
		name           string
		requestBody    any
		setup          func(*MockRouteService)
		expectedStatus int
	}{
		{
			name: "successful route creation",
			requestBody: service.CreateRouteInput{
				AssetID:   assetID,
				ProjectID: projectID,
				UnityGUID: "abc123",
				UnityPath: "Assets/Art/hero.png",
			},
			setup: func(svc *MockRouteService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateRouteInput) bool {
					return in.UnityGUID == "abc123"
				}), "system").Return(&model.UnityRoute{ID: uuid.New(), UnityGUID: "abc123"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing guid rejected",
			requestBody:    map[string]any{"asset_id": assetID, "project_id": projectID},
			setup:          func(svc *MockRouteService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "guid already bound",
			requestBody: service.CreateRouteInput{
				AssetID:   assetID,
				ProjectID: projectID,
				UnityGUID: "abc123",
				UnityPath: "Assets/Art/hero.png",
			},
			setup: func(svc *MockRouteService) {
				svc.On("Create", mock.Anything, mock.Anything, "system").
					Return(nil, apperr.Conflictf("guid abc123 already has an active route"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockRouteService{}
			tt.setup(mockService)

			handler := NewRouteHandler(mockService)
			router := setupRouteRouter()
			router.POST("/routes", handler.CreateRoute)

			body, _ := sonic.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/routes", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestRouteHandler_ReplaceAsset(t *testing.T) {
	routeID := uuid.New()
	newAssetID := uuid.New()

	tests := []struct {
		name           string
		routeIDParam   string
		requestBody    any
		setup          func(*MockRouteService)
		expectedStatus int
	}{
		{
			name:         "successful replacement",
			routeIDParam: routeID.String(),
			requestBody:  ReplaceReq{NewAssetID: newAssetID},
			setup: func(svc *MockRouteService) {
				svc.On("Replace", mock.Anything, routeID, newAssetID, "system").
					Return(&model.UnityRoute{ID: routeID, AssetID: newAssetID}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid route ID",
			routeIDParam:   "not-a-uuid",
			requestBody:    ReplaceReq{NewAssetID: newAssetID},
			setup:          func(svc *MockRouteService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:         "replacing with the same asset",
			routeIDParam: routeID.String(),
			requestBody:  ReplaceReq{NewAssetID: newAssetID},
			setup: func(svc *MockRouteService) {
				svc.On("Replace", mock.Anything, routeID, newAssetID, "system").
					Return(nil, apperr.Invalidf("route already points at asset %s", newAssetID))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockRouteService{}
			tt.setup(mockService)

			handler := NewRouteHandler(mockService)
			router := setupRouteRouter()
			router.POST("/routes/:route_id/replace", handler.ReplaceAsset)

			body, _ := sonic.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/routes/"+tt.routeIDParam+"/replace", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestRouteHandler_RollbackRoute(t *testing.T) {
	routeID := uuid.New()

	tests := []struct {
		name           string
		setup          func(*MockRouteService)
		expectedStatus int
	}{
		{
			name: "rollback applied",
			setup: func(svc *MockRouteService) {
				svc.On("Rollback", mock.Anything, routeID, "system").Return(true, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "nothing to undo still succeeds",
			setup: func(svc *MockRouteService) {
				svc.On("Rollback", mock.Anything, routeID, "system").Return(false, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown route",
			setup: func(svc *MockRouteService) {
				svc.On("Rollback", mock.Anything, routeID, "system").
					Return(false, apperr.NotFoundf("route %s", routeID))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockRouteService{}
			tt.setup(mockService)

			handler := NewRouteHandler(mockService)
			router := setupRouteRouter()
			router.POST("/routes/:route_id/rollback", handler.RollbackRoute)

			req := httptest.NewRequest("POST", "/routes/"+routeID.String()+"/rollback", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestRouteHandler_ActorHeaderIsForwarded(t *testing.T) {
	routeID := uuid.New()

	mockService := &MockRouteService{}
	mockService.On("Deactivate", mock.Anything, routeID, "alice").Return(nil)

	handler := NewRouteHandler(mockService)
	router := setupRouteRouter()
	router.DELETE("/routes/:route_id", func(c *gin.Context) {
		// Simulate auth middleware setting the actor
		c.Set(ActorKey, "alice")
		handler.DeactivateRoute(c)
	})

	req := httptest.NewRequest("DELETE", "/routes/"+routeID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
