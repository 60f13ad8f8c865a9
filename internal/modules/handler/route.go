package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/serializer"
	"github.com/helioworks/artvault/internal/modules/service"
)

type RouteHandler struct {
	svc service.RouteService
}

func NewRouteHandler(s service.RouteService) *RouteHandler {
	return &RouteHandler{svc: s}
}

// CreateRoute godoc
//
//	@Summary		Create route
//	@Description	Bind an asset to an engine GUID and path; one active route per GUID
//	@Tags			route
//	@Accept			json
//	@Produce		json
//	@Param			body	body	service.CreateRouteInput	true	"Route to create"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.UnityRoute}
//	@Router			/routes [post]
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	in := service.CreateRouteInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	route, err := h.svc.Create(c.Request.Context(), in, actorOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: route})
}

// GetRoute godoc
//
//	@Summary		Get route
//	@Tags			route
//	@Produce		json
//	@Param			route_id	path	string	true	"Route ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.UnityRoute}
//	@Router			/routes/{route_id} [get]
func (h *RouteHandler) GetRoute(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("route_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	route, err := h.svc.Get(c.Request.Context(), routeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: route})
}

// GetRouteByGUID godoc
//
//	@Summary		Get route by engine GUID
//	@Description	The active route bound to a Unity GUID
//	@Tags			route
//	@Produce		json
//	@Param			guid	path	string	true	"Unity GUID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.UnityRoute}
//	@Router			/routes/guid/{guid} [get]
func (h *RouteHandler) GetRouteByGUID(c *gin.Context) {
	route, err := h.svc.GetByGUID(c.Request.Context(), c.Param("guid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: route})
}

type UpdateRoutePathReq struct {
	NewPath string `json:"new_path" binding:"required"`
	NewName string `json:"new_name"`
}

// UpdateRoutePath godoc
//
//	@Summary		Move route
//	@Description	Record that the engine file moved to a new path
//	@Tags			route
//	@Accept			json
//	@Produce		json
//	@Param			route_id	path	string	true	"Route ID"	Format(uuid)
//	@Param			body		body	UpdateRoutePathReq	true	"New location"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.UnityRoute}
//	@Router			/routes/{route_id}/path [patch]
func (h *RouteHandler) UpdateRoutePath(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("route_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	req := UpdateRoutePathReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	route, err := h.svc.UpdatePath(c.Request.Context(), routeID, req.NewPath, req.NewName, actorOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: route})
}

type ReplaceReq struct {
	NewAssetID uuid.UUID `json:"new_asset_id" binding:"required"`
}

// ReplaceAsset godoc
//
//	@Summary		Replace routed asset
//	@Description	Swap the asset behind a route; the engine slot stays put
//	@Tags			route
//	@Accept			json
//	@Produce		json
//	@Param			route_id	path	string	true	"Route ID"	Format(uuid)
//	@Param			body		body	ReplaceReq	true	"Replacement asset"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.UnityRoute}
//	@Router			/routes/{route_id}/replace [post]
func (h *RouteHandler) ReplaceAsset(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("route_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	req := ReplaceReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	route, err := h.svc.Replace(c.Request.Context(), routeID, req.NewAssetID, actorOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: route})
}

type BatchReplaceReq struct {
	Pairs []service.ReplacePair `json:"pairs" binding:"required,min=1"`
}

// BatchReplace godoc
//
//	@Summary		Batch replace
//	@Description	Apply many asset swaps; each commits independently
//	@Tags			route
//	@Accept			json
//	@Produce		json
//	@Param			body	body	BatchReplaceReq	true	"Swaps to apply"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.BatchReplaceResult}
//	@Router			/routes/replace [post]
func (h *RouteHandler) BatchReplace(c *gin.Context) {
	req := BatchReplaceReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.BatchReplace(c.Request.Context(), req.Pairs, actorOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// RollbackRoute godoc
//
//	@Summary		Rollback route
//	@Description	Undo the most recent asset replacement; reports whether anything changed
//	@Tags			route
//	@Produce		json
//	@Param			route_id	path	string	true	"Route ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=bool}
//	@Router			/routes/{route_id}/rollback [post]
func (h *RouteHandler) RollbackRoute(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("route_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	rolled, err := h.svc.Rollback(c.Request.Context(), routeID, actorOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rolled})
}

// DeactivateRoute godoc
//
//	@Summary		Deactivate route
//	@Description	Retire a route and free its GUID; history is kept
//	@Tags			route
//	@Produce		json
//	@Param			route_id	path	string	true	"Route ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/routes/{route_id} [delete]
func (h *RouteHandler) DeactivateRoute(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("route_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), routeID, actorOf(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deactivated"})
}

// RouteHistory godoc
//
//	@Summary		Route history
//	@Description	Full mutation trail of a route, newest first
//	@Tags			route
//	@Produce		json
//	@Param			route_id	path	string	true	"Route ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.RouteHistory}
//	@Router			/routes/{route_id}/history [get]
func (h *RouteHandler) RouteHistory(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("route_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	events, err := h.svc.HistoryOf(c.Request.Context(), routeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: events})
}

// RoutesOfAsset godoc
//
//	@Summary		Routes of asset
//	@Tags			route
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.UnityRoute}
//	@Router			/assets/{asset_id}/routes [get]
func (h *RouteHandler) RoutesOfAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	routes, err := h.svc.RoutesOfAsset(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: routes})
}

// RoutesOfProject godoc
//
//	@Summary		Routes of project
//	@Tags			route
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.UnityRoute}
//	@Router			/projects/{project_id}/routes [get]
func (h *RouteHandler) RoutesOfProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	routes, err := h.svc.RoutesOfProject(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: routes})
}
