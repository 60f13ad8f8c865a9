package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/serializer"
	"github.com/helioworks/artvault/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Register an engine workspace; engine paths are unique among live projects
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			body	body	service.CreateProjectInput	true	"Project to create"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	in := service.CreateProjectInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: p})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/projects/{project_id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.GetProject(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Soft-delete a project; its engine path becomes reusable
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/projects/{project_id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.DeleteProject(c.Request.Context(), projectID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

type AddAssetsReq struct {
	Assets []service.AddAssetInput `json:"assets" binding:"required,min=1"`
}

// AddAssets godoc
//
//	@Summary		Add assets to project
//	@Description	Record that a project uses these assets; existing members are skipped
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Param			body		body	AddAssetsReq	true	"Memberships to add"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=int}
//	@Router			/projects/{project_id}/assets [post]
func (h *ProjectHandler) AddAssets(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	req := AddAssetsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	added, err := h.svc.AddAssets(c.Request.Context(), projectID, req.Assets)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: added})
}

// RemoveAsset godoc
//
//	@Summary		Remove asset from project
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=bool}
//	@Router			/projects/{project_id}/assets/{asset_id} [delete]
func (h *ProjectHandler) RemoveAsset(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	removed, err := h.svc.RemoveAsset(c.Request.Context(), projectID, assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: removed})
}

// AssetsOfProject godoc
//
//	@Summary		Assets of project
//	@Description	All live assets a project uses
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Asset}
//	@Router			/projects/{project_id}/assets [get]
func (h *ProjectHandler) AssetsOfProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	assets, err := h.svc.AssetsOf(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: assets})
}

// ProjectsOfAsset godoc
//
//	@Summary		Projects of asset
//	@Description	All live projects using one asset
//	@Tags			project
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/assets/{asset_id}/projects [get]
func (h *ProjectHandler) ProjectsOfAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projects, err := h.svc.ProjectsOf(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// MemberCount godoc
//
//	@Summary		Project member count
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=int64}
//	@Router			/projects/{project_id}/assets/count [get]
func (h *ProjectHandler) MemberCount(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	n, err := h.svc.MemberCount(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: n})
}
