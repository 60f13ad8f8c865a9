package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/serializer"
	"github.com/helioworks/artvault/internal/modules/service"
)

type StyleHandler struct {
	svc service.StyleService
}

func NewStyleHandler(s service.StyleService) *StyleHandler {
	return &StyleHandler{svc: s}
}

// UploadStyled godoc
//
//	@Summary		Upload styled variant
//	@Description	Ingest a styled file and pair it with its original by fuzzy name match
//	@Tags			style
//	@Accept			json
//	@Produce		json
//	@Param			body	body	service.UploadStyledInput	true	"Styled file"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.UploadStyledResult}
//	@Router			/styles/upload [post]
func (h *StyleHandler) UploadStyled(c *gin.Context) {
	in := service.UploadStyledInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.UploadStyled(c.Request.Context(), in, actorOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// CreateMigration godoc
//
//	@Summary		Link styled asset manually
//	@Description	Record an original-to-variant link the matcher could not decide
//	@Tags			style
//	@Accept			json
//	@Produce		json
//	@Param			body	body	service.CreateMigrationInput	true	"Link to record"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.StyleMigration}
//	@Router			/styles/migrations [post]
func (h *StyleHandler) CreateMigration(c *gin.Context) {
	in := service.CreateMigrationInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	m, err := h.svc.CreateMigration(c.Request.Context(), in, actorOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: m})
}

// VariantsOf godoc
//
//	@Summary		Variants of asset
//	@Description	All styled variants derived from one original
//	@Tags			style
//	@Produce		json
//	@Param			asset_id	path	string	true	"Original asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.StyleMigration}
//	@Router			/assets/{asset_id}/variants [get]
func (h *StyleHandler) VariantsOf(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	variants, err := h.svc.VariantsOf(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: variants})
}

// MigrationsByStyle godoc
//
//	@Summary		Migrations by style
//	@Tags			style
//	@Produce		json
//	@Param			style	path	string	true	"Style tag, e.g. cartoon"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.StyleMigration}
//	@Router			/styles/{style}/migrations [get]
func (h *StyleHandler) MigrationsByStyle(c *gin.Context) {
	ms, err := h.svc.MigrationsByStyle(c.Request.Context(), c.Param("style"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: ms})
}

// MigrationsOfProject godoc
//
//	@Summary		Migrations of project
//	@Tags			style
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.StyleMigration}
//	@Router			/projects/{project_id}/migrations [get]
func (h *StyleHandler) MigrationsOfProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ms, err := h.svc.MigrationsOfProject(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: ms})
}
