package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/serializer"
	"github.com/helioworks/artvault/internal/modules/service"
)

type AssetHandler struct {
	svc service.AssetService
}

func NewAssetHandler(s service.AssetService) *AssetHandler {
	return &AssetHandler{svc: s}
}

type IngestReq struct {
	Path string `json:"path" binding:"required" example:"/mnt/art/hero_idle.png"`
}

// Ingest godoc
//
//	@Summary		Ingest asset
//	@Description	Register a file by content digest; duplicate content returns the existing asset
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			body	body	IngestReq	true	"File to ingest"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.IngestResult}
//	@Router			/assets [post]
func (h *AssetHandler) Ingest(c *gin.Context) {
	req := IngestReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Ingest(c.Request.Context(), req.Path)
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusOK
	if out.IsNew {
		status = http.StatusCreated
	}
	c.JSON(status, serializer.Response{Data: out})
}

type BatchIngestReq struct {
	Paths []string `json:"paths" binding:"required,min=1"`
}

// BatchIngest godoc
//
//	@Summary		Batch ingest assets
//	@Description	Ingest many files concurrently; per-file failures are reported, not fatal
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			body	body	BatchIngestReq	true	"Files to ingest"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.BatchIngestResult}
//	@Router			/assets/batch [post]
func (h *AssetHandler) BatchIngest(c *gin.Context) {
	req := BatchIngestReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.BatchIngest(c.Request.Context(), req.Paths)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// GetAsset godoc
//
//	@Summary		Get asset
//	@Description	Fetch one asset by its UUID
//	@Tags			asset
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Asset}
//	@Router			/assets/{asset_id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a, err := h.svc.Get(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: a})
}

// UpdateAsset godoc
//
//	@Summary		Update asset
//	@Description	Correct descriptive fields; content digest never changes
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Param			body		body	service.UpdateAssetInput	true	"Fields to update"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Asset}
//	@Router			/assets/{asset_id} [patch]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	in := service.UpdateAssetInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a, err := h.svc.Update(c.Request.Context(), assetID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: a})
}

type LookupDigestsReq struct {
	Digests []string `json:"digests" binding:"required,min=1"`
}

// LookupDigests godoc
//
//	@Summary		Bulk digest lookup
//	@Description	Return the known assets among the given SHA-256 digests
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			body	body	LookupDigestsReq	true	"Digests to probe"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Asset}
//	@Router			/assets/digests [post]
func (h *AssetHandler) LookupDigests(c *gin.Context) {
	req := LookupDigestsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	assets, err := h.svc.GetByDigests(c.Request.Context(), req.Digests)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: assets})
}

type ListAssetsReq struct {
	Page     int `form:"page,default=1" binding:"min=1" example:"1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=200" example:"20"`
}

// ListAssets godoc
//
//	@Summary		List assets
//	@Description	Page through live assets, newest first
//	@Tags			asset
//	@Produce		json
//	@Param			page		query	integer	false	"Page number, starting at 1"
//	@Param			page_size	query	integer	false	"Page size, default 20, max 200"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Asset}
//	@Router			/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	req := ListAssetsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	assets, err := h.svc.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: assets})
}

type FeedReq struct {
	Limit  int    `form:"limit,default=20" binding:"min=1,max=200" example:"20"`
	Cursor string `form:"cursor"`
}

// Feed godoc
//
//	@Summary		Asset feed
//	@Description	Cursor-paged asset stream, newest first; pass next_cursor back to continue
//	@Tags			asset
//	@Produce		json
//	@Param			limit	query	integer	false	"Items per page, default 20, max 200"
//	@Param			cursor	query	string	false	"Cursor from the previous response"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.FeedOutput}
//	@Router			/assets/feed [get]
func (h *AssetHandler) Feed(c *gin.Context) {
	req := FeedReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Feed(c.Request.Context(), req.Cursor, req.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// CountAssets godoc
//
//	@Summary		Count assets
//	@Description	Number of live assets in the catalog
//	@Tags			asset
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=int64}
//	@Router			/assets/count [get]
func (h *AssetHandler) CountAssets(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: n})
}

// ExistsByDigest godoc
//
//	@Summary		Check digest
//	@Description	Whether content with this SHA-256 digest is already stored
//	@Tags			asset
//	@Produce		json
//	@Param			digest	path	string	true	"SHA-256 hex digest"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=bool}
//	@Router			/assets/digest/{digest} [get]
func (h *AssetHandler) ExistsByDigest(c *gin.Context) {
	exists, err := h.svc.ExistsByDigest(c.Request.Context(), c.Param("digest"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: exists})
}

// DeleteAsset godoc
//
//	@Summary		Delete asset
//	@Description	Soft-delete an asset; its digest becomes reusable
//	@Tags			asset
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/assets/{asset_id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.SoftDelete(c.Request.Context(), assetID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}
