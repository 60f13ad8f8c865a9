package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/serializer"
	"github.com/helioworks/artvault/internal/modules/service"
)

type TagHandler struct {
	svc service.TagService
}

func NewTagHandler(s service.TagService) *TagHandler {
	return &TagHandler{svc: s}
}

func tagIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("tag_id"), 10, 32)
	return uint(id), err
}

// CreateTag godoc
//
//	@Summary		Create tag
//	@Description	Register a tag; names are unique across the catalog
//	@Tags			tag
//	@Accept			json
//	@Produce		json
//	@Param			body	body	service.CreateTagInput	true	"Tag to create"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Tag}
//	@Router			/tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	in := service.CreateTagInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	t, err := h.svc.CreateTag(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: t})
}

// ListTags godoc
//
//	@Summary		List tags
//	@Description	All tags, optionally filtered by category
//	@Tags			tag
//	@Produce		json
//	@Param			category	query	string	false	"Category filter"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Tag}
//	@Router			/tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.svc.ListTags(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: tags})
}

// UpdateTag godoc
//
//	@Summary		Update tag
//	@Description	Change a tag's category, description, color or sort order
//	@Tags			tag
//	@Accept			json
//	@Produce		json
//	@Param			tag_id	path	integer	true	"Tag ID"
//	@Param			body	body	service.UpdateTagInput	true	"Fields to update"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Tag}
//	@Router			/tags/{tag_id} [patch]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, err := tagIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	in := service.UpdateTagInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	t, err := h.svc.UpdateTag(c.Request.Context(), tagID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: t})
}

// DeleteTag godoc
//
//	@Summary		Delete tag
//	@Description	Remove a tag and all its asset links
//	@Tags			tag
//	@Produce		json
//	@Param			tag_id	path	integer	true	"Tag ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/tags/{tag_id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, err := tagIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.DeleteTag(c.Request.Context(), tagID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

type AttachTagsReq struct {
	TagIDs []uint `json:"tag_ids" binding:"required,min=1"`
}

// AttachTags godoc
//
//	@Summary		Attach tags
//	@Description	Link tags to an asset; already-linked pairs are skipped
//	@Tags			tag
//	@Accept			json
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Param			body		body	AttachTagsReq	true	"Tags to attach"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=int}
//	@Router			/assets/{asset_id}/tags [post]
func (h *TagHandler) AttachTags(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	req := AttachTagsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	added, err := h.svc.AttachMany(c.Request.Context(), assetID, req.TagIDs, actorOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: added})
}

// DetachTag godoc
//
//	@Summary		Detach tag
//	@Description	Unlink one tag from an asset
//	@Tags			tag
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Param			tag_id		path	integer	true	"Tag ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=bool}
//	@Router			/assets/{asset_id}/tags/{tag_id} [delete]
func (h *TagHandler) DetachTag(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	tagID, err := tagIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	removed, err := h.svc.Detach(c.Request.Context(), assetID, tagID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: removed})
}

type DetachTagsReq struct {
	TagIDs []uint `form:"tag_ids"`
}

// DetachTags godoc
//
//	@Summary		Detach tags
//	@Description	Unlink the given tags from an asset, or every tag when none are given
//	@Tags			tag
//	@Produce		json
//	@Param			asset_id	path	string		true	"Asset ID"	Format(uuid)
//	@Param			tag_ids		query	[]integer	false	"Tag IDs, repeatable; omit to clear all"	collectionFormat(multi)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=int}
//	@Router			/assets/{asset_id}/tags [delete]
func (h *TagHandler) DetachTags(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	req := DetachTagsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	var removed int
	if len(req.TagIDs) == 0 {
		removed, err = h.svc.ClearTags(c.Request.Context(), assetID)
	} else {
		removed, err = h.svc.DetachMany(c.Request.Context(), assetID, req.TagIDs)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: removed})
}

// TagsOfAsset godoc
//
//	@Summary		Tags of asset
//	@Description	All tags linked to one asset
//	@Tags			tag
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Tag}
//	@Router			/assets/{asset_id}/tags [get]
func (h *TagHandler) TagsOfAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tags, err := h.svc.TagsOf(c.Request.Context(), assetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: tags})
}

type SearchByTagsReq struct {
	TagIDs []uint `form:"tag_ids" binding:"required,min=1"`
}

// SearchByTags godoc
//
//	@Summary		Search assets by tags
//	@Description	AND-combination search: only assets carrying every given tag match
//	@Tags			tag
//	@Produce		json
//	@Param			tag_ids	query	[]integer	true	"Tag IDs, repeatable"	collectionFormat(multi)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Asset}
//	@Router			/assets/search [get]
func (h *TagHandler) SearchByTags(c *gin.Context) {
	req := SearchByTagsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	assets, err := h.svc.AssetsWithAllTags(c.Request.Context(), req.TagIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: assets})
}
