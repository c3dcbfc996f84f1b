package controller

import (
	"github.com/gin-gonic/gin"

	"globassets_dev_v1_202608/internal/api/dto"
	"globassets_dev_v1_202608/internal/service"
)

// ==================== CatalogController 目录控制器 ====================

// CatalogController 州/区域/户型/特性目录
type CatalogController struct {
	catalogService *service.CatalogService
	authService    *service.AuthService
}

// NewCatalogController 创建目录控制器
func NewCatalogController(catalogService *service.CatalogService, authService *service.AuthService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		authService:    authService,
	}
}

// States 州列表
// @Summary 州列表
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param search query string false "名称搜索"
// @Success 200 {array} estate.State
// @Router /catalog/states [get]
func (c *CatalogController) States(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	states, err := c.catalogService.States(ctx.Request.Context(), sess, ctx.Query("search"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", states)
}

// Regions 某州下的区域列表
// @Summary 区域列表
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param state_id path string true "州 ID"
// @Success 200 {array} estate.Region
// @Router /catalog/states/{state_id}/regions [get]
func (c *CatalogController) Regions(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	regions, err := c.catalogService.Regions(ctx.Request.Context(), sess, ctx.Param("state_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", regions)
}

// CreateRegion 新建区域
// @Summary 新建区域
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRegionRequest true "区域信息"
// @Success 200 {object} estate.Region
// @Router /catalog/regions [post]
func (c *CatalogController) CreateRegion(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	var req dto.CreateRegionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	region, err := c.catalogService.CreateRegion(ctx.Request.Context(), sess, req.StateID, req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "已创建", region)
}

// RoomTypes 户型列表
// @Summary 户型列表
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} estate.RoomType
// @Router /catalog/room-types [get]
func (c *CatalogController) RoomTypes(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	roomTypes, err := c.catalogService.RoomTypes(ctx.Request.Context(), sess)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", roomTypes)
}

// Features 房源特性列表
// @Summary 房源特性列表
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} estate.Feature
// @Router /catalog/features [get]
func (c *CatalogController) Features(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	features, err := c.catalogService.Features(ctx.Request.Context(), sess)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", features)
}
