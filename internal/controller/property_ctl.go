package controller

import (
	"github.com/gin-gonic/gin"

	"globassets_dev_v1_202608/internal/api/dto"
	"globassets_dev_v1_202608/internal/service"
)

// ==================== PropertyController 房源控制器 ====================

// PropertyController 房源控制器
type PropertyController struct {
	propertyService *service.PropertyService
	authService     *service.AuthService
}

// NewPropertyController 创建房源控制器
func NewPropertyController(propertyService *service.PropertyService, authService *service.AuthService) *PropertyController {
	return &PropertyController{
		propertyService: propertyService,
		authService:     authService,
	}
}

// ==================== 查询 ====================

// Browse 公开房源检索
// @Summary 公开房源检索
// @Tags Property
// @Produce json
// @Security BearerAuth
// @Param property_type query string false "房源类型"
// @Param state_id query string false "州 ID"
// @Param region_id query string false "区域 ID"
// @Param search query string false "关键词"
// @Param page query int false "页码"
// @Success 200 {array} estate.Property
// @Router /properties [get]
func (c *PropertyController) Browse(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	var req dto.BrowsePropertiesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	list, err := c.propertyService.Browse(ctx.Request.Context(), sess, &service.BrowseQuery{
		PropertyType: req.PropertyType,
		StateID:      req.StateID,
		RegionID:     req.RegionID,
		Search:       req.Search,
		Page:         req.Page,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", list)
}

// GetByID 房源详情
// @Summary 房源详情
// @Tags Property
// @Produce json
// @Security BearerAuth
// @Param id path string true "房源 ID"
// @Success 200 {object} estate.Property
// @Router /properties/{id} [get]
func (c *PropertyController) GetByID(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	prop, err := c.propertyService.GetByID(ctx.Request.Context(), sess, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", prop)
}

// MyProperties 我的房源
// @Summary 我的房源列表
// @Tags Property
// @Produce json
// @Security BearerAuth
// @Param property_type query string false "房源类型，空为全部"
// @Success 200 {array} estate.Property
// @Router /properties/mine [get]
func (c *PropertyController) MyProperties(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	var req dto.MyPropertiesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	list, err := c.propertyService.MyProperties(ctx.Request.Context(), sess, req.PropertyType)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", list)
}

// ByOwner 某用户的公开房源
// @Summary 某用户的公开房源
// @Tags Property
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {array} estate.Property
// @Router /properties/owner/{username} [get]
func (c *PropertyController) ByOwner(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	list, err := c.propertyService.ByOwner(ctx.Request.Context(), sess, ctx.Param("username"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", list)
}

// ==================== 写操作 ====================

// Delete 删除房源
// @Summary 删除房源
// @Tags Property
// @Produce json
// @Security BearerAuth
// @Param id path string true "房源 ID"
// @Success 200 {object} map[string]interface{}
// @Router /properties/{id} [delete]
func (c *PropertyController) Delete(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	if err := c.propertyService.Delete(ctx.Request.Context(), sess, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "已删除", nil)
}

// ToggleActive 上下架
// @Summary 房源上下架
// @Tags Property
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "房源 ID"
// @Param request body dto.ToggleActiveRequest true "目标状态"
// @Success 200 {object} estate.Property
// @Router /properties/{id}/active [patch]
func (c *PropertyController) ToggleActive(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	var req dto.ToggleActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	prop, err := c.propertyService.ToggleActive(ctx.Request.Context(), sess, ctx.Param("id"), *req.IsActive)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", prop)
}

// ToggleVerified 审核标记（管理员）
// @Summary 房源审核标记
// @Tags Property
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "房源 ID"
// @Param request body dto.ToggleVerifiedRequest true "目标状态"
// @Success 200 {object} estate.Property
// @Router /properties/{id}/verified [patch]
func (c *PropertyController) ToggleVerified(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	var req dto.ToggleVerifiedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	prop, err := c.propertyService.ToggleVerified(ctx.Request.Context(), sess, ctx.Param("id"), *req.IsVerified)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", prop)
}
