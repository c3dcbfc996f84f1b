package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"globassets_dev_v1_202608/internal/api/dto"
	"globassets_dev_v1_202608/internal/repository"
	"globassets_dev_v1_202608/internal/service"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== AdminController 后台控制器 ====================

// AdminController 后台管理：远端统计透传 + 提交审计 + 操作员管理
type AdminController struct {
	adminService  *service.AdminService
	wizardService *service.WizardService
	authService   *service.AuthService
}

// NewAdminController 创建后台控制器
func NewAdminController(adminService *service.AdminService, wizardService *service.WizardService, authService *service.AuthService) *AdminController {
	return &AdminController{
		adminService:  adminService,
		wizardService: wizardService,
		authService:   authService,
	}
}

// ==================== 远端统计 ====================

// DashboardOverview 后台总览统计
// 操作员 Token 不绑定远端会话，远端管理接口统一走服务账号
// @Summary 后台总览统计
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/dashboard [get]
func (c *AdminController) DashboardOverview(ctx *gin.Context) {
	sess, err := c.authService.ServiceSession(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	raw, err := c.adminService.DashboardOverview(ctx.Request.Context(), sess)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", raw)
}

// UserDashboard 远端用户列表
// @Summary 远端用户列表（分页）
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "personal | company | all"
// @Param email query string false "邮箱搜索"
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users [get]
func (c *AdminController) UserDashboard(ctx *gin.Context) {
	sess, err := c.authService.ServiceSession(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req dto.AdminUserListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	raw, err := c.adminService.UserDashboard(ctx.Request.Context(), sess, &estate.AdminUserQuery{
		Role:        req.Role,
		EmailSearch: req.EmailSearch,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", raw)
}

// ==================== 提交审计 ====================

// ListSubmissions 提交审计查询
// @Summary 提交审计查询
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param remote_email query string false "远端账号邮箱"
// @Param mode query string false "create | edit"
// @Param outcome query string false "ok | failed"
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} map[string]interface{}
// @Router /admin/submissions [get]
func (c *AdminController) ListSubmissions(ctx *gin.Context) {
	var req dto.SubmissionListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	rows, total, err := c.wizardService.ListSubmissions(ctx.Request.Context(), repository.SubmissionLogFilter{
		RemoteEmail: req.RemoteEmail,
		Mode:        req.Mode,
		Outcome:     req.Outcome,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", gin.H{
		"list":  rows,
		"total": total,
	})
}

// ==================== 操作员管理 ====================

// ListOperators 操作员列表
// @Summary 操作员列表
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} map[string]interface{}
// @Router /admin/operators [get]
func (c *AdminController) ListOperators(ctx *gin.Context) {
	var req dto.OperatorListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	users, total, err := c.adminService.ListOperators(ctx.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]*dto.OperatorInfo, len(users))
	for i, u := range users {
		list[i] = &dto.OperatorInfo{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Role:        u.Role,
			Status:      u.Status,
			LastLoginAt: u.LastLoginAt,
			CreatedAt:   u.CreatedAt,
		}
	}
	respondOK(ctx, "OK", gin.H{
		"list":  list,
		"total": total,
	})
}

// SetOperatorStatus 启用/禁用操作员
// @Summary 启用/禁用操作员
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "操作员 ID"
// @Param request body dto.SetOperatorStatusRequest true "目标状态"
// @Success 200 {object} map[string]interface{}
// @Router /admin/operators/{id}/status [patch]
func (c *AdminController) SetOperatorStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	var req dto.SetOperatorStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	if err := c.adminService.SetOperatorStatus(ctx.Request.Context(), id, *req.Status); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "已更新", nil)
}
