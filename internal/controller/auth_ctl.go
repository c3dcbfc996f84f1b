package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"globassets_dev_v1_202608/internal/api/dto"
	"globassets_dev_v1_202608/internal/middleware"
	"globassets_dev_v1_202608/internal/service"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== AuthController 鉴权控制器 ====================

// AuthController 鉴权控制器
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 创建鉴权控制器
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// ==================== 远端账号 ====================

// Login 远端账号登录
// @Summary 远端账号登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		// 远端 5xx 按网关错误上报，其余一律当凭证问题
		status := http.StatusUnauthorized
		var ae *estate.APIError
		if errors.As(err, &ae) && ae.StatusCode >= 500 {
			status = http.StatusBadGateway
		}
		ctx.JSON(status, gin.H{
			"code":    status,
			"message": err.Error(),
		})
		return
	}

	respondOK(ctx, "登录成功", &dto.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Email:        result.Email,
		Role:         result.Role,
	})
}

// Register 远端账号注册
// @Summary 远端账号注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	err := c.authService.Register(ctx.Request.Context(), &estate.RegisterReq{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "注册成功", nil)
}

// Logout 登出并销毁托管会话
// @Summary 登出
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	sid := middleware.GetRemoteSID(ctx)
	if sid != "" {
		c.authService.Logout(ctx.Request.Context(), sid)
	}
	respondOK(ctx, "已登出", nil)
}

// RefreshRemote 刷新远端 access token
// @Summary 刷新远端 access token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/refresh-remote [post]
func (c *AuthController) RefreshRemote(ctx *gin.Context) {
	sid := middleware.GetRemoteSID(ctx)
	if sid == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "当前 Token 未绑定远端会话",
		})
		return
	}

	if err := c.authService.RefreshRemote(ctx.Request.Context(), sid); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "刷新成功", nil)
}

// ==================== 后台操作员 ====================

// OperatorLogin 操作员登录
// @Summary 后台操作员登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.OperatorLoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/operator/login [post]
func (c *AuthController) OperatorLogin(ctx *gin.Context) {
	var req dto.OperatorLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	result, err := c.authService.OperatorLogin(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": err.Error(),
		})
		return
	}

	respondOK(ctx, "登录成功", &dto.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Email:        result.Email,
		Role:         result.Role,
	})
}
