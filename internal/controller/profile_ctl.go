package controller

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"globassets_dev_v1_202608/internal/api/dto"
	"globassets_dev_v1_202608/internal/service"
	"globassets_dev_v1_202608/internal/wizard"
)

// ==================== ProfileController 主页控制器 ====================

// ProfileController 个人/公司主页与仪表盘
type ProfileController struct {
	profileService *service.ProfileService
	authService    *service.AuthService
}

// NewProfileController 创建主页控制器
func NewProfileController(profileService *service.ProfileService, authService *service.AuthService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		authService:    authService,
	}
}

// ==================== 当前账号 ====================

// MyProfile 当前账号主页
// @Summary 当前账号主页
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /profile [get]
func (c *ProfileController) MyProfile(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	profile, err := c.profileService.MyProfile(ctx.Request.Context(), sess)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", profile)
}

// CreateProfile 创建主页
// @Summary 创建当前账号主页
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "主页字段"
// @Success 200 {object} map[string]interface{}
// @Router /profile [post]
func (c *ProfileController) CreateProfile(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	profile, err := c.profileService.CreateMyProfile(ctx.Request.Context(), sess, req.Form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "已创建", profile)
}

// UpdateProfile 更新主页
// @Summary 更新当前账号主页
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "主页字段"
// @Success 200 {object} map[string]interface{}
// @Router /profile [patch]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}
	if req.ProfileID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "profile_id 不能为空",
		})
		return
	}

	profile, err := c.profileService.UpdateMyProfile(ctx.Request.Context(), sess, req.ProfileID, req.Form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "已更新", profile)
}

// UploadProfileImage 上传头像/Logo
// @Summary 上传头像或公司 Logo
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "图片文件"
// @Success 200 {object} dto.UploadProfileImageResponse
// @Router /profile/image [post]
func (c *ProfileController) UploadProfileImage(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	f.Close()
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}
	if len(data) > maxUploadBytes {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"code":    413,
			"message": fmt.Sprintf("文件超过 %dMB 上限", maxUploadBytes>>20),
		})
		return
	}

	key, err := c.profileService.UploadProfileImage(ctx.Request.Context(), sess, wizard.IncomingFile{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "已上传", &dto.UploadProfileImageResponse{Key: key})
}

// ==================== 名录与公开主页 ====================

// Directory 主页名录
// @Summary 主页名录（按州筛选）
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param state_id query string false "州 ID"
// @Param companies query bool false "true 查公司名录"
// @Success 200 {object} map[string]interface{}
// @Router /profile/directory [get]
func (c *ProfileController) Directory(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	var req dto.DirectoryRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	list, err := c.profileService.Directory(ctx.Request.Context(), sess, req.StateID, req.Companies)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", list)
}

// PublicProfile 公开主页
// @Summary 公开主页
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {object} map[string]interface{}
// @Router /profile/public/{username} [get]
func (c *ProfileController) PublicProfile(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	raw, err := c.profileService.PublicProfile(ctx.Request.Context(), sess, ctx.Param("username"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", raw)
}

// ==================== 仪表盘 ====================

// Dashboard 个人仪表盘总览
// @Summary 个人仪表盘总览
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} estate.DashboardOverview
// @Router /profile/dashboard [get]
func (c *ProfileController) Dashboard(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	overview, err := c.profileService.Dashboard(ctx.Request.Context(), sess)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", overview)
}
