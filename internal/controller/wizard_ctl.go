package controller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"globassets_dev_v1_202608/internal/api/dto"
	"globassets_dev_v1_202608/internal/service"
	"globassets_dev_v1_202608/internal/wizard"
)

// ==================== WizardController 挂牌向导控制器 ====================

// WizardController 挂牌向导控制器
type WizardController struct {
	wizardService *service.WizardService
	authService   *service.AuthService
}

// NewWizardController 创建向导控制器
func NewWizardController(wizardService *service.WizardService, authService *service.AuthService) *WizardController {
	return &WizardController{
		wizardService: wizardService,
		authService:   authService,
	}
}

// ==================== 会话生命周期 ====================

// StartCreate 开启创建流程
// @Summary 开启挂牌创建流程
// @Tags Wizard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.WizardState
// @Failure 401 {object} map[string]interface{}
// @Router /wizard [post]
func (c *WizardController) StartCreate(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	snap := c.wizardService.StartCreate(sess)
	respondOK(ctx, "会话已创建", dto.NewWizardState(snap))
}

// StartEdit 开启编辑流程
// @Summary 开启挂牌编辑流程
// @Tags Wizard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StartEditRequest true "被编辑房源"
// @Success 200 {object} dto.WizardState
// @Failure 400 {object} map[string]interface{}
// @Router /wizard/edit [post]
func (c *WizardController) StartEdit(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	var req dto.StartEditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	snap, err := c.wizardService.StartEdit(ctx.Request.Context(), sess, req.PropertyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "会话已创建", dto.NewWizardState(snap))
}

// Get 读取会话状态
// @Summary 读取向导会话状态
// @Tags Wizard
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} dto.WizardState
// @Failure 404 {object} map[string]interface{}
// @Router /wizard/{id} [get]
func (c *WizardController) Get(ctx *gin.Context) {
	snap, err := c.wizardService.Get(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})
		return
	}
	respondOK(ctx, "OK", dto.NewWizardState(snap))
}

// Abandon 放弃会话
// @Summary 放弃向导会话
// @Tags Wizard
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} map[string]interface{}
// @Router /wizard/{id} [delete]
func (c *WizardController) Abandon(ctx *gin.Context) {
	c.wizardService.Abandon(ctx.Param("id"))
	respondOK(ctx, "会话已销毁", nil)
}

// ==================== 表单与步进 ====================

// PatchForm 写入表单字段
// @Summary 写入向导表单字段
// @Tags Wizard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Param request body dto.PatchFormRequest true "表单增量"
// @Success 200 {object} dto.WizardState
// @Failure 422 {object} map[string]interface{}
// @Router /wizard/{id}/form [patch]
func (c *WizardController) PatchForm(ctx *gin.Context) {
	var req dto.PatchFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	snap, err := c.wizardService.Patch(ctx.Param("id"), req.ToPatch())
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "已保存", dto.NewWizardState(snap))
}

// Advance 校验当前步并前进
// @Summary 向导前进一步
// @Tags Wizard
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} dto.WizardState
// @Failure 422 {object} map[string]interface{}
// @Router /wizard/{id}/next [post]
func (c *WizardController) Advance(ctx *gin.Context) {
	snap, err := c.wizardService.Advance(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", dto.NewWizardState(snap))
}

// Retreat 后退一步（不校验）
// @Summary 向导后退一步
// @Tags Wizard
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} dto.WizardState
// @Router /wizard/{id}/back [post]
func (c *WizardController) Retreat(ctx *gin.Context) {
	snap, err := c.wizardService.Retreat(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", dto.NewWizardState(snap))
}

// ==================== 图片操作 ====================

// maxUploadBytes 单文件大小上限；超限文件整个拒绝，绝不截断暂存
const maxUploadBytes = 15 << 20

// StageImages 暂存一批图片（multipart，字段名 files）
// @Summary 暂存向导图片
// @Tags Wizard
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Param files formData file true "图片文件（可多选）"
// @Success 200 {object} dto.StageImagesResponse
// @Failure 422 {object} map[string]interface{}
// @Router /wizard/{id}/images [post]
func (c *WizardController) StageImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "未收到任何文件",
		})
		return
	}

	files := make([]wizard.IncomingFile, 0, len(headers))
	var oversized []wizard.FileError
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondBadRequest(ctx, err)
			return
		}
		// 多读一字节，区分"正好到顶"与"超限"
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		f.Close()
		if err != nil {
			respondBadRequest(ctx, err)
			return
		}
		if len(data) > maxUploadBytes {
			oversized = append(oversized, wizard.FileError{
				FileName: fh.Filename,
				Reason:   fmt.Sprintf("%s exceeds the %dMB size limit", fh.Filename, maxUploadBytes>>20),
			})
			continue
		}
		files = append(files, wizard.IncomingFile{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	rejected, snap, err := c.wizardService.StageImages(ctx.Param("id"), files)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", &dto.StageImagesResponse{
		Rejected: append(oversized, rejected...),
		State:    dto.NewWizardState(snap),
	})
}

// UnstageImage 移除一张暂存图片
// @Summary 移除暂存图片
// @Tags Wizard
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Param index path int true "暂存下标"
// @Success 200 {object} dto.WizardState
// @Router /wizard/{id}/images/{index} [delete]
func (c *WizardController) UnstageImage(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	snap, err := c.wizardService.UnstageImage(ctx.Param("id"), index)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", dto.NewWizardState(snap))
}

// MarkImageDelete 标记已入库图片待删
// @Summary 标记已入库图片待删
// @Tags Wizard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Param request body dto.MarkImageDeleteRequest true "图片 ID"
// @Success 200 {object} dto.WizardState
// @Router /wizard/{id}/images/mark-delete [post]
func (c *WizardController) MarkImageDelete(ctx *gin.Context) {
	var req dto.MarkImageDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	snap, err := c.wizardService.MarkImageForDeletion(ctx.Param("id"), req.ImageID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "OK", dto.NewWizardState(snap))
}

// ==================== 提交 ====================

// Submit 提交向导
// @Summary 提交挂牌向导
// @Tags Wizard
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} dto.SubmitResponse
// @Failure 422 {object} map[string]interface{}
// @Router /wizard/{id}/submit [post]
func (c *WizardController) Submit(ctx *gin.Context) {
	sess, ok := requireRemoteSession(ctx, c.authService)
	if !ok {
		return
	}

	result, err := c.wizardService.Submit(ctx.Request.Context(), ctx.Param("id"), sess)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "提交成功", &dto.SubmitResponse{
		Property: result.Property,
		Warnings: result.Warnings,
	})
}
