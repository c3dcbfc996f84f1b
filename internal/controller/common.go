package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"globassets_dev_v1_202608/internal/middleware"
	"globassets_dev_v1_202608/internal/service"
	"globassets_dev_v1_202608/internal/wizard"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 响应辅助 ====================

// respondError 错误归一出口
// 分步校验错误带 title/description 回 422，远端错误透传其状态码，其余按 500
func respondError(ctx *gin.Context, err error) {
	var ve *wizard.ValidationError
	if errors.As(err, &ve) {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":        422,
			"message":     ve.Title,
			"description": ve.Description,
		})
		return
	}

	var ae *estate.APIError
	if errors.As(err, &ae) {
		status := ae.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		ctx.JSON(status, gin.H{
			"code":    status,
			"message": ae.Detail,
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{
		"code":    500,
		"message": err.Error(),
	})
}

// respondBadRequest 参数绑定失败
func respondBadRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": "参数错误: " + err.Error(),
	})
}

// respondOK 成功响应
func respondOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// ==================== 会话解析 ====================

// requireRemoteSession 从 JWT 里的 remote_sid 解析托管的远端会话
// 解析失败说明远端会话已销毁（登出或重启），要求重新登录
func requireRemoteSession(ctx *gin.Context, auth *service.AuthService) (*estate.Session, bool) {
	sid := middleware.GetRemoteSID(ctx)
	if sid == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "当前 Token 未绑定远端会话",
		})
		return nil, false
	}

	sess, err := auth.Session(sid)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "远端会话已失效，请重新登录",
		})
		return nil, false
	}
	return sess, true
}
