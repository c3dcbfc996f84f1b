package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ==================== 审计上下文 ====================

// AuditContext Key
type auditContextKey struct{}

// AuditInfo 审计信息
type AuditInfo struct {
	OperatorID int64
	Username   string
	RemoteSID  string
}

// WithAuditInfo 注入审计信息到 context
func WithAuditInfo(ctx context.Context, operatorID int64, username, remoteSID string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{
		OperatorID: operatorID,
		Username:   username,
		RemoteSID:  remoteSID,
	})
}

// GetAuditInfo 从 context 获取审计信息
func GetAuditInfo(ctx context.Context) *AuditInfo {
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info
	}
	return nil
}

// GetAuditRemoteSID 从 context 获取远端会话 ID
func GetAuditRemoteSID(ctx context.Context) string {
	if info := GetAuditInfo(ctx); info != nil {
		return info.RemoteSID
	}
	return ""
}

// ==================== Gin 中间件 ====================

// AuditContext 审计上下文中间件
// 将 JWT 中的身份信息注入到 request context，供提交审计落库使用
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		operatorID := GetOperatorID(c)
		username := GetUsername(c)
		remoteSID := GetRemoteSID(c)

		if operatorID > 0 || remoteSID != "" {
			ctx := WithAuditInfo(c.Request.Context(), operatorID, username, remoteSID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}
