package dto

import "time"

// ==================== 远端用户列表 ====================

// AdminUserListRequest 后台用户列表参数
type AdminUserListRequest struct {
	Role        string `form:"role" binding:"omitempty,oneof=personal company all"`
	EmailSearch string `form:"email"`
	Page        int    `form:"page,default=1"`
	PageSize    int    `form:"page_size,default=20"`
}

// ==================== 提交审计 ====================

// SubmissionListRequest 提交审计查询参数
type SubmissionListRequest struct {
	RemoteEmail string `form:"remote_email"`
	Mode        string `form:"mode" binding:"omitempty,oneof=create edit"`
	Outcome     string `form:"outcome" binding:"omitempty,oneof=ok failed"`
	Page        int    `form:"page,default=1"`
	PageSize    int    `form:"page_size,default=20"`
}

// ==================== 操作员管理 ====================

// OperatorInfo 操作员信息
type OperatorInfo struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Status      int       `json:"status"`
	LastLoginAt int64     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OperatorListRequest 操作员列表参数
type OperatorListRequest struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

// SetOperatorStatusRequest 启用/禁用操作员请求
type SetOperatorStatusRequest struct {
	Status *int `json:"status" binding:"required,oneof=0 1"`
}
