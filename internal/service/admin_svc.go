package service

import (
	"context"
	"encoding/json"

	"globassets_dev_v1_202608/internal/model"
	"globassets_dev_v1_202608/internal/repository"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 后台服务 ====================

// AdminService 后台管理：远端统计透传 + 本地操作员账号管理
type AdminService struct {
	api      *estate.Client
	userRepo repository.SysUserRepository
}

// NewAdminService 创建后台服务
func NewAdminService(api *estate.Client, userRepo repository.SysUserRepository) *AdminService {
	return &AdminService{api: api, userRepo: userRepo}
}

// ==================== 远端统计 ====================

// DashboardOverview 后台总览统计（远端管理员接口透传）
func (s *AdminService) DashboardOverview(ctx context.Context, sess *estate.Session) (json.RawMessage, error) {
	return s.api.GetAdminDashboardOverview(ctx, sess)
}

// UserDashboard 远端用户列表（分页）
func (s *AdminService) UserDashboard(ctx context.Context, sess *estate.Session, q *estate.AdminUserQuery) (json.RawMessage, error) {
	return s.api.GetUserDashboard(ctx, sess, q)
}

// ==================== 本地操作员 ====================

// ListOperators 操作员列表（分页）
func (s *AdminService) ListOperators(ctx context.Context, page, pageSize int) ([]model.SysUser, int64, error) {
	return s.userRepo.List(ctx, page, pageSize)
}

// SetOperatorStatus 启用/禁用操作员
func (s *AdminService) SetOperatorStatus(ctx context.Context, operatorID int64, status int) error {
	return s.userRepo.UpdateFields(ctx, operatorID, map[string]interface{}{
		"status": status,
	})
}
