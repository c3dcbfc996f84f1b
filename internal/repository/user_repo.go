package repository

import (
	"context"

	"gorm.io/gorm"

	"globassets_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// SysUserRepository 操作员账号仓储接口
type SysUserRepository interface {
	Create(ctx context.Context, user *model.SysUser) error
	GetByID(ctx context.Context, id int64) (*model.SysUser, error)
	GetByUsername(ctx context.Context, username string) (*model.SysUser, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	List(ctx context.Context, page, pageSize int) ([]model.SysUser, int64, error)
}

// ==================== 仓储实现 ====================

type sysUserRepo struct {
	db *gorm.DB
}

// NewSysUserRepository 创建操作员仓储
func NewSysUserRepository(db *gorm.DB) SysUserRepository {
	return &sysUserRepo{db: db}
}

func (r *sysUserRepo) Create(ctx context.Context, user *model.SysUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *sysUserRepo) GetByID(ctx context.Context, id int64) (*model.SysUser, error) {
	var user model.SysUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *sysUserRepo) GetByUsername(ctx context.Context, username string) (*model.SysUser, error) {
	var user model.SysUser
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *sysUserRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.SysUser{}).Where("id = ?", id).Updates(fields).Error
}

func (r *sysUserRepo) List(ctx context.Context, page, pageSize int) ([]model.SysUser, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var (
		users []model.SysUser
		total int64
	)
	query := r.db.WithContext(ctx).Model(&model.SysUser{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error
	return users, total, err
}
