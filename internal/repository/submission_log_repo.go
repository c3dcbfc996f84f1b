package repository

import (
	"context"

	"gorm.io/gorm"

	"globassets_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// SubmissionLogRepository 提交审计仓储接口
type SubmissionLogRepository interface {
	Create(ctx context.Context, logRow *model.SubmissionLog) error
	List(ctx context.Context, filter SubmissionLogFilter) ([]model.SubmissionLog, int64, error)
}

// SubmissionLogFilter 审计查询条件
type SubmissionLogFilter struct {
	RemoteEmail string
	Mode        string
	Outcome     string
	Page        int
	PageSize    int
}

// ==================== 仓储实现 ====================

type submissionLogRepo struct {
	db *gorm.DB
}

// NewSubmissionLogRepository 创建审计仓储
func NewSubmissionLogRepository(db *gorm.DB) SubmissionLogRepository {
	return &submissionLogRepo{db: db}
}

func (r *submissionLogRepo) Create(ctx context.Context, logRow *model.SubmissionLog) error {
	return r.db.WithContext(ctx).Create(logRow).Error
}

func (r *submissionLogRepo) List(ctx context.Context, filter SubmissionLogFilter) ([]model.SubmissionLog, int64, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := r.db.WithContext(ctx).Model(&model.SubmissionLog{})
	if filter.RemoteEmail != "" {
		query = query.Where("remote_email = ?", filter.RemoteEmail)
	}
	if filter.Mode != "" {
		query = query.Where("mode = ?", filter.Mode)
	}
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.SubmissionLog
	err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error
	return rows, total, err
}
