package task

import (
	"context"
	"log"

	"globassets_dev_v1_202608/internal/middleware"
	"globassets_dev_v1_202608/internal/service"
	"globassets_dev_v1_202608/internal/wizard"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台定时任务
// 管理范围：目录同步、Token 保活、会话清扫
type TaskManager struct {
	catalogTask *CatalogSyncTask
	tokenTask   *TokenTask
	sweepTask   *SweepTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	CatalogService *service.CatalogService
	AuthService    *service.AuthService
	WizardStore    *wizard.Store
	SubmitLimiter  *middleware.SubmitLimiter
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	CatalogEnabled bool
	TokenEnabled   bool
	SweepEnabled   bool
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		CatalogEnabled: true,
		TokenEnabled:   true,
		SweepEnabled:   true,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{}

	if cfg.CatalogEnabled && deps.CatalogService != nil {
		tm.catalogTask = NewCatalogSyncTask(deps.CatalogService, deps.AuthService)
	}
	if cfg.TokenEnabled && deps.AuthService != nil {
		tm.tokenTask = NewTokenTask(deps.AuthService)
	}
	if cfg.SweepEnabled && deps.WizardStore != nil {
		tm.sweepTask = NewSweepTask(deps.WizardStore, deps.SubmitLimiter)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() {
	log.Println("[TaskManager] 正在启动后台任务...")

	if tm.catalogTask != nil {
		tm.catalogTask.Start()
	}
	if tm.tokenTask != nil {
		tm.tokenTask.Start()
	}
	if tm.sweepTask != nil {
		tm.sweepTask.Start()
	}

	log.Println("[TaskManager] 后台任务已全部启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	log.Println("[TaskManager] 正在停止后台任务...")

	if tm.catalogTask != nil {
		tm.catalogTask.Stop()
	}
	if tm.tokenTask != nil {
		tm.tokenTask.Stop()
	}
	if tm.sweepTask != nil {
		tm.sweepTask.Stop()
	}

	log.Println("[TaskManager] 后台任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerCatalogSync 手动触发目录同步
func (tm *TaskManager) TriggerCatalogSync(ctx context.Context) error {
	if tm.catalogTask == nil {
		return ErrTaskDisabled
	}
	return tm.catalogTask.SyncNow(ctx)
}

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"catalog": tm.catalogTask != nil,
		"token":   tm.tokenTask != nil,
		"sweep":   tm.sweepTask != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
