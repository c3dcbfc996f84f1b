package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"globassets_dev_v1_202608/internal/service"
)

// ==================== 目录同步任务 ====================

// CatalogSyncTask 定时用服务账号全量刷新目录镜像
// 镜像只在远端故障时兜底使用，刷新失败不影响在线读取路径
type CatalogSyncTask struct {
	CatalogService *service.CatalogService
	AuthService    *service.AuthService
	Cron           *cron.Cron
}

// NewCatalogSyncTask 创建目录同步任务
func NewCatalogSyncTask(catalogService *service.CatalogService, authService *service.AuthService) *CatalogSyncTask {
	return &CatalogSyncTask{
		CatalogService: catalogService,
		AuthService:    authService,
		Cron:           cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *CatalogSyncTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次目录同步...")
		t.syncJob(ctx)
	}()

	// 每 6 小时全量刷新一次
	_, err := t.Cron.AddFunc("0 0 0/6 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.syncJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动目录同步任务: %v", err)
	}

	t.Cron.Start()
	log.Println("目录同步任务已启动 (每6小时刷新一次)")
}

// Stop 停止任务
func (t *CatalogSyncTask) Stop() {
	t.Cron.Stop()
}

// SyncNow 手动触发一次同步
func (t *CatalogSyncTask) SyncNow(ctx context.Context) error {
	sess, err := t.AuthService.ServiceSession(ctx)
	if err != nil {
		return err
	}
	return t.CatalogService.RefreshAll(ctx, sess)
}

func (t *CatalogSyncTask) syncJob(ctx context.Context) {
	sess, err := t.AuthService.ServiceSession(ctx)
	if err != nil {
		log.Printf("[Cron] 目录同步跳过，服务账号不可用: %v", err)
		return
	}

	if err := t.CatalogService.RefreshAll(ctx, sess); err != nil {
		log.Printf("[Cron] 目录同步失败: %v", err)
		// 会话可能已过期，丢弃后下轮重登
		t.AuthService.DropServiceSession()
		return
	}
	log.Println("[Cron] 目录镜像刷新完成")
}
