package task

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"globassets_dev_v1_202608/internal/middleware"
	"globassets_dev_v1_202608/internal/wizard"
)

// ==================== 清扫任务 ====================

// SweepTask 内存状态回收：过期向导会话 + 限流器闲置桶
type SweepTask struct {
	Store   *wizard.Store
	Limiter *middleware.SubmitLimiter
	Cron    *cron.Cron
}

// NewSweepTask 创建清扫任务
func NewSweepTask(store *wizard.Store, limiter *middleware.SubmitLimiter) *SweepTask {
	return &SweepTask{
		Store:   store,
		Limiter: limiter,
		Cron:    cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *SweepTask) Start() {
	// 每 10 分钟清扫一轮
	_, err := t.Cron.AddFunc("0 5/10 * * * *", func() {
		t.sweepJob()
	})
	if err != nil {
		log.Fatalf("无法启动清扫任务: %v", err)
	}

	t.Cron.Start()
	log.Println("会话清扫任务已启动 (每10分钟清扫一次)")
}

// Stop 停止任务
func (t *SweepTask) Stop() {
	t.Cron.Stop()
}

func (t *SweepTask) sweepJob() {
	if removed := t.Store.Sweep(); removed > 0 {
		log.Printf("[Cron] 已回收 %d 个过期向导会话，存量 %d", removed, t.Store.Count())
	}
	if t.Limiter != nil {
		t.Limiter.Sweep(time.Hour)
	}
}
