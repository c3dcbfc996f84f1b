package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"globassets_dev_v1_202608/internal/service"
)

// ==================== Token 保活任务 ====================

// TokenTask 定时刷新即将过期的托管远端会话
// 没刷到的会话由下一次业务调用的 401 暴露，用户重登即可，
// 这里只是减少活跃用户被打断的概率
type TokenTask struct {
	AuthService *service.AuthService
	Cron        *cron.Cron

	// 控制并发刷新的数量，防止瞬间打爆远端鉴权接口
	concurrencyLimit int
	sleepTime        time.Duration

	// access token 剩余有效期低于该窗口时触发刷新
	refreshWindow time.Duration
}

// NewTokenTask 创建 Token 保活任务
func NewTokenTask(authService *service.AuthService) *TokenTask {
	return &TokenTask{
		AuthService:      authService,
		Cron:             cron.New(cron.WithSeconds()), // 支持秒级控制
		concurrencyLimit: 20,
		sleepTime:        50 * time.Millisecond, // 每个协程启动间隔，平滑波峰
		refreshWindow:    15 * time.Minute,
	}
}

// Start 启动定时任务
func (t *TokenTask) Start() {
	// 每 10 分钟扫一轮
	_, err := t.Cron.AddFunc("0 0/10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		t.refreshJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动 Token 保活任务: %v", err)
	}

	t.Cron.Start()
	log.Println("Token 保活任务已启动 (每10分钟检查一次)")
}

// Stop 停止任务
func (t *TokenTask) Stop() {
	t.Cron.Stop()
}

func (t *TokenTask) refreshJob(ctx context.Context) {
	sids := t.AuthService.Sessions().ExpiringWithin(t.refreshWindow)
	if len(sids) == 0 {
		return
	}

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	log.Printf("[Cron] 开始刷新 %d 条即将过期的远端会话，并发上限: %d", len(sids), t.concurrencyLimit)

	for _, sid := range sids {
		select {
		case <-ctx.Done():
			log.Println("[Cron] Token 保活任务超时停止")
			return
		default:
		}

		sem <- struct{}{}
		wg.Add(1)

		// 平滑波峰
		time.Sleep(t.sleepTime)

		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := t.AuthService.RefreshRemote(ctx, id); err != nil {
				// refresh token 也失效了，销毁托管会话让用户重登
				log.Printf("[Cron] 会话刷新失败，已销毁 sid=%s: %v", id, err)
				t.AuthService.Sessions().Delete(id)
			}
		}(sid)
	}

	wg.Wait()
}
