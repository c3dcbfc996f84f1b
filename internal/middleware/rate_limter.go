package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 提交限流 ====================

// bucket 单个 key 的令牌桶
type bucket struct {
	tokens   float64
	lastFill time.Time
}

// SubmitLimiter 按向导会话限流
// 提交会触发一串远端调用（预签名 + 批量上传 + 创建/更新），
// 这里限制单个会话的触发频率，防止误触连点打爆远端
type SubmitLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	rate  float64 // 每秒补充令牌数
	burst float64 // 桶容量
}

// NewSubmitLimiter 创建限流器
func NewSubmitLimiter(rate, burst float64) *SubmitLimiter {
	if rate <= 0 {
		rate = 0.5 // 默认 2 秒一次
	}
	if burst <= 0 {
		burst = 2
	}
	return &SubmitLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   burst,
	}
}

// Allow key 是否放行
func (l *SubmitLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, lastFill: now}
		l.buckets[key] = b
	}

	// 按时间差补充令牌
	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens += elapsed * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Sweep 清理长时间不活动的桶（清扫任务调用）
func (l *SubmitLimiter) Sweep(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for key, b := range l.buckets {
		if b.lastFill.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// RateLimitSubmit 提交限流中间件，key 取路径参数 id（向导会话）
func RateLimitSubmit(limiter *SubmitLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("id")
		if key == "" {
			key = c.ClientIP()
		}
		if !limiter.Allow(key) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": "操作过于频繁，请稍后重试",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
