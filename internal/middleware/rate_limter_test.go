package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSubmitLimiterAllow(t *testing.T) {
	// 突发 2 次后第 3 次被拒
	l := NewSubmitLimiter(0.5, 2)
	if !l.Allow("sess-1") || !l.Allow("sess-1") {
		t.Fatal("突发额度内应放行")
	}
	if l.Allow("sess-1") {
		t.Error("超出突发额度仍放行")
	}

	// key 之间互不影响
	if !l.Allow("sess-2") {
		t.Error("其他会话不应被连坐")
	}
}

func TestSubmitLimiterRefill(t *testing.T) {
	// 高速率便于测试补充
	l := NewSubmitLimiter(100, 1)
	if !l.Allow("sess-1") {
		t.Fatal("首次应放行")
	}
	if l.Allow("sess-1") {
		t.Fatal("桶空时应被拒")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("sess-1") {
		t.Error("令牌补充后应放行")
	}
}

func TestSubmitLimiterSweep(t *testing.T) {
	l := NewSubmitLimiter(0.5, 2)
	l.Allow("stale")
	l.Sweep(0)
	if len(l.buckets) != 0 {
		t.Errorf("清扫后剩余桶 = %d", len(l.buckets))
	}
}

func TestRateLimitSubmitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewSubmitLimiter(0.001, 1)

	r := gin.New()
	r.POST("/wizard/:id/submit", RateLimitSubmit(l), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0})
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/wizard/sess-1/submit", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("首次提交状态码 = %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("连续提交状态码 = %d, want 429", code)
	}
}
