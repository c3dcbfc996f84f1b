package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username":   GetUsername(c),
			"role":       GetUserRole(c),
			"remote_sid": GetRemoteSID(c),
		})
	})
	r.GET("/admin", JWTAuth(), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0})
	})
	return r
}

func doAuthed(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthRoundtrip(t *testing.T) {
	r := newAuthTestRouter()

	access, refresh, err := GenerateTokenPair(7, "ops", "admin", "sid-1")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	// access token 放行并注入上下文
	w := doAuthed(r, "/me", access)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{`"username":"ops"`, `"role":"admin"`, `"remote_sid":"sid-1"`} {
		if !strings.Contains(body, want) {
			t.Errorf("响应缺少 %s: %s", want, body)
		}
	}

	// refresh token 不能当 access 用
	if w := doAuthed(r, "/me", refresh); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh token 状态码 = %d", w.Code)
	}
}

func TestJWTAuthRejections(t *testing.T) {
	r := newAuthTestRouter()

	if w := doAuthed(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("无 token 状态码 = %d", w.Code)
	}
	if w := doAuthed(r, "/me", "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("坏 token 状态码 = %d", w.Code)
	}

	// 格式错的 Authorization 头
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("非 Bearer 头状态码 = %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := newAuthTestRouter()

	adminToken, _, _ := GenerateTokenPair(1, "root", "admin", "")
	operatorToken, _, _ := GenerateTokenPair(2, "ops", "operator", "")

	if w := doAuthed(r, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin 状态码 = %d", w.Code)
	}
	if w := doAuthed(r, "/admin", operatorToken); w.Code != http.StatusForbidden {
		t.Errorf("operator 状态码 = %d, want 403", w.Code)
	}
}
