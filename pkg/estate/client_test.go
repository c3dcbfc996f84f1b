package estate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(&Config{BaseURL: srv.URL}), srv
}

// ==================== 鉴权 ====================

func TestLogin(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auths/login" || r.Method != http.MethodPost {
			t.Errorf("请求 = %s %s", r.Method, r.URL.Path)
		}
		var req LoginReq
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "a@b.com" || req.Password != "secret" {
			t.Errorf("登录参数 = %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Session{
			Access: "acc-1", Refresh: "ref-1", Email: "a@b.com", Role: AccountPersonal,
		})
	}))
	defer srv.Close()

	sess, err := client.Login(context.Background(), &LoginReq{Email: "a@b.com", Password: "secret"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if sess.Access != "acc-1" || sess.Refresh != "ref-1" || sess.Role != AccountPersonal {
		t.Errorf("会话 = %+v", sess)
	}
	if sess.IsCompany() {
		t.Error("个人账号不应判为公司")
	}
}

func TestLoginErrorDetail(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), &LoginReq{Email: "a@b.com", Password: "wrong"})
	ae, ok := err.(*APIError)
	if !ok {
		t.Fatalf("期望 APIError, 实际 %T: %v", err, err)
	}
	if ae.StatusCode != 401 || ae.Detail != "Invalid credentials" {
		t.Errorf("归一错误 = %+v", ae)
	}
}

func TestWrapErrorFallbackChain(t *testing.T) {
	// message 字段兜底
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad input"}`))
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), &LoginReq{})
	if ae, ok := err.(*APIError); !ok || ae.Detail != "bad input" {
		t.Errorf("message 兜底失败: %v", err)
	}

	// 包体不可解析时退回调用方给的 fallback
	client2, srv2 := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv2.Close()

	_, err = client2.Login(context.Background(), &LoginReq{})
	if ae, ok := err.(*APIError); !ok || ae.Detail != "Login failed" {
		t.Errorf("fallback 失败: %v", err)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	sess := &Session{Access: "acc-1", Refresh: "ref-1"}
	if err := client.Logout(context.Background(), sess); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if gotAuth != "Bearer acc-1" {
		t.Errorf("鉴权头 = %q", gotAuth)
	}
}

func TestRefreshToken(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["refresh"] != "ref-1" {
			t.Errorf("refresh 参数 = %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"acc-2"}`))
	}))
	defer srv.Close()

	access, err := client.RefreshToken(context.Background(), &Session{Refresh: "ref-1"})
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if access != "acc-2" {
		t.Errorf("access = %q", access)
	}
}

// ==================== 预签名上传 ====================

func TestGeneratePresignedSlotsCountMismatch(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 请求 2 个槽位只回 1 个
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]PresignSlot{{Key: "k1", UploadURL: "http://x/1"}})
	}))
	defer srv.Close()

	files := []PresignFileReq{{FileName: "a.png"}, {FileName: "b.png"}}
	_, err := client.GeneratePresignedSlots(context.Background(), &Session{Access: "t"}, files, "property-images")
	if err == nil || !strings.Contains(err.Error(), "slot count mismatch") {
		t.Fatalf("槽位数不符应报错, 实际 %v", err)
	}
}

func TestUploadToSlot(t *testing.T) {
	var gotBody []byte
	var gotType, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("方法 = %s", r.Method)
		}
		gotType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(&Config{BaseURL: "http://unused"})
	if err := client.UploadToSlot(context.Background(), srv.URL, []byte("png-bytes"), "image/png"); err != nil {
		t.Fatalf("直传失败: %v", err)
	}
	if string(gotBody) != "png-bytes" || gotType != "image/png" {
		t.Errorf("上传内容 = %q / %q", gotBody, gotType)
	}
	// 预签名地址自带鉴权，不得附加 Bearer 头
	if gotAuth != "" {
		t.Errorf("不应携带鉴权头: %q", gotAuth)
	}
}

func TestUploadToSlotNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(&Config{BaseURL: "http://unused"})
	err := client.UploadToSlot(context.Background(), srv.URL, []byte("x"), "image/png")
	if err == nil || !strings.Contains(err.Error(), "status: 403") {
		t.Fatalf("非 2xx 应硬失败, 实际 %v", err)
	}
}
