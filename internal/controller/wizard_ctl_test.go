package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"globassets_dev_v1_202608/internal/middleware"
	"globassets_dev_v1_202608/internal/service"
	"globassets_dev_v1_202608/internal/wizard"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 测试路由装配 ====================

type wizardTestEnv struct {
	router *gin.Engine
	token  string
}

func newWizardTestEnv(t *testing.T) *wizardTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := estate.NewClient(&estate.Config{BaseURL: "http://unused"})
	sessions := service.NewSessionManager()
	sid := sessions.Put(&estate.Session{Access: "racc", Email: "a@b.com", Role: estate.AccountPersonal})

	auth := service.NewAuthService(api, sessions, nil, "", "")
	wizardSvc := service.NewWizardService(wizard.NewStore(time.Hour), api, service.NewPresignedStorage(api), nil)
	ctl := NewWizardController(wizardSvc, auth)

	token, _, err := middleware.GenerateTokenPair(0, "a@b.com", estate.AccountPersonal, sid)
	if err != nil {
		t.Fatalf("签发测试 token 失败: %v", err)
	}

	r := gin.New()
	wz := r.Group("/api/v1/wizard", middleware.JWTAuth())
	{
		wz.POST("", ctl.StartCreate)
		wz.GET("/:id", ctl.Get)
		wz.DELETE("/:id", ctl.Abandon)
		wz.PATCH("/:id/form", ctl.PatchForm)
		wz.POST("/:id/next", ctl.Advance)
		wz.POST("/:id/back", ctl.Retreat)
		wz.POST("/:id/images", ctl.StageImages)
	}

	return &wizardTestEnv{router: r, token: token}
}

func (e *wizardTestEnv) do(t *testing.T, method, path, body string, withAuth bool) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var envelope map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	return w, envelope
}

func (e *wizardTestEnv) startCreate(t *testing.T) string {
	t.Helper()
	w, envelope := e.do(t, http.MethodPost, "/api/v1/wizard", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("开启会话失败: %d %s", w.Code, w.Body.String())
	}
	data := envelope["data"].(map[string]interface{})
	return data["id"].(string)
}

// ==================== 鉴权门禁 ====================

func TestWizardRequiresAuth(t *testing.T) {
	env := newWizardTestEnv(t)

	w, envelope := env.do(t, http.MethodPost, "/api/v1/wizard", "", false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("无 token 状态码 = %d", w.Code)
	}
	if envelope["code"].(float64) != 401 {
		t.Errorf("envelope = %v", envelope)
	}
}

func TestWizardRejectsTokenWithoutRemoteSession(t *testing.T) {
	env := newWizardTestEnv(t)

	// 操作员风格 token：不绑远端会话
	operatorToken, _, err := middleware.GenerateTokenPair(1, "ops", "operator", "")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard", nil)
	req.Header.Set("Authorization", "Bearer "+operatorToken)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("无远端会话的 token 状态码 = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "未绑定远端会话") {
		t.Errorf("响应 = %s", w.Body.String())
	}
}

// ==================== 创建流程 ====================

func TestWizardStartCreate(t *testing.T) {
	env := newWizardTestEnv(t)

	w, envelope := env.do(t, http.MethodPost, "/api/v1/wizard", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d: %s", w.Code, w.Body.String())
	}
	if envelope["code"].(float64) != 0 {
		t.Errorf("envelope code = %v", envelope["code"])
	}

	data := envelope["data"].(map[string]interface{})
	if data["mode"] != "create" || data["total_steps"].(float64) != 5 || data["step"].(float64) != 1 {
		t.Errorf("个人创建会话 = %v", data)
	}
	meanings := data["meanings"].([]interface{})
	if len(meanings) != 1 || meanings[0] != "role" {
		t.Errorf("第 1 步语义 = %v", meanings)
	}
}

func TestWizardAdvanceValidationEnvelope(t *testing.T) {
	env := newWizardTestEnv(t)
	id := env.startCreate(t)

	// 角色未选：422 + title/description
	w, envelope := env.do(t, http.MethodPost, "/api/v1/wizard/"+id+"/next", "", true)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("状态码 = %d: %s", w.Code, w.Body.String())
	}
	if envelope["code"].(float64) != 422 ||
		envelope["message"] != "Required" ||
		envelope["description"] != "Please select your role" {
		t.Errorf("校验错误包体 = %v", envelope)
	}

	// 补上角色后可以前进
	if w, _ := env.do(t, http.MethodPatch, "/api/v1/wizard/"+id+"/form", `{"lister_role":"landlord"}`, true); w.Code != http.StatusOK {
		t.Fatalf("写入角色失败: %s", w.Body.String())
	}
	_, envelope = env.do(t, http.MethodPost, "/api/v1/wizard/"+id+"/next", "", true)
	data := envelope["data"].(map[string]interface{})
	if data["step"].(float64) != 2 {
		t.Errorf("前进后 step = %v", data["step"])
	}

	// 后退不做校验
	_, envelope = env.do(t, http.MethodPost, "/api/v1/wizard/"+id+"/back", "", true)
	data = envelope["data"].(map[string]interface{})
	if data["step"].(float64) != 1 {
		t.Errorf("后退后 step = %v", data["step"])
	}
}

func TestWizardPatchFormBindingRejectsBadRole(t *testing.T) {
	env := newWizardTestEnv(t)
	id := env.startCreate(t)

	w, envelope := env.do(t, http.MethodPatch, "/api/v1/wizard/"+id+"/form", `{"lister_role":"owner"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法角色状态码 = %d", w.Code)
	}
	if envelope["code"].(float64) != 400 {
		t.Errorf("envelope = %v", envelope)
	}
}

// ==================== 图片暂存 ====================

func addFilePart(t *testing.T, mw *multipart.Writer, name, contentType string, data []byte) {
	t.Helper()
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, name))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("构造 multipart part 失败: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("写入 part 失败: %v", err)
	}
}

func TestWizardStageImagesRejectsOversizedFile(t *testing.T) {
	env := newWizardTestEnv(t)
	id := env.startCreate(t)

	// 超限文件与正常文件同批提交：超限的整个拒绝（不截断），正常的照常暂存
	big := make([]byte, 15<<20+1)
	big[0], big[1] = 0xFF, 0xD8
	small := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	addFilePart(t, mw, "big.jpg", "image/jpeg", big)
	addFilePart(t, mw, "small.png", "image/png", small)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/"+id+"/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+env.token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d: %s", w.Code, w.Body.String())
	}
	var envelope map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	data := envelope["data"].(map[string]interface{})

	rejected, ok := data["rejected"].([]interface{})
	if !ok || len(rejected) != 1 {
		t.Fatalf("rejected = %v, want 1 条", data["rejected"])
	}
	entry := rejected[0].(map[string]interface{})
	if entry["file_name"] != "big.jpg" {
		t.Errorf("被拒文件 = %v", entry["file_name"])
	}
	if reason, _ := entry["reason"].(string); !strings.Contains(reason, "size limit") {
		t.Errorf("拒绝原因 = %q", reason)
	}

	state := data["state"].(map[string]interface{})
	previews := state["staged_previews"].([]interface{})
	if len(previews) != 1 {
		t.Errorf("暂存数 = %d，超限文件不应被截断后混入", len(previews))
	}
	if state["effective_images"].(float64) != 1 {
		t.Errorf("有效图片数 = %v", state["effective_images"])
	}
}

func TestWizardGetAndAbandon(t *testing.T) {
	env := newWizardTestEnv(t)
	id := env.startCreate(t)

	w, _ := env.do(t, http.MethodGet, "/api/v1/wizard/"+id, "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("读取会话失败: %d", w.Code)
	}

	if w, _ := env.do(t, http.MethodDelete, "/api/v1/wizard/"+id, "", true); w.Code != http.StatusOK {
		t.Fatalf("放弃会话失败: %d", w.Code)
	}

	// 销毁后 404
	w, _ = env.do(t, http.MethodGet, "/api/v1/wizard/"+id, "", true)
	if w.Code != http.StatusNotFound {
		t.Errorf("销毁后状态码 = %d", w.Code)
	}
}
