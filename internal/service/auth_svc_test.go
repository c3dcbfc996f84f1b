package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"globassets_dev_v1_202608/internal/middleware"
	"globassets_dev_v1_202608/internal/model"
	"globassets_dev_v1_202608/internal/repository"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 会话管理器 ====================

func TestSessionManagerLifecycle(t *testing.T) {
	m := NewSessionManager()

	sid := m.Put(&estate.Session{Access: "acc-1", Email: "a@b.com"})
	if sid == "" {
		t.Fatal("会话 id 为空")
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d", m.Count())
	}

	sess, err := m.Get(sid)
	if err != nil || sess.Access != "acc-1" {
		t.Fatalf("取回失败: %v / %+v", err, sess)
	}

	m.UpdateAccess(sid, "acc-2")
	sess, _ = m.Get(sid)
	if sess.Access != "acc-2" {
		t.Errorf("刷新后 access = %q", sess.Access)
	}

	m.Delete(sid)
	if _, err := m.Get(sid); err == nil {
		t.Error("销毁后仍可取回")
	}
	if m.Count() != 0 {
		t.Errorf("销毁后 Count = %d", m.Count())
	}
}

// remoteToken 构造一个带 exp 的远端风格 JWT；签名密钥随意，保活逻辑不校验签名
func remoteToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("remote-side-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestSessionManagerExpiringWithin(t *testing.T) {
	m := NewSessionManager()

	soonSid := m.Put(&estate.Session{Access: remoteToken(t, time.Now().Add(5*time.Minute))})
	m.Put(&estate.Session{Access: remoteToken(t, time.Now().Add(2 * time.Hour))})
	m.Put(&estate.Session{Access: "not-a-jwt"}) // 解析不了的跳过

	expiring := m.ExpiringWithin(15 * time.Minute)
	if len(expiring) != 1 || expiring[0] != soonSid {
		t.Errorf("ExpiringWithin = %v, want [%s]", expiring, soonSid)
	}
}

// ==================== 后台操作员 ====================

func newUserTestRepo(t *testing.T) repository.SysUserRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.SysUser{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return repository.NewSysUserRepository(db)
}

func newOperatorAuthService(t *testing.T, repo repository.SysUserRepository) *AuthService {
	t.Helper()
	api := estate.NewClient(&estate.Config{BaseURL: "http://unused"})
	return NewAuthService(api, NewSessionManager(), repo, "", "")
}

func seedOperator(t *testing.T, repo repository.SysUserRepository, username, password string, status int) *model.SysUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &model.SysUser{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  username,
		Role:         model.SysRoleOperator,
		Status:       status,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user
}

func TestOperatorLogin(t *testing.T) {
	repo := newUserTestRepo(t)
	svc := newOperatorAuthService(t, repo)
	user := seedOperator(t, repo, "ops", "secret123", 1)

	result, err := svc.OperatorLogin(context.Background(), "ops", "secret123")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if result.Role != model.SysRoleOperator {
		t.Errorf("角色 = %q", result.Role)
	}

	// 操作员 token 不绑远端会话
	claims, err := middleware.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("解析 token 失败: %v", err)
	}
	if claims.OperatorID != user.ID || claims.RemoteSID != "" {
		t.Errorf("claims = %+v", claims)
	}

	// 成功登录刷新最后登录时间
	updated, _ := repo.GetByUsername(context.Background(), "ops")
	if updated.LastLoginAt == 0 {
		t.Error("last_login_at 未更新")
	}
}

func TestOperatorLoginFailures(t *testing.T) {
	repo := newUserTestRepo(t)
	svc := newOperatorAuthService(t, repo)
	seedOperator(t, repo, "ops", "secret123", 1)
	seedOperator(t, repo, "frozen", "secret123", 0)

	cases := []struct {
		name, username, password, wantMsg string
	}{
		{"密码错误", "ops", "wrong", "用户名或密码错误"},
		{"用户不存在", "ghost", "secret123", "用户名或密码错误"},
		{"账号禁用", "frozen", "secret123", "账号已禁用"},
	}
	for _, c := range cases {
		_, err := svc.OperatorLogin(context.Background(), c.username, c.password)
		if err == nil || err.Error() != c.wantMsg {
			t.Errorf("%s: err = %v, want %q", c.name, err, c.wantMsg)
		}
	}
}

func TestEnsureOperatorIdempotent(t *testing.T) {
	repo := newUserTestRepo(t)
	svc := newOperatorAuthService(t, repo)

	if err := svc.EnsureOperator(context.Background(), "admin", "pw", model.SysRoleAdmin); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	if err := svc.EnsureOperator(context.Background(), "admin", "pw", model.SysRoleAdmin); err != nil {
		t.Fatalf("重复调用应幂等: %v", err)
	}

	users, total, err := repo.List(context.Background(), 1, 10)
	if err != nil || total != 1 {
		t.Fatalf("账号数 = %d, err = %v", total, err)
	}
	if users[0].Role != model.SysRoleAdmin || users[0].Status != 1 {
		t.Errorf("账号 = %+v", users[0])
	}

	// 未配置凭证时静默跳过
	if err := svc.EnsureOperator(context.Background(), "", "", model.SysRoleAdmin); err != nil {
		t.Errorf("空凭证应跳过: %v", err)
	}
}

// ==================== 远端代理登录 ====================

func TestLoginIssuesTokenBoundToRemoteSession(t *testing.T) {
	api, _ := newRemoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"racc","refresh":"rref","email":"a@b.com","role":"personal"}`))
	})
	svc := NewAuthService(api, NewSessionManager(), nil, "", "")

	result, err := svc.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if result.Email != "a@b.com" || result.Role != "personal" {
		t.Errorf("登录结果 = %+v", result)
	}

	claims, err := middleware.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("解析 token 失败: %v", err)
	}
	if claims.RemoteSID == "" {
		t.Fatal("token 未绑定远端会话 id")
	}

	// 远端凭证只存在管理器里，按 sid 取用
	sess, err := svc.Session(claims.RemoteSID)
	if err != nil || sess.Access != "racc" {
		t.Fatalf("托管会话 = %+v, err = %v", sess, err)
	}

	// 登出销毁托管会话（远端失败也一样销毁）
	svc.Logout(context.Background(), claims.RemoteSID)
	if _, err := svc.Session(claims.RemoteSID); err == nil {
		t.Error("登出后会话仍可取回")
	}
}

func TestServiceSessionLazyLoginAndDrop(t *testing.T) {
	var logins int
	api, _ := newRemoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		logins++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"svc-acc","refresh":"svc-ref","email":"svc@b.com","role":"company"}`))
	})
	svc := NewAuthService(api, NewSessionManager(), nil, "svc@b.com", "pw")

	sess1, err := svc.ServiceSession(context.Background())
	if err != nil {
		t.Fatalf("服务会话获取失败: %v", err)
	}
	sess2, _ := svc.ServiceSession(context.Background())
	if sess1 != sess2 || logins != 1 {
		t.Errorf("服务会话应复用，实际登录 %d 次", logins)
	}

	svc.DropServiceSession()
	svc.ServiceSession(context.Background())
	if logins != 2 {
		t.Errorf("丢弃后应重登，实际登录 %d 次", logins)
	}

	// 未配置服务账号时直接报错
	unconfigured := NewAuthService(api, NewSessionManager(), nil, "", "")
	if _, err := unconfigured.ServiceSession(context.Background()); err == nil {
		t.Error("未配置服务账号应报错")
	}
}
