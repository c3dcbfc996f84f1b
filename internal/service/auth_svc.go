package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"globassets_dev_v1_202608/internal/middleware"
	"globassets_dev_v1_202608/internal/model"
	"globassets_dev_v1_202608/internal/repository"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 远端会话管理 ====================

// remoteEntry 一条托管中的远端会话
type remoteEntry struct {
	sess      *estate.Session
	createdAt time.Time
}

// SessionManager 远端 Globassets 会话的唯一持有方
// 凭证只存在这里，按会话 id（写进本服务 JWT 的 remote_sid）取用；
// 获取（Login）与销毁（Logout）边界明确，不走任何全局可变存储
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*remoteEntry
}

// NewSessionManager 创建会话管理器
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*remoteEntry)}
}

// Put 托管一条远端会话，返回会话 id
func (m *SessionManager) Put(sess *estate.Session) string {
	sid := uuid.New().String()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sid] = &remoteEntry{sess: sess, createdAt: time.Now()}
	return sid
}

// Get 按会话 id 取远端凭证
func (m *SessionManager) Get(sid string) (*estate.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.sessions[sid]
	if !ok {
		return nil, errors.New("remote session not found, please login again")
	}
	return entry.sess, nil
}

// Delete 销毁一条远端会话
func (m *SessionManager) Delete(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
}

// UpdateAccess 刷新后替换 access token
func (m *SessionManager) UpdateAccess(sid, access string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.sessions[sid]; ok {
		entry.sess.Access = access
	}
}

// ExpiringWithin 找出 access token 将在 window 内过期的会话 id
// 远端 token 是标准 JWT，这里只读 exp 声明、不做签名校验（签名属于远端）
func (m *SessionManager) ExpiringWithin(window time.Duration) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	deadline := time.Now().Add(window)
	var out []string
	parser := jwt.NewParser()

	for sid, entry := range m.sessions {
		claims := jwt.MapClaims{}
		if _, _, err := parser.ParseUnverified(entry.sess.Access, claims); err != nil {
			continue
		}
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			continue
		}
		if exp.Before(deadline) {
			out = append(out, sid)
		}
	}
	return out
}

// Count 当前托管会话数（监控用）
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ==================== 鉴权服务 ====================

// LoginResult 登录结果：本服务 token 对 + 远端身份摘要
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// AuthService 鉴权服务
// 两条线：远端 Globassets 账号（代理登录）与本地后台操作员（bcrypt）
type AuthService struct {
	api      *estate.Client
	sessions *SessionManager
	userRepo repository.SysUserRepository

	// 服务账号凭证（目录同步等后台任务用），可为空
	svcEmail    string
	svcPassword string

	svcMu   sync.Mutex
	svcSess *estate.Session
}

// NewAuthService 创建鉴权服务
func NewAuthService(api *estate.Client, sessions *SessionManager, userRepo repository.SysUserRepository, svcEmail, svcPassword string) *AuthService {
	return &AuthService{
		api:         api,
		sessions:    sessions,
		userRepo:    userRepo,
		svcEmail:    svcEmail,
		svcPassword: svcPassword,
	}
}

// Sessions 暴露会话管理器（token 保活任务用）
func (s *AuthService) Sessions() *SessionManager {
	return s.sessions
}

// ==================== 远端账号 ====================

// Login 代理登录远端，托管会话并签发本服务 token 对
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	sess, err := s.api.Login(ctx, &estate.LoginReq{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	sid := s.sessions.Put(sess)
	access, refresh, err := middleware.GenerateTokenPair(0, sess.Email, sess.Role, sid)
	if err != nil {
		s.sessions.Delete(sid)
		return nil, fmt.Errorf("issue token failed: %w", err)
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		Email:        sess.Email,
		Role:         sess.Role,
	}, nil
}

// Register 代理注册
func (s *AuthService) Register(ctx context.Context, req *estate.RegisterReq) error {
	return s.api.Register(ctx, req)
}

// Logout 远端登出并销毁托管会话；远端失败只打日志，本地一定销毁
func (s *AuthService) Logout(ctx context.Context, sid string) {
	if sess, err := s.sessions.Get(sid); err == nil {
		if err := s.api.Logout(ctx, sess); err != nil {
			log.Printf("[Auth] 远端登出失败 sid=%s: %v", sid, err)
		}
	}
	s.sessions.Delete(sid)
}

// Session 按会话 id 取远端凭证
func (s *AuthService) Session(sid string) (*estate.Session, error) {
	return s.sessions.Get(sid)
}

// RefreshRemote 刷新某条托管会话的 access token
func (s *AuthService) RefreshRemote(ctx context.Context, sid string) error {
	sess, err := s.sessions.Get(sid)
	if err != nil {
		return err
	}
	access, err := s.api.RefreshToken(ctx, sess)
	if err != nil {
		return err
	}
	s.sessions.UpdateAccess(sid, access)
	return nil
}

// ServiceSession 服务账号会话（目录同步等后台任务用），惰性登录并复用
func (s *AuthService) ServiceSession(ctx context.Context) (*estate.Session, error) {
	if s.svcEmail == "" {
		return nil, errors.New("service account not configured")
	}

	s.svcMu.Lock()
	defer s.svcMu.Unlock()

	if s.svcSess != nil {
		return s.svcSess, nil
	}
	sess, err := s.api.Login(ctx, &estate.LoginReq{Email: s.svcEmail, Password: s.svcPassword})
	if err != nil {
		return nil, err
	}
	s.svcSess = sess
	return sess, nil
}

// DropServiceSession 服务账号会话失效时丢弃，下次重登
func (s *AuthService) DropServiceSession() {
	s.svcMu.Lock()
	defer s.svcMu.Unlock()
	s.svcSess = nil
}

// ==================== 后台操作员 ====================

// OperatorLogin 操作员登录（本地账号，bcrypt 校验）
func (s *AuthService) OperatorLogin(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.New("用户名或密码错误")
	}
	if user.Status != 1 {
		return nil, errors.New("账号已禁用")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("用户名或密码错误")
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Username, user.Role, "")
	if err != nil {
		return nil, fmt.Errorf("issue token failed: %w", err)
	}

	_ = s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"last_login_at": time.Now().Unix(),
	})

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		Email:        user.Username,
		Role:         user.Role,
	}, nil
}

// EnsureOperator 启动期兜底：不存在则创建操作员账号（幂等）
func (s *AuthService) EnsureOperator(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &model.SysUser{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  username,
		Role:         role,
		Status:       1,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	log.Printf("[Auth] 已创建后台操作员账号: %s (%s)", username, role)
	return nil
}
