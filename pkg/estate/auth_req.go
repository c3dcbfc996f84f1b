package estate

import (
	"context"
	"net/http"
)

// ==================== 鉴权接口 ====================

// LoginReq 登录参数
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterReq 注册参数
type RegisterReq struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Password  string `json:"password"`
	Role      string `json:"role"` // personal | company
}

// Login 远端登录，返回完整会话凭证
func (c *Client) Login(ctx context.Context, req *LoginReq) (*Session, error) {
	var sess Session
	if err := c.sendJSON(ctx, nil, http.MethodPost, "/api/v1/auths/login", req, &sess, "Login failed"); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Register 注册账号
func (c *Client) Register(ctx context.Context, req *RegisterReq) error {
	return c.sendJSON(ctx, nil, http.MethodPost, "/api/v1/auths/register", req, nil, "Registration failed")
}

// Logout 远端登出（吊销 refresh token）
func (c *Client) Logout(ctx context.Context, sess *Session) error {
	body := map[string]string{"refresh": sess.Refresh}
	return c.sendJSON(ctx, sess, http.MethodPost, "/api/v1/auths/logout", body, nil, "Logout failed")
}

// RefreshToken 用 refresh token 换取新的 access token
func (c *Client) RefreshToken(ctx context.Context, sess *Session) (string, error) {
	body := map[string]string{"refresh": sess.Refresh}
	var out struct {
		Access string `json:"access"`
	}
	if err := c.sendJSON(ctx, nil, http.MethodPost, "/api/v1/auths/refresh", body, &out, "Token refresh failed"); err != nil {
		return "", err
	}
	return out.Access, nil
}
