package estate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 会话 ====================

// Session 一次远端登录得到的凭证对象
// 凭证显式随调用链传递，不落全局存储；获取（Login）与销毁（Logout）
// 由 auth 服务统一管理
type Session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// IsCompany 是否公司账号
func (s *Session) IsCompany() bool {
	return s != nil && s.Role == AccountCompany
}

// ==================== 客户端 ====================

// Config 客户端配置
type Config struct {
	BaseURL string // 远端 API 根地址，不含 /api/v1
	Timeout time.Duration
	Debug   bool
}

// Client Globassets 远端 API 客户端
// 只做协议封装与错误归一，不持有任何业务状态
type Client struct {
	http *resty.Client
}

// NewClient 创建客户端
func NewClient(cfg *Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetDebug(cfg.Debug).
		SetHeader("User-Agent", "Globassets-Go-App/1.0").
		SetHeader("Content-Type", "application/json")

	return &Client{http: http}
}

// ==================== 错误归一 ====================

// apiError 远端错误包体，detail/message 二选一
type apiError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// APIError 归一后的远端调用错误
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote api error (%d): %s", e.StatusCode, e.Detail)
}

// wrapError 把非 2xx 响应转换为 APIError
func wrapError(resp *resty.Response, fallback string) error {
	var body apiError
	detail := fallback
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Detail != "" {
			detail = body.Detail
		} else if body.Message != "" {
			detail = body.Message
		}
	}
	return &APIError{StatusCode: resp.StatusCode(), Detail: detail}
}

// ==================== 请求基座 ====================

// r 构建一个带上下文的请求；sess 为 nil 时不带鉴权头
func (c *Client) r(ctx context.Context, sess *Session) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if sess != nil && sess.Access != "" {
		req.SetHeader("Authorization", "Bearer "+sess.Access)
	}
	return req
}

// getJSON GET 并解码
func (c *Client) getJSON(ctx context.Context, sess *Session, path string, query map[string]string, out interface{}, fallback string) error {
	req := c.r(ctx, sess)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return wrapError(resp, fallback)
	}
	return nil
}

// sendJSON 带包体的写操作（POST/PATCH/PUT/DELETE）
func (c *Client) sendJSON(ctx context.Context, sess *Session, method, path string, body, out interface{}, fallback string) error {
	req := c.r(ctx, sess)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return wrapError(resp, fallback)
	}
	return nil
}
