package estate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ==================== 个人主页接口 ====================

// GetPersonalProfile 拉取个人主页；id 为空时取当前账号的第一条
func (c *Client) GetPersonalProfile(ctx context.Context, sess *Session, id string) (*PersonalProfile, error) {
	if id != "" {
		var p PersonalProfile
		path := fmt.Sprintf("/api/v1/users/personal-profile/%s/", id)
		if err := c.getJSON(ctx, sess, path, nil, &p, "Failed to fetch personal profile"); err != nil {
			return nil, err
		}
		return &p, nil
	}

	var list []PersonalProfile
	if err := c.getJSON(ctx, sess, "/api/v1/users/personal-profile/", nil, &list, "Failed to fetch personal profile"); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no personal profile for current account")
	}
	return &list[0], nil
}

// ListPersonalProfiles 按州筛选个人主页（后台/名录用）
func (c *Client) ListPersonalProfiles(ctx context.Context, sess *Session, stateID string) ([]PersonalProfile, error) {
	var query map[string]string
	if stateID != "" {
		query = map[string]string{"state": stateID}
	}
	var list []PersonalProfile
	if err := c.getJSON(ctx, sess, "/api/v1/users/personal-profile/", query, &list, "Failed to fetch personal profiles"); err != nil {
		return nil, err
	}
	return list, nil
}

// CreatePersonalProfile 创建个人主页
func (c *Client) CreatePersonalProfile(ctx context.Context, sess *Session, form map[string]interface{}) (*PersonalProfile, error) {
	var p PersonalProfile
	if err := c.sendJSON(ctx, sess, http.MethodPost, "/api/v1/users/personal-profile/", form, &p, "Failed to create personal profile"); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePersonalProfile 部分更新个人主页
func (c *Client) UpdatePersonalProfile(ctx context.Context, sess *Session, id string, form map[string]interface{}) (*PersonalProfile, error) {
	var p PersonalProfile
	path := fmt.Sprintf("/api/v1/users/personal-profile/%s/", id)
	if err := c.sendJSON(ctx, sess, http.MethodPatch, path, form, &p, "Failed to update personal profile"); err != nil {
		return nil, err
	}
	return &p, nil
}

// ==================== 公司主页接口 ====================

// GetCompanyProfile 拉取公司主页；id 为空时取当前账号的第一条
func (c *Client) GetCompanyProfile(ctx context.Context, sess *Session, id string) (*CompanyProfile, error) {
	if id != "" {
		var p CompanyProfile
		path := fmt.Sprintf("/api/v1/users/company-profile/%s/", id)
		if err := c.getJSON(ctx, sess, path, nil, &p, "Failed to fetch company profile"); err != nil {
			return nil, err
		}
		return &p, nil
	}

	var list []CompanyProfile
	if err := c.getJSON(ctx, sess, "/api/v1/users/company-profile/", nil, &list, "Failed to fetch company profile"); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no company profile for current account")
	}
	return &list[0], nil
}

// ListCompanyProfiles 按州筛选公司主页
func (c *Client) ListCompanyProfiles(ctx context.Context, sess *Session, stateID string) ([]CompanyProfile, error) {
	var query map[string]string
	if stateID != "" {
		query = map[string]string{"state": stateID}
	}
	var list []CompanyProfile
	if err := c.getJSON(ctx, sess, "/api/v1/users/company-profile/", query, &list, "Failed to fetch company profiles"); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateCompanyProfile 创建公司主页
func (c *Client) CreateCompanyProfile(ctx context.Context, sess *Session, form map[string]interface{}) (*CompanyProfile, error) {
	var p CompanyProfile
	if err := c.sendJSON(ctx, sess, http.MethodPost, "/api/v1/users/company-profile/", form, &p, "Failed to create company profile"); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateCompanyProfile 部分更新公司主页
func (c *Client) UpdateCompanyProfile(ctx context.Context, sess *Session, id string, form map[string]interface{}) (*CompanyProfile, error) {
	var p CompanyProfile
	path := fmt.Sprintf("/api/v1/users/company-profile/%s/", id)
	if err := c.sendJSON(ctx, sess, http.MethodPatch, path, form, &p, "Failed to update company profile"); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPublicProfile 公开主页（个人/公司统一入口），结构由远端决定，原样透传
func (c *Client) GetPublicProfile(ctx context.Context, sess *Session, username string) (json.RawMessage, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/api/v1/users/public-profile/%s/", username)
	if err := c.getJSON(ctx, sess, path, nil, &raw, "Failed to fetch public profile"); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetDashboardOverview 个人仪表盘总览
func (c *Client) GetDashboardOverview(ctx context.Context, sess *Session) (*DashboardOverview, error) {
	var out DashboardOverview
	if err := c.getJSON(ctx, sess, "/api/v1/users/dashboard-overview", nil, &out, "Failed to fetch dashboard overview"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ==================== 后台接口 ====================

// GetAdminDashboardOverview 后台总览统计
func (c *Client) GetAdminDashboardOverview(ctx context.Context, sess *Session) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, sess, "/api/v1/custom_admin/admin-dashboard-overview/", nil, &raw, "Failed to fetch admin dashboard overview"); err != nil {
		return nil, err
	}
	return raw, nil
}

// AdminUserQuery 后台用户列表筛选参数
type AdminUserQuery struct {
	Role        string // personal | company | ""(全部)
	EmailSearch string
	Page        int
	PageSize    int
}

// GetUserDashboard 后台用户列表（分页）
func (c *Client) GetUserDashboard(ctx context.Context, sess *Session, q *AdminUserQuery) (json.RawMessage, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := map[string]string{
		"page":      fmt.Sprintf("%d", page),
		"page_size": fmt.Sprintf("%d", pageSize),
	}
	if q.Role != "" && q.Role != "all" {
		query["role"] = q.Role
	}
	if q.EmailSearch != "" {
		query["email"] = q.EmailSearch
	}

	var raw json.RawMessage
	if err := c.getJSON(ctx, sess, "/api/v1/custom_admin/user-dashboard/", query, &raw, "Failed to fetch user dashboard"); err != nil {
		return nil, err
	}
	return raw, nil
}
