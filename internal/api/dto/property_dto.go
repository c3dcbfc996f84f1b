package dto

// ==================== 房源检索 ====================

// BrowsePropertiesRequest 公开房源检索参数
type BrowsePropertiesRequest struct {
	PropertyType string `form:"property_type"`
	StateID      string `form:"state_id"`
	RegionID     string `form:"region_id"`
	Search       string `form:"search"`
	Page         int    `form:"page,default=1"`
}

// MyPropertiesRequest 我的房源列表参数
type MyPropertiesRequest struct {
	PropertyType string `form:"property_type"`
}

// ==================== 房源操作 ====================

// ToggleActiveRequest 上下架请求
type ToggleActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ToggleVerifiedRequest 审核标记请求（管理员）
type ToggleVerifiedRequest struct {
	IsVerified *bool `json:"is_verified" binding:"required"`
}

// ==================== 目录 ====================

// CreateRegionRequest 新建区域请求
type CreateRegionRequest struct {
	StateID string `json:"state_id" binding:"required"`
	Name    string `json:"name" binding:"required,min=2,max=100"`
}
