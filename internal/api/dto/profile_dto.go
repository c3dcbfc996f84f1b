package dto

// ==================== 主页 ====================

// UpdateProfileRequest 主页创建/更新请求
// 个人与公司字段集不同，这里收扁平字段、服务端原样透传远端
type UpdateProfileRequest struct {
	ProfileID string                 `json:"profile_id"`
	Form      map[string]interface{} `json:"form" binding:"required"`
}

// DirectoryRequest 名录筛选参数
type DirectoryRequest struct {
	StateID   string `form:"state_id"`
	Companies bool   `form:"companies"`
}

// UploadProfileImageResponse 头像/Logo 上传响应
type UploadProfileImageResponse struct {
	Key string `json:"key"`
}
