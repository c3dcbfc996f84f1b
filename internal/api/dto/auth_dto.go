package dto

// ==================== 登录 ====================

// LoginRequest 远端账号登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
	Role         string `json:"role"` // personal | company
}

// ==================== 注册 ====================

// RegisterRequest 远端账号注册请求
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required,min=6,max=100"`
	Role      string `json:"role" binding:"required,oneof=personal company"`
}

// ==================== Token 刷新 ====================

// RefreshTokenRequest 刷新远端 access token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ==================== 后台操作员 ====================

// OperatorLoginRequest 操作员登录请求
type OperatorLoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}
