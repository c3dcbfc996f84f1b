package model

// SysUser 本地后台操作员账号
// 只用于保护后台代理接口，与远端 Globassets 账号体系无关
type SysUser struct {
	BaseModel
	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:100;not null" json:"-"` // bcrypt
	DisplayName  string `gorm:"size:100" json:"display_name"`
	Role         string `gorm:"size:20;default:operator" json:"role"` // operator | admin
	Status       int    `gorm:"default:1" json:"status"`              // 1:启用 0:禁用
	LastLoginAt  int64  `gorm:"default:0" json:"last_login_at"`
}

func (SysUser) TableName() string {
	return "sys_users"
}

// 角色常量
const (
	SysRoleOperator = "operator"
	SysRoleAdmin    = "admin"
)
