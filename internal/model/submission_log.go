package model

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// 提交结果
const (
	SubmissionOK     = "ok"
	SubmissionFailed = "failed"
)

// SubmissionLog 向导提交审计记录
// 尽力而为：写失败只打日志，绝不反噬提交本身
type SubmissionLog struct {
	BaseModel
	SessionID    string `gorm:"size:64;index" json:"session_id"`
	RemoteEmail  string `gorm:"size:255;index" json:"remote_email"`
	Mode         string `gorm:"size:10;index" json:"mode"` // create | edit
	PropertyType string `gorm:"size:30;index" json:"property_type"`
	Slug         string `gorm:"size:30" json:"slug"`
	PropertyID   string `gorm:"size:64;index" json:"property_id"`

	Payload    datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	ImageKeys  pq.StringArray `gorm:"type:text[]" json:"image_keys"`
	DeletedIDs pq.StringArray `gorm:"type:text[]" json:"deleted_ids"`

	Outcome  string         `gorm:"size:10;index" json:"outcome"` // ok | failed
	ErrorMsg string         `gorm:"type:text" json:"error_msg"`
	Warnings pq.StringArray `gorm:"type:text[]" json:"warnings"`

	CostMs int64 `gorm:"default:0" json:"cost_ms"`
}

func (SubmissionLog) TableName() string {
	return "submission_logs"
}
