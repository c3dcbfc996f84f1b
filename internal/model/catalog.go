package model

// 目录镜像表
// 远端是权威数据源；这里只做只读镜像，远端故障时兜底返回上一次同步结果

// StateMirror 州
type StateMirror struct {
	BaseModel
	RemoteID    string `gorm:"size:64;uniqueIndex;not null" json:"remote_id"`
	Name        string `gorm:"size:100;index" json:"name"`
	CapitalName string `gorm:"size:100" json:"capital_name"`
	SyncedAt    int64  `gorm:"index" json:"synced_at"`
}

func (StateMirror) TableName() string { return "state_mirrors" }

// RegionMirror 区域（挂在州下）
type RegionMirror struct {
	BaseModel
	RemoteID      string `gorm:"size:64;uniqueIndex;not null" json:"remote_id"`
	StateRemoteID string `gorm:"size:64;index;not null" json:"state_remote_id"`
	Name          string `gorm:"size:100" json:"name"`
	SyncedAt      int64  `gorm:"index" json:"synced_at"`
}

func (RegionMirror) TableName() string { return "region_mirrors" }

// RoomTypeMirror 户型
type RoomTypeMirror struct {
	BaseModel
	RemoteID string `gorm:"size:64;uniqueIndex;not null" json:"remote_id"`
	Name     string `gorm:"size:100" json:"name"`
	SyncedAt int64  `gorm:"index" json:"synced_at"`
}

func (RoomTypeMirror) TableName() string { return "room_type_mirrors" }

// FeatureMirror 房源特性
type FeatureMirror struct {
	BaseModel
	RemoteID string `gorm:"size:64;uniqueIndex;not null" json:"remote_id"`
	Name     string `gorm:"size:100" json:"name"`
	Code     string `gorm:"size:50;index" json:"code"`
	SyncedAt int64  `gorm:"index" json:"synced_at"`
}

func (FeatureMirror) TableName() string { return "feature_mirrors" }
