package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"globassets_dev_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// CatalogRepository 目录镜像仓储接口
// 远端是权威；镜像只接受整表 upsert 和只读查询
type CatalogRepository interface {
	UpsertStates(ctx context.Context, states []model.StateMirror) error
	UpsertRegions(ctx context.Context, regions []model.RegionMirror) error
	UpsertRoomTypes(ctx context.Context, roomTypes []model.RoomTypeMirror) error
	UpsertFeatures(ctx context.Context, features []model.FeatureMirror) error

	ListStates(ctx context.Context) ([]model.StateMirror, error)
	ListRegionsByState(ctx context.Context, stateRemoteID string) ([]model.RegionMirror, error)
	ListRoomTypes(ctx context.Context) ([]model.RoomTypeMirror, error)
	ListFeatures(ctx context.Context) ([]model.FeatureMirror, error)
}

// ==================== 仓储实现 ====================

type catalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepository 创建目录仓储
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

// remoteIDConflict 以 remote_id 为冲突键的 upsert 策略
func remoteIDConflict(updateCols []string) clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "remote_id"}},
		DoUpdates: clause.AssignmentColumns(updateCols),
	}
}

func (r *catalogRepo) UpsertStates(ctx context.Context, states []model.StateMirror) error {
	if len(states) == 0 {
		return nil
	}
	now := time.Now().Unix()
	for i := range states {
		states[i].SyncedAt = now
	}
	return r.db.WithContext(ctx).
		Clauses(remoteIDConflict([]string{"name", "capital_name", "synced_at", "updated_at"})).
		Create(&states).Error
}

func (r *catalogRepo) UpsertRegions(ctx context.Context, regions []model.RegionMirror) error {
	if len(regions) == 0 {
		return nil
	}
	now := time.Now().Unix()
	for i := range regions {
		regions[i].SyncedAt = now
	}
	return r.db.WithContext(ctx).
		Clauses(remoteIDConflict([]string{"state_remote_id", "name", "synced_at", "updated_at"})).
		Create(&regions).Error
}

func (r *catalogRepo) UpsertRoomTypes(ctx context.Context, roomTypes []model.RoomTypeMirror) error {
	if len(roomTypes) == 0 {
		return nil
	}
	now := time.Now().Unix()
	for i := range roomTypes {
		roomTypes[i].SyncedAt = now
	}
	return r.db.WithContext(ctx).
		Clauses(remoteIDConflict([]string{"name", "synced_at", "updated_at"})).
		Create(&roomTypes).Error
}

func (r *catalogRepo) UpsertFeatures(ctx context.Context, features []model.FeatureMirror) error {
	if len(features) == 0 {
		return nil
	}
	now := time.Now().Unix()
	for i := range features {
		features[i].SyncedAt = now
	}
	return r.db.WithContext(ctx).
		Clauses(remoteIDConflict([]string{"name", "code", "synced_at", "updated_at"})).
		Create(&features).Error
}

func (r *catalogRepo) ListStates(ctx context.Context) ([]model.StateMirror, error) {
	var list []model.StateMirror
	err := r.db.WithContext(ctx).Order("name").Find(&list).Error
	return list, err
}

func (r *catalogRepo) ListRegionsByState(ctx context.Context, stateRemoteID string) ([]model.RegionMirror, error) {
	var list []model.RegionMirror
	err := r.db.WithContext(ctx).
		Where("state_remote_id = ?", stateRemoteID).
		Order("name").Find(&list).Error
	return list, err
}

func (r *catalogRepo) ListRoomTypes(ctx context.Context) ([]model.RoomTypeMirror, error) {
	var list []model.RoomTypeMirror
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

func (r *catalogRepo) ListFeatures(ctx context.Context) ([]model.FeatureMirror, error) {
	var list []model.FeatureMirror
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}
