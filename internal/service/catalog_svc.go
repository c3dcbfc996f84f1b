package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"globassets_dev_v1_202608/internal/model"
	"globassets_dev_v1_202608/internal/repository"
	"globassets_dev_v1_202608/pkg/estate"
	"globassets_dev_v1_202608/pkg/utils"
)

// ==================== 目录服务 ====================

// 目录缓存 TTL：州/户型/特性近乎静态，区域会被用户新建所以短一些
const (
	catalogCacheTTL = 10 * time.Minute
	regionCacheTTL  = 2 * time.Minute
)

// CatalogService 目录服务（州/区域/户型/特性）
// 读取路径：进程内缓存 -> 远端 -> 本地镜像兜底
// 远端每次成功读取都会刷一份镜像，远端故障时退回上一次同步结果
type CatalogService struct {
	api  *estate.Client
	repo repository.CatalogRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(api *estate.Client, repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{api: api, repo: repo}
}

// ==================== 查询 ====================

// States 州列表（search 为空时走缓存）
func (s *CatalogService) States(ctx context.Context, sess *estate.Session, search string) ([]estate.State, error) {
	cacheKey := "catalog:states"
	if search == "" {
		if cached, ok := utils.GetCache(cacheKey); ok {
			return cached.([]estate.State), nil
		}
	}

	states, err := s.api.GetStates(ctx, sess, search)
	if err != nil {
		if search != "" {
			return nil, err
		}
		return s.statesFromMirror(ctx, err)
	}

	if search == "" {
		utils.SetCache(cacheKey, states, catalogCacheTTL)
		s.mirrorStates(ctx, states)
	}
	return states, nil
}

// Regions 某州下的区域列表
func (s *CatalogService) Regions(ctx context.Context, sess *estate.Session, stateID string) ([]estate.Region, error) {
	cacheKey := "catalog:regions:" + stateID
	if cached, ok := utils.GetCache(cacheKey); ok {
		return cached.([]estate.Region), nil
	}

	regions, err := s.api.GetRegions(ctx, sess, stateID)
	if err != nil {
		return s.regionsFromMirror(ctx, stateID, err)
	}

	utils.SetCache(cacheKey, regions, regionCacheTTL)
	s.mirrorRegions(ctx, stateID, regions)
	return regions, nil
}

// CreateRegion 新建区域（远端写入后失效本地缓存）
func (s *CatalogService) CreateRegion(ctx context.Context, sess *estate.Session, stateID, name string) (*estate.Region, error) {
	region, err := s.api.CreateRegion(ctx, sess, stateID, name)
	if err != nil {
		return nil, err
	}

	utils.DeleteCache("catalog:regions:" + stateID)
	s.mirrorRegions(ctx, stateID, []estate.Region{*region})
	return region, nil
}

// RoomTypes 户型列表
func (s *CatalogService) RoomTypes(ctx context.Context, sess *estate.Session) ([]estate.RoomType, error) {
	cacheKey := "catalog:room_types"
	if cached, ok := utils.GetCache(cacheKey); ok {
		return cached.([]estate.RoomType), nil
	}

	roomTypes, err := s.api.GetRoomTypes(ctx, sess)
	if err != nil {
		return s.roomTypesFromMirror(ctx, err)
	}

	utils.SetCache(cacheKey, roomTypes, catalogCacheTTL)
	s.mirrorRoomTypes(ctx, roomTypes)
	return roomTypes, nil
}

// Features 房源特性列表
func (s *CatalogService) Features(ctx context.Context, sess *estate.Session) ([]estate.Feature, error) {
	cacheKey := "catalog:features"
	if cached, ok := utils.GetCache(cacheKey); ok {
		return cached.([]estate.Feature), nil
	}

	features, err := s.api.GetPropertyFeatures(ctx, sess)
	if err != nil {
		return s.featuresFromMirror(ctx, err)
	}

	utils.SetCache(cacheKey, features, catalogCacheTTL)
	s.mirrorFeatures(ctx, features)
	return features, nil
}

// ==================== 全量同步（定时任务入口） ====================

// RefreshAll 用服务账号会话整体刷新镜像
func (s *CatalogService) RefreshAll(ctx context.Context, sess *estate.Session) error {
	states, err := s.api.GetStates(ctx, sess, "")
	if err != nil {
		return fmt.Errorf("sync states failed: %w", err)
	}
	s.mirrorStates(ctx, states)

	for _, st := range states {
		regions, err := s.api.GetRegions(ctx, sess, st.ID)
		if err != nil {
			log.Printf("[Catalog] 同步区域失败 state=%s: %v", st.Name, err)
			continue
		}
		s.mirrorRegions(ctx, st.ID, regions)
	}

	if roomTypes, err := s.api.GetRoomTypes(ctx, sess); err != nil {
		log.Printf("[Catalog] 同步户型失败: %v", err)
	} else {
		s.mirrorRoomTypes(ctx, roomTypes)
	}

	if features, err := s.api.GetPropertyFeatures(ctx, sess); err != nil {
		log.Printf("[Catalog] 同步特性失败: %v", err)
	} else {
		s.mirrorFeatures(ctx, features)
	}

	return nil
}

// ==================== 镜像写入（尽力而为） ====================

func (s *CatalogService) mirrorStates(ctx context.Context, states []estate.State) {
	if s.repo == nil {
		return
	}
	rows := make([]model.StateMirror, len(states))
	for i, st := range states {
		rows[i] = model.StateMirror{RemoteID: st.ID, Name: st.Name, CapitalName: st.CapitalName}
	}
	if err := s.repo.UpsertStates(ctx, rows); err != nil {
		log.Printf("[Catalog] 镜像州失败: %v", err)
	}
}

func (s *CatalogService) mirrorRegions(ctx context.Context, stateID string, regions []estate.Region) {
	if s.repo == nil {
		return
	}
	rows := make([]model.RegionMirror, len(regions))
	for i, r := range regions {
		rows[i] = model.RegionMirror{RemoteID: r.ID, StateRemoteID: stateID, Name: r.Name}
	}
	if err := s.repo.UpsertRegions(ctx, rows); err != nil {
		log.Printf("[Catalog] 镜像区域失败: %v", err)
	}
}

func (s *CatalogService) mirrorRoomTypes(ctx context.Context, roomTypes []estate.RoomType) {
	if s.repo == nil {
		return
	}
	rows := make([]model.RoomTypeMirror, len(roomTypes))
	for i, rt := range roomTypes {
		rows[i] = model.RoomTypeMirror{RemoteID: rt.ID, Name: rt.Name}
	}
	if err := s.repo.UpsertRoomTypes(ctx, rows); err != nil {
		log.Printf("[Catalog] 镜像户型失败: %v", err)
	}
}

func (s *CatalogService) mirrorFeatures(ctx context.Context, features []estate.Feature) {
	if s.repo == nil {
		return
	}
	rows := make([]model.FeatureMirror, len(features))
	for i, f := range features {
		rows[i] = model.FeatureMirror{RemoteID: f.ID, Name: f.Name, Code: f.Code}
	}
	if err := s.repo.UpsertFeatures(ctx, rows); err != nil {
		log.Printf("[Catalog] 镜像特性失败: %v", err)
	}
}

// ==================== 镜像兜底读取 ====================

func (s *CatalogService) statesFromMirror(ctx context.Context, remoteErr error) ([]estate.State, error) {
	if s.repo == nil {
		return nil, remoteErr
	}
	rows, err := s.repo.ListStates(ctx)
	if err != nil || len(rows) == 0 {
		return nil, remoteErr
	}
	log.Printf("[Catalog] 远端不可用，州列表走镜像兜底: %v", remoteErr)
	out := make([]estate.State, len(rows))
	for i, r := range rows {
		out[i] = estate.State{ID: r.RemoteID, Name: r.Name, CapitalName: r.CapitalName}
	}
	return out, nil
}

func (s *CatalogService) regionsFromMirror(ctx context.Context, stateID string, remoteErr error) ([]estate.Region, error) {
	if s.repo == nil {
		return nil, remoteErr
	}
	rows, err := s.repo.ListRegionsByState(ctx, stateID)
	if err != nil || len(rows) == 0 {
		return nil, remoteErr
	}
	log.Printf("[Catalog] 远端不可用，区域列表走镜像兜底 state_id=%s: %v", stateID, remoteErr)
	out := make([]estate.Region, len(rows))
	for i, r := range rows {
		out[i] = estate.Region{ID: r.RemoteID, Name: r.Name, State: r.StateRemoteID}
	}
	return out, nil
}

func (s *CatalogService) roomTypesFromMirror(ctx context.Context, remoteErr error) ([]estate.RoomType, error) {
	if s.repo == nil {
		return nil, remoteErr
	}
	rows, err := s.repo.ListRoomTypes(ctx)
	if err != nil || len(rows) == 0 {
		return nil, remoteErr
	}
	log.Printf("[Catalog] 远端不可用，户型列表走镜像兜底: %v", remoteErr)
	out := make([]estate.RoomType, len(rows))
	for i, r := range rows {
		out[i] = estate.RoomType{ID: r.RemoteID, Name: r.Name}
	}
	return out, nil
}

func (s *CatalogService) featuresFromMirror(ctx context.Context, remoteErr error) ([]estate.Feature, error) {
	if s.repo == nil {
		return nil, remoteErr
	}
	rows, err := s.repo.ListFeatures(ctx)
	if err != nil || len(rows) == 0 {
		return nil, remoteErr
	}
	log.Printf("[Catalog] 远端不可用，特性列表走镜像兜底: %v", remoteErr)
	out := make([]estate.Feature, len(rows))
	for i, r := range rows {
		out[i] = estate.Feature{ID: r.RemoteID, Name: r.Name, Code: r.Code}
	}
	return out, nil
}
