package service

import (
	"context"
	"fmt"

	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 房源服务 ====================

// BrowseQuery 公开房源检索条件
type BrowseQuery struct {
	PropertyType string // 类型标识，空串表示全部
	StateID      string
	RegionID     string
	Search       string
	Page         int
}

// PropertyService 房源读写（向导之外的常规操作）
type PropertyService struct {
	api *estate.Client
}

// NewPropertyService 创建房源服务
func NewPropertyService(api *estate.Client) *PropertyService {
	return &PropertyService{api: api}
}

// Browse 公开房源检索
func (s *PropertyService) Browse(ctx context.Context, sess *estate.Session, q *BrowseQuery) ([]estate.Property, error) {
	query := map[string]string{}
	if q.PropertyType != "" {
		pt := estate.PropertyType(q.PropertyType)
		if !pt.Valid() {
			return nil, fmt.Errorf("unknown property type: %s", q.PropertyType)
		}
		query["property_type"] = string(pt)
	}
	if q.StateID != "" {
		query["state_id"] = q.StateID
	}
	if q.RegionID != "" {
		query["region_id"] = q.RegionID
	}
	if q.Search != "" {
		query["search"] = q.Search
	}
	if q.Page > 1 {
		query["page"] = fmt.Sprintf("%d", q.Page)
	}
	return s.api.BrowseProperties(ctx, sess, query)
}

// GetByID 单个房源详情
func (s *PropertyService) GetByID(ctx context.Context, sess *estate.Session, id string) (*estate.Property, error) {
	return s.api.GetPropertyByID(ctx, sess, id)
}

// MyProperties 当前账号名下房源；propertyType 为空拉全部类型
func (s *PropertyService) MyProperties(ctx context.Context, sess *estate.Session, propertyType string) ([]estate.Property, error) {
	slug := ""
	if propertyType != "" {
		pt := estate.PropertyType(propertyType)
		if !pt.Valid() {
			return nil, fmt.Errorf("unknown property type: %s", propertyType)
		}
		slug = pt.Slug()
	}
	return s.api.GetMyProperties(ctx, sess, slug)
}

// ByOwner 某用户名下的公开房源
func (s *PropertyService) ByOwner(ctx context.Context, sess *estate.Session, ownerUsername string) ([]estate.Property, error) {
	return s.api.GetPropertiesByOwner(ctx, sess, ownerUsername)
}

// Delete 删除房源（slug 由记录上的类型推出）
func (s *PropertyService) Delete(ctx context.Context, sess *estate.Session, id string) error {
	prop, err := s.api.GetPropertyByID(ctx, sess, id)
	if err != nil {
		return err
	}
	return s.api.DeleteProperty(ctx, sess, prop.PropertyType.Slug(), id)
}

// ToggleActive 上下架
func (s *PropertyService) ToggleActive(ctx context.Context, sess *estate.Session, id string, isActive bool) (*estate.Property, error) {
	return s.api.TogglePropertyActive(ctx, sess, id, isActive)
}

// ToggleVerified 审核标记（管理员）
func (s *PropertyService) ToggleVerified(ctx context.Context, sess *estate.Session, id string, isVerified bool) (*estate.Property, error) {
	return s.api.TogglePropertyVerified(ctx, sess, id, isVerified)
}
