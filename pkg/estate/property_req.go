package estate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ==================== 房源接口 ====================

// GetPropertyByID 按 id 拉取完整房源记录（含类型、字段、州/区对象、图片、特性）
func (c *Client) GetPropertyByID(ctx context.Context, sess *Session, id string) (*Property, error) {
	var p Property
	path := fmt.Sprintf("/api/v1/properties/browse/%s/", id)
	if err := c.getJSON(ctx, sess, path, nil, &p, "Failed to fetch property"); err != nil {
		return nil, err
	}
	return &p, nil
}

// BrowseProperties 浏览/搜索房源，query 原样透传给远端
func (c *Client) BrowseProperties(ctx context.Context, sess *Session, query map[string]string) ([]Property, error) {
	var list []Property
	if err := c.getJSON(ctx, sess, "/api/v1/properties/browse/", query, &list, "Failed to browse properties"); err != nil {
		return nil, err
	}
	return list, nil
}

// GetMyProperties 拉取当前账号名下房源；slug 为空时走聚合接口
func (c *Client) GetMyProperties(ctx context.Context, sess *Session, slug string) ([]Property, error) {
	path := "/api/v1/properties/browse/mine/"
	if slug != "" {
		path = fmt.Sprintf("/api/v1/properties/%s/mine/", slug)
	}
	var list []Property
	if err := c.getJSON(ctx, sess, path, nil, &list, "Failed to fetch properties"); err != nil {
		return nil, err
	}
	return list, nil
}

// GetPropertiesByOwner 按归属人用户名拉取房源
func (c *Client) GetPropertiesByOwner(ctx context.Context, sess *Session, ownerUsername string) ([]Property, error) {
	query := map[string]string{"owner": ownerUsername}
	var list []Property
	if err := c.getJSON(ctx, sess, "/api/v1/properties/browse/", query, &list, "Failed to fetch properties by owner"); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateProperty 按 slug 创建房源
func (c *Client) CreateProperty(ctx context.Context, sess *Session, slug string, payload map[string]interface{}) (*Property, error) {
	var p Property
	path := fmt.Sprintf("/api/v1/properties/%s/", slug)
	if err := c.sendJSON(ctx, sess, http.MethodPost, path, payload, &p, "Failed to create property"); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProperty 按 slug+id 部分更新房源
func (c *Client) UpdateProperty(ctx context.Context, sess *Session, slug, id string, payload map[string]interface{}) (*Property, error) {
	var p Property
	path := fmt.Sprintf("/api/v1/properties/%s/%s/", slug, id)
	if err := c.sendJSON(ctx, sess, http.MethodPatch, path, payload, &p, "Failed to update property"); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProperty 按 slug+id 删除房源
func (c *Client) DeleteProperty(ctx context.Context, sess *Session, slug, id string) error {
	path := fmt.Sprintf("/api/v1/properties/%s/%s/", slug, id)
	return c.sendJSON(ctx, sess, http.MethodDelete, path, nil, nil, "Failed to delete property")
}

// TogglePropertyActive 上/下架（后台操作）
func (c *Client) TogglePropertyActive(ctx context.Context, sess *Session, id string, isActive bool) (*Property, error) {
	var p Property
	path := fmt.Sprintf("/api/v1/properties/browse/%s/", id)
	body := map[string]interface{}{"is_active": isActive}
	if err := c.sendJSON(ctx, sess, http.MethodPatch, path, body, &p, "Failed to toggle property active status"); err != nil {
		return nil, err
	}
	return &p, nil
}

// TogglePropertyVerified 审核标记（后台操作）
func (c *Client) TogglePropertyVerified(ctx context.Context, sess *Session, id string, isVerified bool) (*Property, error) {
	var p Property
	path := fmt.Sprintf("/api/v1/properties/browse/%s/", id)
	body := map[string]interface{}{"is_verified": isVerified}
	if err := c.sendJSON(ctx, sess, http.MethodPatch, path, body, &p, "Failed to toggle property verified status"); err != nil {
		return nil, err
	}
	return &p, nil
}

// ==================== 房源图片接口 ====================

// CreatePropertyImage 为房源登记一张已上传的图片
func (c *Client) CreatePropertyImage(ctx context.Context, sess *Session, propertyID, key string, isCover bool) (*PropertyImage, error) {
	var img PropertyImage
	body := map[string]interface{}{
		"property_obj": propertyID,
		"key":          key,
		"is_cover":     isCover,
	}
	if err := c.sendJSON(ctx, sess, http.MethodPost, "/api/v1/properties/property-images/", body, &img, "Failed to create property image"); err != nil {
		return nil, err
	}
	return &img, nil
}

// GetPropertyImage 拉取单张图片记录
func (c *Client) GetPropertyImage(ctx context.Context, sess *Session, imageID string) (*PropertyImage, error) {
	var img PropertyImage
	path := fmt.Sprintf("/api/v1/properties/property-images/%s/", imageID)
	if err := c.getJSON(ctx, sess, path, nil, &img, "Failed to fetch property image"); err != nil {
		return nil, err
	}
	return &img, nil
}

// DeletePropertyImage 删除一张已入库图片
func (c *Client) DeletePropertyImage(ctx context.Context, sess *Session, imageID string) error {
	path := fmt.Sprintf("/api/v1/properties/property-images/%s/", imageID)
	return c.sendJSON(ctx, sess, http.MethodDelete, path, nil, nil, "Failed to delete property image")
}

// ==================== 目录接口 ====================

// GetStates 拉取全部州；search 可选
func (c *Client) GetStates(ctx context.Context, sess *Session, search string) ([]State, error) {
	var query map[string]string
	if search != "" {
		query = map[string]string{"search": search}
	}
	var list []State
	if err := c.getJSON(ctx, sess, "/api/v1/properties/states/", query, &list, "Failed to fetch states"); err != nil {
		return nil, err
	}
	return list, nil
}

// GetRegions 拉取某州下属区域
func (c *Client) GetRegions(ctx context.Context, sess *Session, stateID string) ([]Region, error) {
	query := map[string]string{"state_id": stateID}
	var list []Region
	if err := c.getJSON(ctx, sess, "/api/v1/properties/regions/", query, &list, "Failed to fetch regions"); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateRegion 在某州下新建区域
func (c *Client) CreateRegion(ctx context.Context, sess *Session, stateID, name string) (*Region, error) {
	var region Region
	path := fmt.Sprintf("/api/v1/properties/states/%s/regions/", url.PathEscape(stateID))
	body := map[string]string{"name": name}
	if err := c.sendJSON(ctx, sess, http.MethodPost, path, body, &region, "Failed to create region"); err != nil {
		return nil, err
	}
	return &region, nil
}

// GetRoomTypes 拉取户型目录
func (c *Client) GetRoomTypes(ctx context.Context, sess *Session) ([]RoomType, error) {
	var list []RoomType
	if err := c.getJSON(ctx, sess, "/api/v1/properties/room-types/", nil, &list, "Failed to fetch room types"); err != nil {
		return nil, err
	}
	return list, nil
}

// GetPropertyFeatures 拉取房源特性目录
func (c *Client) GetPropertyFeatures(ctx context.Context, sess *Session) ([]Feature, error) {
	var list []Feature
	if err := c.getJSON(ctx, sess, "/api/v1/properties/property-features", nil, &list, "Failed to fetch property features"); err != nil {
		return nil, err
	}
	return list, nil
}
