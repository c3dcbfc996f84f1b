package wizard

import (
	"fmt"
	"strings"

	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 类型变体 ====================

// TypeDetails 五种房源类型各自的专属字段
// 以带标签的变体建模：每个变体只携带本类型适用的字段，
// 提交载荷与必填校验都由变体自己回答，杜绝“字段是否存在”式的运行时探测
type TypeDetails interface {
	Type() estate.PropertyType

	// NeedsRoomType 是否要求选择户型
	NeedsRoomType() bool

	// Validate 校验本类型的必填金额字段
	Validate() error

	// Payload 输出本类型适用且非空的提交字段
	Payload() map[string]interface{}
}

// HouseForRentDetails 整租房
type HouseForRentDetails struct {
	Rent          string
	InitialRent   string
	RentBreakdown string
}

func (d *HouseForRentDetails) Type() estate.PropertyType { return estate.HouseForRent }
func (d *HouseForRentDetails) NeedsRoomType() bool       { return true }

func (d *HouseForRentDetails) Validate() error {
	if strings.TrimSpace(d.Rent) == "" {
		return &ValidationError{Title: "Required", Description: "Please enter the monthly rent"}
	}
	return nil
}

func (d *HouseForRentDetails) Payload() map[string]interface{} {
	out := map[string]interface{}{"rent": d.Rent}
	putIfSet(out, "initial_rent", d.InitialRent)
	putIfSet(out, "rent_breakdown", d.RentBreakdown)
	return out
}

// HouseForSaleDetails 出售房
type HouseForSaleDetails struct {
	Price string
}

func (d *HouseForSaleDetails) Type() estate.PropertyType { return estate.HouseForSale }
func (d *HouseForSaleDetails) NeedsRoomType() bool       { return true }

func (d *HouseForSaleDetails) Validate() error {
	if strings.TrimSpace(d.Price) == "" {
		return &ValidationError{Title: "Required", Description: "Please enter the property price"}
	}
	return nil
}

func (d *HouseForSaleDetails) Payload() map[string]interface{} {
	return map[string]interface{}{"price": d.Price}
}

// FlatshareDetails 合租房
type FlatshareDetails struct {
	Rent              string
	SharedRent        string
	Conditions        string
	SocialMediaHandle string
}

func (d *FlatshareDetails) Type() estate.PropertyType { return estate.Flatshare }
func (d *FlatshareDetails) NeedsRoomType() bool       { return true }

func (d *FlatshareDetails) Validate() error {
	if strings.TrimSpace(d.SharedRent) == "" {
		return &ValidationError{Title: "Required", Description: "Please enter the shared rent"}
	}
	return nil
}

func (d *FlatshareDetails) Payload() map[string]interface{} {
	out := map[string]interface{}{"shared_rent": d.SharedRent}
	putIfSet(out, "rent", d.Rent)
	putIfSet(out, "conditions", d.Conditions)
	putIfSet(out, "social_media_handle", d.SocialMediaHandle)
	return out
}

// LandDetails 土地
type LandDetails struct {
	Price string
}

func (d *LandDetails) Type() estate.PropertyType { return estate.Land }
func (d *LandDetails) NeedsRoomType() bool       { return false }

func (d *LandDetails) Validate() error {
	if strings.TrimSpace(d.Price) == "" {
		return &ValidationError{Title: "Required", Description: "Please enter the land price"}
	}
	return nil
}

func (d *LandDetails) Payload() map[string]interface{} {
	return map[string]interface{}{"price": d.Price}
}

// ShopDetails 商铺
type ShopDetails struct {
	Rent string
}

func (d *ShopDetails) Type() estate.PropertyType { return estate.Shop }
func (d *ShopDetails) NeedsRoomType() bool       { return false }

func (d *ShopDetails) Validate() error {
	if strings.TrimSpace(d.Rent) == "" {
		return &ValidationError{Title: "Required", Description: "Please enter the shop rent"}
	}
	return nil
}

func (d *ShopDetails) Payload() map[string]interface{} {
	return map[string]interface{}{"rent": d.Rent}
}

// ==================== 变体构造 ====================

// FieldValues 客户端提交的扁平字段集合（变体构造的原料）
type FieldValues struct {
	Rent              string
	Price             string
	SharedRent        string
	InitialRent       string
	RentBreakdown     string
	Conditions        string
	SocialMediaHandle string
}

// NewTypeDetails 按房源类型装配对应变体
func NewTypeDetails(t estate.PropertyType, v FieldValues) (TypeDetails, error) {
	switch t {
	case estate.HouseForRent:
		return &HouseForRentDetails{Rent: v.Rent, InitialRent: v.InitialRent, RentBreakdown: v.RentBreakdown}, nil
	case estate.HouseForSale:
		return &HouseForSaleDetails{Price: v.Price}, nil
	case estate.Flatshare:
		return &FlatshareDetails{Rent: v.Rent, SharedRent: v.SharedRent, Conditions: v.Conditions, SocialMediaHandle: v.SocialMediaHandle}, nil
	case estate.Land:
		return &LandDetails{Price: v.Price}, nil
	case estate.Shop:
		return &ShopDetails{Rent: v.Rent}, nil
	default:
		return nil, fmt.Errorf("unknown property type: %s", t)
	}
}

// detailsFromProperty 编辑模式回填：从远端记录装配变体
func detailsFromProperty(p *estate.Property) (TypeDetails, error) {
	return NewTypeDetails(p.PropertyType, FieldValues{
		Rent:              p.Rent,
		Price:             p.Price,
		SharedRent:        p.SharedRent,
		InitialRent:       p.InitialRent,
		RentBreakdown:     p.RentBreakdown,
		Conditions:        p.Conditions,
		SocialMediaHandle: p.SocialMediaHandle,
	})
}

// ==================== 表单状态 ====================

// Form 向导持有的全部表单状态，生命周期与会话一致
type Form struct {
	ListerRole   estate.ListerRole
	PropertyType estate.PropertyType

	// --- 通用字段 ---
	Name        string
	Address     string
	Phone       string
	Description string
	StateID     string
	RegionID    string
	Bedrooms    int
	Bathrooms   int
	Size        string

	RoomTypeID string
	FeatureIDs []string

	Details TypeDetails
}

// ToggleFeature 勾选/取消一个特性（无序多选）
func (f *Form) ToggleFeature(featureID string) {
	for i, id := range f.FeatureIDs {
		if id == featureID {
			f.FeatureIDs = append(f.FeatureIDs[:i], f.FeatureIDs[i+1:]...)
			return
		}
	}
	f.FeatureIDs = append(f.FeatureIDs, featureID)
}

// putIfSet 只写入非空字符串字段
func putIfSet(m map[string]interface{}, key, val string) {
	if val != "" {
		m[key] = val
	}
}
