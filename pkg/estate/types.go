package estate

// ==================== 房源类型 ====================

// PropertyType 远端 API 使用的房源类型标识
type PropertyType string

const (
	HouseForRent PropertyType = "HouseForRent"
	HouseForSale PropertyType = "HouseForSale"
	Flatshare    PropertyType = "Flatshare"
	Land         PropertyType = "Land"
	Shop         PropertyType = "Shop"
)

// slugMap 类型 -> 接口路径段 的固定映射
// 远端所有 创建/更新/删除 接口都按该 slug 分路由，映射必须逐字一致
var slugMap = map[PropertyType]string{
	HouseForRent: "houses-for-rent",
	HouseForSale: "houses-for-sale",
	Flatshare:    "flatshares",
	Land:         "lands",
	Shop:         "shops",
}

// Slug 返回类型对应的接口路径段
func (t PropertyType) Slug() string {
	return slugMap[t]
}

// Valid 是否为五种合法类型之一
func (t PropertyType) Valid() bool {
	_, ok := slugMap[t]
	return ok
}

// AllPropertyTypes 全部五种类型（遍历校验用，顺序固定）
func AllPropertyTypes() []PropertyType {
	return []PropertyType{HouseForRent, HouseForSale, Flatshare, Land, Shop}
}

// ==================== 挂牌人角色 ====================

// ListerRole 个人账号的挂牌人子角色
type ListerRole string

const (
	RoleLandlord ListerRole = "landlord"
	RoleRealtor  ListerRole = "realtor"
)

// Valid 角色是否合法
func (r ListerRole) Valid() bool {
	return r == RoleLandlord || r == RoleRealtor
}

// ==================== 账号角色 ====================

const (
	AccountPersonal = "personal"
	AccountCompany  = "company"
)

// ==================== 目录数据 ====================

type State struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CapitalName string `json:"capital_name,omitempty"`
}

type Region struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state,omitempty"`
}

type RoomType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Feature struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// ==================== 房源记录 ====================

// PropertyImage 已入库的房源图片
type PropertyImage struct {
	ID           string `json:"id"`
	Key          string `json:"key,omitempty"`
	URL          string `json:"url,omitempty"`
	PresignedURL string `json:"presigned_url,omitempty"`
	ViewImageURL string `json:"view_image_url,omitempty"`
	IsCover      bool   `json:"is_cover"`
	PropertyObj  string `json:"property_obj"`
}

// OwnerInfo 房源归属人摘要
type OwnerInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
}

// Property 远端返回的完整房源记录
// 远端按 property_type 决定哪些字段出现，这里以零值表示缺省，
// 类型内部的强约束（必填组合）由 wizard 层的变体模型负责
type Property struct {
	ID           string       `json:"id"`
	PropertyType PropertyType `json:"property_type"`
	Name         string       `json:"name,omitempty"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone,omitempty"`
	Description  string       `json:"description,omitempty"`
	Bedrooms     int          `json:"bedrooms,omitempty"`
	Bathrooms    int          `json:"bathrooms,omitempty"`
	Size         string       `json:"size,omitempty"`

	State    State     `json:"state"`
	Region   Region    `json:"region"`
	RoomType *RoomType `json:"room_type,omitempty"`
	Features []Feature `json:"features,omitempty"`

	Images []PropertyImage `json:"images"`
	Owner  OwnerInfo       `json:"owner"`

	IsVerified bool       `json:"is_verified"`
	IsActive   bool       `json:"is_active"`
	ListerRole ListerRole `json:"lister_role,omitempty"`

	// --- 按类型出现的金额/条款字段 ---
	Rent              string `json:"rent,omitempty"`
	Price             string `json:"price,omitempty"`
	InitialRent       string `json:"initial_rent,omitempty"`
	RentBreakdown     string `json:"rent_breakdown,omitempty"`
	SharedRent        string `json:"shared_rent,omitempty"`
	Conditions        string `json:"conditions,omitempty"`
	SocialMediaHandle string `json:"social_media_handle,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ==================== 预签名上传 ====================

// PresignFileReq 单个待上传文件的描述
type PresignFileReq struct {
	FileName string `json:"file_name"`
	FileType string `json:"file_type,omitempty"`
}

// PresignSlot 远端签发的一个上传槽位，与请求按下标对齐
type PresignSlot struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url,omitempty"`
}

// ==================== 统计/仪表盘 ====================

type DashboardStats struct {
	TotalProperties     int `json:"total_properties"`
	ActiveListings      int `json:"active_listings"`
	VerifiedProperties  int `json:"verified_properties"`
	PendingVerification int `json:"pending_verification"`
	TotalViews          int `json:"total_views,omitempty"`

	PropertiesByType struct {
		HousesForRent int `json:"houses_for_rent"`
		HousesForSale int `json:"houses_for_sale"`
		Lands         int `json:"lands"`
		Flatshares    int `json:"flatshares"`
		Shops         int `json:"shops"`
	} `json:"properties_by_type"`
}

type DashboardOverview struct {
	User struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name,omitempty"`
		Role      string `json:"role"`
	} `json:"user"`
	Stats            DashboardStats `json:"stats"`
	RecentProperties []Property     `json:"recent_properties"`
	QuickActions     struct {
		CanUpload            bool     `json:"can_upload"`
		AllowedPropertyTypes []string `json:"allowed_property_types"`
	} `json:"quick_actions"`
}

// ==================== 个人/公司主页 ====================

type PersonalProfile struct {
	ID           string `json:"id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	Gender       string `json:"gender,omitempty"`
	Bio          string `json:"bio,omitempty"`
	Address      string `json:"address,omitempty"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
	PictureKey   string `json:"picture_key,omitempty"`
	ViewImageURL string `json:"view_image_url,omitempty"`
	FacebookURL  string `json:"facebook_url,omitempty"`
	XURL         string `json:"x_url,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	TiktokURL    string `json:"tiktok_url,omitempty"`
	InstagramURL string `json:"instagram_url,omitempty"`
	User         string `json:"user"`
	State        string `json:"state,omitempty"`
}

type CompanyProfile struct {
	ID           string `json:"id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	CompanyName  string `json:"company_name"`
	Description  string `json:"description,omitempty"`
	Website      string `json:"website,omitempty"`
	Address      string `json:"address,omitempty"`
	LogoKey      string `json:"logo_key,omitempty"`
	ViewImageURL string `json:"view_image_url,omitempty"`
	FacebookURL  string `json:"facebook_url,omitempty"`
	XURL         string `json:"x_url,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	TiktokURL    string `json:"tiktok_url,omitempty"`
	InstagramURL string `json:"instagram_url,omitempty"`
	User         string `json:"user"`
}
