package dto

import (
	"time"

	"globassets_dev_v1_202608/internal/wizard"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 会话创建 ====================

// StartEditRequest 开启编辑流程请求
type StartEditRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
}

// ==================== 表单写入 ====================

// FieldValuesRequest 类型专属字段（扁平提交，服务端按类型装配）
type FieldValuesRequest struct {
	Rent              string `json:"rent"`
	Price             string `json:"price"`
	SharedRent        string `json:"shared_rent"`
	InitialRent       string `json:"initial_rent"`
	RentBreakdown     string `json:"rent_breakdown"`
	Conditions        string `json:"conditions"`
	SocialMediaHandle string `json:"social_media_handle"`
}

// PatchFormRequest 表单写入请求；缺省字段不改动
type PatchFormRequest struct {
	ListerRole   *string             `json:"lister_role" binding:"omitempty,oneof=landlord realtor"`
	PropertyType *string             `json:"property_type"`
	Name         *string             `json:"name"`
	Address      *string             `json:"address"`
	Phone        *string             `json:"phone"`
	Description  *string             `json:"description"`
	StateID      *string             `json:"state_id"`
	RegionID     *string             `json:"region_id"`
	Bedrooms     *int                `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms    *int                `json:"bathrooms" binding:"omitempty,min=0"`
	Size         *string             `json:"size"`
	RoomTypeID   *string             `json:"room_type_id"`
	FeatureIDs   *[]string           `json:"feature_ids"`
	Fields       *FieldValuesRequest `json:"fields"`
}

// ToPatch 转为领域层写入指令
func (r *PatchFormRequest) ToPatch() *wizard.FormPatch {
	p := &wizard.FormPatch{
		Name:        r.Name,
		Address:     r.Address,
		Phone:       r.Phone,
		Description: r.Description,
		StateID:     r.StateID,
		RegionID:    r.RegionID,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Size:        r.Size,
		RoomTypeID:  r.RoomTypeID,
		FeatureIDs:  r.FeatureIDs,
	}
	if r.ListerRole != nil {
		role := estate.ListerRole(*r.ListerRole)
		p.ListerRole = &role
	}
	if r.PropertyType != nil {
		pt := estate.PropertyType(*r.PropertyType)
		p.PropertyType = &pt
	}
	if r.Fields != nil {
		p.Fields = &wizard.FieldValues{
			Rent:              r.Fields.Rent,
			Price:             r.Fields.Price,
			SharedRent:        r.Fields.SharedRent,
			InitialRent:       r.Fields.InitialRent,
			RentBreakdown:     r.Fields.RentBreakdown,
			Conditions:        r.Fields.Conditions,
			SocialMediaHandle: r.Fields.SocialMediaHandle,
		}
	}
	return p
}

// ==================== 图片操作 ====================

// MarkImageDeleteRequest 标记已入库图片待删
type MarkImageDeleteRequest struct {
	ImageID string `json:"image_id" binding:"required"`
}

// StageImagesResponse 暂存结果：被拒文件逐条列出，不影响同批其余文件
type StageImagesResponse struct {
	Rejected []wizard.FileError `json:"rejected,omitempty"`
	State    *WizardState       `json:"state"`
}

// ==================== 会话状态视图 ====================

// WizardFormView 表单状态视图
type WizardFormView struct {
	ListerRole   string                 `json:"lister_role,omitempty"`
	PropertyType string                 `json:"property_type,omitempty"`
	Name         string                 `json:"name,omitempty"`
	Address      string                 `json:"address,omitempty"`
	Phone        string                 `json:"phone,omitempty"`
	Description  string                 `json:"description,omitempty"`
	StateID      string                 `json:"state_id,omitempty"`
	RegionID     string                 `json:"region_id,omitempty"`
	Bedrooms     int                    `json:"bedrooms,omitempty"`
	Bathrooms    int                    `json:"bathrooms,omitempty"`
	Size         string                 `json:"size,omitempty"`
	RoomTypeID   string                 `json:"room_type_id,omitempty"`
	FeatureIDs   []string               `json:"feature_ids,omitempty"`
	Fields       map[string]interface{} `json:"fields,omitempty"`
}

// WizardState 会话状态视图
type WizardState struct {
	ID         string   `json:"id"`
	Mode       string   `json:"mode"` // create | edit
	IsCompany  bool     `json:"is_company"`
	Step       int      `json:"step"`
	TotalSteps int      `json:"total_steps"`
	Meanings   []string `json:"meanings"`

	Form            *WizardFormView        `json:"form"`
	ExistingImages  []estate.PropertyImage `json:"existing_images"`
	StagedPreviews  []string               `json:"staged_previews"`
	MarkedForDelete []string               `json:"marked_for_delete,omitempty"`
	EffectiveImages int                    `json:"effective_images"`

	EditPropertyID string    `json:"edit_property_id,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewWizardState 从会话快照构造视图
func NewWizardState(snap *wizard.Snapshot) *WizardState {
	mode := "create"
	if snap.IsEdit {
		mode = "edit"
	}

	meanings := make([]string, len(snap.Meanings))
	for i, m := range snap.Meanings {
		meanings[i] = string(m)
	}

	form := &WizardFormView{
		ListerRole:   string(snap.Form.ListerRole),
		PropertyType: string(snap.Form.PropertyType),
		Name:         snap.Form.Name,
		Address:      snap.Form.Address,
		Phone:        snap.Form.Phone,
		Description:  snap.Form.Description,
		StateID:      snap.Form.StateID,
		RegionID:     snap.Form.RegionID,
		Bedrooms:     snap.Form.Bedrooms,
		Bathrooms:    snap.Form.Bathrooms,
		Size:         snap.Form.Size,
		RoomTypeID:   snap.Form.RoomTypeID,
		FeatureIDs:   snap.Form.FeatureIDs,
	}
	if snap.Form.Details != nil {
		form.Fields = snap.Form.Details.Payload()
	}

	return &WizardState{
		ID:              snap.ID,
		Mode:            mode,
		IsCompany:       snap.IsCompany,
		Step:            snap.Step,
		TotalSteps:      snap.TotalSteps,
		Meanings:        meanings,
		Form:            form,
		ExistingImages:  snap.ExistingImages,
		StagedPreviews:  snap.StagedPreviews,
		MarkedForDelete: snap.MarkedForDelete,
		EffectiveImages: snap.EffectiveImages,
		EditPropertyID:  snap.EditPropertyID,
		UpdatedAt:       snap.UpdatedAt,
	}
}

// ==================== 提交 ====================

// SubmitResponse 提交成功响应
type SubmitResponse struct {
	Property *estate.Property `json:"property"`
	Warnings []string         `json:"warnings,omitempty"`
}
