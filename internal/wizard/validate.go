package wizard

import (
	"strings"
)

// ==================== 校验错误 ====================

// ValidationError 一次本地校验失败，带用户可读的标题与描述
// 不触网、可原地修复；步骤推进在校验失败时保持原位
type ValidationError struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Description
}

// ==================== 电话号码 ====================

// phoneDigits 去掉所有非数字字符
func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validPhone 校验电话：裸国内号 11 位，或保留 +234 国码前缀的 14 位
func validPhone(phone string) bool {
	digits := phoneDigits(phone)
	if len(digits) == 11 {
		return true
	}
	if len(digits) == 14 && strings.HasPrefix(digits, "234") {
		return true
	}
	return false
}

// ==================== 分步校验 ====================

// validateStep 只校验当前步承载的语义，逐条短路
func validateStep(flow Flow, step int, form *Form, images *ImageSet) error {
	for _, m := range flow.Meanings(step) {
		var err error
		switch m {
		case MeaningRole:
			err = validateRole(form)
		case MeaningType:
			err = validateType(form)
		case MeaningDetails:
			err = validateDetails(form)
		case MeaningImages:
			err = validateImages(images)
		case MeaningReview:
			// 终点步无额外校验，提交是独立动作
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// validateRole 角色步：个人账号必须选定角色
func validateRole(form *Form) error {
	if !form.ListerRole.Valid() {
		return &ValidationError{Title: "Required", Description: "Please select your role"}
	}
	return nil
}

// validateType 类型步：必须为五种合法类型之一
func validateType(form *Form) error {
	if !form.PropertyType.Valid() {
		return &ValidationError{Title: "Required", Description: "Please select a property type"}
	}
	return nil
}

// validateDetails 明细步：通用必填 + 类型必填
func validateDetails(form *Form) error {
	if strings.TrimSpace(form.Address) == "" {
		return &ValidationError{Title: "Required", Description: "Please enter the property address"}
	}
	if form.Phone == "" {
		return &ValidationError{Title: "Required", Description: "Please enter a phone number"}
	}
	if !validPhone(form.Phone) {
		return &ValidationError{Title: "Invalid Phone Number", Description: "Phone number must be exactly 11 digits"}
	}
	if form.StateID == "" {
		return &ValidationError{Title: "Required", Description: "Please select a state"}
	}
	if form.RegionID == "" {
		return &ValidationError{Title: "Required", Description: "Please select a region"}
	}

	if form.Details == nil {
		return &ValidationError{Title: "Required", Description: "Please select a property type"}
	}
	if form.Details.NeedsRoomType() && form.RoomTypeID == "" {
		return &ValidationError{Title: "Required", Description: "Please select a room type"}
	}
	return form.Details.Validate()
}

// validateImages 图片步：有效图片数至少 1
func validateImages(images *ImageSet) error {
	if images.EffectiveCount() == 0 {
		return &ValidationError{Title: "Required", Description: "Please have at least one image"}
	}
	return nil
}
