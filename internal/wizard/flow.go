package wizard

// ==================== 步骤语义 ====================

// Meaning 向导某一步承载的语义
type Meaning string

const (
	MeaningRole    Meaning = "role"     // 选择挂牌人角色（仅个人账号）
	MeaningType    Meaning = "type"     // 选择房源类型（仅创建模式）
	MeaningDetails Meaning = "details"  // 填写房源明细
	MeaningImages  Meaning = "images"   // 整理图片
	MeaningReview  Meaning = "review"   // 核对并提交
)

// Flow 向导流程的两个二元轴：账号类型 x 模式
type Flow struct {
	IsCompany bool
	IsEdit    bool
}

// TotalSteps 总步数
// 编辑模式恒为 3（类型步整体跳过）；创建模式公司 4 步、个人 5 步
func (f Flow) TotalSteps() int {
	if f.IsEdit {
		return 3
	}
	if f.IsCompany {
		return 4
	}
	return 5
}

// Meanings 返回第 step 步（1 起）承载的全部语义
//
// 这是一张钉死的表，不是推导公式。四种 (IsCompany, IsEdit) 组合下
// 步号与语义的对应关系如下，渲染/校验/提交全部只查这一处：
//
//	创建/个人(5步): 1=role  2=type    3=details 4=images 5=review
//	创建/公司(4步): 1=type  2=details 3=images  4=review
//	编辑/个人(3步): 1=role  2=details 3=images+review
//	编辑/公司(3步): 1=details 2=images 3=review
//
// 注意编辑/个人模式下第 3 步同时承载图片整理与核对提交，
// 所以一步可以带多个语义，调用方按语义逐条处理
func (f Flow) Meanings(step int) []Meaning {
	if step < 1 || step > f.TotalSteps() {
		return nil
	}

	var out []Meaning

	// 角色步：个人账号固定在第 1 步，创建/编辑均存在
	if !f.IsCompany && step == 1 {
		out = append(out, MeaningRole)
	}

	// 类型步：仅创建模式；公司第 1 步，个人第 2 步
	if !f.IsEdit {
		if (f.IsCompany && step == 1) || (!f.IsCompany && step == 2) {
			out = append(out, MeaningType)
		}
	}

	// 明细步
	if f.IsEdit {
		if (f.IsCompany && step == 1) || (!f.IsCompany && step == 2) {
			out = append(out, MeaningDetails)
		}
	} else {
		if (f.IsCompany && step == 2) || (!f.IsCompany && step == 3) {
			out = append(out, MeaningDetails)
		}
	}

	// 图片步
	if f.IsEdit {
		if (f.IsCompany && step == 2) || (!f.IsCompany && step == 3) {
			out = append(out, MeaningImages)
		}
	} else {
		if (f.IsCompany && step == 3) || (!f.IsCompany && step == 4) {
			out = append(out, MeaningImages)
		}
	}

	// 核对步：恒为最后一步
	if step == f.TotalSteps() {
		out = append(out, MeaningReview)
	}

	return out
}

// Has 第 step 步是否承载语义 m
func (f Flow) Has(step int, m Meaning) bool {
	for _, got := range f.Meanings(step) {
		if got == m {
			return true
		}
	}
	return false
}
