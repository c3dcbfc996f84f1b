package wizard

import (
	"testing"

	"globassets_dev_v1_202608/pkg/estate"
)

func strPtr(s string) *string                       { return &s }
func rolePtr(r estate.ListerRole) *estate.ListerRole { return &r }
func typePtr(t estate.PropertyType) *estate.PropertyType {
	return &t
}

// ==================== 表单写入 ====================

func TestApplyPatchTypeChange(t *testing.T) {
	s := NewCreateSession(false)

	if err := s.ApplyPatch(&FormPatch{PropertyType: typePtr(estate.HouseForRent)}); err != nil {
		t.Fatalf("创建模式选类型失败: %v", err)
	}
	if err := s.ApplyPatch(&FormPatch{Fields: &FieldValues{Rent: "100000"}}); err != nil {
		t.Fatalf("写入类型字段失败: %v", err)
	}
	if s.Form.Details == nil || s.Form.Details.Type() != estate.HouseForRent {
		t.Fatalf("Details 未装配: %v", s.Form.Details)
	}

	// 创建模式换类型合法，但旧变体作废
	if err := s.ApplyPatch(&FormPatch{PropertyType: typePtr(estate.Land)}); err != nil {
		t.Fatalf("创建模式换类型失败: %v", err)
	}
	if s.Form.Details != nil {
		t.Error("换类型后旧变体应被清空")
	}

	// 非法类型
	assertValidation(t,
		s.ApplyPatch(&FormPatch{PropertyType: typePtr(estate.PropertyType("Castle"))}),
		"Please select a property type")
}

func TestApplyPatchEditModeForbidsTypeChange(t *testing.T) {
	s := readyEditSession(t, editFixtureProperty())

	err := s.ApplyPatch(&FormPatch{PropertyType: typePtr(estate.Land)})
	assertValidation(t, err, "Property type cannot be changed after creation")
	if s.Form.PropertyType != estate.HouseForRent {
		t.Errorf("类型被改动: %s", s.Form.PropertyType)
	}

	// 同值也拒绝：编辑模式不暴露任何类型入口
	err = s.ApplyPatch(&FormPatch{PropertyType: typePtr(estate.HouseForRent)})
	assertValidation(t, err, "Property type cannot be changed after creation")
}

func TestApplyPatchStateChangeClearsRegion(t *testing.T) {
	s := NewCreateSession(false)
	s.Form.StateID = "st-1"
	s.Form.RegionID = "rg-1"

	if err := s.ApplyPatch(&FormPatch{StateID: strPtr("st-2")}); err != nil {
		t.Fatal(err)
	}
	if s.Form.RegionID != "" {
		t.Errorf("换州后区域未清空: %q", s.Form.RegionID)
	}

	// 同一个州重复提交不动区域
	s.Form.RegionID = "rg-5"
	if err := s.ApplyPatch(&FormPatch{StateID: strPtr("st-2")}); err != nil {
		t.Fatal(err)
	}
	if s.Form.RegionID != "rg-5" {
		t.Errorf("同州写入不应清区域: %q", s.Form.RegionID)
	}
}

func TestApplyPatchFieldsRequireType(t *testing.T) {
	s := NewCreateSession(false)
	err := s.ApplyPatch(&FormPatch{Fields: &FieldValues{Rent: "100000"}})
	assertValidation(t, err, "Please select a property type")
}

func TestApplyPatchNilFieldsUntouched(t *testing.T) {
	s := NewCreateSession(false)
	s.Form.Address = "12 Marina Road"
	s.Form.Phone = "08031234567"

	if err := s.ApplyPatch(&FormPatch{Name: strPtr("Sunny Villa"), ListerRole: rolePtr(estate.RoleRealtor)}); err != nil {
		t.Fatal(err)
	}
	if s.Form.Address != "12 Marina Road" || s.Form.Phone != "08031234567" {
		t.Error("nil 字段不应被改动")
	}
	if s.Form.Name != "Sunny Villa" || s.Form.ListerRole != estate.RoleRealtor {
		t.Error("非 nil 字段未写入")
	}
}

// ==================== 步骤推进 ====================

func TestAdvanceBlocksOnValidation(t *testing.T) {
	s := NewCreateSession(false)

	// 第 1 步为角色步，角色未选不得前进
	err := s.Advance()
	assertValidation(t, err, "Please select your role")
	if s.Step != 1 {
		t.Errorf("校验失败后步号被改动: %d", s.Step)
	}

	if err := s.ApplyPatch(&FormPatch{ListerRole: rolePtr(estate.RoleLandlord)}); err != nil {
		t.Fatal(err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("角色已选仍不能前进: %v", err)
	}
	if s.Step != 2 {
		t.Errorf("Step = %d, want 2", s.Step)
	}
}

func TestAdvanceCapsAtLastStep(t *testing.T) {
	s := readyCreateSession(t)
	s.Step = s.Flow.TotalSteps()

	// 末步（核对步）无校验，前进封顶不越界
	if err := s.Advance(); err != nil {
		t.Fatalf("核对步前进报错: %v", err)
	}
	if s.Step != s.Flow.TotalSteps() {
		t.Errorf("Step = %d, 越过末步", s.Step)
	}
}

func TestRetreatSkipsValidationAndCapsAtFirst(t *testing.T) {
	s := NewCreateSession(false)
	s.Step = 3

	// 后退不做任何校验，哪怕表单一片空白
	s.Retreat()
	if s.Step != 2 {
		t.Errorf("Step = %d, want 2", s.Step)
	}
	s.Retreat()
	s.Retreat()
	if s.Step != 1 {
		t.Errorf("Step = %d, 退过了第 1 步", s.Step)
	}
}

// ==================== 编辑回填 ====================

func TestNewEditSessionBackfill(t *testing.T) {
	p := editFixtureProperty()
	p.Features = []estate.Feature{{ID: "f1"}, {ID: "f2"}}
	s := readyEditSession(t, p)

	if !s.Flow.IsEdit || s.EditPropertyID != "prop-9" {
		t.Fatalf("编辑标志/目标 id 错误: %+v", s)
	}
	if s.Form.PropertyType != estate.HouseForRent || s.Form.RoomTypeID != "rt-1" {
		t.Errorf("类型/户型回填错误: %s / %s", s.Form.PropertyType, s.Form.RoomTypeID)
	}
	if len(s.Form.FeatureIDs) != 2 {
		t.Errorf("特性回填 = %v", s.Form.FeatureIDs)
	}
	if len(s.Images.Existing) != 3 || len(s.Images.Staged) != 0 {
		t.Errorf("图片回填 = existing %d / staged %d", len(s.Images.Existing), len(s.Images.Staged))
	}
	if s.Form.Details == nil || s.Form.Details.Type() != estate.HouseForRent {
		t.Errorf("变体回填错误: %v", s.Form.Details)
	}

	// 未知类型的远端记录直接拒绝
	bad := editFixtureProperty()
	bad.PropertyType = "Castle"
	if _, err := NewEditSession(false, bad); err == nil {
		t.Error("未知类型应报错")
	}
}

// ==================== 快照 ====================

func TestSnapshotIsolation(t *testing.T) {
	s := readyEditSession(t, editFixtureProperty())
	s.Form.FeatureIDs = []string{"f1"}
	if err := s.MarkImageForDeletion("img-2"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.StageImages([]IncomingFile{pngFile("new.png")}); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()

	if !snap.IsEdit || snap.TotalSteps != 3 || snap.Step != 1 {
		t.Errorf("快照骨架 = %+v", snap)
	}
	if len(snap.ExistingImages) != 2 {
		t.Errorf("快照存量图 = %d, want 2（过滤已标删）", len(snap.ExistingImages))
	}
	if len(snap.StagedPreviews) != 1 {
		t.Errorf("快照预览 = %v", snap.StagedPreviews)
	}
	if len(snap.MarkedForDelete) != 1 || snap.MarkedForDelete[0] != "img-2" {
		t.Errorf("快照标删 = %v", snap.MarkedForDelete)
	}
	if snap.EffectiveImages != 3 {
		t.Errorf("快照有效数 = %d, want 3", snap.EffectiveImages)
	}

	// 快照是拷贝：改快照不影响会话
	snap.Form.FeatureIDs[0] = "mutated"
	if s.Form.FeatureIDs[0] != "f1" {
		t.Error("快照与会话共享了特性切片")
	}
}
