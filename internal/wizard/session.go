package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 向导会话 ====================

// Session 一个进行中的挂牌向导实例
// 状态只存在内存里：提交成功或被清扫即销毁，不跨重启续传
type Session struct {
	mu sync.Mutex

	ID   string
	Flow Flow
	Step int

	Form   *Form
	Images *ImageSet

	// 编辑模式：被编辑房源的远端 id；为空即创建模式
	EditPropertyID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCreateSession 创建模式的新会话
func NewCreateSession(isCompany bool) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Flow:      Flow{IsCompany: isCompany, IsEdit: false},
		Step:      1,
		Form:      &Form{},
		Images:    NewImageSet(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewEditSession 编辑模式会话：从已拉取的远端记录回填
// 类型在创建时即固化，编辑模式不再暴露任何改类型入口
func NewEditSession(isCompany bool, p *estate.Property) (*Session, error) {
	details, err := detailsFromProperty(p)
	if err != nil {
		return nil, err
	}

	form := &Form{
		ListerRole:   p.ListerRole,
		PropertyType: p.PropertyType,
		Name:         p.Name,
		Address:      p.Address,
		Phone:        p.Phone,
		Description:  p.Description,
		StateID:      p.State.ID,
		RegionID:     p.Region.ID,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Size:         p.Size,
		Details:      details,
	}
	if p.RoomType != nil {
		form.RoomTypeID = p.RoomType.ID
	}
	for _, feat := range p.Features {
		form.FeatureIDs = append(form.FeatureIDs, feat.ID)
	}

	images := NewImageSet()
	images.Existing = append(images.Existing, p.Images...)

	now := time.Now()
	return &Session{
		ID:             uuid.New().String(),
		Flow:           Flow{IsCompany: isCompany, IsEdit: true},
		Step:           1,
		Form:           form,
		Images:         images,
		EditPropertyID: p.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ==================== 步骤推进 ====================

// Advance 校验当前步后前进一步；失败保持原位并返回 ValidationError
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateStep(s.Flow, s.Step, s.Form, s.Images); err != nil {
		return err
	}
	if s.Step < s.Flow.TotalSteps() {
		s.Step++
	}
	s.touch()
	return nil
}

// Retreat 后退一步，不做校验；第 1 步不再后退
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Step > 1 {
		s.Step--
	}
	s.touch()
}

// ValidateCurrentStep 只校验不推进（渲染前探测用）
func (s *Session) ValidateCurrentStep() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validateStep(s.Flow, s.Step, s.Form, s.Images)
}

// ==================== 表单写入 ====================

// FormPatch 一次表单写入请求；nil 字段表示不改动
type FormPatch struct {
	ListerRole   *estate.ListerRole
	PropertyType *estate.PropertyType
	Name         *string
	Address      *string
	Phone        *string
	Description  *string
	StateID      *string
	RegionID     *string
	Bedrooms     *int
	Bathrooms    *int
	Size         *string
	RoomTypeID   *string
	FeatureIDs   *[]string
	Fields       *FieldValues
}

// ApplyPatch 应用一次表单写入
// 编辑模式下改类型是非法操作；换州会清空已选区域
func (s *Session) ApplyPatch(p *FormPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.PropertyType != nil {
		if s.Flow.IsEdit {
			return &ValidationError{Title: "Not allowed", Description: "Property type cannot be changed after creation"}
		}
		if !p.PropertyType.Valid() {
			return &ValidationError{Title: "Required", Description: "Please select a property type"}
		}
		s.Form.PropertyType = *p.PropertyType
		// 类型切换后旧变体作废
		s.Form.Details = nil
	}

	if p.ListerRole != nil {
		s.Form.ListerRole = *p.ListerRole
	}
	if p.Name != nil {
		s.Form.Name = *p.Name
	}
	if p.Address != nil {
		s.Form.Address = *p.Address
	}
	if p.Phone != nil {
		s.Form.Phone = *p.Phone
	}
	if p.Description != nil {
		s.Form.Description = *p.Description
	}
	if p.StateID != nil && *p.StateID != s.Form.StateID {
		s.Form.StateID = *p.StateID
		s.Form.RegionID = ""
	}
	if p.RegionID != nil {
		s.Form.RegionID = *p.RegionID
	}
	if p.Bedrooms != nil {
		s.Form.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		s.Form.Bathrooms = *p.Bathrooms
	}
	if p.Size != nil {
		s.Form.Size = *p.Size
	}
	if p.RoomTypeID != nil {
		s.Form.RoomTypeID = *p.RoomTypeID
	}
	if p.FeatureIDs != nil {
		s.Form.FeatureIDs = append([]string(nil), (*p.FeatureIDs)...)
	}

	if p.Fields != nil {
		if s.Form.PropertyType == "" {
			return &ValidationError{Title: "Required", Description: "Please select a property type"}
		}
		details, err := NewTypeDetails(s.Form.PropertyType, *p.Fields)
		if err != nil {
			return err
		}
		s.Form.Details = details
	}

	s.touch()
	return nil
}

// ==================== 图片操作（加锁转发） ====================

// StageImages 暂存一批图片
func (s *Session) StageImages(files []IncomingFile) ([]FileError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rejected, err := s.Images.StageNewFiles(files)
	s.touch()
	return rejected, err
}

// UnstageImage 移除一张暂存图片
func (s *Session) UnstageImage(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.Images.UnstageFile(index)
}

// MarkImageForDeletion 标记一张已入库图片待删
func (s *Session) MarkImageForDeletion(imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.Images.MarkExistingForDeletion(imageID)
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// ==================== 只读快照 ====================

// Snapshot 会话的一致性只读视图，渲染接口响应用
type Snapshot struct {
	ID         string
	IsCompany  bool
	IsEdit     bool
	Step       int
	TotalSteps int
	Meanings   []Meaning

	Form            Form
	ExistingImages  []estate.PropertyImage
	StagedPreviews  []string
	MarkedForDelete []string
	EffectiveImages int

	EditPropertyID string
	UpdatedAt      time.Time
}

// Snapshot 在锁内拷贝出当前状态
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := *s.Form
	form.FeatureIDs = append([]string(nil), s.Form.FeatureIDs...)

	previews := make([]string, len(s.Images.Staged))
	for i, img := range s.Images.Staged {
		previews[i] = img.Preview
	}

	return &Snapshot{
		ID:              s.ID,
		IsCompany:       s.Flow.IsCompany,
		IsEdit:          s.Flow.IsEdit,
		Step:            s.Step,
		TotalSteps:      s.Flow.TotalSteps(),
		Meanings:        s.Flow.Meanings(s.Step),
		Form:            form,
		ExistingImages:  s.Images.EffectiveExisting(),
		StagedPreviews:  previews,
		MarkedForDelete: s.Images.DeleteIDs(),
		EffectiveImages: s.Images.EffectiveCount(),
		EditPropertyID:  s.EditPropertyID,
		UpdatedAt:       s.UpdatedAt,
	}
}
