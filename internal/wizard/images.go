package wizard

import (
	"fmt"

	"globassets_dev_v1_202608/pkg/estate"
	"globassets_dev_v1_202608/pkg/utils"
)

// MaxImages 单个房源的图片上限
const MaxImages = 5

// ==================== 待上传文件 ====================

// StagedImage 已暂存、尚未上传的本地图片
type StagedImage struct {
	FileName    string
	ContentType string
	Data        []byte
	Preview     string // data URL，按暂存顺序生成（同步编码，顺序即选择顺序）
}

// IncomingFile 一次暂存请求里的单个文件
type IncomingFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// FileError 单个文件被拒的原因
type FileError struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// ==================== 图片工作集 ====================

// ImageSet 创建/编辑两种模式下的图片工作集
// 新图片只暂存不上传；已入库图片的删除只做标记，真正的删除
// 推迟到提交阶段执行
type ImageSet struct {
	Existing []estate.PropertyImage // 编辑模式回填的已入库图片
	Staged   []StagedImage
	ToDelete map[string]struct{} // 标记待删的已入库图片 id
}

// NewImageSet 空工作集
func NewImageSet() *ImageSet {
	return &ImageSet{ToDelete: make(map[string]struct{})}
}

// EffectiveExisting 过滤掉已标记删除后的已入库图片
func (s *ImageSet) EffectiveExisting() []estate.PropertyImage {
	out := make([]estate.PropertyImage, 0, len(s.Existing))
	for _, img := range s.Existing {
		if _, marked := s.ToDelete[img.ID]; !marked {
			out = append(out, img)
		}
	}
	return out
}

// EffectiveCount 有效图片数 = 已入库 - 已标记删除 + 已暂存
func (s *ImageSet) EffectiveCount() int {
	return len(s.Existing) - len(s.ToDelete) + len(s.Staged)
}

// StageNewFiles 暂存一批新文件
// 先按整批数量做上限校验：一旦放行会超过 5 张就整批拒绝且不改动任何状态；
// 通过后再逐个校验 MIME，非图片单独拒绝、不影响同批其他文件
func (s *ImageSet) StageNewFiles(files []IncomingFile) ([]FileError, error) {
	if len(files) == 0 {
		return nil, nil
	}

	if s.EffectiveCount()+len(files) > MaxImages {
		return nil, &ValidationError{
			Title:       "Too many images",
			Description: fmt.Sprintf("Maximum %d images allowed", MaxImages),
		}
	}

	var rejected []FileError
	for _, f := range files {
		if !utils.IsImageContentType(f.ContentType, f.Data) {
			rejected = append(rejected, FileError{
				FileName: f.FileName,
				Reason:   fmt.Sprintf("%s is not an image", f.FileName),
			})
			continue
		}
		s.Staged = append(s.Staged, StagedImage{
			FileName:    f.FileName,
			ContentType: f.ContentType,
			Data:        f.Data,
			Preview:     utils.DataURL(f.ContentType, f.Data),
		})
	}
	return rejected, nil
}

// UnstageFile 按下标移除一个暂存文件及其预览
func (s *ImageSet) UnstageFile(index int) error {
	if index < 0 || index >= len(s.Staged) {
		return fmt.Errorf("staged image index out of range: %d", index)
	}
	s.Staged = append(s.Staged[:index], s.Staged[index+1:]...)
	return nil
}

// MarkExistingForDeletion 标记一张已入库图片待删
// 不从 Existing 中移除；计数与展示都经 ToDelete 过滤
func (s *ImageSet) MarkExistingForDeletion(imageID string) error {
	for _, img := range s.Existing {
		if img.ID == imageID {
			s.ToDelete[imageID] = struct{}{}
			return nil
		}
	}
	return fmt.Errorf("unknown existing image: %s", imageID)
}

// DeleteIDs 待删 id 列表
func (s *ImageSet) DeleteIDs() []string {
	out := make([]string, 0, len(s.ToDelete))
	// 按 Existing 原始顺序输出，保证可重现
	for _, img := range s.Existing {
		if _, marked := s.ToDelete[img.ID]; marked {
			out = append(out, img.ID)
		}
	}
	return out
}

// Cover 封面图展示规则：过滤后的已入库图片优先，其次第一张暂存图
// 仅用于展示，最终以远端上传后标记的封面为准
func (s *ImageSet) Cover() (existingID string, stagedIndex int, ok bool) {
	if remaining := s.EffectiveExisting(); len(remaining) > 0 {
		return remaining[0].ID, -1, true
	}
	if len(s.Staged) > 0 {
		return "", 0, true
	}
	return "", -1, false
}
