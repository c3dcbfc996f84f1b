package wizard

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 依赖接口 ====================

// RemoteAPI 提交阶段依赖的远端操作子集（estate.Client 天然满足）
type RemoteAPI interface {
	DeletePropertyImage(ctx context.Context, sess *estate.Session, imageID string) error
	CreateProperty(ctx context.Context, sess *estate.Session, slug string, payload map[string]interface{}) (*estate.Property, error)
	UpdateProperty(ctx context.Context, sess *estate.Session, slug, id string, payload map[string]interface{}) (*estate.Property, error)
}

// Uploader 批量上传：全部成功返回按下标对齐的存储 key，任一失败整体失败
type Uploader interface {
	UploadBatch(ctx context.Context, sess *estate.Session, files []StagedImage, folder string) ([]string, error)
}

// ==================== 提交结果 ====================

// Result 一次提交的结果
type Result struct {
	Property *estate.Property `json:"property"`
	// Warnings 尽力而为的子操作失败（目前只有编辑模式的图片删除）
	Warnings []string `json:"warnings,omitempty"`
	// ImageKeys 本次新上传图片的存储 key（审计落库用）
	ImageKeys []string `json:"-"`
	// DeletedIDs 本次发起删除的已入库图片 id（审计落库用）
	DeletedIDs []string `json:"-"`
	// Payload 实际发往远端的载荷（审计落库用）
	Payload map[string]interface{} `json:"-"`
}

// ==================== 编排器 ====================

// uploadFolder 房源图片在对象存储里的目录标签
const uploadFolder = "property-images"

// Orchestrator 提交编排器
// 固定顺序：兜底校验 -> 申请槽位并上传 -> （编辑）等待删除完成 -> 一次创建/更新
type Orchestrator struct {
	api      RemoteAPI
	uploader Uploader
}

// NewOrchestrator 创建编排器
func NewOrchestrator(api RemoteAPI, uploader Uploader) *Orchestrator {
	return &Orchestrator{api: api, uploader: uploader}
}

// Submit 执行提交
// 失败语义：任何一步失败都返回错误且会话状态原样保留，用户可直接重试；
// 没有自动重试，也没有跨请求的半成品状态
func (o *Orchestrator) Submit(ctx context.Context, s *Session, remote *estate.Session) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := s.Form

	// 1. 兜底校验：独立于分步门禁，防御编程式绕过
	if strings.TrimSpace(form.Address) == "" || form.StateID == "" || form.RegionID == "" {
		return nil, &ValidationError{
			Title:       "Required fields missing",
			Description: "Please fill in all required fields",
		}
	}
	if form.Details == nil || !form.PropertyType.Valid() {
		return nil, &ValidationError{Title: "Required", Description: "Please select a property type"}
	}

	// 2. 创建模式必须有新图；编辑模式提交时图片可选（信任已入库的存量）
	if !s.Flow.IsEdit && len(s.Images.Staged) == 0 {
		return nil, &ValidationError{
			Title:       "Images required",
			Description: "Please upload at least one property image",
		}
	}

	// 3. 有新图则整批上传，全部完成才能拿到 key
	var imageKeys []string
	if len(s.Images.Staged) > 0 {
		keys, err := o.uploader.UploadBatch(ctx, remote, s.Images.Staged, uploadFolder)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		imageKeys = keys
	}

	// 4. 组装载荷
	payload := o.buildPayload(s, imageKeys)

	// 5. 编辑模式：并发删除标记图片，等全部落定再发更新
	//    单张删除失败不阻断更新，记入 warnings
	var (
		warnings   []string
		deletedIDs []string
	)
	if s.Flow.IsEdit {
		deletedIDs = s.Images.DeleteIDs()
		warnings = o.deleteMarkedImages(ctx, remote, deletedIDs)
	}

	// 6. 唯一一次创建/更新调用
	slug := form.PropertyType.Slug()
	var (
		prop *estate.Property
		err  error
	)
	if s.Flow.IsEdit {
		prop, err = o.api.UpdateProperty(ctx, remote, slug, s.EditPropertyID, payload)
	} else {
		prop, err = o.api.CreateProperty(ctx, remote, slug, payload)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Property:   prop,
		Warnings:   warnings,
		ImageKeys:  imageKeys,
		DeletedIDs: deletedIDs,
		Payload:    payload,
	}, nil
}

// buildPayload 合并通用字段、类型字段与附加项
func (o *Orchestrator) buildPayload(s *Session, imageKeys []string) map[string]interface{} {
	form := s.Form

	payload := map[string]interface{}{
		"address":   form.Address,
		"state_id":  form.StateID,
		"region_id": form.RegionID,
	}
	putIfSet(payload, "name", form.Name)
	putIfSet(payload, "phone", form.Phone)
	putIfSet(payload, "description", form.Description)
	putIfSet(payload, "size", form.Size)
	if form.Bedrooms > 0 {
		payload["bedrooms"] = form.Bedrooms
	}
	if form.Bathrooms > 0 {
		payload["bathrooms"] = form.Bathrooms
	}

	for k, v := range form.Details.Payload() {
		payload[k] = v
	}

	// lister_role 只在创建时提交
	if !s.Flow.IsEdit && form.ListerRole != "" {
		payload["lister_role"] = form.ListerRole
	}
	if form.Details.NeedsRoomType() && form.RoomTypeID != "" {
		payload["room_type_id"] = form.RoomTypeID
	}
	if len(form.FeatureIDs) > 0 {
		payload["feature_ids"] = form.FeatureIDs
	}
	if len(imageKeys) > 0 {
		payload["image_keys"] = imageKeys
	}

	return payload
}

// deleteMarkedImages 并发删除并等待全部落定，失败逐条转 warning
func (o *Orchestrator) deleteMarkedImages(ctx context.Context, remote *estate.Session, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		warnings []string
	)
	for _, id := range ids {
		wg.Add(1)
		go func(imageID string) {
			defer wg.Done()
			if err := o.api.DeletePropertyImage(ctx, remote, imageID); err != nil {
				log.Printf("[Wizard] 删除图片失败 image_id=%s: %v", imageID, err)
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("failed to delete image %s: %v", imageID, err))
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()
	return warnings
}
