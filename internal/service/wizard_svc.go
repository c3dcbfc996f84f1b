package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"globassets_dev_v1_202608/internal/model"
	"globassets_dev_v1_202608/internal/repository"
	"globassets_dev_v1_202608/internal/wizard"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 向导服务 ====================

// WizardService 挂牌向导服务
// 会话状态全在内存（提交成功或清扫即销毁），唯一落库的是提交审计
type WizardService struct {
	store *wizard.Store
	api   *estate.Client
	orch  *wizard.Orchestrator
	logs  repository.SubmissionLogRepository
}

// NewWizardService 创建向导服务
func NewWizardService(store *wizard.Store, api *estate.Client, storage StorageProvider, logs repository.SubmissionLogRepository) *WizardService {
	return &WizardService{
		store: store,
		api:   api,
		orch:  wizard.NewOrchestrator(api, storage),
		logs:  logs,
	}
}

// Store 暴露会话仓（清扫任务用）
func (s *WizardService) Store() *wizard.Store {
	return s.store
}

// ==================== 会话生命周期 ====================

// StartCreate 开启创建流程，账号类型决定步数与步含义
func (s *WizardService) StartCreate(sess *estate.Session) *wizard.Snapshot {
	ws := wizard.NewCreateSession(sess.IsCompany())
	s.store.Put(ws)
	return ws.Snapshot()
}

// StartEdit 开启编辑流程：拉取远端房源并回填
func (s *WizardService) StartEdit(ctx context.Context, sess *estate.Session, propertyID string) (*wizard.Snapshot, error) {
	prop, err := s.api.GetPropertyByID(ctx, sess, propertyID)
	if err != nil {
		return nil, err
	}
	ws, err := wizard.NewEditSession(sess.IsCompany(), prop)
	if err != nil {
		return nil, err
	}
	s.store.Put(ws)
	return ws.Snapshot(), nil
}

// Get 读取会话状态
func (s *WizardService) Get(id string) (*wizard.Snapshot, error) {
	ws, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return ws.Snapshot(), nil
}

// Abandon 放弃会话
func (s *WizardService) Abandon(id string) {
	s.store.Delete(id)
}

// ==================== 表单与步进 ====================

// Patch 写入表单字段
func (s *WizardService) Patch(id string, patch *wizard.FormPatch) (*wizard.Snapshot, error) {
	ws, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ws.ApplyPatch(patch); err != nil {
		return nil, err
	}
	return ws.Snapshot(), nil
}

// Advance 校验当前步并前进
func (s *WizardService) Advance(id string) (*wizard.Snapshot, error) {
	ws, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ws.Advance(); err != nil {
		return nil, err
	}
	return ws.Snapshot(), nil
}

// Retreat 后退一步
func (s *WizardService) Retreat(id string) (*wizard.Snapshot, error) {
	ws, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	ws.Retreat()
	return ws.Snapshot(), nil
}

// ==================== 图片操作 ====================

// StageImages 暂存一批图片；整批超限报错，单文件非图片记入 rejected
func (s *WizardService) StageImages(id string, files []wizard.IncomingFile) ([]wizard.FileError, *wizard.Snapshot, error) {
	ws, err := s.store.Get(id)
	if err != nil {
		return nil, nil, err
	}
	rejected, err := ws.StageImages(files)
	if err != nil {
		return nil, nil, err
	}
	return rejected, ws.Snapshot(), nil
}

// UnstageImage 移除暂存图片
func (s *WizardService) UnstageImage(id string, index int) (*wizard.Snapshot, error) {
	ws, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ws.UnstageImage(index); err != nil {
		return nil, err
	}
	return ws.Snapshot(), nil
}

// MarkImageForDeletion 标记已入库图片待删（提交时才真正删除）
func (s *WizardService) MarkImageForDeletion(id, imageID string) (*wizard.Snapshot, error) {
	ws, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ws.MarkImageForDeletion(imageID); err != nil {
		return nil, err
	}
	return ws.Snapshot(), nil
}

// ==================== 提交 ====================

// Submit 执行提交并落审计
// 成功后销毁会话；失败时会话原样保留，用户修正后可直接重试
func (s *WizardService) Submit(ctx context.Context, id string, remote *estate.Session) (*wizard.Result, error) {
	ws, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	snap := ws.Snapshot()
	started := time.Now()

	result, err := s.orch.Submit(ctx, ws, remote)
	costMs := time.Since(started).Milliseconds()

	s.recordSubmission(ctx, snap, remote, result, err, costMs)

	if err != nil {
		return nil, err
	}

	s.store.Delete(id)
	return result, nil
}

// recordSubmission 提交审计落库，尽力而为
func (s *WizardService) recordSubmission(ctx context.Context, snap *wizard.Snapshot, remote *estate.Session, result *wizard.Result, submitErr error, costMs int64) {
	if s.logs == nil {
		return
	}

	mode := "create"
	if snap.IsEdit {
		mode = "edit"
	}

	row := &model.SubmissionLog{
		SessionID:    snap.ID,
		RemoteEmail:  remote.Email,
		Mode:         mode,
		PropertyType: string(snap.Form.PropertyType),
		Slug:         snap.Form.PropertyType.Slug(),
		PropertyID:   snap.EditPropertyID,
		CostMs:       costMs,
	}

	if submitErr != nil {
		row.Outcome = model.SubmissionFailed
		row.ErrorMsg = submitErr.Error()
		// 校验类失败不值得占审计表
		var ve *wizard.ValidationError
		if errors.As(submitErr, &ve) {
			return
		}
	} else {
		row.Outcome = model.SubmissionOK
		row.Warnings = result.Warnings
		row.ImageKeys = result.ImageKeys
		row.DeletedIDs = result.DeletedIDs
		if result.Property != nil {
			row.PropertyID = result.Property.ID
		}
		if data, err := json.Marshal(result.Payload); err == nil {
			row.Payload = data
		}
	}

	if err := s.logs.Create(ctx, row); err != nil {
		log.Printf("[Wizard] 提交审计落库失败 session=%s: %v", snap.ID, err)
	}
}

// ListSubmissions 审计查询（后台用）
func (s *WizardService) ListSubmissions(ctx context.Context, filter repository.SubmissionLogFilter) ([]model.SubmissionLog, int64, error) {
	if s.logs == nil {
		return nil, 0, errors.New("submission log repository not configured")
	}
	return s.logs.List(ctx, filter)
}
