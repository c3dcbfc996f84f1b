package service

import (
	"context"
	"encoding/json"

	"globassets_dev_v1_202608/internal/wizard"
	"globassets_dev_v1_202608/pkg/estate"
)

// ==================== 主页服务 ====================

// 头像/Logo 的存储目录标签
const profileImageFolder = "profile-images"

// ProfileService 个人/公司主页与仪表盘
// 账号类型决定走哪套主页接口，调用方不用关心
type ProfileService struct {
	api     *estate.Client
	storage StorageProvider
}

// NewProfileService 创建主页服务
func NewProfileService(api *estate.Client, storage StorageProvider) *ProfileService {
	return &ProfileService{api: api, storage: storage}
}

// ==================== 当前账号主页 ====================

// MyProfile 当前账号主页，按账号类型返回个人或公司结构
func (s *ProfileService) MyProfile(ctx context.Context, sess *estate.Session) (interface{}, error) {
	if sess.IsCompany() {
		return s.api.GetCompanyProfile(ctx, sess, "")
	}
	return s.api.GetPersonalProfile(ctx, sess, "")
}

// UpdateMyProfile 部分更新当前账号主页
func (s *ProfileService) UpdateMyProfile(ctx context.Context, sess *estate.Session, profileID string, form map[string]interface{}) (interface{}, error) {
	if sess.IsCompany() {
		return s.api.UpdateCompanyProfile(ctx, sess, profileID, form)
	}
	return s.api.UpdatePersonalProfile(ctx, sess, profileID, form)
}

// CreateMyProfile 创建当前账号主页
func (s *ProfileService) CreateMyProfile(ctx context.Context, sess *estate.Session, form map[string]interface{}) (interface{}, error) {
	if sess.IsCompany() {
		return s.api.CreateCompanyProfile(ctx, sess, form)
	}
	return s.api.CreatePersonalProfile(ctx, sess, form)
}

// UploadProfileImage 上传头像/Logo 并回写远端，返回存储 key
func (s *ProfileService) UploadProfileImage(ctx context.Context, sess *estate.Session, file wizard.IncomingFile) (string, error) {
	staged := wizard.StagedImage{
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Data:        file.Data,
	}
	key, err := s.storage.UploadSingle(ctx, sess, staged, profileImageFolder)
	if err != nil {
		return "", err
	}
	if err := s.api.SaveProfileImage(ctx, sess, key); err != nil {
		return "", err
	}
	return key, nil
}

// ==================== 名录与公开主页 ====================

// Directory 按州筛选主页名录；companies 决定个人/公司名录
func (s *ProfileService) Directory(ctx context.Context, sess *estate.Session, stateID string, companies bool) (interface{}, error) {
	if companies {
		return s.api.ListCompanyProfiles(ctx, sess, stateID)
	}
	return s.api.ListPersonalProfiles(ctx, sess, stateID)
}

// PublicProfile 公开主页，结构由远端决定、原样透传
func (s *ProfileService) PublicProfile(ctx context.Context, sess *estate.Session, username string) (json.RawMessage, error) {
	return s.api.GetPublicProfile(ctx, sess, username)
}

// ==================== 仪表盘 ====================

// Dashboard 个人仪表盘总览
func (s *ProfileService) Dashboard(ctx context.Context, sess *estate.Session) (*estate.DashboardOverview, error) {
	return s.api.GetDashboardOverview(ctx, sess)
}
