package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"globassets_dev_v1_202608/internal/wizard"
	"globassets_dev_v1_202608/pkg/estate"
	"globassets_dev_v1_202608/pkg/utils"
)

// ==================== 接口定义 ====================

// StorageProvider 图片存储提供者
// UploadBatch 的语义与提交编排要求一致：全部成功返回按下标对齐的 key，
// 任何一张失败则整体失败、不返回半批结果
type StorageProvider interface {
	wizard.Uploader

	// UploadSingle 上传单文件（头像/Logo 用），返回存储 key
	UploadSingle(ctx context.Context, sess *estate.Session, file wizard.StagedImage, folder string) (string, error)
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "presigned" | "s3"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 自定义端点（S3 兼容存储用）
	BasePath  string // 基础路径前缀
}

// ==================== 工厂方法 ====================

// NewStorageProvider 按配置创建存储提供者
// 默认走远端预签名通道；部署方自带桶时可切 s3 直传
func NewStorageProvider(cfg *StorageConfig, api *estate.Client) (StorageProvider, error) {
	switch cfg.Provider {
	case "", "presigned":
		return NewPresignedStorage(api), nil
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== 预签名直传（默认） ====================

// PresignedStorage 远端预签名通道
// 先向 Globassets 申请整批槽位，再并发 PUT 到各自的预签名地址
type PresignedStorage struct {
	api *estate.Client
}

// NewPresignedStorage 创建预签名存储
func NewPresignedStorage(api *estate.Client) *PresignedStorage {
	return &PresignedStorage{api: api}
}

// UploadBatch 整批上传，任一失败则整体失败
func (p *PresignedStorage) UploadBatch(ctx context.Context, sess *estate.Session, files []wizard.StagedImage, folder string) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	reqs := make([]estate.PresignFileReq, len(files))
	for i, f := range files {
		reqs[i] = estate.PresignFileReq{FileName: f.FileName, FileType: f.ContentType}
	}

	slots, err := p.api.GeneratePresignedSlots(ctx, sess, reqs, folder)
	if err != nil {
		return nil, err
	}

	// 并发直传，收集第一个错误即可判定整批失败
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range files {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := p.api.UploadToSlot(ctx, slots[idx].UploadURL, files[idx].Data, files[idx].ContentType); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("upload %s failed: %w", files[idx].FileName, err)
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	keys := make([]string, len(slots))
	for i, slot := range slots {
		keys[i] = slot.Key
	}
	return keys, nil
}

// UploadSingle 单文件走同一条预签名通道
func (p *PresignedStorage) UploadSingle(ctx context.Context, sess *estate.Session, file wizard.StagedImage, folder string) (string, error) {
	keys, err := p.UploadBatch(ctx, sess, []wizard.StagedImage{file}, folder)
	if err != nil {
		return "", err
	}
	return keys[0], nil
}

// ==================== S3 直传 ====================

// S3Storage 自带桶直传，绕开远端预签名接口
type S3Storage struct {
	client   *s3.Client
	bucket   string
	basePath string
}

func NewS3Storage(cfg *StorageConfig) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		basePath: cfg.BasePath,
	}, nil
}

// UploadBatch 并发 PutObject，任一失败整体失败
// 直传模式不依赖远端会话，sess 参数仅为满足统一接口
func (s *S3Storage) UploadBatch(ctx context.Context, _ *estate.Session, files []wizard.StagedImage, folder string) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	prefix := folder
	if s.basePath != "" {
		prefix = s.basePath + "/" + folder
	}

	keys := make([]string, len(files))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range files {
		keys[i] = utils.GenerateFileKey(prefix, files[i].FileName)
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
				Bucket:      aws.String(s.bucket),
				Key:         aws.String(keys[idx]),
				Body:        bytes.NewReader(files[idx].Data),
				ContentType: aws.String(files[idx].ContentType),
			})
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("上传S3失败 %s: %v", files[idx].FileName, err)
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return keys, nil
}

// UploadSingle 单文件直传
func (s *S3Storage) UploadSingle(ctx context.Context, sess *estate.Session, file wizard.StagedImage, folder string) (string, error) {
	keys, err := s.UploadBatch(ctx, sess, []wizard.StagedImage{file}, folder)
	if err != nil {
		return "", err
	}
	return keys[0], nil
}
