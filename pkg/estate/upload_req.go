package estate

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// ==================== 预签名上传接口 ====================

// GeneratePresignedSlots 批量申请上传槽位
// files 与返回的槽位按下标对齐；folderName 为远端存储的目录标签
func (c *Client) GeneratePresignedSlots(ctx context.Context, sess *Session, files []PresignFileReq, folderName string) ([]PresignSlot, error) {
	body := map[string]interface{}{
		"files":       files,
		"folder_name": folderName,
	}
	var slots []PresignSlot
	if err := c.sendJSON(ctx, sess, http.MethodPost, "/api/v1/generate_presigned_url", body, &slots, "Failed to generate upload URL"); err != nil {
		return nil, err
	}
	if len(slots) != len(files) {
		return nil, fmt.Errorf("presign slot count mismatch: want %d, got %d", len(files), len(slots))
	}
	return slots, nil
}

// UploadToSlot 把文件字节直传到预签名 URL
// 预签名地址自带鉴权，不能附加 Bearer 头；任何非 2xx 都按硬失败处理
func (c *Client) UploadToSlot(ctx context.Context, uploadURL string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build upload request failed: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := c.http.GetClient().Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload failed with status: %d", resp.StatusCode)
	}
	return nil
}

// SaveProfileImage 上传完成后把头像/logo 的 key 回写远端
func (c *Client) SaveProfileImage(ctx context.Context, sess *Session, key string) error {
	req := c.r(ctx, sess).SetQueryParam("key", key)
	resp, err := req.Post("/api/v1/users/save-profile-image/")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return wrapError(resp, "Failed to save profile image")
	}
	return nil
}
