package utils

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateFileKey 生成对象存储 key：<folder>/<日期>/<uuid><扩展名>
func GenerateFileKey(folder, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	if folder != "" {
		return fmt.Sprintf("%s/%s/%s", folder, datePath, newFilename)
	}
	return fmt.Sprintf("%s/%s", datePath, newFilename)
}

// IsImageContentType 判断声明的 Content-Type 是否为图片
// 声明缺失时退回字节嗅探
func IsImageContentType(contentType string, data []byte) bool {
	if contentType != "" {
		return strings.HasPrefix(contentType, "image/")
	}
	return strings.HasPrefix(http.DetectContentType(data), "image/")
}

// DataURL 把图片字节编码为本地预览用的 data URL
func DataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
