package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateFileKey(t *testing.T) {
	key := GenerateFileKey("property-images", "photo.png")
	if !strings.HasPrefix(key, "property-images/") {
		t.Errorf("key = %q", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("扩展名未保留: %q", key)
	}

	// 无扩展名默认 .jpg
	if key := GenerateFileKey("f", "photo"); !strings.HasSuffix(key, ".jpg") {
		t.Errorf("默认扩展名 = %q", key)
	}

	// 同名文件生成不同 key
	if GenerateFileKey("f", "a.png") == GenerateFileKey("f", "a.png") {
		t.Error("key 应不可预测")
	}
}

func TestIsImageContentType(t *testing.T) {
	if !IsImageContentType("image/png", nil) {
		t.Error("image/png 应判为图片")
	}
	if IsImageContentType("application/pdf", []byte{0x89, 0x50, 0x4E, 0x47}) {
		t.Error("声明非图片时不做嗅探")
	}

	// 声明缺失退回字节嗅探
	pngMagic := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	if !IsImageContentType("", pngMagic) {
		t.Error("PNG 魔数应判为图片")
	}
	if IsImageContentType("", []byte("%PDF-1.4")) {
		t.Error("PDF 字节不应判为图片")
	}
}

func TestDataURL(t *testing.T) {
	url := DataURL("image/png", []byte{1, 2, 3})
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("data URL = %q", url)
	}
}

func TestCacheLifecycle(t *testing.T) {
	SetCache("test:k", "v", time.Minute)
	if v, ok := GetCache("test:k"); !ok || v != "v" {
		t.Errorf("GetCache = %v, %v", v, ok)
	}

	DeleteCache("test:k")
	if _, ok := GetCache("test:k"); ok {
		t.Error("删除后仍可命中")
	}

	if _, ok := GetCache("test:missing"); ok {
		t.Error("不存在的键不应命中")
	}
}
