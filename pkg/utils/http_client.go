package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewAPIClient 创建一个配置好超时和调试模式的 Resty 客户端
// 它是全系统统一的网络请求入口
func NewAPIClient(baseURL string, debug bool) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetDebug(debug).                                 // 全局调试开关 (上线可改为 false 或由配置控制)
		SetTimeout(20*time.Second).                      // 全局默认超时 (列表接口可能比较慢，给 20s)
		SetHeader("User-Agent", "Globassets-Go-App/1.0") // 标准 UA

	return client
}
