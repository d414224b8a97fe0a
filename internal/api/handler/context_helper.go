package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lixinchen-031016/work-record/internal/api/middleware"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

// MustGetUsername 从 Gin 上下文中安全提取当前登录用户名。
// 如果 JWT 中间件未正确注入 username，写入 401 响应并返回 false。
// 调用方应在 ok=false 时直接 return。
func MustGetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextKeyUsername)
	if !exists {
		response.Unauthorized(c, "未登录或登录已过期")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "未登录或登录已过期")
		return "", false
	}
	return s, true
}

// bindFailed 绑定失败时的统一响应；请求体超限交给 BodyLimit 中间件返回 413
func bindFailed(c *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		_ = c.Error(err)
		return
	}
	response.InvalidParams(c, err)
}
