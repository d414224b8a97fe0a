package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username        string `json:"username"         binding:"required,max=50"`
	Password        string `json:"password"         binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ResetPasswordRequest 找回密码请求（凭用户名直接重置）
type ResetPasswordRequest struct {
	Username        string `json:"username"         binding:"required,max=50"`
	NewPassword     string `json:"new_password"     binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// TokenResponse 登录成功响应
// Reminders 为截至昨天仍未完成的工作，前端应以阻断式提醒展示
type TokenResponse struct {
	Token     string               `json:"token"`
	ExpiresIn int                  `json:"expires_in"` // 有效期（秒）
	Username  string               `json:"username"`
	Reminders []WorkRecordResponse `json:"reminders"`
}

// CurrentUserResponse 当前登录用户（GET /auth/me）
type CurrentUserResponse struct {
	Username      string `json:"username"`
	LastLoginDate string `json:"last_login_date,omitempty"`
}
