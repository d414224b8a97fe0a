package dto

// ── 用户管理 DTO ──

// CreateUserRequest 管理页添加用户
type CreateUserRequest struct {
	Username        string `json:"username"         binding:"required,max=50"`
	Password        string `json:"password"         binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ChangePasswordRequest 修改指定用户密码
type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password"     binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	LastLoginDate string `json:"last_login_date,omitempty"`
	CreatedAt     string `json:"created_at"`
}
