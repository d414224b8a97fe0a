package model

import "time"

// User 用户表 — 对应 users
// 无角色模型：任何已登录用户都可执行全部管理操作
type User struct {
	UserID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username      string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash  string     `gorm:"type:varchar(255);not null"                     json:"-"`
	LastLoginDate *time.Time `gorm:"type:date"                                      json:"last_login_date,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
