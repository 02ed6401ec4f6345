package model

import (
	"time"
)

// UserModel 用户模型
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string `json:"username" gorm:"size:80;uniqueIndex;not null" binding:"required"`
	Email        string `json:"email" gorm:"size:120;uniqueIndex;not null" binding:"required"`
	PasswordHash string `json:"-" gorm:"size:256;not null"`

	// 角色
	Role Role `json:"role" gorm:"size:20;default:'donor'"`
}

// Role 用户角色
type Role string

const (
	RoleDonor Role = "donor" // 捐款人
	RoleAdmin Role = "admin" // 管理员
)

// Valid 角色是否为合法枚举值
func (r Role) Valid() bool {
	return r == RoleDonor || r == RoleAdmin
}

// IsAdmin 是否为管理员
func (u *UserModel) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "user"
}
