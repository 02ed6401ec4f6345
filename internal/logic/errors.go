package logic

import (
	"errors"
)

// 业务错误，handler层据此映射HTTP状态码
var (
	ErrValidation         = errors.New("参数校验失败")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrDuplicateUsername  = errors.New("用户名已被使用")
	ErrDuplicateEmail     = errors.New("邮箱已被注册")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrCampaignNotFound   = errors.New("活动不存在")
	ErrDonationNotFound   = errors.New("捐款记录不存在")
	ErrCampaignInactive   = errors.New("活动已停止，无法接受捐款")
	ErrForbidden          = errors.New("没有权限执行该操作")
	ErrSelfDelete         = errors.New("不能删除自己的账号")
)
