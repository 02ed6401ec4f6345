package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sasamaylina/responsi-paw/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserLogic 用户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// Register 注册新用户，角色固定为捐款人
func (u *UserLogic) Register(username, email, password string) (*model.UserModel, error) {
	if err := u.validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	// 检查用户名是否已被使用
	var count int64
	if err := u.db.Model(&model.UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("查询用户名失败: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	// 检查邮箱是否已被注册
	if err := u.db.Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("查询邮箱失败: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	// 密码只保存bcrypt哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &model.UserModel{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleDonor,
	}
	if err := u.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return user, nil
}

// Authenticate 校验用户名和密码
func (u *UserLogic) Authenticate(username, password string) (*model.UserModel, error) {
	var user model.UserModel
	if err := u.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 统一返回认证失败，避免泄露用户是否存在
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUsers 获取用户列表
func (u *UserLogic) GetUsers() ([]model.UserModel, error) {
	var users []model.UserModel
	if err := u.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("获取用户列表失败: %w", err)
	}
	return users, nil
}

// GetUser 获取用户详情
func (u *UserLogic) GetUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := u.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("获取用户详情失败: %w", err)
	}
	return &user, nil
}

// UpdateUser 更新用户名、邮箱和角色
func (u *UserLogic) UpdateUser(id int64, username, email string, role model.Role) (*model.UserModel, error) {
	user, err := u.GetUser(id)
	if err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: 用户名和邮箱不能为空", ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: 非法的角色 %q", ErrValidation, role)
	}

	// 用户名或邮箱变更时检查唯一性
	var count int64
	if username != user.Username {
		if err := u.db.Model(&model.UserModel{}).Where("username = ? AND id <> ?", username, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("查询用户名失败: %w", err)
		}
		if count > 0 {
			return nil, ErrDuplicateUsername
		}
	}
	if email != user.Email {
		if err := u.db.Model(&model.UserModel{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("查询邮箱失败: %w", err)
		}
		if count > 0 {
			return nil, ErrDuplicateEmail
		}
	}

	user.Username = username
	user.Email = email
	user.Role = role
	if err := u.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("更新用户失败: %w", err)
	}

	return user, nil
}

// DeleteUser 删除用户及其全部捐款记录。
// 管理员不能删除自己的账号。删除捐款前先把金额从对应活动的
// 已筹金额中扣除，保持账本一致，整个过程在一个事务内完成。
func (u *UserLogic) DeleteUser(id, requestingUserId int64) error {
	if id == requestingUserId {
		return ErrSelfDelete
	}

	if _, err := u.GetUser(id); err != nil {
		return err
	}

	return u.db.Transaction(func(tx *gorm.DB) error {
		// 按活动汇总该用户的捐款金额
		var sums []struct {
			CampaignId int64
			Total      int64
		}
		if err := tx.Model(&model.DonationModel{}).
			Select("campaign_id, COALESCE(SUM(amount), 0) AS total").
			Where("user_id = ?", id).
			Group("campaign_id").
			Scan(&sums).Error; err != nil {
			return fmt.Errorf("汇总用户捐款失败: %w", err)
		}

		// 从各活动的已筹金额中扣除
		for _, s := range sums {
			if err := tx.Model(&model.CampaignModel{}).
				Where("id = ?", s.CampaignId).
				Update("collected_amount", gorm.Expr("collected_amount - ?", s.Total)).Error; err != nil {
				return fmt.Errorf("更新活动已筹金额失败: %w", err)
			}
		}

		// 删除捐款记录，再删除用户
		if err := tx.Where("user_id = ?", id).Delete(&model.DonationModel{}).Error; err != nil {
			return fmt.Errorf("删除用户捐款记录失败: %w", err)
		}
		if err := tx.Delete(&model.UserModel{}, id).Error; err != nil {
			return fmt.Errorf("删除用户失败: %w", err)
		}
		return nil
	})
}

// validateRegistration 校验注册数据
func (u *UserLogic) validateRegistration(username, email, password string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 80 {
		return fmt.Errorf("%w: 用户名长度必须在3到80个字符之间", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: 邮箱格式不正确", ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: 密码长度不能少于6个字符", ErrValidation)
	}
	return nil
}
