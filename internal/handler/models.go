package handler

import (
	"time"

	"github.com/sasamaylina/responsi-paw/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 认证相关请求模型

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest 管理员更新用户请求
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// DonateRequest 捐款请求
type DonateRequest struct {
	Amount  int64  `json:"amount" binding:"required"`
	Message string `json:"message"`
}

// UpdateDonationRequest 修改捐款请求
type UpdateDonationRequest struct {
	Amount  int64  `json:"amount" binding:"required"`
	Message string `json:"message"`
}

// 响应模型

// UserResponse 用户响应模型
type UserResponse struct {
	Id        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CampaignResponse 活动响应模型
type CampaignResponse struct {
	Id              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	TargetAmount    int64     `json:"targetAmount"`
	CollectedAmount int64     `json:"collectedAmount"`
	Progress        float64   `json:"progress"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DonationResponse 捐款响应模型
type DonationResponse struct {
	Id         int64     `json:"id"`
	UserId     int64     `json:"userId"`
	CampaignId int64     `json:"campaignId"`
	Amount     int64     `json:"amount"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DonorDashboardResponse 捐款人首页响应
type DonorDashboardResponse struct {
	Campaigns    []CampaignResponse `json:"campaigns"`
	MyDonations  []DonationResponse `json:"myDonations"`
	TotalDonated int64              `json:"totalDonated"`
}

// 转换函数

// ToUserResponse 将用户数据库模型转换为响应模型
func ToUserResponse(user *model.UserModel) UserResponse {
	return UserResponse{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponseList 将用户数据库模型列表转换为响应模型列表
func ToUserResponseList(users []model.UserModel) []UserResponse {
	result := make([]UserResponse, len(users))
	for i, user := range users {
		result[i] = ToUserResponse(&user)
	}
	return result
}

// ToCampaignResponse 将活动数据库模型转换为响应模型
func ToCampaignResponse(campaign *model.CampaignModel) CampaignResponse {
	return CampaignResponse{
		Id:              campaign.Id,
		Title:           campaign.Title,
		Description:     campaign.Description,
		Image:           campaign.Image,
		TargetAmount:    campaign.TargetAmount,
		CollectedAmount: campaign.CollectedAmount,
		Progress:        campaign.ProgressPercentage(),
		IsActive:        campaign.IsActive,
		CreatedAt:       campaign.CreatedAt,
	}
}

// ToCampaignResponseList 将活动数据库模型列表转换为响应模型列表
func ToCampaignResponseList(campaigns []model.CampaignModel) []CampaignResponse {
	result := make([]CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		result[i] = ToCampaignResponse(&campaign)
	}
	return result
}

// ToDonationResponse 将捐款数据库模型转换为响应模型
func ToDonationResponse(donation *model.DonationModel) DonationResponse {
	return DonationResponse{
		Id:         donation.Id,
		UserId:     donation.UserId,
		CampaignId: donation.CampaignId,
		Amount:     donation.Amount,
		Message:    donation.Message,
		CreatedAt:  donation.CreatedAt,
	}
}

// ToDonationResponseList 将捐款数据库模型列表转换为响应模型列表
func ToDonationResponseList(donations []model.DonationModel) []DonationResponse {
	result := make([]DonationResponse, len(donations))
	for i, donation := range donations {
		result[i] = ToDonationResponse(&donation)
	}
	return result
}
