package model

import (
	"time"
)

// DonationModel 捐款记录
type DonationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId     int64  `json:"user_id" gorm:"not null;index"`
	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	Amount     int64  `json:"amount" gorm:"not null"`
	Message    string `json:"message" gorm:"type:text"`
}

// TableName 自定义表名
func (DonationModel) TableName() string {
	return "donation"
}
