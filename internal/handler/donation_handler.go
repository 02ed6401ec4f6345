package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sasamaylina/responsi-paw/internal/logic"
	"github.com/sasamaylina/responsi-paw/internal/middleware"
	"gorm.io/gorm"
)

type DonationHandler struct {
	donationLogic *logic.DonationLogic
	campaignLogic *logic.CampaignLogic
}

func NewDonationHandler(db *gorm.DB, campaignLogic *logic.CampaignLogic, minAmount int64) *DonationHandler {
	return &DonationHandler{
		donationLogic: logic.NewDonationLogic(db, minAmount),
		campaignLogic: campaignLogic,
	}
}

// Donate 向活动捐款
func (h *DonationHandler) Donate(c *gin.Context) {
	campaignId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userId := middleware.CurrentUserId(c)
	donation, err := h.donationLogic.Donate(userId, campaignId, req.Amount, req.Message)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated,
		fmt.Sprintf("感谢您的捐款！金额 %d 已记录", donation.Amount),
		ToDonationResponse(donation))
}

// GetMyDonations 获取当前用户的捐款历史和累计金额
func (h *DonationHandler) GetMyDonations(c *gin.Context) {
	userId := middleware.CurrentUserId(c)

	donations, err := h.donationLogic.GetUserDonations(userId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	total, err := h.donationLogic.GetTotalDonated(userId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"donations":    ToDonationResponseList(donations),
		"totalDonated": total,
	})
}

// UpdateDonation 修改自己的捐款
func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐款ID")
		return
	}

	var req UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	donation, err := h.donationLogic.EditDonation(id, middleware.CurrentUserId(c), req.Amount, req.Message)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐款更新成功", ToDonationResponse(donation))
}

// DeleteDonation 删除自己的捐款
func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐款ID")
		return
	}

	if err := h.donationLogic.DeleteDonation(id, middleware.CurrentUserId(c)); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐款已删除", nil)
}

// GetAllDonations 获取全部捐款记录（管理端）
func (h *DonationHandler) GetAllDonations(c *gin.Context) {
	donations, err := h.donationLogic.GetAllDonations()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", ToDonationResponseList(donations))
}

// DonorDashboard 捐款人首页：进行中的活动、最近捐款和累计金额
func (h *DonationHandler) DonorDashboard(c *gin.Context) {
	userId := middleware.CurrentUserId(c)

	campaigns, err := h.campaignLogic.GetCampaigns(true)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	donations, err := h.donationLogic.GetUserDonations(userId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	if len(donations) > 5 {
		donations = donations[:5]
	}

	total, err := h.donationLogic.GetTotalDonated(userId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", DonorDashboardResponse{
		Campaigns:    ToCampaignResponseList(campaigns),
		MyDonations:  ToDonationResponseList(donations),
		TotalDonated: total,
	})
}
