package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sasamaylina/responsi-paw/internal/logic"
	"github.com/sasamaylina/responsi-paw/internal/model"
	"github.com/sasamaylina/responsi-paw/internal/storage"
	"gorm.io/gorm"
)

type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
	store         storage.ImageStore
}

func NewCampaignHandler(db *gorm.DB, store storage.ImageStore) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: logic.NewCampaignLogic(db, store),
		store:         store,
	}
}

// GetCampaigns 获取全部活动（管理端）
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignLogic.GetCampaigns(false)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", ToCampaignResponseList(campaigns))
}

// GetActiveCampaigns 获取进行中的活动（捐款端）
func (h *CampaignHandler) GetActiveCampaigns(c *gin.Context) {
	campaigns, err := h.campaignLogic.GetCampaigns(true)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", ToCampaignResponseList(campaigns))
}

// GetCampaign 获取活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	campaign, err := h.campaignLogic.GetCampaign(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", ToCampaignResponse(campaign))
}

// CreateCampaign 创建活动，表单提交，封面图片可选
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	campaign, err := h.bindCampaignForm(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// 保存封面图片
	if file, err := c.FormFile("image"); err == nil {
		name, err := h.store.Save(file)
		if err != nil {
			LogicErrorResponse(c, err)
			return
		}
		campaign.Image = name
	}

	if err := h.campaignLogic.CreateCampaign(campaign); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", ToCampaignResponse(campaign))
}

// UpdateCampaign 更新活动，上传新封面时替换旧图
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	updates := make(map[string]interface{})
	if title, ok := c.GetPostForm("title"); ok {
		updates["title"] = title
	}
	if description, ok := c.GetPostForm("description"); ok {
		updates["description"] = description
	}
	if target, ok := c.GetPostForm("target_amount"); ok {
		amount, err := strconv.ParseInt(target, 10, 64)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "目标金额必须是整数")
			return
		}
		updates["target_amount"] = amount
	}
	if active, ok := c.GetPostForm("is_active"); ok {
		updates["is_active"] = parseBool(active)
	}

	if file, err := c.FormFile("image"); err == nil {
		name, err := h.store.Save(file)
		if err != nil {
			LogicErrorResponse(c, err)
			return
		}
		updates["image"] = name
	}

	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "没有要更新的字段")
		return
	}

	campaign, err := h.campaignLogic.UpdateCampaign(id, updates)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动更新成功", ToCampaignResponse(campaign))
}

// DeleteCampaign 删除活动及其捐款记录
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	if err := h.campaignLogic.DeleteCampaign(id); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动已删除", nil)
}

// bindCampaignForm 从表单读取活动字段
func (h *CampaignHandler) bindCampaignForm(c *gin.Context) (*model.CampaignModel, error) {
	target, err := strconv.ParseInt(c.PostForm("target_amount"), 10, 64)
	if err != nil {
		return nil, errors.New("目标金额必须是整数")
	}

	return &model.CampaignModel{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		TargetAmount: target,
		IsActive:     parseBool(c.DefaultPostForm("is_active", "true")),
	}, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
