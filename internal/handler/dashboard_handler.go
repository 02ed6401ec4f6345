package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sasamaylina/responsi-paw/internal/logic"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardLogic *logic.DashboardLogic
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardLogic: logic.NewDashboardLogic(db),
	}
}

// AdminDashboard 管理后台首页统计
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	stats, err := h.dashboardLogic.GetAdminStats()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", stats)
}
