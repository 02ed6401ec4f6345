package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sasamaylina/responsi-paw/internal/auth"
	"github.com/sasamaylina/responsi-paw/internal/config"
	"github.com/sasamaylina/responsi-paw/internal/logic"
	"gorm.io/gorm"
)

type AuthHandler struct {
	userLogic *logic.UserLogic
	authCfg   config.AuthConfig
}

func NewAuthHandler(db *gorm.DB, authCfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		userLogic: logic.NewUserLogic(db),
		authCfg:   authCfg,
	}
}

// Register 注册新账号
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Password != req.ConfirmPassword {
		ErrorResponse(c, http.StatusBadRequest, "两次输入的密码不一致")
		return
	}

	user, err := h.userLogic.Register(req.Username, req.Email, req.Password)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "注册成功，请登录", ToUserResponse(user))
}

// Login 登录，签发JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userLogic.Authenticate(req.Username, req.Password)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	ttl := time.Duration(h.authCfg.TokenTTLHours) * time.Hour
	token, err := auth.GenerateToken(h.authCfg.JWTSecret, ttl, user)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, fmt.Sprintf("欢迎回来，%s", user.Username), gin.H{
		"token": token,
		"user":  ToUserResponse(user),
	})
}

// Logout 退出登录。token无状态，由客户端丢弃。
func (h *AuthHandler) Logout(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "已退出登录", nil)
}
