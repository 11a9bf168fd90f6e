package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shorturl-go/internal/auth"
	"shorturl-go/internal/dto"
	"shorturl-go/internal/middleware"
	"shorturl-go/internal/service"
)

// UserHandler 用户相关的路由处理
type UserHandler struct {
	auth *service.AuthService
}

func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// ListUsers 查询全部用户 ID（GET /v1/user/，仅用于测试目的的公开路由）
func (h *UserHandler) ListUsers(c *gin.Context) {
	ids, err := h.auth.ListUserIDs(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// Profile 返回当前令牌携带的用户信息（GET /v1/user/profile）
func (h *UserHandler) Profile(c *gin.Context) {
	claims, ok := c.MustGet(middleware.ContextClaimsKey).(*auth.Claims)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, claims)
}

// Register 用户注册（POST /v1/user/register）
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(bindingError(err))
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		zap.L().Warn("User registration failed",
			zap.Error(err),
			zap.String("username", req.Username),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Login 用户登录（POST /v1/user/login）
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(bindingError(err))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
