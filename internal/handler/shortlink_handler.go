package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"shorturl-go/internal/apperrors"
	"shorturl-go/internal/dto"
	"shorturl-go/internal/middleware"
	"shorturl-go/internal/service"
)

// ShortLinkHandler 短链相关的路由处理
type ShortLinkHandler struct {
	links *service.ShortLinkService
}

func NewShortLinkHandler(links *service.ShortLinkService) *ShortLinkHandler {
	return &ShortLinkHandler{links: links}
}

// Resolve 按 short code 查询短链并记录一次访问（GET /v1/url/:short）
func (h *ShortLinkHandler) Resolve(c *gin.Context) {
	shortCode := c.Param("short")

	link, err := h.links.FindByShort(c.Request.Context(), shortCode)
	if err != nil {
		_ = c.Error(err)
		return
	}

	counted, err := h.links.Visit(c.Request.Context(), link.ID)
	if err != nil {
		// 计数失败不影响本次查询结果
		zap.L().Warn("Visit count update failed",
			zap.Error(err),
			zap.String("id", link.ID),
		)
	}
	if counted {
		// 响应里带上刚记录的这一次访问
		link.Visits++
	}

	c.JSON(http.StatusOK, link)
}

// Create 创建短链（POST /v1/url/create）
func (h *ShortLinkHandler) Create(c *gin.Context) {
	var req dto.CreateShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(bindingError(err))
		return
	}

	if err := req.Validate(); err != nil {
		_ = c.Error(apperrors.InvalidRequestError(err.Error()))
		return
	}

	// 所有者取自令牌，不信任请求体
	authorID := c.GetString(middleware.ContextUserIDKey)

	resp, err := h.links.Create(c.Request.Context(), req, authorID)
	if err != nil {
		zap.L().Warn("Short link creation failed",
			zap.Error(err),
			zap.String("short_code", req.ShortURL),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete 删除短链（POST /v1/url/delete），id 与请求者必须同时匹配
func (h *ShortLinkHandler) Delete(c *gin.Context) {
	var req dto.DeleteShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(bindingError(err))
		return
	}

	authorID := c.GetString(middleware.ContextUserIDKey)

	if err := h.links.Delete(c.Request.Context(), req.ID, authorID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK})
}

// Inventory 查询当前用户名下的短链（GET /v1/url/inventory）
func (h *ShortLinkHandler) Inventory(c *gin.Context) {
	authorID := c.GetString(middleware.ContextUserIDKey)

	links, err := h.links.FindByAuthor(c.Request.Context(), authorID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, links)
}

// bindingError 把 validator 的字段错误压成一条可读的 message。
func bindingError(err error) *apperrors.AppError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		msgs := make([]string, 0, len(validationErrs))
		for _, e := range validationErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", e.Field(), e.Tag()))
		}
		return apperrors.InvalidRequestError(strings.Join(msgs, "; "))
	}
	return apperrors.InvalidRequestErrorDefault()
}
