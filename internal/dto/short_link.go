package dto

import (
	"time"

	"shorturl-go/pkg/utils"
)

// CreateShortLinkRequest 用于创建短链的请求参数
type CreateShortLinkRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required,url"` // Gin 内置 URL 校验
	ShortURL    string `json:"shortUrl" binding:"required,max=32"`
	Description string `json:"description"`
	ExpireDay   int    `json:"expireDay" binding:"required,gt=0"`
}

// Validate 自定义验证逻辑
func (r *CreateShortLinkRequest) Validate() error {
	// 1. 复用公共的 URL 校验逻辑
	if err := utils.ValidateTargetURL(r.OriginalURL); err != nil {
		return err
	}

	// 2. 调用独立的 ShortCode 校验方法
	if err := utils.ValidateShortCode(r.ShortURL); err != nil {
		return err
	}

	return nil
}

// DeleteShortLinkRequest 用于删除短链的请求参数
type DeleteShortLinkRequest struct {
	ID string `json:"id" binding:"required,uuid"`
}

// CreateShortLinkResponse mirrors the columns the original creation
// statement returned: id, original URL and short code.
type CreateShortLinkResponse struct {
	ID          string `json:"id"`
	OriginalURL string `json:"originalUrl"`
	ShortURL    string `json:"shortUrl"`
}

// OwnedShortLink is a link row joined with its owner's username, as
// served by the inventory listing.
type OwnedShortLink struct {
	ID          string    `json:"id"`
	OriginalURL string    `json:"originalUrl"`
	ShortCode   string    `json:"shortUrl"`
	Description string    `json:"description,omitempty"`
	AuthorID    string    `json:"authorId"`
	ExpireAt    time.Time `json:"expireAt"`
	Visits      int64     `json:"visits"`
	CreatedAt   time.Time `json:"createdAt"`
	Username    string    `json:"username"`
}
