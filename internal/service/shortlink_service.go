package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shorturl-go/internal/apperrors"
	"shorturl-go/internal/dto"
	"shorturl-go/internal/model"
)

// ShortLinkService 负责短链的创建、查询、访问计数与删除。
type ShortLinkService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewShortLinkService(db *gorm.DB, logger *zap.Logger) *ShortLinkService {
	return &ShortLinkService{
		db:     db,
		logger: logger,
	}
}

// Create 创建短链。ExpireAt 按 UTC 计算为当前时间加 N 天。不做
// 先查后插：唯一索引保证并发创建下同一个 short code 至多落库一行。
func (s *ShortLinkService) Create(ctx context.Context, req dto.CreateShortLinkRequest, authorID string) (*dto.CreateShortLinkResponse, error) {
	expireAt := time.Now().UTC().AddDate(0, 0, req.ExpireDay)

	link := &model.ShortLink{
		OriginalURL: req.OriginalURL,
		ShortCode:   req.ShortURL,
		Description: req.Description,
		AuthorID:    authorID,
		ExpireAt:    expireAt,
	}

	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ConflictError("error.shortcode_taken")
		}
		s.logger.Error("创建短链失败", zap.String("short_code", req.ShortURL), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	return &dto.CreateShortLinkResponse{
		ID:          link.ID,
		OriginalURL: link.OriginalURL,
		ShortURL:    link.ShortCode,
	}, nil
}

// FindByShort 按 short code 查询未过期的短链。过期或不存在统一返回
// NotFound，数据库故障单独上报。
func (s *ShortLinkService) FindByShort(ctx context.Context, shortCode string) (*model.ShortLink, error) {
	var link model.ShortLink
	err := s.db.WithContext(ctx).
		Where("short_code = ? AND expire_at > ?", shortCode, time.Now().UTC()).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("error.link_not_found")
		}
		s.logger.Error("查询短链失败", zap.String("short_code", shortCode), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return &link, nil
}

// FindByAuthor 查询用户名下所有未过期的短链，连同所有者用户名，按
// 创建时间升序排列。
func (s *ShortLinkService) FindByAuthor(ctx context.Context, authorID string) ([]dto.OwnedShortLink, error) {
	links := make([]dto.OwnedShortLink, 0)
	err := s.db.WithContext(ctx).
		Table("short_links").
		Select("short_links.id, short_links.original_url, short_links.short_code, short_links.description, short_links.author_id, short_links.expire_at, short_links.visits, short_links.created_at, users.username").
		Joins("JOIN users ON users.id = short_links.author_id").
		Where("short_links.author_id = ? AND short_links.expire_at > ?", authorID, time.Now().UTC()).
		Order("short_links.created_at ASC").
		Scan(&links).Error
	if err != nil {
		s.logger.Error("查询短链列表失败", zap.String("author_id", authorID), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return links, nil
}

// Visit 将访问计数加一。自增在数据库端完成（visits = visits + 1），
// 并发访问不会丢更新；目标不存在时静默跳过。
func (s *ShortLinkService) Visit(ctx context.Context, linkID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.ShortLink{}).
		Where("id = ?", linkID).
		UpdateColumn("visits", gorm.Expr("visits + 1"))
	if res.Error != nil {
		s.logger.Error("更新访问计数失败", zap.String("id", linkID), zap.Error(res.Error))
		return false, apperrors.SystemErrorDefault()
	}
	return res.RowsAffected > 0, nil
}

// Delete 删除短链。id 与所有者必须同时匹配，条件删除一步完成，
// 不给检查和删除之间留窗口。
func (s *ShortLinkService) Delete(ctx context.Context, linkID, authorID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", linkID, authorID).
		Delete(&model.ShortLink{})
	if res.Error != nil {
		s.logger.Error("删除短链失败", zap.String("id", linkID), zap.Error(res.Error))
		return apperrors.SystemErrorDefault()
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundError("error.link_not_found")
	}
	return nil
}
