package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shorturl-go/internal/apperrors"
	"shorturl-go/internal/auth"
	"shorturl-go/internal/dto"
	"shorturl-go/internal/model"
)

// AuthService 负责用户注册、登录与令牌签发。All collaborators come in
// through the constructor.
type AuthService struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
	tokens *auth.TokenMaker
	logger *zap.Logger
}

func NewAuthService(db *gorm.DB, hasher auth.PasswordHasher, tokens *auth.TokenMaker, logger *zap.Logger) *AuthService {
	return &AuthService{
		db:     db,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register 创建用户并返回签发的令牌
func (s *AuthService) Register(ctx context.Context, req dto.RegisterUserRequest) (string, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return "", apperrors.InvalidRequestErrorDefault()
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return "", apperrors.SystemErrorDefault()
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}

	// 唯一索引负责查重，插入冲突即说明用户名或邮箱已被占用
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.ConflictError("error.user_exists")
		}
		s.logger.Error("创建用户失败", zap.String("username", req.Username), zap.Error(err))
		return "", apperrors.SystemErrorDefault()
	}

	token, err := s.tokens.CreateToken(user.ID)
	if err != nil {
		s.logger.Error("签发令牌失败", zap.String("user_id", user.ID), zap.Error(err))
		return "", apperrors.SystemErrorDefault()
	}
	return token, nil
}

// Login 校验用户凭证并返回签发的令牌。缺少字段、用户不存在、密码不匹配
// 均返回同一个错误，避免用户名枚举。
func (s *AuthService) Login(ctx context.Context, req dto.LoginUserRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", apperrors.AuthError()
	}

	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.AuthError()
		}
		s.logger.Error("查询用户失败", zap.String("username", req.Username), zap.Error(err))
		return "", apperrors.SystemErrorDefault()
	}

	if err := s.hasher.Compare(user.Password, req.Password); err != nil {
		return "", apperrors.AuthError()
	}

	token, err := s.tokens.CreateToken(user.ID)
	if err != nil {
		s.logger.Error("签发令牌失败", zap.String("user_id", user.ID), zap.Error(err))
		return "", apperrors.SystemErrorDefault()
	}
	return token, nil
}

// ListUserIDs 返回全部用户 ID
func (s *AuthService) ListUserIDs(ctx context.Context) ([]dto.UserID, error) {
	ids := make([]dto.UserID, 0)
	if err := s.db.WithContext(ctx).Model(&model.User{}).Select("id").Find(&ids).Error; err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return ids, nil
}
