package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shorturl-go/internal/auth"
	i18npkg "shorturl-go/internal/i18n"
	"shorturl-go/internal/middleware"
	"shorturl-go/internal/model"
	"shorturl-go/internal/service"
)

// newTestRouter 按 main 的方式装配路由，数据库换成内存 sqlite。
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存库绑定单个连接，连接一换库就没了
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.ShortLink{}))

	bundle, err := i18npkg.InitI18n([]string{
		"../../i18n/en.toml",
		"../../i18n/zh.toml",
	}, "en")
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(4) // 低 cost，测试不必等 bcrypt
	tokens, err := auth.NewTokenMaker("test-secret")
	require.NoError(t, err)

	authService := service.NewAuthService(db, hasher, tokens, zap.NewNop())
	linkService := service.NewShortLinkService(db, zap.NewNop())
	userHandler := NewUserHandler(authService)
	linkHandler := NewShortLinkHandler(linkService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.I18nMiddleware(bundle))
	r.Use(middleware.GlobalErrorMiddleware())

	authRequired := middleware.AuthMiddleware(tokens)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "Please stop pinging me!")
	})

	user := r.Group("/v1/user")
	{
		user.GET("/", userHandler.ListUsers)
		user.GET("/profile", authRequired, userHandler.Profile)
		user.POST("/login", userHandler.Login)
		user.POST("/register", userHandler.Register)
	}

	url := r.Group("/v1/url")
	{
		url.GET("/:short", linkHandler.Resolve)
		url.POST("/create", authRequired, linkHandler.Create)
		url.POST("/delete", authRequired, linkHandler.Delete)
		url.GET("/inventory", authRequired, linkHandler.Inventory)
	}

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/v1/user/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Please stop pinging me!", w.Body.String())
}

func TestRegisterLoginProfile(t *testing.T) {
	r := newTestRouter(t)

	registerUser(t, r, "alice")

	// 重复注册：409，带翻译后的提示
	w := doJSON(t, r, http.MethodPost, "/v1/user/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Username or email is already registered", body["message"])

	// 参数不合法：邮箱格式错，binding 阶段就拦下
	w = doJSON(t, r, http.MethodPost, "/v1/user/register", "", gin.H{
		"username": "bob",
		"email":    "not-an-email",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 登录拿到新令牌
	w = doJSON(t, r, http.MethodPost, "/v1/user/login", "", gin.H{
		"username": "alice",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// 密码错误：400，统一的凭证错误提示
	w = doJSON(t, r, http.MethodPost, "/v1/user/login", "", gin.H{
		"username": "alice",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Wrong username or password", decodeBody(t, w)["message"])

	// profile 返回令牌里的用户 id
	w = doJSON(t, r, http.MethodGet, "/v1/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["id"])

	// 用户列表是公开路由
	w = doJSON(t, r, http.MethodGet, "/v1/user/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ids []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ids))
	assert.Len(t, ids, 1)
}

func TestShortLinkLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "alice")

	// 创建短链
	w := doJSON(t, r, http.MethodPost, "/v1/url/create", token, gin.H{
		"originalUrl": "https://example.com",
		"shortUrl":    "ex1",
		"expireDay":   1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decodeBody(t, w)
	linkID, _ := created["id"].(string)
	require.NotEmpty(t, linkID)
	assert.Equal(t, "ex1", created["shortUrl"])
	assert.Equal(t, "https://example.com", created["originalUrl"])

	// 解析并计一次访问
	w = doJSON(t, r, http.MethodGet, "/v1/url/ex1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resolved := decodeBody(t, w)
	assert.Equal(t, "https://example.com", resolved["originalUrl"])
	assert.EqualValues(t, 1, resolved["visits"])

	// 清单里带上所有者用户名
	w = doJSON(t, r, http.MethodGet, "/v1/url/inventory", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var inventory []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inventory))
	require.Len(t, inventory, 1)
	assert.Equal(t, "ex1", inventory[0]["shortUrl"])
	assert.Equal(t, "alice", inventory[0]["username"])

	// 删除后解析 404
	w = doJSON(t, r, http.MethodPost, "/v1/url/delete", token, gin.H{"id": linkID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, http.StatusOK, decodeBody(t, w)["status"])

	w = doJSON(t, r, http.MethodGet, "/v1/url/ex1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Could not find the shortened URL", decodeBody(t, w)["message"])
}

func TestShortLinkValidation(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "alice")

	// short code 带空格
	w := doJSON(t, r, http.MethodPost, "/v1/url/create", token, gin.H{
		"originalUrl": "https://example.com",
		"shortUrl":    "ex 1",
		"expireDay":   1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// expireDay 必须为正
	w = doJSON(t, r, http.MethodPost, "/v1/url/create", token, gin.H{
		"originalUrl": "https://example.com",
		"shortUrl":    "ex1",
		"expireDay":   0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 重复的 short code：409
	w = doJSON(t, r, http.MethodPost, "/v1/url/create", token, gin.H{
		"originalUrl": "https://example.com",
		"shortUrl":    "ex1",
		"expireDay":   1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/v1/url/create", token, gin.H{
		"originalUrl": "https://another.example.com",
		"shortUrl":    "ex1",
		"expireDay":   1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Custom name already exist, make a unique one!", decodeBody(t, w)["message"])

	// 删除参数必须是 uuid
	w = doJSON(t, r, http.MethodPost, "/v1/url/delete", token, gin.H{"id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthGuards(t *testing.T) {
	r := newTestRouter(t)

	create := gin.H{
		"originalUrl": "https://example.com",
		"shortUrl":    "ex1",
		"expireDay":   1,
	}

	// 未带令牌
	w := doJSON(t, r, http.MethodPost, "/v1/url/create", "", create)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization token required", decodeBody(t, w)["message"])

	// 令牌无效
	w = doJSON(t, r, http.MethodPost, "/v1/url/create", "not-a-jwt", create)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or malformed token", decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/v1/user/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/url/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
