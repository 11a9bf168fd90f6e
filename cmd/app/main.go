package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"shorturl-go/internal/auth"
	"shorturl-go/internal/handler"
	"shorturl-go/internal/i18n"
	"shorturl-go/internal/middleware"
	"shorturl-go/internal/repository"
	"shorturl-go/internal/service"
	"shorturl-go/pkg/logging"
)

func initConfig() {
	wd, _ := os.Getwd()
	log.Printf("Loading config from: %s/config.yaml", wd)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	origin := viper.GetString("server.cors_origin")
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}

func startServer(r *gin.Engine) {
	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":3333"
	}

	readTimeout := viper.GetDuration("server.read_timeout")
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := viper.GetDuration("server.write_timeout")
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	// 启动服务器
	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("Server exiting")
}

func main() {
	initConfig()

	// 初始化日志系统
	logging.InitLoggerFromConfig()
	logging.Logger.Info("Application started")

	// 初始化数据库（含迁移与连接池配置）
	db := repository.InitDB(logging.Logger, logging.AtomicLevel)

	// 初始化 i18n（加载 TOML 文件）
	bundle, err := i18n.InitI18n([]string{
		"./i18n/en.toml",
		"./i18n/zh.toml",
	}, "en")
	if err != nil {
		logging.Logger.Fatal("Failed to load i18n bundles", zap.Error(err))
	}

	// 凭证哈希与令牌签发，密钥缺失直接启动失败
	hasher := auth.NewBcryptHasher(viper.GetInt("bcrypt.cost"))
	tokens, err := auth.NewTokenMaker(viper.GetString("jwt.secret"))
	if err != nil {
		logging.Logger.Fatal("Failed to build token maker", zap.Error(err))
	}

	// 服务与 handler 显式装配，不使用全局实例
	authService := service.NewAuthService(db, hasher, tokens, logging.Logger)
	linkService := service.NewShortLinkService(db, logging.Logger)
	userHandler := handler.NewUserHandler(authService)
	linkHandler := handler.NewShortLinkHandler(linkService)

	r := gin.New()
	r.Use(gin.Recovery()) // 显式添加 Recovery 中间件

	// 注册全局中间件
	r.Use(middleware.ZapGinLogger(logging.Logger))
	r.Use(corsMiddleware())
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

	startServer(r)
}
