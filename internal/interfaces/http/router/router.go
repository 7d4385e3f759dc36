// Package router 提供 HTTP 路由配置
package router

import (
	"ad-copy-ai-api/internal/application/quota"
	"ad-copy-ai-api/internal/config"
	"ad-copy-ai-api/internal/interfaces/http/handler"
	"ad-copy-ai-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// Router HTTP 路由器
type Router struct {
	engine *gin.Engine
	cfg    *config.Config

	limiter          quota.Limiter
	marketingHandler *handler.MarketingHandler
	healthHandler    *handler.HealthHandler
}

// New 创建新的路由器
func New(
	cfg *config.Config,
	limiter quota.Limiter,
	marketingHandler *handler.MarketingHandler,
	healthHandler *handler.HealthHandler,
) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:           engine,
		cfg:              cfg,
		limiter:          limiter,
		marketingHandler: marketingHandler,
		healthHandler:    healthHandler,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}
