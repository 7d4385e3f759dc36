package router

import (
	"ad-copy-ai-api/internal/interfaces/http/middleware"
)

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/ready", r.healthHandler.Ready)
	r.engine.GET("/live", r.healthHandler.Live)

	// API 路由组
	// 限流先于请求体解析：配额耗尽的客户端不消耗生成资源
	api := r.engine.Group("/api")
	{
		api.POST("/generate-marketing",
			middleware.RateLimit(r.cfg.Security.RateLimit, r.limiter),
			r.marketingHandler.Generate,
		)
	}
}
