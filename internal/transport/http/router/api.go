package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"e-course-api/internal/core/auth"
	"e-course-api/internal/core/cache"
	"e-course-api/internal/core/config"
	"e-course-api/internal/core/server"
	"e-course-api/internal/transport/http/ez"
	"e-course-api/internal/transport/http/handler"
	mdw "e-course-api/internal/transport/http/middleware"
)

// Deps 两个引擎共用的依赖
type Deps struct {
	Log     *zap.Logger
	JWT     *auth.JWTer
	Deny    cache.Denylist
	Limits  config.Limits
	Ping    func(context.Context) error
	Modules *Registry
}

// protect 保护性中间件，参数为 0 的项跳过
func protect(lim config.Limits) []gin.HandlerFunc {
	hs := []gin.HandlerFunc{mdw.RequestID()}
	if lim.RPS > 0 {
		hs = append(hs, mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst))
	}
	if lim.PerIPRPS > 0 {
		hs = append(hs, mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst))
	}
	if lim.Concurrency > 0 {
		hs = append(hs, mdw.ConcurrencyLimit(lim.Concurrency))
	}
	if lim.MaxBodyMB > 0 {
		hs = append(hs, mdw.MaxBodyBytes(lim.MaxBodyMB<<20))
	}
	if lim.TimeoutSec > 0 {
		hs = append(hs, mdw.Timeout(time.Duration(lim.TimeoutSec)*time.Second))
	}
	return append(hs, mdw.Metrics())
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log)
	r.Use(protect(d.Limits)...)

	// 健康检查 / 指标
	r.GET("/health", handler.Health(d.Ping))
	r.GET("/metrics", mdw.MetricsHandler())

	api := ez.New(r.Group("/api"), d.Log)
	d.Modules.MountPublic(api)

	// 其余接口都要登录
	authed := api.Group("", mdw.AuthJWT(d.JWT, d.Deny, ""))
	d.Modules.MountAPI(authed)

	return r
}
