package router

import (
	"github.com/gin-gonic/gin"

	"e-course-api/internal/domain"
	"e-course-api/internal/transport/http/ez"
	"e-course-api/internal/transport/http/handler"
	mdw "e-course-api/internal/transport/http/middleware"
)

func NewAdminEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(mdw.Recovery(d.Log))
	r.Use(protect(d.Limits)...)
	r.Use(mdw.AccessLog(d.Log))

	r.GET("/health", handler.Health(d.Ping))
	r.GET("/metrics", mdw.MetricsHandler())

	// 管理端 v1（统一要求 admin 角色）
	admin := ez.New(r.Group("/admin/v1"), d.Log).Group("", mdw.AuthJWT(d.JWT, d.Deny, domain.RoleAdmin))
	d.Modules.MountAdmin(admin)

	return r
}
