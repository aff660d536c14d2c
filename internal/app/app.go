package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"e-course-api/internal/core/auth"
	"e-course-api/internal/core/cache"
	"e-course-api/internal/core/config"
	"e-course-api/internal/core/database"
	"e-course-api/internal/repo"
	"e-course-api/internal/service"
	"e-course-api/internal/transport/http/handler"
	"e-course-api/internal/transport/http/router"
)

// OpenDB 按配置连库，AutoMigrate 开启时建表
func OpenDB(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	return db, nil
}

// OpenDenylist redis 开启时用 redis（多实例共享），否则进程内存
func OpenDenylist(ctx context.Context, cfg config.Redis, l *zap.Logger) (cache.Denylist, func(), error) {
	if !cfg.Enable {
		l.Info("token denylist: memory")
		return cache.NewMemory(), func() {}, nil
	}
	rd := cache.NewRedis(cfg.Addr, cfg.Password, cfg.DB)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rd.Ping(pctx); err != nil {
		_ = rd.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	l.Info("token denylist: redis", zap.String("addr", cfg.Addr))
	return rd, func() { _ = rd.Close() }, nil
}

func NewJWTer(c config.JWT) *auth.JWTer {
	return &auth.JWTer{
		Secret: []byte(c.Secret),
		Issuer: c.Issuer,
		TTL:    time.Duration(c.AccessTokenTTLMin) * time.Minute,
	}
}

// Wire 组装 store -> service -> handler，返回两个引擎共用的依赖
func Wire(cfg *config.Config, db *gorm.DB, deny cache.Denylist, l *zap.Logger) router.Deps {
	store := repo.NewStore(db)
	jwter := NewJWTer(cfg.JWT)

	enroll := service.NewEnrollmentService(store, l)
	authSvc := service.NewAuthService(store, jwter, deny, enroll, l, cfg.Auth.AllowAdminSignup)

	mods := router.NewRegistry(
		handler.NewAuthHandler(authSvc),
		handler.NewCourseHandler(service.NewCatalogService(store, l)),
		handler.NewEnrollmentHandler(enroll),
		handler.NewProgressHandler(service.NewProgressService(store, l)),
		handler.NewUserHandler(service.NewUserService(store)),
	)
	return router.Deps{
		Log:     l,
		JWT:     jwter,
		Deny:    deny,
		Limits:  cfg.Limits,
		Ping:    store.Ping,
		Modules: mods,
	}
}
