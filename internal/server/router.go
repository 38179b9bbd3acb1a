package server

import (
	"net/http"
	"time"

	"asset-registry/internal/auth"
	"asset-registry/internal/config"
	"asset-registry/internal/handlers"
	"asset-registry/internal/middleware"
	"asset-registry/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const sessionName = "ativos_session"

type Deps struct {
	Handler *handlers.Handler
	Users   *auth.Directory
	Log     *zap.Logger
	// Registry backs /metrics; nil disables metrics.
	Registry *prometheus.Registry
}

func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Log))

	if d.Registry != nil {
		r.Use(middleware.NewMetrics(d.Registry).Handler())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.InjectUser(d.Users))

	h := d.Handler

	r.Static("/uploads", cfg.UploadDir)

	// AUTH
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", h.Me)
	r.POST("/auth/logout", h.Logout)

	// ASSETS
	r.GET("/assets", h.ListAssets)
	r.GET("/assets/export", h.ExportAssets)
	r.GET("/assets/:id", h.GetAsset)
	r.POST("/assets", h.CreateAsset)
	r.PUT("/assets/:id", h.UpdateAsset)
	r.DELETE("/assets/:id", h.DeleteAsset)
	r.PATCH("/assets/:id/deactivate", h.DeactivateAsset)

	// LOOKUPS
	r.GET("/brands", h.ListBrandNames)
	r.GET("/brands/list", h.ListBrands)
	r.POST("/brands", h.CreateBrand)
	r.PUT("/brands/:id", h.UpdateBrand)
	r.DELETE("/brands/:id", h.DeleteBrand)

	r.GET("/companies", h.ListCompanyNames)
	r.GET("/companies/list", h.ListCompanies)
	r.POST("/companies", h.CreateCompany)
	r.PUT("/companies/:id", h.UpdateCompany)
	r.DELETE("/companies/:id", h.DeleteCompany)

	r.GET("/sectors", h.ListSectorNames)
	r.GET("/sectors/list", h.ListSectors)
	r.POST("/sectors", h.CreateSector)
	r.PUT("/sectors/:id", h.UpdateSector)
	r.DELETE("/sectors/:id", h.DeleteSector)

	r.GET("/groups", h.ListGroups)
	r.POST("/groups", h.CreateGroup)
	r.PUT("/groups/:id", h.UpdateGroup)
	r.DELETE("/groups/:id", h.DeleteGroup)

	r.GET("/subgroups", h.ListSubgroups)
	r.POST("/subgroups", h.CreateSubgroup)
	r.PUT("/subgroups/:id", h.UpdateSubgroup)
	r.DELETE("/subgroups/:id", h.DeleteSubgroup)

	r.GET("/status", h.ListStatuses)

	// UPLOAD
	r.POST("/upload", h.Upload)

	// AUDIT (admin only)
	admin := r.Group("/")
	admin.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/audit", h.ListAuditLogs)

	// HEALTHCHECK
	r.GET("/health", h.Health)

	return r
}
