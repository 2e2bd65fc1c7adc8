package server

import (
	"github.com/abduss/memorial/internal/auth"
	"github.com/abduss/memorial/internal/config"
	"github.com/abduss/memorial/internal/ledger"
	"github.com/abduss/memorial/internal/logger"
	"github.com/abduss/memorial/internal/media"
	"github.com/abduss/memorial/internal/metrics"
	"github.com/abduss/memorial/internal/upload"
	"github.com/gin-gonic/gin"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config        config.Config
	DB            Pinger
	ObjectStore   BucketLister
	MediaService  *media.Service
	UploadService *upload.Service
	AuthService   *auth.Service
	Ledger        *ledger.Repository
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())
	router.Use(metrics.Middleware())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/v1")
	if deps.MediaService != nil {
		media.RegisterRoutes(api, deps.MediaService)
	}
	if deps.UploadService != nil {
		upload.RegisterRoutes(api, deps.UploadService)
	}

	if deps.AuthService != nil {
		admin := api.Group("/admin")
		auth.RegisterRoutes(admin, deps.AuthService)

		protected := admin.Group("/")
		protected.Use(auth.Middleware(deps.AuthService))

		if deps.UploadService != nil {
			upload.RegisterOperatorRoutes(protected, deps.UploadService)
		}
		if deps.Ledger != nil {
			ledger.RegisterRoutes(protected, deps.Ledger)
		} else {
			ledger.RegisterRoutes(protected, nil)
		}
	}

	return router
}
