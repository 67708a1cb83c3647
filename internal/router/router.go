// Package router assembles repositories, services and handlers into the
// HTTP engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reclamation/internal/config"
	"reclamation/internal/events"
	"reclamation/internal/mail"
	"reclamation/internal/middleware"
	"reclamation/internal/modules/auth"
	"reclamation/internal/modules/banc"
	"reclamation/internal/modules/reclam"
	"reclamation/internal/modules/region"
	"reclamation/internal/modules/upload"
	"reclamation/internal/modules/user"
	"reclamation/internal/pkg/jwt"
	"reclamation/internal/pkg/response"
	"reclamation/internal/repository"
)

// Deps are the process-wide collaborators. Limiter and Publisher may be nil.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	Tokens    *jwt.Service
	Mailer    mail.Mailer
	Publisher events.Publisher
	Limiter   middleware.Limiter
}

func New(d Deps) *gin.Engine {
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	if d.Mailer == nil {
		d.Mailer = mail.NewConsoleMailer(log)
	}

	userRepo := repository.NewUserRepository(d.DB)
	regionRepo := repository.NewRegionRepository(d.DB)
	reclamRepo := repository.NewReclamRepository(d.DB)
	bancRepo := repository.NewBancRepository(d.DB)

	userHandler := user.NewHandler(user.NewService(userRepo, regionRepo, d.Tokens))
	regionHandler := region.NewHandler(region.NewService(regionRepo, userRepo))
	reclamHandler := reclam.NewHandler(reclam.NewService(reclamRepo, regionRepo, userRepo, d.Publisher, log))
	authHandler := auth.NewHandler(auth.NewService(userRepo, d.Mailer, auth.Config{
		FrontendURL:     cfg.FrontendURL,
		ResetTTL:        cfg.ResetTokenTTL,
		VerificationTTL: cfg.VerificationTTL,
	}, log))
	uploadHandler := upload.NewHandler(upload.NewService(cfg.UploadDir, cfg.MaxUploadSize))
	bancHandler := banc.NewHandler(banc.NewService(bancRepo))

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ErrorLogger(log, !cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORSOrigins...))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	uploadHandler.RegisterStatic(r)

	limit := middleware.RateLimit(d.Limiter, cfg.RateLimit.Capacity, cfg.RateLimit.Prefix, log)

	api := r.Group("/api")
	{
		userHandler.RegisterPublicRoutes(api, middleware.OptionalJWTAuth(d.Tokens), limit)
		authHandler.RegisterPublicRoutes(api, limit)
		bancHandler.RegisterRoutes(api, limit)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(d.Tokens))
		{
			userHandler.RegisterProtectedRoutes(protected)
			authHandler.RegisterProtectedRoutes(protected)
			regionHandler.RegisterRoutes(protected)
			reclamHandler.RegisterRoutes(protected)
			uploadHandler.RegisterRoutes(protected)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})
	return r
}
