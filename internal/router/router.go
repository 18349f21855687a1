package router

import (
	"time"

	"investigacion/internal/config"
	_ "investigacion/internal/docs"
	"investigacion/internal/handler"
	"investigacion/internal/infra"
	"investigacion/internal/middleware"
	"investigacion/internal/model"
	"investigacion/internal/repository"
	"investigacion/internal/service"
	"investigacion/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis/Blob
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, blob infra.Blob, metrics *infra.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.BodyLimit(cfg.BodyLimitMB))
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	lineaRepo := repository.NewLineaRepository(db)
	periodoRepo := repository.NewPeriodoRepository(db)
	trabajoRepo := repository.NewTrabajoRepository(db)
	estadisticaRepo := repository.NewEstadisticaRepository(db)
	bitacoraRepo := repository.NewBitacoraRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	publicURL := ""
	if local, ok := blob.(*infra.LocalBlob); ok {
		r.Group("/uploads", middleware.DescargaDocumento()).Static("/", local.Dir())
		publicURL = "/uploads/"
	}

	bitacoraSvc := service.NewBitacoraService(bitacoraRepo)
	tokenSvc := service.NewTokenService(usuarioRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	documentoSvc := service.NewDocumentoService(blob, publicURL)
	authSvc := service.NewAuthService(usuarioRepo, tokenSvc, bitacoraSvc, worker.NewDispatcher(rdb), cfg.FrontendURL)
	lineaSvc := service.NewLineaService(lineaRepo, bitacoraSvc)
	periodoSvc := service.NewPeriodoService(periodoRepo, bitacoraSvc)
	trabajoSvc := service.NewTrabajoService(trabajoRepo, lineaRepo, periodoRepo, documentoSvc, bitacoraSvc)
	busquedaSvc := service.NewBusquedaService(trabajoRepo, documentoSvc)
	estadisticaSvc := service.NewEstadisticaService(estadisticaRepo, infra.NewRedisCache(rdb),
		time.Duration(cfg.EstadisticasCacheTTLSeconds)*time.Second, bitacoraSvc)
	reporteSvc := service.NewReporteService(trabajoRepo, lineaRepo, periodoRepo, estadisticaSvc, bitacoraSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	lineasH := handler.NewLineasHandler(lineaSvc)
	periodosH := handler.NewPeriodosHandler(periodoSvc)
	trabajosH := handler.NewTrabajosHandler(trabajoSvc, busquedaSvc)
	estadisticasH := handler.NewEstadisticasHandler(estadisticaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	tokenMW := middleware.TokenAuth(tokenSvc)
	gestores := middleware.RequireRole(model.RolSuper, model.RolEditor)
	soloSuper := middleware.RequireRole(model.RolSuper)

	r.GET("/health", handler.Health(db, rdb))
	r.GET("/health/metrics", handler.HealthMetrics(metrics))
	r.POST("/health/metrics", handler.HealthMetrics(metrics))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(cfg.LoginRateLimitPerMinute), authH.Login)
		auth.POST("/register", authH.Register)
		auth.POST("/send-email-recovery", authH.SolicitarRecuperacion)
		auth.POST("/reset-password-with-token", authH.ResetPassword)
		auth.POST("/validar-sesion", tokenMW, authH.ValidarSesion)
		auth.POST("/update-user", tokenMW, authH.ActualizarUsuario)
		auth.POST("/change-password", tokenMW, soloSuper, authH.CambiarPassword)
		auth.GET("/usuarios", tokenMW, soloSuper, authH.ListarUsuarios)
	}

	lineas := r.Group("/lineas-de-investigacion")
	{
		lineas.GET("/get-all", lineasH.Listar)
		lineas.POST("/create", tokenMW, gestores, lineasH.Crear)
		lineas.POST("/update", tokenMW, gestores, lineasH.Actualizar)
	}

	periodo := r.Group("/periodo")
	{
		periodo.GET("/get-all", periodosH.Listar)
		periodo.POST("/create", tokenMW, gestores, periodosH.Crear)
		periodo.PUT("/update", tokenMW, gestores, periodosH.Actualizar)
	}

	trabajos := r.Group("/trabajos")
	{
		trabajos.GET("/get-by-id/:id", trabajosH.ObtenerPorID)
		trabajos.GET("/get-all", tokenMW, trabajosH.Listar)
		trabajos.POST("/create", tokenMW, gestores, trabajosH.Crear)
		trabajos.POST("/update", tokenMW, gestores, trabajosH.Actualizar)
	}

	r.GET("/search/main", tokenMW, trabajosH.Buscar)
	r.GET("/filters/search", trabajosH.Buscar)

	estadisticas := r.Group("/estadisticas")
	{
		estadisticas.GET("/get-all", estadisticasH.Listar)
		estadisticas.POST("/generar", tokenMW, gestores, estadisticasH.Generar)
	}

	r.POST("/reportes/generar", tokenMW, reportesH.Generar)

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
