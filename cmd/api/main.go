// @title Course Converter API
// @version 1.0
// @description Converts AI generated course content into e-learning template JSON.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:3000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"course-converter/internal/adapter"
	"course-converter/internal/cache"
	"course-converter/internal/catalog"
	"course-converter/internal/config"
	"course-converter/internal/domain"
	"course-converter/internal/handler"
	"course-converter/internal/logger"
	"course-converter/internal/middleware"
	"course-converter/internal/pagestyle"
	"course-converter/internal/service"

	_ "course-converter/cmd/api/docs"

	"github.com/gofiber/swagger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	cat, err := catalog.Load(cfg.Templates.CatalogFile)
	if err != nil {
		appLogger.Fatal("Failed to load template catalog", zap.Error(err))
	}

	table := pagestyle.DefaultTable()
	if cfg.Templates.PageStyleFile != "" {
		table, err = pagestyle.LoadTable(cfg.Templates.PageStyleFile)
		if err != nil {
			appLogger.Fatal("Failed to load pagestyle table", zap.Error(err))
		}
	}
	mapper := pagestyle.NewMapper(table)

	// Redis is optional. Without it templates are read from disk on every request.
	var appCache domain.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Successfully connected to Redis")
		appCache = adapter.NewRedisCacheAdapter(redisClient)
	}

	// Initialize services
	templateStore := service.NewTemplateStore(appCache, cfg.Redis.TemplateTTL)
	outputStore := service.NewOutputStore(cfg.Outputs.Dir)
	conversionService := service.NewConversionService(cfg, cat, mapper, templateStore, outputStore)
	dynamicService := service.NewDynamicTemplateService(cfg, cat, templateStore)
	templateRequestService := service.NewTemplateRequestService(cfg, cat, templateStore)
	variantService := service.NewVariantService(cat, templateRequestService)
	sceneService := service.NewSceneService(templateStore)
	type0Service := service.NewType0Service(cat)
	appLogger.Info("Services initialized", zap.String("templates_root", cfg.Templates.Root))

	// Initialize handlers
	conversionHandler := handler.NewConversionHandler(conversionService, dynamicService, outputStore)
	templateHandler := handler.NewTemplateHandler(templateRequestService)
	variantHandler := handler.NewVariantHandler(variantService)
	sceneHandler := handler.NewSceneHandler(sceneService)
	type0Handler := handler.NewType0Handler(type0Service)
	healthHandler := handler.NewHealthHandler(appCache, cfg.Logger.Env)
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Static(strings.TrimSuffix(service.OutputDownloadPrefix, "/"), outputStore.Dir())

	// Health routes
	healthGroup := app.Group("/health")
	healthGroup.Get("/", healthHandler.Health)
	healthGroup.Get("/detailed", healthHandler.Detailed)
	healthGroup.Get("/ping", healthHandler.Ping)

	// Conversion routes
	convertGroup := app.Group("/api/convert")
	convertGroup.Post("/", conversionHandler.Convert)
	convertGroup.Post("/url", conversionHandler.ConvertURL)
	convertGroup.Post("/dynamic", conversionHandler.ConvertDynamic)
	convertGroup.Get("/outputs", conversionHandler.ListOutputs)

	convertGroup.Get("/templates", templateHandler.ListTemplateFiles)
	convertGroup.Post("/template/request", templateHandler.RequestTemplate)
	convertGroup.Get("/template/list", templateHandler.ListTemplates)

	convertGroup.Post("/variant/generate", variantHandler.Generate)
	convertGroup.Get("/variant/list", variantHandler.List)

	convertGroup.Post("/scene/analyze", sceneHandler.Analyze)
	convertGroup.Get("/scene/predict/:pageId", validationMiddleware.ValidateScenePredictParams(), sceneHandler.Predict)

	convertGroup.Get("/type0/brands", type0Handler.Brands)
	convertGroup.Post("/type0/generate", type0Handler.Generate)
	convertGroup.Post("/type0/generate-from-template", type0Handler.GenerateFromTemplate)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
