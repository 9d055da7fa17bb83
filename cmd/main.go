package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quillback/config"
	"github.com/lshigami/Quillback/database"
	_ "github.com/lshigami/Quillback/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/Quillback/internal/controller/admin"
	analyticsctrl "github.com/lshigami/Quillback/internal/controller/analytics"
	authctrl "github.com/lshigami/Quillback/internal/controller/auth"
	questionnairectrl "github.com/lshigami/Quillback/internal/controller/questionnaire"
	responsectrl "github.com/lshigami/Quillback/internal/controller/response"
	"github.com/lshigami/Quillback/internal/logger"
	"github.com/lshigami/Quillback/internal/middleware"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/repository"
	"github.com/lshigami/Quillback/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quillback Questionnaire API
// @version 1.0
// @description API for building questionnaires, collecting responses and analyzing results.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuestionnaireRepository,
			repository.NewQuestionRepository,
			repository.NewResponseRepository,
			repository.NewAnswerRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewQuestionnaireService,
			func(questionRepo repository.QuestionRepository, questionnaireRepo repository.QuestionnaireRepository, db *gorm.DB) service.QuestionService {
				return service.NewQuestionService(questionRepo, questionnaireRepo, db)
			},
			// ResponseService drives the draft/complete state machine inside
			// a single transaction, so it takes *gorm.DB directly.
			func(
				questionnaireRepo repository.QuestionnaireRepository,
				questionRepo repository.QuestionRepository,
				responseRepo repository.ResponseRepository,
				answerRepo repository.AnswerRepository,
				db *gorm.DB,
			) service.ResponseService {
				return service.NewResponseService(questionnaireRepo, questionRepo, responseRepo, answerRepo, db)
			},
			service.NewAnalyticsService,
			service.NewAdminService,
		),

		// API Controllers Layer
		fx.Provide(
			authctrl.NewAuthController,
			questionnairectrl.NewQuestionnaireController,
			responsectrl.NewResponseController,
			analyticsctrl.NewAnalyticsController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authSvc service.AuthService,
	authController *authctrl.AuthController,
	questionnaireController *questionnairectrl.QuestionnaireController,
	responseController *responsectrl.ResponseController,
	analyticsController *analyticsctrl.AnalyticsController,
	adminController *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", authController.Register)
		api.POST("/auth/login", authController.Login)
		api.GET("/stats", questionnaireController.SiteStats)

		// Optional auth: anonymous visitors see public questionnaires and can
		// respond where anonymous responses are allowed.
		public := api.Group("", middleware.OptionalAuth(authSvc))
		{
			public.GET("/questionnaires", questionnaireController.List)
			public.GET("/questionnaires/:id", questionnaireController.Get)
			public.GET("/questionnaires/:id/questions", questionnaireController.ListQuestions)
			public.POST("/questionnaires/:id/responses", responseController.Submit)
		}

		authed := api.Group("", middleware.RequireAuth(authSvc))
		{
			authed.GET("/auth/profile", authController.Profile)
			authed.PUT("/auth/profile", authController.UpdateProfile)
			authed.GET("/dashboard", authController.Dashboard)

			authed.POST("/questionnaires", questionnaireController.Create)
			authed.PUT("/questionnaires/:id", questionnaireController.Update)
			authed.PUT("/questionnaires/:id/settings", questionnaireController.UpdateSettings)
			authed.DELETE("/questionnaires/:id", questionnaireController.Delete)

			authed.POST("/questionnaires/:id/questions", questionnaireController.CreateQuestion)
			authed.PUT("/questionnaires/:id/questions/reorder", questionnaireController.ReorderQuestions)
			authed.PUT("/questions/:id", questionnaireController.UpdateQuestion)
			authed.DELETE("/questions/:id", questionnaireController.DeleteQuestion)

			authed.GET("/questionnaires/:id/responses", responseController.List)
			authed.GET("/responses/:id", responseController.Get)
			authed.DELETE("/responses/:id", responseController.Delete)

			authed.GET("/questionnaires/:id/analytics", analyticsController.Analytics)
			authed.GET("/questionnaires/:id/export", analyticsController.Export)
		}

		admin := api.Group("/admin", middleware.RequireAuth(authSvc), middleware.RequireAdmin())
		{
			admin.GET("/dashboard", adminController.Dashboard)
			admin.GET("/users", adminController.ListUsers)
			admin.PUT("/users/:id/toggle-status", adminController.ToggleUserStatus)
			admin.PUT("/users/:id/role", adminController.ChangeUserRole)
			admin.DELETE("/users/:id", adminController.DeleteUser)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quillback API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Questionnaire{},
		&model.Question{},
		&model.Response{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
