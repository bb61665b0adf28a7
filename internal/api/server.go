package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/salasintercc/expo-admin-api/docs"
	v1 "github.com/salasintercc/expo-admin-api/internal/api/handler/v1"
	"github.com/salasintercc/expo-admin-api/internal/api/middleware"
	"github.com/salasintercc/expo-admin-api/internal/config"
	"github.com/salasintercc/expo-admin-api/internal/export/pdf"
	"github.com/salasintercc/expo-admin-api/internal/payment"
	"github.com/salasintercc/expo-admin-api/internal/repository"
	"github.com/salasintercc/expo-admin-api/internal/repository/dao"
	"github.com/salasintercc/expo-admin-api/internal/service"
	"github.com/salasintercc/expo-admin-api/internal/upload"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	uploader, err := upload.NewLocalUploader(conf.Uploads.Dir, conf.Uploads.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("upload.NewLocalUploader -> %w", err)
	}

	userSvc := initUserService(db)

	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	eventHandler := s.initEventHandler(db, userSvc)
	standOptionHandler := s.initStandOptionHandler(db, userSvc)
	grantHandler := s.initGrantHandler(db, userSvc)
	standConfigHandler := s.initStandConfigHandler(db, userSvc, uploader)
	exportHandler := s.initExportHandler(db, userSvc)
	paymentHandler := s.initPaymentHandler(db, userSvc)

	s.MountHandlers(authHandler, userHandler, eventHandler, standOptionHandler, grantHandler, standConfigHandler, exportHandler, paymentHandler)

	return s, nil
}

func initUserService(db *gorm.DB) *service.UserService {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))

	return service.NewUserService(repo)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAuthService(repo)

	return v1.NewAuthHandler(s.Config.API, svc)
}

func (s *Server) initEventHandler(db *gorm.DB, userSvc *service.UserService) *v1.EventHandler {
	repo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewEventService(repo)

	return v1.NewEventHandler(svc, userSvc)
}

func (s *Server) initStandOptionHandler(db *gorm.DB, userSvc *service.UserService) *v1.StandOptionHandler {
	repo := repository.NewStandOptionRepository(dao.NewStandOptionDAO(db))
	svc := service.NewStandOptionService(repo)

	return v1.NewStandOptionHandler(svc, userSvc)
}

func (s *Server) initGrantHandler(db *gorm.DB, userSvc *service.UserService) *v1.GrantHandler {
	repo := repository.NewGrantRepository(dao.NewGrantDAO(db))
	svc := service.NewAccessService(repo)

	return v1.NewGrantHandler(svc, userSvc)
}

func (s *Server) initStandConfigHandler(db *gorm.DB, userSvc *service.UserService, uploader upload.Uploader) *v1.StandConfigHandler {
	gate := service.NewAccessService(repository.NewGrantRepository(dao.NewGrantDAO(db)))
	store := service.NewStandConfigService(repository.NewStandConfigRepository(dao.NewStandConfigDAO(db)))
	schemas := service.NewStandOptionService(repository.NewStandOptionRepository(dao.NewStandOptionDAO(db)))

	return v1.NewStandConfigHandler(gate, store, schemas, store, uploader, userSvc)
}

func (s *Server) initExportHandler(db *gorm.DB, userSvc *service.UserService) *v1.ExportHandler {
	users := repository.NewUserRepository(dao.NewUserDAO(db))
	events := repository.NewEventRepository(dao.NewEventDAO(db))
	configs := repository.NewStandConfigRepository(dao.NewStandConfigDAO(db))
	schemas := repository.NewStandOptionRepository(dao.NewStandOptionDAO(db))
	renderer := pdf.NewRenderer(s.Config.PDF.ChromePath)

	svc := service.NewExportService(users, events, configs, schemas, renderer)

	return v1.NewExportHandler(svc, userSvc)
}

func (s *Server) initPaymentHandler(db *gorm.DB, userSvc *service.UserService) *v1.PaymentHandler {
	client := payment.NewStripeClient(s.Config.Stripe.SecretKey, s.Config.Stripe.WebhookSecret, s.Config.Stripe.Currency)
	configs := service.NewStandConfigService(repository.NewStandConfigRepository(dao.NewStandConfigDAO(db)))

	return v1.NewPaymentHandler(client, configs, userSvc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	standOptionHandler *v1.StandOptionHandler,
	grantHandler *v1.GrantHandler,
	standConfigHandler *v1.StandConfigHandler,
	exportHandler *v1.ExportHandler,
	paymentHandler *v1.PaymentHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	// Stripe calls this without a bearer token; the signature check is
	// the authentication.
	s.Router.POST(basePath+"/webhooks/stripe", paymentHandler.HandleStripeWebhook)

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.GET("/users/:userID", userHandler.HandleGetUser)

		protected.GET("/events", eventHandler.HandleListEvents)
		protected.POST("/events", eventHandler.HandleCreateEvent)
		protected.GET("/events/:eventID", eventHandler.HandleGetEvent)

		protected.GET("/events/:eventID/stand-options", standOptionHandler.HandleListStandOptions)
		protected.POST("/events/:eventID/stand-options", standOptionHandler.HandleCreateStandOption)
		protected.GET("/stand-options/:optionID", standOptionHandler.HandleGetStandOption)
		protected.PUT("/stand-options/:optionID", standOptionHandler.HandleUpdateStandOption)
		protected.DELETE("/stand-options/:optionID", standOptionHandler.HandleDeleteStandOption)

		protected.GET("/events/:eventID/grants", grantHandler.HandleListGrants)
		protected.POST("/events/:eventID/grants", grantHandler.HandleGrantAccess)
		protected.DELETE("/events/:eventID/grants/:userID", grantHandler.HandleRevokeAccess)

		protected.GET("/events/:eventID/wizard", standConfigHandler.HandleOpenWizard)
		protected.PUT("/events/:eventID/wizard/options/:optionID/items/:itemID", standConfigHandler.HandleSetText)
		protected.POST("/events/:eventID/wizard/options/:optionID/items/:itemID/selections", standConfigHandler.HandleSelectOption)
		protected.DELETE("/events/:eventID/wizard/options/:optionID/items/:itemID/selections/:choiceID", standConfigHandler.HandleDeselectOption)
		protected.POST("/events/:eventID/wizard/options/:optionID/items/:itemID/upload", standConfigHandler.HandleUploadFile)
		protected.POST("/events/:eventID/wizard/submit", standConfigHandler.HandleSubmitWizard)

		protected.GET("/events/:eventID/my-stand-configs", standConfigHandler.HandleListMyConfigs)
		protected.GET("/events/:eventID/stand-configs", standConfigHandler.HandleListEventConfigs)
		protected.PATCH("/stand-configs/:configID/payment-status", standConfigHandler.HandleSetPaymentStatus)
		protected.POST("/stand-configs/:configID/reopen", standConfigHandler.HandleReopenConfig)
		protected.POST("/stand-configs/:configID/payment-intent", paymentHandler.HandleCreatePaymentIntent)

		protected.GET("/events/:eventID/exhibitors/:userID/export", exportHandler.HandleExportJSON)
		protected.GET("/events/:eventID/exhibitors/:userID/export/pdf", exportHandler.HandleExportPDF)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.Static("/uploads", s.Config.Uploads.Dir)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Expo Admin API"
	docs.SwaggerInfo.Description = "Event administration with stand configuration and pricing."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
