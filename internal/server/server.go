package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/wahyusaputra/motorshop-backend/internal/config"
	"github.com/wahyusaputra/motorshop-backend/internal/handler"
	appmw "github.com/wahyusaputra/motorshop-backend/internal/middleware"
	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/repository"
	"github.com/wahyusaputra/motorshop-backend/internal/service"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			return origin == cfg.FrontendURL, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	motorRepo := repository.NewMotorRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authSvc := service.NewAuthService(userRepo)
	motorSvc := service.NewMotorService(motorRepo)
	txSvc := service.NewTransactionService(txRepo, motorRepo, deliveryRepo, userRepo, reportRepo)
	deliverySvc := service.NewDeliveryService(deliveryRepo, txRepo, userRepo)
	staffSvc := service.NewStaffService(userRepo)
	userSvc := service.NewUserService(userRepo)
	reportSvc := service.NewReportService(reportRepo, userRepo, motorRepo, deliveryRepo)

	authMw := appmw.NewAuthMiddleware(cfg.JWTSecret)

	uploadHandler := handler.NewUploadHandler(cfg.UploadDir)
	authHandler := handler.NewAuthHandler(authSvc, authMw, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.FrontendURL)
	motorHandler := handler.NewMotorHandler(motorSvc)
	txHandler := handler.NewTransactionHandler(txSvc)
	deliveryHandler := handler.NewDeliveryHandler(deliverySvc)
	staffHandler := handler.NewStaffHandler(staffSvc)
	userHandler := handler.NewUserHandler(userSvc, reportSvc, uploadHandler)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/google", authHandler.GoogleRedirect)
	auth.GET("/google/callback", authHandler.GoogleCallback)
	auth.GET("/me", authHandler.Me, authMw.RequireAuth)
	auth.PUT("/profile", authHandler.UpdateProfile, authMw.RequireAuth)

	motors := api.Group("/motors")
	motors.GET("", motorHandler.List)
	motors.GET("/brands", motorHandler.Brands)
	motors.GET("/:id", motorHandler.Get)
	motors.POST("", motorHandler.Create, authMw.RequireAuth, authMw.RequireRole(model.RoleOwner))
	motors.PUT("/:id", motorHandler.Update, authMw.RequireAuth, authMw.RequireRole(model.RoleOwner))
	motors.DELETE("/:id", motorHandler.Delete, authMw.RequireAuth, authMw.RequireRole(model.RoleOwner))

	tx := api.Group("/transactions", authMw.RequireAuth)
	tx.POST("", txHandler.Create, authMw.RequireRole(model.RoleCustomer))
	tx.GET("/my", txHandler.ListMine, authMw.RequireRole(model.RoleCustomer))
	tx.GET("", txHandler.List, authMw.RequireRole(model.RoleCashier, model.RoleOwner))
	tx.GET("/pending", txHandler.ListPending, authMw.RequireRole(model.RoleCashier, model.RoleOwner))
	tx.PUT("/:id/process", txHandler.Process, authMw.RequireRole(model.RoleCashier, model.RoleOwner))
	tx.POST("/assign-delivery", txHandler.AssignDelivery, authMw.RequireRole(model.RoleCashier, model.RoleOwner))
	tx.GET("/stats", txHandler.Stats, authMw.RequireRole(model.RoleOwner))

	deliveries := api.Group("/deliveries", authMw.RequireAuth)
	deliveries.GET("/my", deliveryHandler.ListMine, authMw.RequireRole(model.RoleDriver))
	deliveries.GET("", deliveryHandler.List, authMw.RequireRole(model.RoleCashier, model.RoleOwner))
	deliveries.GET("/drivers", deliveryHandler.ListDrivers, authMw.RequireRole(model.RoleCashier, model.RoleOwner))
	deliveries.PUT("/:id/status", deliveryHandler.UpdateStatus, authMw.RequireRole(model.RoleDriver))
	deliveries.PUT("/:id/complete", deliveryHandler.Complete, authMw.RequireRole(model.RoleCustomer))

	staff := api.Group("/staff", authMw.RequireAuth, authMw.RequireRole(model.RoleOwner))
	staff.POST("/register", staffHandler.Register)
	staff.GET("", staffHandler.List)
	staff.DELETE("/:id", staffHandler.Delete)

	users := api.Group("/users", authMw.RequireAuth)
	users.GET("", userHandler.ListCustomers, authMw.RequireRole(model.RoleOwner))
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.POST("/profile/image", userHandler.UploadProfileImage)
	users.GET("/dashboard", userHandler.Dashboard, authMw.RequireRole(model.RoleOwner))
	users.GET("/reports", userHandler.Reports, authMw.RequireRole(model.RoleOwner))

	api.POST("/upload/image", uploadHandler.UploadMotorImage, authMw.RequireAuth, authMw.RequireRole(model.RoleOwner))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
