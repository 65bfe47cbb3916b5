package main

import (
	"github.com/collinsdev/marketplace-api/internal/application/service"
	"github.com/collinsdev/marketplace-api/internal/config"
	"github.com/collinsdev/marketplace-api/internal/domain/validator"
	"github.com/collinsdev/marketplace-api/internal/infrastructure/database"
	"github.com/collinsdev/marketplace-api/internal/infrastructure/repository"
	"github.com/collinsdev/marketplace-api/internal/presentation/http/handler"
	"github.com/collinsdev/marketplace-api/internal/presentation/http/routes"
	"github.com/collinsdev/marketplace-api/pkg/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&log.JSONFormatter{})
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db); err != nil {
		log.Warnf("Failed to seed default data: %v", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderDetailRepo := repository.NewOrderDetailRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	procurementRepo := repository.NewProcurementRepository(db)
	procurementDetailRepo := repository.NewProcurementDetailRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	txManager := repository.NewTxManager(db)

	// Validators
	orderValidator := validator.NewOrderValidator(orderRepo, locationRepo, userRepo, discountRepo, paymentRepo)
	orderDetailValidator := validator.NewOrderDetailValidator(orderDetailRepo)
	paymentValidator := validator.NewPaymentValidator(paymentRepo)
	procurementValidator := validator.NewProcurementValidator(procurementRepo, vendorRepo, locationRepo, procurementDetailRepo)
	procurementDetailValidator := validator.NewProcurementDetailValidator(procurementDetailRepo)
	discountValidator := validator.NewDiscountValidator(discountRepo, locationRepo, vendorRepo)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	orderService := service.NewOrderService(orderRepo, orderDetailRepo, productRepo, paymentRepo,
		orderValidator, orderDetailValidator, txManager)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, paymentValidator, txManager)
	procurementService := service.NewProcurementService(procurementRepo, procurementDetailRepo, productRepo,
		procurementValidator, procurementDetailValidator, txManager)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	vendorService := service.NewVendorService(vendorRepo)
	locationService := service.NewLocationService(locationRepo)
	discountService := service.NewDiscountService(discountRepo, discountValidator)

	// Handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Order:       handler.NewOrderHandler(orderService),
		Payment:     handler.NewPaymentHandler(paymentService),
		Procurement: handler.NewProcurementHandler(procurementService),
		Product:     handler.NewProductHandler(productService),
		Category:    handler.NewCategoryHandler(categoryService),
		Vendor:      handler.NewVendorHandler(vendorService),
		Location:    handler.NewLocationHandler(locationService),
		Discount:    handler.NewDiscountHandler(discountService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	log.Infof("Starting %s on port %s", cfg.App.Name, cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
