package config

import (
	"context"
	"os"
	"time"

	"freshkeep/internal/api/handlers"
	"freshkeep/internal/api/routes"
	"freshkeep/internal/middleware"
	"freshkeep/internal/utils"
	"freshkeep/internal/utils/storage"
	"freshkeep/pkg/analytics"
	"freshkeep/pkg/expiration"
	"freshkeep/pkg/jwt"
	"freshkeep/pkg/menu"
	"freshkeep/pkg/notification"
	"freshkeep/pkg/product"
	"freshkeep/pkg/recipe"
	"freshkeep/pkg/shoppinglist"
	"freshkeep/pkg/subscription"
	"freshkeep/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	productRepository := product.NewProductRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	analyticsRepository := analytics.NewAnalyticsRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	shoppingListRepository := shoppinglist.NewShoppingListRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	productService := product.NewProductService(productRepository, s3)
	notificationService := notification.NewNotificationService(notificationRepository)
	engine := expiration.NewEngine(productRepository, notificationRepository, userRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, productRepository, notificationRepository)
	menuService := menu.NewMenuService(menuRepository, recipeRepository, productRepository, shoppingListRepository)
	analyticsService := analytics.NewAnalyticsService(analyticsRepository, productService)
	shoppingListService := shoppinglist.NewShoppingListService(shoppingListRepository, productRepository, productService)
	subscriptionService := subscription.NewSubscriptionService(subscriptionRepository, userRepository)

	// Background evaluation
	scheduler := expiration.NewScheduler(engine, productRepository, userRepository)
	scheduler.Start(ctx)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	productHandler := handlers.NewProductHandler(productService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService, engine)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, engine)
	shoppingListHandler := handlers.NewShoppingListHandler(shoppingListService, validator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		ProductHandler:      productHandler,
		NotificationHandler: notificationHandler,
		RecipeHandler:       recipeHandler,
		MenuHandler:         menuHandler,
		AnalyticsHandler:    analyticsHandler,
		ShoppingListHandler: shoppingListHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
