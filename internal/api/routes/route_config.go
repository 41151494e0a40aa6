package routes

import (
	"freshkeep/internal/api/handlers"
	"freshkeep/internal/middleware"
	"freshkeep/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	ProductHandler      handlers.ProductHandler
	NotificationHandler handlers.NotificationHandler
	RecipeHandler       handlers.RecipeHandler
	MenuHandler         handlers.MenuHandler
	AnalyticsHandler    handlers.AnalyticsHandler
	ShoppingListHandler handlers.ShoppingListHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Products()
	c.Analytics()
	c.Notifications()
	c.Recipes()
	c.Menu()
	c.ShoppingList()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.CreateTransaction)
	}
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products", c.Middleware.AuthMiddleware(c.JWTService))
	products.Get("/expiring-soon", c.ProductHandler.GetExpiringSoon)

	// Basic CRUD operations
	products.Post("", c.ProductHandler.AddProduct)
	products.Get("", c.ProductHandler.GetProducts)
	products.Get("/:id", c.ProductHandler.GetProductDetails)
	products.Put("/:id", c.ProductHandler.UpdateProduct)
	products.Delete("/:id", c.ProductHandler.DeleteProduct)

	// Lifecycle operations
	products.Post("/:id/consume", c.ProductHandler.MarkConsumed)
	products.Post("/:id/waste", c.ProductHandler.MarkWasted)

	// Special operations
	products.Post("/image", c.ProductHandler.UploadProductImage)
	products.Post("/receipt-scan", c.ProductHandler.UploadReceipt)
	products.Get("/receipt-scan/:id", c.ProductHandler.GetReceiptScan)
	products.Post("/save-scanned", c.ProductHandler.SaveScannedProducts)
}

func (c *Config) Analytics() {
	analytics := c.App.Group("/api/v1/analytics", c.Middleware.AuthMiddleware(c.JWTService))
	analytics.Get("/dashboard", c.AnalyticsHandler.GetDashboardStats)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))
	notifications.Get("", c.NotificationHandler.GetNotifications)
	notifications.Get("/unread-count", c.NotificationHandler.CountUnread)
	notifications.Patch("/:id/read", c.NotificationHandler.MarkRead)
	notifications.Patch("/read-all", c.NotificationHandler.MarkAllRead)
	notifications.Post("/evaluate", c.NotificationHandler.Evaluate)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("/suggestions", c.RecipeHandler.GetRecipeSuggestions)
	recipes.Get("/favorites", c.RecipeHandler.GetFavoriteRecipes)
	recipes.Post("/favorites", c.RecipeHandler.FavoriteRecipe)
	recipes.Delete("/favorites/:id", c.RecipeHandler.UnfavoriteRecipe)
	recipes.Get("/history", c.RecipeHandler.GetRecipeHistory)
	recipes.Post("/cooked", c.RecipeHandler.MarkAsCooked)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
}

func (c *Config) Menu() {
	menu := c.App.Group("/api/v1/menu", c.Middleware.AuthMiddleware(c.JWTService))
	menu.Post("", c.MenuHandler.AddEntry)
	menu.Get("/week", c.MenuHandler.GetWeeklyMenu)
	menu.Get("/check-availability/:recipeId", c.MenuHandler.CheckAvailability)
	menu.Put("/:id", c.MenuHandler.UpdateEntry)
	menu.Delete("/:id", c.MenuHandler.DeleteEntry)
	menu.Post("/generate-shopping-list", c.MenuHandler.GenerateShoppingList)
}

func (c *Config) ShoppingList() {
	shoppingList := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))
	shoppingList.Post("", c.ShoppingListHandler.AddItem)
	shoppingList.Get("", c.ShoppingListHandler.GetShoppingList)
	shoppingList.Put("/:id", c.ShoppingListHandler.UpdateItem)
	shoppingList.Delete("/:id", c.ShoppingListHandler.DeleteItem)
	shoppingList.Post("/:id/bought", c.ShoppingListHandler.MarkBought)
	shoppingList.Post("/generate", c.ShoppingListHandler.GenerateList)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.SubscriptionHandler.MidtransWebhookHandler)
}
