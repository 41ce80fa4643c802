package FiberConfig

import (
	"Remitente/Controllers"
	"Remitente/Gemini"
	"Remitente/Models"
	"Remitente/middleware"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
)

func SetupRoutes(app *fiber.App, store Models.AccountStore) {
	// Initialize handlers
	authController := Controllers.NewAuthController(store)
	userController := Controllers.NewUserController(store)
	sendController := Controllers.NewSendController(store)
	aiController := Controllers.NewAIController(Gemini.NewClient())

	// API group
	api := app.Group("/api")

	// Auth routes
	api.Post("/login", authController.Login)
	api.Get("/validate-token", middleware.Verify(store), authController.ValidateToken)
	api.Post("/logout", authController.Logout)

	// User management routes
	users := api.Group("/users")
	users.Get("/", middleware.Verify(store, Models.RoleAdmin), userController.FetchUsers)
	users.Post("/", middleware.Verify(store, Models.RoleAdmin), userController.RegisterUser)
	users.Put("/:id", middleware.Verify(store), userController.UpdateUser)
	users.Delete("/:id", middleware.Verify(store, Models.RoleAdmin), userController.DeleteUser)

	// Campaign routes
	api.Post("/send-emails", middleware.Verify(store), sendController.SendEmails)
	api.Post("/preview", middleware.Verify(store), sendController.Preview)
	api.Post("/test-smtp", middleware.Verify(store), sendController.TestSMTP)
	api.Get("/campaigns", middleware.Verify(store), sendController.ListCampaigns)

	// Upload routes
	api.Post("/upload-recipients", middleware.Verify(store), Controllers.UploadRecipients)
	api.Post("/upload-image", middleware.Verify(store), Controllers.UploadImage)

	// AI preview routes
	ai := api.Group("/ai", middleware.Verify(store))
	ai.Post("/personalize", aiController.Personalize)
	ai.Post("/draft", aiController.Draft)
}

func FiberConfig(store Models.AccountStore) {
	log.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	// Html Template engine
	app := fiber.New(fiber.Config{
		Views: engine,
		// The panel uploads images as data URLs inside JSON bodies
		BodyLimit: 50 * 1024 * 1024,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, store)

	// Serve the built panel; unknown paths fall through to the SPA shell
	app.Static("/", "./dist", fiber.Static{Compress: true})
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen("0.0.0.0:" + port))
}
