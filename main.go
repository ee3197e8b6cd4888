package main

import (
	"academy/config"
	"academy/database"
	"academy/middleware"
	adminRoutes "academy/routers/adminRoutes"
	authRoutes "academy/routers/authRoutes"
	courseRoutes "academy/routers/courseRoutes"
	paymentRoutes "academy/routers/paymentRoutes"
	projectRoutes "academy/routers/projectRoutes"
	"academy/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Page-route guard: redirects and role gating for browser navigation
	app.Use(middleware.RouteGuard())

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	projectRoutes.SetupProjectRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Hourly sweep that rejects stale pending unlock requests
	unlockCron := utils.StartUnlockScheduler()
	defer unlockCron.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
