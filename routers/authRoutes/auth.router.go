package authRoutes

import (
	authControllers "academy/controllers/auth"
	"academy/middleware"
	authValidators "academy/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authControllers.Login)
	authGroup.Post("/logout", authControllers.Logout)
	authGroup.Get("/profile", middleware.JWTMiddleware, authControllers.GetProfile)
}
