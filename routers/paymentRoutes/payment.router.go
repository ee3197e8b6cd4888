package paymentRoutes

import (
	paymentControllers "academy/controllers/payment"
	"academy/middleware"
	"academy/models"
	paymentValidators "academy/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the admin payment-verification queue.
// Reviewing payment proofs is an admin-only concern, mentors never see it.
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/api/admin/payment-requests",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
	)

	paymentGroup.Get("/", paymentControllers.GetPaymentRequests)
	paymentGroup.Patch("/", paymentValidators.PaymentDecision(), paymentControllers.UpdatePaymentRequest)
}
