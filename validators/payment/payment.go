package paymentValidator

import (
	"academy/middleware"
	"academy/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PaymentDecision validator middleware for the admin verify/reject PATCH
func PaymentDecision() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ID         uint   `json:"id"`
			Status     string `json:"status"`
			AdminNotes string `json:"adminNotes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ID == 0 {
			errors["id"] = "Payment request id is required!"
		}
		reqData.Status = strings.ToLower(strings.TrimSpace(reqData.Status))
		if reqData.Status != models.UnlockStatusApproved && reqData.Status != models.UnlockStatusRejected {
			errors["status"] = "Status must be approved or rejected!"
		}
		if len(reqData.AdminNotes) > 1000 {
			errors["adminNotes"] = "Notes must be at most 1000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentDecision", reqData)
		return c.Next()
	}
}
