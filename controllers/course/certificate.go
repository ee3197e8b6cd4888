package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"

	"github.com/gofiber/fiber/v2"
)

// CertificateWithCourse joins a certificate with its course title
type CertificateWithCourse struct {
	courseModels.Certificate
	CourseTitle string `json:"course_title"`
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var crs courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&crs)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: crs.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// VerifyCertificate is the public verification endpoint keyed by
// certificate number. It recomputes the stored hash and reports
// valid/invalid; the inputs are untrusted strings.
func VerifyCertificate(c *fiber.Ctx) error {
	certificateNumber := c.Params("number")

	valid, cert, message := VerifyCertificateByNumber(database.Database.Db, certificateNumber)
	if !valid {
		return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
			"valid": false,
		})
	}

	var user models.User
	var crs courseModels.Course
	database.Database.Db.Where("id = ?", cert.UserID).First(&user)
	database.Database.Db.Where("id = ?", cert.CourseID).First(&crs)

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"valid": true,
		"certificate": fiber.Map{
			"certificate_number": cert.CertificateNumber,
			"user_name":          user.Name,
			"course_title":       crs.Title,
			"issued_at":          cert.IssuedAt,
		},
	})
}
