package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/utils"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func EnrollInCourse(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated course ID
	courseID := c.Locals("courseID").(int)

	enrollment, err := EnrollUser(database.Database.Db, userID, uint(courseID))
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyEnrolled):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
		case errors.Is(err, ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
		case errors.Is(err, ErrCourseUnavailable):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	}

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ?", enrollment.CourseID).First(&crs).Error; err == nil {
		go func(email, name, title string) {
			if err := utils.SendEnrollmentEmail(email, name, title); err != nil {
				log.Printf("Error sending enrollment email: %v", err)
			}
		}(user.Email, user.Name, crs.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// EnrollmentWithCourse joins an enrollment with course display fields
type EnrollmentWithCourse struct {
	courseModels.Enrollment
	CourseTitle     string `json:"course_title"`
	CourseSlug      string `json:"course_slug"`
	CourseAuthor    string `json:"course_author"`
	CourseThumbnail string `json:"course_thumbnail"`
}

// GetUserEnrollments gets all enrollments for the current user ("My Courses")
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var crs courseModels.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&crs)
		result[i] = EnrollmentWithCourse{
			Enrollment:      e,
			CourseTitle:     crs.Title,
			CourseSlug:      crs.Slug,
			CourseAuthor:    crs.Author,
			CourseThumbnail: crs.ThumbnailURL,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
