package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonCompleted records lesson completion for the current user and
// recomputes the cached course progress
func MarkLessonCompleted(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	progress, err := CompleteLesson(database.Database.Db, userID, uint(lessonID))
	if err != nil {
		switch {
		case errors.Is(err, ErrLessonNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
		case errors.Is(err, ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, err.Error(), nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as completed!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed successfully!", progress)
}

// GetCourseProgress returns the cached progress projection together with
// per-lesson completion state
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var progress courseModels.CourseProgress
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Progress not found!", nil)
	}

	var lessonProgress []courseModels.LessonProgress
	database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Find(&lessonProgress)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"progress":   progress,
		"lessons":    lessonProgress,
	})
}
