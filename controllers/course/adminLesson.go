package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateLesson adds a lesson to a module
func AdminCreateLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title      string `json:"title"`
		Slug       string `json:"slug"`
		Content    string `json:"content"`
		VideoURL   string `json:"video_url"`
		Duration   int64  `json:"duration"`
		OrderIndex int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := courseModels.Lesson{
		CourseID:   uint(courseID),
		ModuleID:   uint(moduleID),
		Title:      reqData.Title,
		Slug:       reqData.Slug,
		Content:    reqData.Content,
		VideoURL:   reqData.VideoURL,
		Duration:   reqData.Duration,
		OrderIndex: reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	auditContentChange(userID, models.AuditContentLesson, lesson.ID, map[string]interface{}{"action": "create", "courseId": courseID})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson updates an existing lesson
func AdminUpdateLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		VideoURL   string `json:"video_url"`
		Duration   int64  `json:"duration"`
		OrderIndex *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		lesson.Title = reqData.Title
	}
	if reqData.Content != "" {
		lesson.Content = reqData.Content
	}
	if reqData.VideoURL != "" {
		lesson.VideoURL = reqData.VideoURL
	}
	if reqData.Duration > 0 {
		lesson.Duration = reqData.Duration
	}
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	auditContentChange(userID, models.AuditContentLesson, lesson.ID, map[string]interface{}{"action": "update"})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminPublishLesson toggles a lesson's published flag. Publishing changes
// the course's lesson set, so every enrolled user's cached progress is
// recomputed.
func AdminPublishLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)
	publish := c.Locals("lessonPublish").(bool)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsPublished = publish
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	refreshCourseProgressForAll(lesson.CourseID)

	auditContentChange(userID, models.AuditContentLesson, lesson.ID, map[string]interface{}{"action": "publish", "published": publish})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft deletes a lesson and refreshes progress caches
func AdminDeleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	refreshCourseProgressForAll(lesson.CourseID)

	auditContentChange(userID, models.AuditContentLesson, lesson.ID, map[string]interface{}{"action": "delete"})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AdminListLessons lists a module's lessons in display order
func AdminListLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var lessons []courseModels.Lesson
	if err := database.Database.Db.Where("course_id = ? AND module_id = ? AND is_deleted = ?", courseID, moduleID, false).Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
		"total":   len(lessons),
	})
}

// refreshCourseProgressForAll recomputes cached progress for every active
// enrollment of a course after its lesson set changed
func refreshCourseProgressForAll(courseID uint) {
	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&enrollments).Error; err != nil {
		return
	}
	for _, e := range enrollments {
		recomputeCourseProgress(database.Database.Db, e.UserID, courseID)
	}
}
