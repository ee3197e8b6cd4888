package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func auditContentChange(actorID uint, contentType string, contentID uint, fields map[string]interface{}) {
	raw, _ := json.Marshal(fields)
	database.Database.Db.Create(&models.AuditLog{
		ActorID:     actorID,
		Action:      models.AuditActionContent,
		ContentType: contentType,
		ContentID:   contentID,
		Details:     datatypes.JSON(raw),
	})
}

// AdminCreateCourse creates a new course in DRAFT state
func AdminCreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string  `json:"title"`
		Slug         string  `json:"slug"`
		Description  string  `json:"description"`
		Author       string  `json:"author"`
		Category     string  `json:"category"`
		Price        float64 `json:"price"`
		Duration     int64   `json:"duration"`
		ThumbnailURL string  `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing courseModels.Course
	if err := database.Database.Db.Where("slug = ?", reqData.Slug).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this slug already exists!", nil)
	}

	crs := courseModels.Course{
		Title:        reqData.Title,
		Slug:         reqData.Slug,
		Description:  reqData.Description,
		Author:       reqData.Author,
		Category:     reqData.Category,
		Price:        reqData.Price,
		Duration:     reqData.Duration,
		ThumbnailURL: reqData.ThumbnailURL,
		Status:       courseModels.StatusDraft,
	}

	if err := database.Database.Db.Create(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	auditContentChange(userID, models.AuditContentCourse, crs.ID, map[string]interface{}{"action": "create", "title": crs.Title})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", crs)
}

// AdminUpdateCourse updates an existing course
func AdminUpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		Author       string  `json:"author"`
		Category     string  `json:"category"`
		Price        float64 `json:"price"`
		Duration     int64   `json:"duration"`
		ThumbnailURL string  `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		crs.Title = reqData.Title
	}
	if reqData.Description != "" {
		crs.Description = reqData.Description
	}
	if reqData.Author != "" {
		crs.Author = reqData.Author
	}
	if reqData.Category != "" {
		crs.Category = reqData.Category
	}
	if reqData.Price > 0 {
		crs.Price = reqData.Price
	}
	if reqData.Duration > 0 {
		crs.Duration = reqData.Duration
	}
	if reqData.ThumbnailURL != "" {
		crs.ThumbnailURL = reqData.ThumbnailURL
	}

	if err := database.Database.Db.Save(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	auditContentChange(userID, models.AuditContentCourse, crs.ID, map[string]interface{}{"action": "update"})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// AdminPublishCourse moves a course through its lifecycle:
// DRAFT/ARCHIVED -> PUBLISHED or PUBLISHED -> ARCHIVED
func AdminPublishCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	targetStatus := c.Locals("courseStatus").(string)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	previous := crs.Status
	crs.Status = targetStatus
	if err := database.Database.Db.Save(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course status!", nil)
	}

	auditContentChange(userID, models.AuditContentCourse, crs.ID, map[string]interface{}{
		"action":   "status_change",
		"previous": previous,
		"next":     crs.Status,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course status updated successfully!", crs)
}

// AdminDeleteCourse soft deletes a course
func AdminDeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	crs.IsDeleted = true
	if err := database.Database.Db.Save(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	auditContentChange(userID, models.AuditContentCourse, crs.ID, map[string]interface{}{"action": "delete"})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all courses regardless of status
func AdminGetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetCourseEnrollments lists enrollments for one course with user info
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		var user models.User
		database.Database.Db.Where("id = ?", e.UserID).First(&user)
		result[i] = EnrollmentWithUser{
			Enrollment: e,
			UserName:   user.Name,
			UserEmail:  user.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"course":      crs.Title,
		"enrollments": result,
		"total":       len(result),
	})
}
