package controllers

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses for the public catalog, with
// optional search and category filter
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 12)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	offset := (page - 1) * limit

	search := c.Query("q")
	category := c.Query("category")

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND status = ?", false, courseModels.StatusPublished)

	if search != "" {
		like := "%" + search + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// ModuleWithLessons groups a course module with its published lessons
type ModuleWithLessons struct {
	courseModels.Module
	Lessons []courseModels.Lesson `json:"lessons"`
}

// GetCourseDetails returns a published course with its modules and
// published lessons, ordered for display
func GetCourseDetails(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
	}

	var crs courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ? AND status = ?", slug, false, courseModels.StatusPublished).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", crs.ID, false).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course modules!", nil)
	}

	result := make([]ModuleWithLessons, len(modules))
	for i, m := range modules {
		result[i] = ModuleWithLessons{Module: m}
		database.Database.Db.
			Where("module_id = ? AND is_deleted = ? AND is_published = ?", m.ID, false, true).
			Order("order_index asc").
			Find(&result[i].Lessons)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":  crs,
		"modules": result,
	})
}

// SearchResult is one row of the combined catalog search
type SearchResult struct {
	Type         string  `json:"type"` // COURSE, PROJECT
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	ThumbnailURL string  `json:"thumbnail_url"`
}

// SearchCatalog searches published courses and projects by title or
// description in one call
func SearchCatalog(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Search query is required!", nil)
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	like := "%" + query + "%"

	var courses []courseModels.Course
	database.Database.Db.
		Where("is_deleted = ? AND status = ?", false, courseModels.StatusPublished).
		Where("title LIKE ? OR description LIKE ?", like, like).
		Limit(limit).
		Find(&courses)

	var projects []models.Project
	database.Database.Db.
		Where("is_deleted = ? AND is_published = ?", false, true).
		Where("title LIKE ? OR description LIKE ?", like, like).
		Limit(limit).
		Find(&projects)

	results := make([]SearchResult, 0, len(courses)+len(projects))
	for _, crs := range courses {
		results = append(results, SearchResult{
			Type:         "COURSE",
			Title:        crs.Title,
			Slug:         crs.Slug,
			Description:  crs.Description,
			Price:        crs.Price,
			ThumbnailURL: crs.ThumbnailURL,
		})
	}
	for _, project := range projects {
		results = append(results, SearchResult{
			Type:         "PROJECT",
			Title:        project.Title,
			Slug:         project.Slug,
			Description:  project.Description,
			Price:        project.Price,
			ThumbnailURL: project.ThumbnailURL,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search completed successfully!", fiber.Map{
		"results": results,
		"total":   len(results),
	})
}
