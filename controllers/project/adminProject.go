package projectController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func auditProjectChange(actorID, projectID uint, fields map[string]interface{}) {
	raw, _ := json.Marshal(fields)
	database.Database.Db.Create(&models.AuditLog{
		ActorID:     actorID,
		Action:      models.AuditActionContent,
		ContentType: models.AuditContentProject,
		ContentID:   projectID,
		Details:     datatypes.JSON(raw),
	})
}

// AdminCreateProject creates a new unpublished project
func AdminCreateProject(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProject").(*struct {
		Title        string  `json:"title"`
		Slug         string  `json:"slug"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		Difficulty   string  `json:"difficulty"`
		ThumbnailURL string  `json:"thumbnail_url"`
		RepoURL      string  `json:"repo_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.Project
	if err := database.Database.Db.Where("slug = ?", reqData.Slug).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A project with this slug already exists!", nil)
	}

	project := models.Project{
		Title:        reqData.Title,
		Slug:         reqData.Slug,
		Description:  reqData.Description,
		Price:        reqData.Price,
		Difficulty:   reqData.Difficulty,
		ThumbnailURL: reqData.ThumbnailURL,
		RepoURL:      reqData.RepoURL,
	}
	if err := database.Database.Db.Create(&project).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create project!", nil)
	}

	auditProjectChange(userID, project.ID, map[string]interface{}{"action": "create", "title": project.Title})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Project created successfully!", project)
}

// AdminUpdateProject updates an existing project
func AdminUpdateProject(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	projectID := c.Locals("projectID").(int)

	var project models.Project
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", projectID, false).First(&project).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Project not found!", nil)
	}

	reqData, ok := c.Locals("validatedProjectUpdate").(*struct {
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		Difficulty   string  `json:"difficulty"`
		ThumbnailURL string  `json:"thumbnail_url"`
		RepoURL      string  `json:"repo_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		project.Title = reqData.Title
	}
	if reqData.Description != "" {
		project.Description = reqData.Description
	}
	if reqData.Price > 0 {
		project.Price = reqData.Price
	}
	if reqData.Difficulty != "" {
		project.Difficulty = reqData.Difficulty
	}
	if reqData.ThumbnailURL != "" {
		project.ThumbnailURL = reqData.ThumbnailURL
	}
	if reqData.RepoURL != "" {
		project.RepoURL = reqData.RepoURL
	}

	if err := database.Database.Db.Save(&project).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update project!", nil)
	}

	auditProjectChange(userID, project.ID, map[string]interface{}{"action": "update"})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Project updated successfully!", project)
}

// AdminPublishProject toggles a project's published flag
func AdminPublishProject(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	projectID := c.Locals("projectID").(int)
	publish := c.Locals("projectPublish").(bool)

	var project models.Project
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", projectID, false).First(&project).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Project not found!", nil)
	}

	project.IsPublished = publish
	if err := database.Database.Db.Save(&project).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update project!", nil)
	}

	auditProjectChange(userID, project.ID, map[string]interface{}{"action": "publish", "published": publish})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Project updated successfully!", project)
}

// AdminDeleteProject soft deletes a project
func AdminDeleteProject(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	projectID := c.Locals("projectID").(int)

	var project models.Project
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", projectID, false).First(&project).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Project not found!", nil)
	}

	project.IsDeleted = true
	if err := database.Database.Db.Save(&project).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete project!", nil)
	}

	auditProjectChange(userID, project.ID, map[string]interface{}{"action": "delete"})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Project deleted successfully!", nil)
}

// AdminListProjects lists all projects regardless of published state
func AdminListProjects(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Project{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var projects []models.Project
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&projects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch projects!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Projects fetched successfully!", fiber.Map{
		"projects": projects,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
