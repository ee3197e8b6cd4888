package projectController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetAllProjects lists published projects for the public catalog
func GetAllProjects(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 12)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Project{}).Where("is_deleted = ? AND is_published = ?", false, true)

	if difficulty := c.Query("difficulty"); difficulty != "" {
		db = db.Where("difficulty = ?", difficulty)
	}
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

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

// GetProjectDetails returns a single published project by slug
func GetProjectDetails(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Project slug is required!", nil)
	}

	var project models.Project
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ? AND is_published = ?", slug, false, true).First(&project).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Project not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Project fetched successfully!", project)
}

// SubmitUnlockRequest records a purchase-verification request for a paid
// project or course. An existing pending or approved request for the same
// item blocks resubmission; a rejected one starts a new pending cycle in
// place.
func SubmitUnlockRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedUnlockRequest").(*struct {
		ItemID   uint   `json:"item_id"`
		ItemType string `json:"item_type"`
		ProofURL string `json:"proof_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	now := time.Now().UTC().Format(time.RFC3339)
	meta := &models.UnlockMetadata{
		Status:      models.UnlockStatusPending,
		ProofURL:    reqData.ProofURL,
		SubmittedAt: now,
		Source:      "manual",
	}

	var item models.SavedItem
	err := db.Where("user_id = ? AND item_id = ? AND item_type = ? AND is_deleted = ?", userID, reqData.ItemID, reqData.ItemType, false).First(&item).Error
	if err == nil {
		existing := models.ParseUnlockMetadata(item.Metadata)
		if existing != nil {
			if existing.Status == models.UnlockStatusPending {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Unlock request already pending!", nil)
			}
			if existing.Status == models.UnlockStatusApproved {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Item already unlocked!", nil)
			}
		}
		// Rejected (or unreadable) metadata: overwrite with a fresh pending cycle
		item.Metadata = models.MarshalUnlockMetadata(meta)
		if err := db.Save(&item).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit unlock request!", nil)
		}
	} else {
		item = models.SavedItem{
			UserID:   userID,
			ItemID:   reqData.ItemID,
			ItemType: reqData.ItemType,
			OrderRef: uuid.NewString(),
			Metadata: models.MarshalUnlockMetadata(meta),
		}
		if err := db.Create(&item).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit unlock request!", nil)
		}
	}

	db.Create(&models.ActivityLog{
		UserID:  userID,
		Type:    models.ActivityUnlockRequest,
		Message: "Submitted payment proof for verification",
		Data:    item.Metadata,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Unlock request submitted successfully!", fiber.Map{
		"order_ref": item.OrderRef,
		"status":    models.UnlockStatusPending,
	})
}

// GetUnlockStatus reports the state of the current user's unlock request
// for one item
func GetUnlockStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUnlockLookup").(*struct {
		ItemID   uint   `json:"item_id"`
		ItemType string `json:"item_type"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var item models.SavedItem
	if err := database.Database.Db.Where("user_id = ? AND item_id = ? AND item_type = ? AND is_deleted = ?", userID, reqData.ItemID, reqData.ItemType, false).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No unlock request found.", fiber.Map{
			"status": nil,
		})
	}

	meta := models.ParseUnlockMetadata(item.Metadata)
	if meta == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No unlock request found.", fiber.Map{
			"status": nil,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unlock status fetched successfully!", fiber.Map{
		"order_ref":    item.OrderRef,
		"status":       meta.Status,
		"submitted_at": meta.SubmittedAt,
		"verified_at":  meta.VerifiedAt,
		"notes":        meta.Notes,
	})
}
