package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CreatePage creates a CMS page
func CreatePage(c *fiber.Ctx) error {
	actorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPage").(*struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Body        string `json:"body"`
		IsPublished bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.Page
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", reqData.Slug, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A page with this slug already exists!", nil)
	}

	page := models.Page{
		Title:       reqData.Title,
		Slug:        reqData.Slug,
		Body:        reqData.Body,
		IsPublished: reqData.IsPublished,
	}
	if err := database.Database.Db.Create(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create page!", nil)
	}

	auditCmsChange(actorID, models.AuditContentPage, page.ID, "create")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Page created successfully!", page)
}

// UpdatePage updates an existing CMS page
func UpdatePage(c *fiber.Ctx) error {
	actorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pageID := c.Locals("pageID").(int)

	var page models.Page
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", pageID, false).First(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Page not found!", nil)
	}

	reqData, ok := c.Locals("validatedPageUpdate").(*struct {
		Title       string `json:"title"`
		Body        string `json:"body"`
		IsPublished *bool  `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		page.Title = reqData.Title
	}
	if reqData.Body != "" {
		page.Body = reqData.Body
	}
	if reqData.IsPublished != nil {
		page.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update page!", nil)
	}

	auditCmsChange(actorID, models.AuditContentPage, page.ID, "update")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Page updated successfully!", page)
}

// DeletePage soft deletes a CMS page
func DeletePage(c *fiber.Ctx) error {
	actorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pageID := c.Locals("pageID").(int)

	var page models.Page
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", pageID, false).First(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Page not found!", nil)
	}

	page.IsDeleted = true
	if err := database.Database.Db.Save(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete page!", nil)
	}

	auditCmsChange(actorID, models.AuditContentPage, page.ID, "delete")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Page deleted successfully!", nil)
}

// ListPages lists all CMS pages for the admin editor
func ListPages(c *fiber.Ctx) error {
	var pages []models.Page
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Find(&pages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pages!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pages fetched successfully!", fiber.Map{
		"pages": pages,
		"total": len(pages),
	})
}

// GetPublicPage serves a published CMS page by slug
func GetPublicPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Page slug is required!", nil)
	}

	var page models.Page
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ? AND is_published = ?", slug, false, true).First(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Page not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Page fetched successfully!", page)
}

// UpsertNavbarItem creates or updates one navbar entry
func UpsertNavbarItem(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedNavbarItem").(*struct {
		ID         uint   `json:"id"`
		Label      string `json:"label"`
		URL        string `json:"url"`
		OrderIndex int    `json:"order_index"`
		IsVisible  bool   `json:"is_visible"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var item models.NavbarItem
	if reqData.ID != 0 {
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.ID, false).First(&item).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Navbar item not found!", nil)
		}
	}

	item.Label = reqData.Label
	item.URL = reqData.URL
	item.OrderIndex = reqData.OrderIndex
	item.IsVisible = reqData.IsVisible

	if err := database.Database.Db.Save(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save navbar item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Navbar item saved successfully!", item)
}

// GetNavbar returns visible navbar items in display order
func GetNavbar(c *fiber.Ctx) error {
	var items []models.NavbarItem
	if err := database.Database.Db.Where("is_deleted = ? AND is_visible = ?", false, true).Order("order_index asc").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch navbar!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Navbar fetched successfully!", items)
}

// RegisterMediaAsset records an uploaded media file's metadata
func RegisterMediaAsset(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedMediaAsset").(*struct {
		FileName  string `json:"file_name"`
		URL       string `json:"url"`
		MimeType  string `json:"mime_type"`
		SizeBytes int64  `json:"size_bytes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	asset := models.MediaAsset{
		FileName:   reqData.FileName,
		URL:        reqData.URL,
		MimeType:   reqData.MimeType,
		SizeBytes:  reqData.SizeBytes,
		UploadedBy: userID,
	}
	if err := database.Database.Db.Create(&asset).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register media asset!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Media asset registered successfully!", asset)
}

// ListMediaAssets pages through the media library
func ListMediaAssets(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 24)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 24
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.MediaAsset{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var assets []models.MediaAsset
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&assets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch media assets!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Media assets fetched successfully!", fiber.Map{
		"assets": assets,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// DeleteMediaAsset soft deletes a media library entry
func DeleteMediaAsset(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assetID := c.Locals("assetID").(int)

	var asset models.MediaAsset
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assetID, false).First(&asset).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Media asset not found!", nil)
	}

	asset.IsDeleted = true
	if err := database.Database.Db.Save(&asset).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete media asset!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Media asset deleted successfully!", nil)
}

// UpsertFAQ creates or updates one FAQ entry
func UpsertFAQ(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedFAQ").(*struct {
		ID          uint   `json:"id"`
		Question    string `json:"question"`
		Answer      string `json:"answer"`
		OrderIndex  int    `json:"order_index"`
		IsPublished bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var faq models.FAQ
	if reqData.ID != 0 {
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.ID, false).First(&faq).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "FAQ not found!", nil)
		}
	}

	faq.Question = reqData.Question
	faq.Answer = reqData.Answer
	faq.OrderIndex = reqData.OrderIndex
	faq.IsPublished = reqData.IsPublished

	if err := database.Database.Db.Save(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save FAQ!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQ saved successfully!", faq)
}

// GetPublicFAQs returns published FAQs in display order
func GetPublicFAQs(c *fiber.Ctx) error {
	var faqs []models.FAQ
	if err := database.Database.Db.Where("is_deleted = ? AND is_published = ?", false, true).Order("order_index asc").Find(&faqs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch FAQs!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQs fetched successfully!", faqs)
}

func auditCmsChange(actorID uint, contentType string, contentID uint, action string) {
	raw, _ := json.Marshal(map[string]interface{}{"action": action})
	database.Database.Db.Create(&models.AuditLog{
		ActorID:     actorID,
		Action:      models.AuditActionContent,
		ContentType: contentType,
		ContentID:   contentID,
		Details:     datatypes.JSON(raw),
	})
}

// DeleteNavbarItem soft deletes one navbar entry
func DeleteNavbarItem(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	navID := c.Locals("navID").(int)

	var item models.NavbarItem
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", navID, false).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Navbar item not found!", nil)
	}

	item.IsDeleted = true
	if err := database.Database.Db.Save(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete navbar item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Navbar item deleted successfully!", nil)
}

// DeleteFAQ soft deletes one FAQ entry
func DeleteFAQ(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	faqID := c.Locals("faqID").(int)

	var faq models.FAQ
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", faqID, false).First(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "FAQ not found!", nil)
	}

	faq.IsDeleted = true
	if err := database.Database.Db.Save(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete FAQ!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQ deleted successfully!", nil)
}
