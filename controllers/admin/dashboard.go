package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"

	"github.com/gofiber/fiber/v2"
)

// DashboardStats aggregates counts for the admin dashboard
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalCourses, publishedCourses, totalEnrollments, completedEnrollments, totalCertificates int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND status = ?", false, courseModels.StatusPublished).Count(&publishedCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND status = ?", false, courseModels.EnrollmentCompleted).Count(&completedEnrollments)
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&totalCertificates)

	// Pending unlock requests need a metadata parse, counts can't be a
	// plain SQL aggregate
	var savedItems []models.SavedItem
	db.Where("is_deleted = ?", false).Find(&savedItems)
	pendingUnlocks := 0
	for _, item := range savedItems {
		if meta := models.ParseUnlockMetadata(item.Metadata); meta != nil && meta.Status == models.UnlockStatusPending {
			pendingUnlocks++
		}
	}

	var recentActivity []models.ActivityLog
	db.Order("created_at desc").Limit(10).Find(&recentActivity)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total": totalUsers,
		},
		"courses": fiber.Map{
			"total":     totalCourses,
			"published": publishedCourses,
		},
		"enrollments": fiber.Map{
			"total":     totalEnrollments,
			"completed": completedEnrollments,
		},
		"certificates":    totalCertificates,
		"pending_unlocks": pendingUnlocks,
		"recent_activity": recentActivity,
	})
}

// ListAuditLogs pages through the append-only audit trail
func ListAuditLogs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.AuditLog{})
	if action := c.Query("action"); action != "" {
		db = db.Where("action = ?", action)
	}

	var total int64
	db.Count(&total)

	var logs []models.AuditLog
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&logs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit logs fetched successfully!", fiber.Map{
		"logs": logs,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
