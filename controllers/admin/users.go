package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func auditUserChange(actorID, userID uint, fields map[string]interface{}) {
	raw, _ := json.Marshal(fields)
	database.Database.Db.Create(&models.AuditLog{
		ActorID:     actorID,
		Action:      models.AuditActionUser,
		ContentType: models.AuditContentUser,
		ContentID:   userID,
		Details:     datatypes.JSON(raw),
	})
}

// ListUsers lists users for the admin user-management screen
func ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)

	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if role := c.Query("role"); role != "" {
		db = db.Where("roles LIKE ?", "%"+role+"%")
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateUserRoles replaces a user's role set and default role
func UpdateUserRoles(c *fiber.Ctx) error {
	actorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	reqData, ok := c.Locals("validatedRoles").(*struct {
		Roles       []string `json:"roles"`
		DefaultRole string   `json:"default_role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	previousRoles := user.Roles
	user.Roles = strings.Join(reqData.Roles, ",")
	if reqData.DefaultRole != "" {
		user.DefaultRole = reqData.DefaultRole
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user roles!", nil)
	}

	auditUserChange(actorID, user.ID, map[string]interface{}{
		"action":   "roles_update",
		"previous": previousRoles,
		"next":     user.Roles,
	})

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User roles updated successfully!", user)
}

// DeactivateUser soft-deactivates a user account. Users are never
// physically deleted for referential reasons.
func DeactivateUser(c *fiber.Ctx) error {
	actorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if uint(targetID) == actorID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot deactivate your own account!", nil)
	}

	active := c.Locals("targetUserActive").(bool)
	user.IsActive = active
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	auditUserChange(actorID, user.ID, map[string]interface{}{"action": "set_active", "active": active})

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}
