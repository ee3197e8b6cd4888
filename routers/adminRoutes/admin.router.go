package adminRoutes

import (
	adminControllers "academy/controllers/admin"
	"academy/middleware"
	"academy/models"
	adminValidators "academy/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up user management, the CMS and the audit trail
func SetupAdminRoutes(app *fiber.App) {
	// User management, dashboard and audit are admin only
	adminGroup := app.Group("/api/admin",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
	)

	adminGroup.Get("/dashboard", adminControllers.DashboardStats)
	adminGroup.Get("/audit-logs", adminControllers.ListAuditLogs)

	adminGroup.Get("/users", adminControllers.ListUsers)
	adminGroup.Patch("/users/:userId/roles", adminValidators.TargetUserID(), adminValidators.UpdateRoles(), adminControllers.UpdateUserRoles)
	adminGroup.Patch("/users/:userId/active", adminValidators.TargetUserID(), adminValidators.SetActive(), adminControllers.DeactivateUser)

	// CMS surfaces are shared with mentors
	cmsGroup := app.Group("/api/admin/content",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleMentor),
	)

	cmsGroup.Get("/pages", adminControllers.ListPages)
	cmsGroup.Post("/pages", adminValidators.CreatePage(), adminControllers.CreatePage)
	cmsGroup.Patch("/pages/:pageId", adminValidators.PageID(), adminValidators.UpdatePage(), adminControllers.UpdatePage)
	cmsGroup.Delete("/pages/:pageId", adminValidators.PageID(), adminControllers.DeletePage)

	cmsGroup.Put("/navbar", adminValidators.NavbarItem(), adminControllers.UpsertNavbarItem)
	cmsGroup.Delete("/navbar/:navId", adminValidators.NavID(), adminControllers.DeleteNavbarItem)
	cmsGroup.Put("/faqs", adminValidators.FAQ(), adminControllers.UpsertFAQ)
	cmsGroup.Delete("/faqs/:faqId", adminValidators.FAQID(), adminControllers.DeleteFAQ)

	cmsGroup.Get("/media", adminControllers.ListMediaAssets)
	cmsGroup.Post("/media", adminValidators.MediaAsset(), adminControllers.RegisterMediaAsset)
	cmsGroup.Delete("/media/:assetId", adminValidators.AssetID(), adminControllers.DeleteMediaAsset)

	// Public content endpoints
	app.Get("/api/pages/:slug", adminControllers.GetPublicPage)
	app.Get("/api/navbar", adminControllers.GetNavbar)
	app.Get("/api/faqs", adminControllers.GetPublicFAQs)
}
