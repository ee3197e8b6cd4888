package projectRoutes

import (
	projectControllers "academy/controllers/project"
	"academy/middleware"
	"academy/models"
	projectValidators "academy/validators/project"

	"github.com/gofiber/fiber/v2"
)

func SetupProjectRoutes(app *fiber.App) {
	projectGroup := app.Group("/api/projects")

	projectGroup.Get("/", projectControllers.GetAllProjects)
	projectGroup.Get("/:slug", projectControllers.GetProjectDetails)

	unlockGroup := app.Group("/api/unlock", middleware.JWTMiddleware)
	unlockGroup.Post("/", projectValidators.UnlockRequest(), projectControllers.SubmitUnlockRequest)
	unlockGroup.Get("/status", projectValidators.UnlockLookup(), projectControllers.GetUnlockStatus)

	adminGroup := app.Group("/api/admin/projects",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleMentor),
	)
	adminGroup.Get("/", projectControllers.AdminListProjects)
	adminGroup.Post("/", projectValidators.CreateProject(), projectControllers.AdminCreateProject)
	adminGroup.Patch("/:projectId", projectValidators.ProjectID(), projectValidators.UpdateProject(), projectControllers.AdminUpdateProject)
	adminGroup.Patch("/:projectId/publish", projectValidators.ProjectID(), projectValidators.PublishProject(), projectControllers.AdminPublishProject)
	adminGroup.Delete("/:projectId", projectValidators.ProjectID(), projectControllers.AdminDeleteProject)
}
