package courseRoutes

import (
	controllers "academy/controllers/course"
	"academy/middleware"
	"academy/models"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the course CMS. Mentors share the
// content-editor surface with admins.
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin/courses",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleMentor),
	)

	adminGroup.Get("/", controllers.AdminGetAllCourses)
	adminGroup.Post("/", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Patch("/:courseId", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Patch("/:courseId/status", validators.CourseID(), validators.PublishCourse(), controllers.AdminPublishCourse)
	adminGroup.Delete("/:courseId", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Get("/:courseId/enrollments", validators.CourseID(), controllers.AdminGetCourseEnrollments)

	// Modules
	adminGroup.Get("/:courseId/modules", validators.CourseID(), controllers.AdminListModules)
	adminGroup.Post("/:courseId/modules", validators.CourseID(), validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Patch("/:courseId/modules/:moduleId", validators.CourseID(), validators.ModuleID(), validators.UpdateModule(), controllers.AdminUpdateModule)
	adminGroup.Delete("/:courseId/modules/:moduleId", validators.CourseID(), validators.ModuleID(), controllers.AdminDeleteModule)

	// Lessons
	adminGroup.Get("/:courseId/modules/:moduleId/lessons", validators.CourseID(), validators.ModuleID(), controllers.AdminListLessons)
	adminGroup.Post("/:courseId/modules/:moduleId/lessons", validators.CourseID(), validators.ModuleID(), validators.CreateLesson(), controllers.AdminCreateLesson)

	lessonGroup := app.Group("/api/admin/lessons",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleMentor),
	)
	lessonGroup.Patch("/:lessonId", validators.LessonID(), validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Patch("/:lessonId/publish", validators.LessonID(), validators.PublishLesson(), controllers.AdminPublishLesson)
	lessonGroup.Delete("/:lessonId", validators.LessonID(), controllers.AdminDeleteLesson)
}
