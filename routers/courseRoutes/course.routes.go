package courseRoutes

import (
	controllers "academy/controllers/course"
	"academy/middleware"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the catalog and student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	// Catalog (published courses only)
	courseGroup.Get("/", controllers.GetAllCourses)
	courseGroup.Get("/:slug", controllers.GetCourseDetails)

	// Enrollment and progress
	courseGroup.Post("/:courseId/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)

	lessonGroup := app.Group("/api/lessons")
	lessonGroup.Post("/:lessonId/complete", middleware.JWTMiddleware, validators.LessonID(), controllers.MarkLessonCompleted)

	// Student dashboard surfaces
	userGroup := app.Group("/api/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Public certificate verification, no auth on purpose
	app.Get("/api/certificates/verify/:number", controllers.VerifyCertificate)

	// Combined catalog search across courses and projects
	app.Get("/api/search", controllers.SearchCatalog)
}
