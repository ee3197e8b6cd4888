package courseValidator

import (
	"academy/middleware"
	courseModels "academy/models/course"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseID parses and validates the :courseId route param
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("courseId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		c.Locals("courseID", id)
		return c.Next()
	}
}

// ModuleID parses and validates the :moduleId route param
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("moduleId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}
		c.Locals("moduleID", id)
		return c.Next()
	}
}

// LessonID parses and validates the :lessonId route param
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("lessonId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
		}
		c.Locals("lessonID", id)
		return c.Next()
	}
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string  `json:"title"`
			Slug         string  `json:"slug"`
			Description  string  `json:"description"`
			Author       string  `json:"author"`
			Category     string  `json:"category"`
			Price        float64 `json:"price"`
			Duration     int64   `json:"duration"`
			ThumbnailURL string  `json:"thumbnail_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if !isValidSlug(reqData.Slug) {
			errors["slug"] = "Slug must contain only lowercase letters, digits and hyphens!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware. All fields optional; the slug is
// immutable once created.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string  `json:"title"`
			Description  string  `json:"description"`
			Author       string  `json:"author"`
			Category     string  `json:"category"`
			Price        float64 `json:"price"`
			Duration     int64   `json:"duration"`
			ThumbnailURL string  `json:"thumbnail_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Price < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"price": "Price cannot be negative!"})
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// PublishCourse validates the lifecycle status transition body
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		status := strings.ToUpper(strings.TrimSpace(reqData.Status))
		if status != courseModels.StatusDraft && status != courseModels.StatusPublished && status != courseModels.StatusArchived {
			return middleware.ValidationErrorResponse(c, map[string]string{"status": "Status must be DRAFT, PUBLISHED or ARCHIVED!"})
		}

		c.Locals("courseStatus", status)
		return c.Next()
	}
}

// CreateModule validator middleware
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title must be at least 3 characters long!"})
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validator middleware
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  *int   `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// CreateLesson validator middleware
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title"`
			Slug       string `json:"slug"`
			Content    string `json:"content"`
			VideoURL   string `json:"video_url"`
			Duration   int64  `json:"duration"`
			OrderIndex int    `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Slug != "" && !isValidSlug(reqData.Slug) {
			errors["slug"] = "Slug must contain only lowercase letters, digits and hyphens!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validator middleware
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title"`
			Content    string `json:"content"`
			VideoURL   string `json:"video_url"`
			Duration   int64  `json:"duration"`
			OrderIndex *int   `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// PublishLesson validates the publish-toggle body
func PublishLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Published *bool `json:"published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Published == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"published": "Published flag is required!"})
		}

		c.Locals("lessonPublish", *reqData.Published)
		return c.Next()
	}
}

func isValidSlug(slug string) bool {
	if slug == "" || len(slug) > 120 {
		return false
	}
	for _, r := range slug {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			return false
		}
	}
	return true
}
