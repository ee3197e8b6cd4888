package adminValidator

import (
	"academy/middleware"
	"academy/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TargetUserID parses and validates the :userId route param
func TargetUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("userId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}
		c.Locals("targetUserID", id)
		return c.Next()
	}
}

// UpdateRoles validates a role-assignment body. Every role must be one
// of the known role keys and the set cannot be empty.
func UpdateRoles() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Roles       []string `json:"roles"`
			DefaultRole string   `json:"default_role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Roles) == 0 {
			errors["roles"] = "At least one role is required!"
		}
		for i, role := range reqData.Roles {
			role = strings.ToUpper(strings.TrimSpace(role))
			reqData.Roles[i] = role
			if role != models.RoleAdmin && role != models.RoleMentor && role != models.RoleStudent {
				errors["roles"] = "Roles must be ADMIN, MENTOR or STUDENT!"
			}
		}
		if reqData.DefaultRole != "" {
			reqData.DefaultRole = strings.ToUpper(strings.TrimSpace(reqData.DefaultRole))
			found := false
			for _, role := range reqData.Roles {
				if role == reqData.DefaultRole {
					found = true
				}
			}
			if !found {
				errors["default_role"] = "Default role must be one of the assigned roles!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRoles", reqData)
		return c.Next()
	}
}

// SetActive validates the activate/deactivate toggle body
func SetActive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Active *bool `json:"active"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Active == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"active": "Active flag is required!"})
		}

		c.Locals("targetUserActive", *reqData.Active)
		return c.Next()
	}
}

// PageID parses and validates the :pageId route param
func PageID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("pageId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid page id!", nil)
		}
		c.Locals("pageID", id)
		return c.Next()
	}
}

// AssetID parses and validates the :assetId route param
func AssetID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("assetId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid asset id!", nil)
		}
		c.Locals("assetID", id)
		return c.Next()
	}
}

// CreatePage validator middleware
func CreatePage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Slug        string `json:"slug"`
			Body        string `json:"body"`
			IsPublished bool   `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Slug == "" {
			errors["slug"] = "Slug is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPage", reqData)
		return c.Next()
	}
}

// UpdatePage validator middleware
func UpdatePage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Body        string `json:"body"`
			IsPublished *bool  `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedPageUpdate", reqData)
		return c.Next()
	}
}

// NavbarItem validator middleware
func NavbarItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ID         uint   `json:"id"`
			Label      string `json:"label"`
			URL        string `json:"url"`
			OrderIndex int    `json:"order_index"`
			IsVisible  bool   `json:"is_visible"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Label) == "" {
			errors["label"] = "Label is required!"
		}
		if strings.TrimSpace(reqData.URL) == "" {
			errors["url"] = "URL is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNavbarItem", reqData)
		return c.Next()
	}
}

// MediaAsset validator middleware
func MediaAsset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FileName  string `json:"file_name"`
			URL       string `json:"url"`
			MimeType  string `json:"mime_type"`
			SizeBytes int64  `json:"size_bytes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.FileName) == "" {
			errors["file_name"] = "File name is required!"
		}
		if strings.TrimSpace(reqData.URL) == "" {
			errors["url"] = "URL is required!"
		}
		if reqData.SizeBytes < 0 {
			errors["size_bytes"] = "Size cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMediaAsset", reqData)
		return c.Next()
	}
}

// FAQ validator middleware
func FAQ() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ID          uint   `json:"id"`
			Question    string `json:"question"`
			Answer      string `json:"answer"`
			OrderIndex  int    `json:"order_index"`
			IsPublished bool   `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Question) == "" {
			errors["question"] = "Question is required!"
		}
		if strings.TrimSpace(reqData.Answer) == "" {
			errors["answer"] = "Answer is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFAQ", reqData)
		return c.Next()
	}
}

// NavID parses and validates the :navId route param
func NavID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("navId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid navbar item id!", nil)
		}
		c.Locals("navID", id)
		return c.Next()
	}
}

// FAQID parses and validates the :faqId route param
func FAQID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("faqId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid FAQ id!", nil)
		}
		c.Locals("faqID", id)
		return c.Next()
	}
}
