package projectValidator

import (
	"academy/middleware"
	"academy/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidItemType(itemType string) bool {
	return itemType == models.ItemTypeProject || itemType == models.ItemTypeCourse
}

// UnlockRequest validator middleware
func UnlockRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ItemID   uint   `json:"item_id"`
			ItemType string `json:"item_type"`
			ProofURL string `json:"proof_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ItemID == 0 {
			errors["item_id"] = "Item id is required!"
		}
		reqData.ItemType = strings.ToUpper(strings.TrimSpace(reqData.ItemType))
		if !isValidItemType(reqData.ItemType) {
			errors["item_type"] = "Item type must be PROJECT or COURSE!"
		}
		if !strings.HasPrefix(reqData.ProofURL, "http://") && !strings.HasPrefix(reqData.ProofURL, "https://") {
			errors["proof_url"] = "A valid proof URL is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUnlockRequest", reqData)
		return c.Next()
	}
}

// UnlockLookup reads the item reference from query params
func UnlockLookup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ItemID   uint   `json:"item_id"`
			ItemType string `json:"item_type"`
		})

		itemID := c.QueryInt("item_id")
		reqData.ItemID = uint(itemID)
		reqData.ItemType = strings.ToUpper(strings.TrimSpace(c.Query("item_type")))

		errors := make(map[string]string)
		if itemID < 1 {
			errors["item_id"] = "Item id is required!"
		}
		if !isValidItemType(reqData.ItemType) {
			errors["item_type"] = "Item type must be PROJECT or COURSE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUnlockLookup", reqData)
		return c.Next()
	}
}

// ProjectID parses and validates the :projectId route param
func ProjectID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("projectId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid project id!", nil)
		}
		c.Locals("projectID", id)
		return c.Next()
	}
}

// CreateProject validator middleware
func CreateProject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string  `json:"title"`
			Slug         string  `json:"slug"`
			Description  string  `json:"description"`
			Price        float64 `json:"price"`
			Difficulty   string  `json:"difficulty"`
			ThumbnailURL string  `json:"thumbnail_url"`
			RepoURL      string  `json:"repo_url"`
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
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProject", reqData)
		return c.Next()
	}
}

// UpdateProject validator middleware
func UpdateProject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string  `json:"title"`
			Description  string  `json:"description"`
			Price        float64 `json:"price"`
			Difficulty   string  `json:"difficulty"`
			ThumbnailURL string  `json:"thumbnail_url"`
			RepoURL      string  `json:"repo_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Price < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"price": "Price cannot be negative!"})
		}

		c.Locals("validatedProjectUpdate", reqData)
		return c.Next()
	}
}

// PublishProject validates the publish-toggle body
func PublishProject() fiber.Handler {
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

		c.Locals("projectPublish", *reqData.Published)
		return c.Next()
	}
}
