package paymentController

import (
	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/utils"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Unlock decision errors surfaced to the handler
var (
	ErrRequestNotFound = errors.New("Payment request not found")
	ErrInvalidStatus   = errors.New("Status must be approved or rejected")
)

// PaymentRequestDto is the admin UI's view of one unlock request
type PaymentRequestDto struct {
	ID          uint      `json:"id"`
	OrderRef    string    `json:"order_ref"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	ItemType    string    `json:"item_type"`
	ItemID      uint      `json:"item_id"`
	ItemTitle   string    `json:"item_title"`
	ItemSlug    string    `json:"item_slug"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	ProofURL    string    `json:"proof_url"`
	SubmittedAt string    `json:"submitted_at"`
	VerifiedAt  string    `json:"verified_at"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func buildPaymentRequestDto(db *gorm.DB, item models.SavedItem) (PaymentRequestDto, bool) {
	meta := models.ParseUnlockMetadata(item.Metadata)
	if meta == nil {
		return PaymentRequestDto{}, false
	}

	dto := PaymentRequestDto{
		ID:          item.ID,
		OrderRef:    item.OrderRef,
		ItemType:    item.ItemType,
		ItemID:      item.ItemID,
		Status:      meta.Status,
		ProofURL:    meta.ProofURL,
		SubmittedAt: meta.SubmittedAt,
		VerifiedAt:  meta.VerifiedAt,
		Notes:       meta.Notes,
		CreatedAt:   item.CreatedAt,
	}

	var user models.User
	if err := db.Where("id = ?", item.UserID).First(&user).Error; err == nil {
		dto.UserName = user.Name
		dto.UserEmail = user.Email
	}

	switch item.ItemType {
	case models.ItemTypeCourse:
		var crs courseModels.Course
		if err := db.Where("id = ?", item.ItemID).First(&crs).Error; err == nil {
			dto.ItemTitle = crs.Title
			dto.ItemSlug = crs.Slug
			dto.Amount = crs.Price
		}
	case models.ItemTypeProject:
		var project models.Project
		if err := db.Where("id = ?", item.ItemID).First(&project).Error; err == nil {
			dto.ItemTitle = project.Title
			dto.ItemSlug = project.Slug
			dto.Amount = project.Price
		}
	}

	return dto, true
}

// GetPaymentRequests lists unlock requests for the admin review queue.
// Rows whose metadata does not parse to a known status are skipped.
func GetPaymentRequests(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if itemType := c.Query("item_type"); itemType != "" {
		query = query.Where("item_type = ?", itemType)
	}

	var items []models.SavedItem
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payment requests!", nil)
	}

	statusFilter := c.Query("status")

	data := make([]PaymentRequestDto, 0, len(items))
	for _, item := range items {
		dto, ok := buildPaymentRequestDto(db, item)
		if !ok {
			continue
		}
		if statusFilter != "" && dto.Status != statusFilter {
			continue
		}
		data = append(data, dto)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment requests fetched successfully!", fiber.Map{
		"requests": data,
		"total":    len(data),
	})
}

// ApplyUnlockDecision transitions one unlock request: pending -> approved
// or pending -> rejected. Metadata is merged and overwritten in place;
// the full before/after snapshot goes to the audit log. Approving a
// COURSE item also upserts an enrollment and a zeroed progress row so the
// buyer's "My Courses" view reflects access immediately — both upserts
// are guarded by the unique (user, course) constraints, which makes a
// double approval idempotent.
func ApplyUnlockDecision(db *gorm.DB, verifierID, requestID uint, status, adminNotes string) (*models.SavedItem, error) {
	if status != models.UnlockStatusApproved && status != models.UnlockStatusRejected {
		return nil, ErrInvalidStatus
	}

	var item models.SavedItem
	if err := db.Where("id = ? AND is_deleted = ?", requestID, false).First(&item).Error; err != nil {
		return nil, ErrRequestNotFound
	}

	previous := models.ParseUnlockMetadata(item.Metadata)
	if previous == nil {
		previous = &models.UnlockMetadata{Status: models.UnlockStatusPending}
	}

	nowIso := time.Now().UTC().Format(time.RFC3339)

	next := *previous
	next.Status = status
	next.VerifiedAt = nowIso
	next.VerifierID = verifierID
	if adminNotes != "" {
		next.Notes = adminNotes
	}
	if next.SubmittedAt == "" {
		next.SubmittedAt = nowIso
	}
	if next.Source == "" {
		next.Source = "manual"
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	item.Metadata = models.MarshalUnlockMetadata(&next)
	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if item.ItemType == models.ItemTypeCourse && status == models.UnlockStatusApproved {
		var enrollment courseModels.Enrollment
		err := tx.Where("user_id = ? AND course_id = ?", item.UserID, item.ItemID).First(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			enrollment = courseModels.Enrollment{
				UserID:    item.UserID,
				CourseID:  item.ItemID,
				Status:    courseModels.EnrollmentActive,
				StartedAt: time.Now(),
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		} else if err != nil {
			tx.Rollback()
			return nil, err
		}

		var progress courseModels.CourseProgress
		err = tx.Where("user_id = ? AND course_id = ?", item.UserID, item.ItemID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var totalLessons int64
			tx.Model(&courseModels.Lesson{}).
				Where("course_id = ? AND is_deleted = ? AND is_published = ?", item.ItemID, false, true).
				Count(&totalLessons)
			progress = courseModels.CourseProgress{
				UserID:       item.UserID,
				CourseID:     item.ItemID,
				TotalLessons: int(totalLessons),
			}
			if err := tx.Create(&progress).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		} else if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	details := map[string]interface{}{
		"kind":             "payment_request",
		"paymentRequestId": item.ID,
		"status":           status,
		"previous":         previous,
		"next":             next,
		"adminNotes":       adminNotes,
	}

	// Optional gateway cross-check, informational only
	if config.AppConfig.GatewayApiURL != "" {
		if gw, err := utils.CheckGatewayOrder(item.OrderRef); err == nil {
			details["gateway"] = gw
		} else {
			log.Printf("Gateway order lookup failed for %s: %v", item.OrderRef, err)
		}
	}

	raw, _ := json.Marshal(details)
	if err := tx.Create(&models.AuditLog{
		ActorID:     verifierID,
		Action:      models.AuditActionPayment,
		ContentType: item.ItemType,
		ContentID:   item.ItemID,
		Details:     datatypes.JSON(raw),
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdatePaymentRequest handles the admin PATCH verifying or rejecting a
// payment proof
func UpdatePaymentRequest(c *fiber.Ctx) error {
	verifierID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPaymentDecision").(*struct {
		ID         uint   `json:"id"`
		Status     string `json:"status"`
		AdminNotes string `json:"adminNotes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	item, err := ApplyUnlockDecision(database.Database.Db, verifierID, reqData.ID, reqData.Status, reqData.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
		case errors.Is(err, ErrInvalidStatus):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment request!", nil)
		}
	}

	dto, _ := buildPaymentRequestDto(database.Database.Db, *item)

	go func(d PaymentRequestDto, status, notes string) {
		if d.UserEmail == "" {
			return
		}
		if err := utils.SendUnlockDecisionEmail(d.UserEmail, d.UserName, d.ItemTitle, status, notes); err != nil {
			log.Printf("Error sending unlock decision email: %v", err)
		}
	}(dto, reqData.Status, reqData.AdminNotes)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment request updated successfully!", dto)
}
