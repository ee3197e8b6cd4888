package paymentController

import (
	"academy/config"
	"academy/database"
	"academy/models"
	courseModels "academy/models/course"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:            "test-secret",
		CertificateSecret: "test-cert-secret",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func seedPendingRequest(t *testing.T, db *gorm.DB, userID, itemID uint, itemType string) models.SavedItem {
	t.Helper()
	item := models.SavedItem{
		UserID:   userID,
		ItemID:   itemID,
		ItemType: itemType,
		OrderRef: uuid.NewString(),
		Metadata: models.MarshalUnlockMetadata(&models.UnlockMetadata{
			Status:      models.UnlockStatusPending,
			ProofURL:    "https://proofs.example.com/receipt.png",
			SubmittedAt: time.Now().UTC().Format(time.RFC3339),
			Source:      "manual",
		}),
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestApplyUnlockDecisionApprovesCourseAndEnrolls(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Name: "Buyer", Email: "buyer@example.com", Password: "x", Roles: models.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	crs := courseModels.Course{Title: "Paid Course", Slug: "paid-course", Price: 499, Status: courseModels.StatusPublished}
	require.NoError(t, db.Create(&crs).Error)

	lesson := courseModels.Lesson{CourseID: crs.ID, Title: "Intro", Slug: "intro", OrderIndex: 1, IsPublished: true}
	require.NoError(t, db.Create(&lesson).Error)

	request := seedPendingRequest(t, db, user.ID, crs.ID, models.ItemTypeCourse)

	item, err := ApplyUnlockDecision(db, 99, request.ID, models.UnlockStatusApproved, "UTR checked")
	require.NoError(t, err)

	meta := models.ParseUnlockMetadata(item.Metadata)
	require.NotNil(t, meta)
	assert.Equal(t, models.UnlockStatusApproved, meta.Status)
	assert.Equal(t, uint(99), meta.VerifierID)
	assert.Equal(t, "UTR checked", meta.Notes)
	assert.NotEmpty(t, meta.VerifiedAt)
	// The original proof survives the merge
	assert.Equal(t, "https://proofs.example.com/receipt.png", meta.ProofURL)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)

	var progress courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&progress).Error)
	assert.Equal(t, 1, progress.TotalLessons)
	assert.Equal(t, 0, progress.CompletedLessons)

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", models.AuditActionPayment).First(&audit).Error)
	assert.Equal(t, uint(99), audit.ActorID)
	assert.Equal(t, models.ItemTypeCourse, audit.ContentType)
}

func TestApplyUnlockDecisionDoubleApprovalIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Name: "Buyer", Email: "buyer@example.com", Password: "x", Roles: models.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	crs := courseModels.Course{Title: "Paid Course", Slug: "paid-course", Status: courseModels.StatusPublished}
	require.NoError(t, db.Create(&crs).Error)

	request := seedPendingRequest(t, db, user.ID, crs.ID, models.ItemTypeCourse)

	_, err := ApplyUnlockDecision(db, 99, request.ID, models.UnlockStatusApproved, "")
	require.NoError(t, err)
	_, err = ApplyUnlockDecision(db, 99, request.ID, models.UnlockStatusApproved, "")
	require.NoError(t, err)

	var enrollCount int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", user.ID, crs.ID).Count(&enrollCount)
	assert.Equal(t, int64(1), enrollCount)

	var progressCount int64
	db.Model(&courseModels.CourseProgress{}).Where("user_id = ? AND course_id = ?", user.ID, crs.ID).Count(&progressCount)
	assert.Equal(t, int64(1), progressCount)
}

func TestApplyUnlockDecisionRejectDoesNotEnroll(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Name: "Buyer", Email: "buyer@example.com", Password: "x", Roles: models.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	crs := courseModels.Course{Title: "Paid Course", Slug: "paid-course", Status: courseModels.StatusPublished}
	require.NoError(t, db.Create(&crs).Error)

	request := seedPendingRequest(t, db, user.ID, crs.ID, models.ItemTypeCourse)

	item, err := ApplyUnlockDecision(db, 99, request.ID, models.UnlockStatusRejected, "Proof unreadable")
	require.NoError(t, err)

	meta := models.ParseUnlockMetadata(item.Metadata)
	require.NotNil(t, meta)
	assert.Equal(t, models.UnlockStatusRejected, meta.Status)
	assert.Equal(t, "Proof unreadable", meta.Notes)

	var enrollCount int64
	db.Model(&courseModels.Enrollment{}).Count(&enrollCount)
	assert.Equal(t, int64(0), enrollCount)
}

func TestApplyUnlockDecisionValidatesInput(t *testing.T) {
	db := setupTestDB(t)

	_, err := ApplyUnlockDecision(db, 99, 1, "maybe", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ApplyUnlockDecision(db, 99, 12345, models.UnlockStatusApproved, "")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestApplyUnlockDecisionHandlesMalformedMetadata(t *testing.T) {
	db := setupTestDB(t)

	item := models.SavedItem{
		UserID:   1,
		ItemID:   2,
		ItemType: models.ItemTypeProject,
		OrderRef: uuid.NewString(),
		Metadata: datatypes.JSON([]byte(`{broken`)),
	}
	require.NoError(t, db.Create(&item).Error)

	// Malformed metadata is treated as a fresh pending request
	updated, err := ApplyUnlockDecision(db, 99, item.ID, models.UnlockStatusApproved, "")
	require.NoError(t, err)

	meta := models.ParseUnlockMetadata(updated.Metadata)
	require.NotNil(t, meta)
	assert.Equal(t, models.UnlockStatusApproved, meta.Status)
	assert.NotEmpty(t, meta.SubmittedAt)
	assert.Equal(t, "manual", meta.Source)
}

func TestBuildPaymentRequestDtoSkipsUnparseableRows(t *testing.T) {
	db := setupTestDB(t)

	item := models.SavedItem{
		UserID:   1,
		ItemID:   2,
		ItemType: models.ItemTypeProject,
		OrderRef: uuid.NewString(),
		Metadata: datatypes.JSON([]byte(`{"unrelated":true}`)),
	}
	require.NoError(t, db.Create(&item).Error)

	_, ok := buildPaymentRequestDto(db, item)
	assert.False(t, ok)
}
