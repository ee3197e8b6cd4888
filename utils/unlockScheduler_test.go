package utils

import (
	"academy/config"
	"academy/database"
	"academy/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSchedulerTest(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:                "test-secret",
		CertificateSecret:     "test-cert-secret",
		UnlockPendingTTLHours: 72,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}
	return db
}

var seedItemID uint

func seedUnlockItem(t *testing.T, db *gorm.DB, status string, age time.Duration) models.SavedItem {
	t.Helper()
	seedItemID++
	item := models.SavedItem{
		UserID:   1,
		ItemID:   seedItemID,
		ItemType: models.ItemTypeProject,
		OrderRef: uuid.NewString(),
		Metadata: models.MarshalUnlockMetadata(&models.UnlockMetadata{
			Status:      status,
			ProofURL:    "https://proofs.example.com/x.png",
			SubmittedAt: time.Now().Add(-age).UTC().Format(time.RFC3339),
			Source:      "manual",
		}),
	}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Model(&item).UpdateColumn("updated_at", time.Now().Add(-age)).Error)
	return item
}

func TestExpireStalePendingUnlocks(t *testing.T) {
	db := setupSchedulerTest(t)

	stale := seedUnlockItem(t, db, models.UnlockStatusPending, 100*time.Hour)
	fresh := seedUnlockItem(t, db, models.UnlockStatusPending, time.Hour)
	approved := seedUnlockItem(t, db, models.UnlockStatusApproved, 200*time.Hour)

	ExpireStalePendingUnlocks()

	var reloaded models.SavedItem
	require.NoError(t, db.First(&reloaded, stale.ID).Error)
	meta := models.ParseUnlockMetadata(reloaded.Metadata)
	require.NotNil(t, meta)
	assert.Equal(t, models.UnlockStatusRejected, meta.Status)
	assert.Equal(t, uint(0), meta.VerifierID)
	assert.NotEmpty(t, meta.VerifiedAt)

	reloaded = models.SavedItem{}
	require.NoError(t, db.First(&reloaded, fresh.ID).Error)
	meta = models.ParseUnlockMetadata(reloaded.Metadata)
	assert.Equal(t, models.UnlockStatusPending, meta.Status)

	reloaded = models.SavedItem{}
	require.NoError(t, db.First(&reloaded, approved.ID).Error)
	meta = models.ParseUnlockMetadata(reloaded.Metadata)
	assert.Equal(t, models.UnlockStatusApproved, meta.Status)

	// The system actor owns the audit row
	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", models.AuditActionPayment).First(&audit).Error)
	assert.Equal(t, uint(0), audit.ActorID)
}

func TestCertificateNumberAndHash(t *testing.T) {
	config.AppConfig = &config.Config{CertificateSecret: "test-cert-secret"}

	number := GenerateCertificateNumber(123456)
	assert.Regexp(t, `^VP-\d+-3456$`, number)

	hash := CertificateHash(number, 123456, 7)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, CertificateHash(number, 123456, 7))
	assert.NotEqual(t, hash, CertificateHash(number, 123457, 7))
	assert.NotEqual(t, hash, CertificateHash(number, 123456, 8))
}
