package utils

import (
	"academy/config"
	"academy/database"
	"academy/models"
	"encoding/json"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[UNLOCK-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ExpireStalePendingUnlocks rejects pending unlock requests whose proof was
// submitted longer ago than the configured TTL. Each expiry is mirrored
// into the audit log with a system actor (actor id 0).
func ExpireStalePendingUnlocks() {
	db := database.Database.Db
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.UnlockPendingTTLHours) * time.Hour)

	var items []models.SavedItem
	if err := db.Where("is_deleted = false AND updated_at < ?", cutoff).Find(&items).Error; err != nil {
		logScheduler("Error fetching unlock requests: " + err.Error())
		return
	}

	expired := 0
	for _, item := range items {
		meta := models.ParseUnlockMetadata(item.Metadata)
		if meta == nil || meta.Status != models.UnlockStatusPending {
			continue
		}

		previous := *meta
		now := time.Now().UTC().Format(time.RFC3339)
		meta.Status = models.UnlockStatusRejected
		meta.VerifiedAt = now
		meta.VerifierID = 0
		meta.Notes = "Expired: no verification within the review window"
		item.Metadata = models.MarshalUnlockMetadata(meta)

		if err := db.Save(&item).Error; err != nil {
			logScheduler("Error expiring unlock request: " + err.Error())
			continue
		}

		details, _ := json.Marshal(map[string]interface{}{
			"kind":             "payment_request",
			"paymentRequestId": item.ID,
			"status":           models.UnlockStatusRejected,
			"previous":         previous,
			"next":             meta,
			"reason":           "expired",
		})
		db.Create(&models.AuditLog{
			ActorID:     0, // system
			Action:      models.AuditActionPayment,
			ContentType: item.ItemType,
			ContentID:   item.ItemID,
			Details:     datatypes.JSON(details),
		})
		expired++
	}

	if expired > 0 {
		logScheduler("Auto-rejected stale pending unlock requests")
	}
}

// StartUnlockScheduler runs the stale-unlock sweep hourly
func StartUnlockScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", ExpireStalePendingUnlocks); err != nil {
		log.Fatalf("Failed to register unlock scheduler: %v", err)
	}

	c.Start()
	logScheduler("Unlock request scheduler started")
	return c
}
