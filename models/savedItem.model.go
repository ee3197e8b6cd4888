package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item types an unlock request may reference
const (
	ItemTypeProject = "PROJECT"
	ItemTypeCourse  = "COURSE"
)

// Unlock request states: pending -> approved | rejected. A rejected item
// may be resubmitted, which starts a new pending cycle in place.
const (
	UnlockStatusPending  = "pending"
	UnlockStatusApproved = "approved"
	UnlockStatusRejected = "rejected"
)

// SavedItem is a purchase-verification record gating access to a paid
// project or course. The workflow state lives in the Metadata JSON blob;
// transitions overwrite it in place and the full before/after snapshot is
// mirrored into AuditLog.
type SavedItem struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null;uniqueIndex:idx_saved_user_item"`
	ItemID    uint           `json:"item_id" gorm:"not null;uniqueIndex:idx_saved_user_item"`
	ItemType  string         `json:"item_type" gorm:"not null;uniqueIndex:idx_saved_user_item"` // PROJECT, COURSE
	OrderRef  string         `json:"order_ref" gorm:"unique"`
	Metadata  datatypes.JSON `json:"metadata"`
	IsDeleted bool           `gorm:"default:false"`
}

// UnlockMetadata is the JSON state carried on a SavedItem
type UnlockMetadata struct {
	Status      string `json:"status"`
	ProofURL    string `json:"proofUrl,omitempty"`
	SubmittedAt string `json:"submittedAt,omitempty"`
	VerifiedAt  string `json:"verifiedAt,omitempty"`
	VerifierID  uint   `json:"verifierId,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Source      string `json:"source,omitempty"`
}

// ParseUnlockMetadata decodes the metadata blob, returning nil for empty
// or malformed payloads instead of an error
func ParseUnlockMetadata(raw datatypes.JSON) *UnlockMetadata {
	if len(raw) == 0 {
		return nil
	}
	var meta UnlockMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil
	}
	if meta.Status == "" {
		return nil
	}
	return &meta
}

// MarshalUnlockMetadata encodes metadata back into the JSON column type
func MarshalUnlockMetadata(meta *UnlockMetadata) datatypes.JSON {
	raw, err := json.Marshal(meta)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}
