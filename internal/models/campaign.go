package models

import (
	"time"
)

// Campaign statuses
const (
	CampaignStatusActive = "active"
	CampaignStatusDraft  = "draft"
)

// Campaign represents an aid package: a funding pool against which claims are filed
type Campaign struct {
	ID        string            `bson:"_id" json:"id"`
	Name      string            `bson:"name" json:"name"`
	Status    string            `bson:"status" json:"status"`
	Budget    float64           `bson:"budget" json:"budget"`
	Metadata  map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updatedAt"`
}
