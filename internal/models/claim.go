package models

import (
	"time"
)

// ClaimStatus represents the position of a claim in its approval lifecycle
type ClaimStatus string

// Claim lifecycle statuses, in order. Transitions only move forward along
// this chain, one step at a time.
const (
	ClaimStatusRequested ClaimStatus = "requested"
	ClaimStatusVerified  ClaimStatus = "verified"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusDisbursed ClaimStatus = "disbursed"
	ClaimStatusArchived  ClaimStatus = "archived"
)

var claimStatusNext = map[ClaimStatus]ClaimStatus{
	ClaimStatusRequested: ClaimStatusVerified,
	ClaimStatusVerified:  ClaimStatusApproved,
	ClaimStatusApproved:  ClaimStatusDisbursed,
	ClaimStatusDisbursed: ClaimStatusArchived,
}

// Next returns the status that follows s in the lifecycle chain.
// ok is false for archived (terminal) and for unknown statuses.
func (s ClaimStatus) Next() (next ClaimStatus, ok bool) {
	next, ok = claimStatusNext[s]
	return next, ok
}

// CanTransitionTo reports whether moving from s to target is a legal step
func (s ClaimStatus) CanTransitionTo(target ClaimStatus) bool {
	next, ok := claimStatusNext[s]
	return ok && next == target
}

// Valid reports whether s is a known lifecycle status
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusRequested, ClaimStatusVerified, ClaimStatusApproved,
		ClaimStatusDisbursed, ClaimStatusArchived:
		return true
	}
	return false
}

// Claim represents a request for disbursement of aid funds against a campaign
type Claim struct {
	ID           string      `bson:"_id" json:"id"`
	CampaignID   string      `bson:"campaign_id" json:"campaignId"`
	Amount       float64     `bson:"amount" json:"amount"`
	RecipientRef string      `bson:"recipient_ref" json:"recipientRef"`
	EvidenceRef  string      `bson:"evidence_ref,omitempty" json:"evidenceRef,omitempty"`
	Status       ClaimStatus `bson:"status" json:"status"`
	CreatedAt    time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `bson:"updated_at" json:"updatedAt"`
}

// CreateClaimRequest represents the request body for creating a claim
type CreateClaimRequest struct {
	CampaignID   string   `json:"campaignId" binding:"required"`
	Amount       *float64 `json:"amount" binding:"required,min=0"`
	RecipientRef string   `json:"recipientRef" binding:"required"`
	EvidenceRef  string   `json:"evidenceRef"`
}
