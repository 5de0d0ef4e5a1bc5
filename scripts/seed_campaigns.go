package main

import (
	"context"
	"log"
	"time"

	"github.com/openrelief/aidtrack/internal/config"
	"github.com/openrelief/aidtrack/internal/models"
	"github.com/openrelief/aidtrack/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeedCampaigns contains the demo campaigns
var SeedCampaigns = []models.Campaign{
	{
		ID:     "demo-campaign-1",
		Name:   "Emergency Relief Fund 2026",
		Status: models.CampaignStatusActive,
		Budget: 50000.00,
		Metadata: map[string]string{
			"description": "Disaster relief campaign for affected communities",
			"region":      "West Africa",
		},
	},
	{
		ID:     "demo-campaign-2",
		Name:   "Medical Aid Initiative",
		Status: models.CampaignStatusDraft,
		Budget: 75000.00,
		Metadata: map[string]string{
			"description": "Healthcare access program for underserved areas",
			"region":      "South Africa",
		},
	},
}

// SeedClaims contains the demo claims filed against the first campaign
var SeedClaims = []models.Claim{
	{
		ID:           "demo-claim-1",
		CampaignID:   "demo-campaign-1",
		Status:       models.ClaimStatusApproved,
		Amount:       5000.00,
		RecipientRef: "recipient-001",
		EvidenceRef:  "ipfs://demo-evidence-1",
	},
	{
		ID:           "demo-claim-2",
		CampaignID:   "demo-campaign-1",
		Status:       models.ClaimStatusRequested,
		Amount:       1250.50,
		RecipientRef: "recipient-002",
	},
}

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.Open(ctx, config.AppConfig)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Printf("failed to close store: %v", err)
		}
	}()

	now := time.Now()
	opts := options.Replace().SetUpsert(true)

	for _, campaign := range SeedCampaigns {
		campaign.CreatedAt = now
		campaign.UpdatedAt = now
		if _, err := st.Campaigns().ReplaceOne(ctx, bson.M{"_id": campaign.ID}, campaign, opts); err != nil {
			log.Fatalf("failed to seed campaign %s: %v", campaign.ID, err)
		}
		log.Printf("seeded campaign: %s (%s)", campaign.Name, campaign.Status)
	}

	for _, claim := range SeedClaims {
		claim.CreatedAt = now
		claim.UpdatedAt = now
		if _, err := st.Claims().ReplaceOne(ctx, bson.M{"_id": claim.ID}, claim, opts); err != nil {
			log.Fatalf("failed to seed claim %s: %v", claim.ID, err)
		}
		log.Printf("seeded claim: %s (%s)", claim.ID, claim.Status)
	}

	log.Println("seeding completed")
}
