package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openrelief/aidtrack/internal/audit"
	"github.com/openrelief/aidtrack/internal/models"
	"github.com/openrelief/aidtrack/internal/observability"
	"github.com/openrelief/aidtrack/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ClaimService owns the claim lifecycle state machine. Every transition is a
// single compare-and-set against the claim document, so two concurrent
// attempts on the same claim are linearized by the store: one wins, the
// other observes the post-transition status and is rejected.
type ClaimService struct {
	claims    *mongo.Collection
	campaigns *mongo.Collection
	logger    *zap.Logger
	audit     audit.Sink
}

// NewClaimService creates a new claim service
func NewClaimService(st *store.Store, logger *zap.Logger, sink audit.Sink) *ClaimService {
	return &ClaimService{
		claims:    st.Claims(),
		campaigns: st.Campaigns(),
		logger:    logger,
		audit:     sink,
	}
}

// Create files a new claim in requested status against an existing campaign
func (s *ClaimService) Create(ctx context.Context, req models.CreateClaimRequest) (*models.Claim, error) {
	if req.Amount == nil {
		return nil, models.ErrAmountRequired
	}

	err := s.campaigns.FindOne(ctx, bson.M{"_id": req.CampaignID}).Err()
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up campaign: %w", err)
	}

	now := time.Now()
	claim := models.Claim{
		ID:           uuid.NewString(),
		CampaignID:   req.CampaignID,
		Amount:       *req.Amount,
		RecipientRef: req.RecipientRef,
		EvidenceRef:  req.EvidenceRef,
		Status:       models.ClaimStatusRequested,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.claims.InsertOne(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}

	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionCreate,
		Resource:   audit.ResourceClaim,
		ResourceID: claim.ID,
		Message:    "Claim created",
		Metadata:   map[string]string{"campaign_id": claim.CampaignID},
	})

	s.logger.Info("claim created",
		zap.String("claim_id", claim.ID),
		zap.String("campaign_id", claim.CampaignID),
	)
	return &claim, nil
}

// FindAll returns all claims
func (s *ClaimService) FindAll(ctx context.Context) ([]models.Claim, error) {
	cursor, err := s.claims.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer cursor.Close(ctx)

	claims := []models.Claim{}
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode claims: %w", err)
	}
	return claims, nil
}

// FindOne returns a claim by id
func (s *ClaimService) FindOne(ctx context.Context, id string) (*models.Claim, error) {
	var claim models.Claim
	err := s.claims.FindOne(ctx, bson.M{"_id": id}).Decode(&claim)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrClaimNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return &claim, nil
}

// Verify moves a claim from requested to verified
func (s *ClaimService) Verify(ctx context.Context, id string) (*models.Claim, error) {
	return s.transition(ctx, id, models.ClaimStatusRequested, models.ClaimStatusVerified, "Claim verified")
}

// Approve moves a claim from verified to approved
func (s *ClaimService) Approve(ctx context.Context, id string) (*models.Claim, error) {
	return s.transition(ctx, id, models.ClaimStatusVerified, models.ClaimStatusApproved, "Claim approved")
}

// Disburse moves a claim from approved to disbursed
func (s *ClaimService) Disburse(ctx context.Context, id string) (*models.Claim, error) {
	return s.transition(ctx, id, models.ClaimStatusApproved, models.ClaimStatusDisbursed, "Claim disbursed")
}

// Archive moves a claim from disbursed to archived
func (s *ClaimService) Archive(ctx context.Context, id string) (*models.Claim, error) {
	return s.transition(ctx, id, models.ClaimStatusDisbursed, models.ClaimStatusArchived, "Claim archived")
}

// transition performs the atomic read-check-write for one lifecycle edge.
// The status precondition lives in the update filter, so the existence
// check, status check and write are one indivisible operation.
func (s *ClaimService) transition(ctx context.Context, id string, from, to models.ClaimStatus, auditMessage string) (*models.Claim, error) {
	ctx, span := otel.Tracer("claims").Start(ctx, "claim.transition",
		trace.WithAttributes(
			attribute.String("claim.id", id),
			attribute.String("claim.from", string(from)),
			attribute.String("claim.to", string(to)),
		),
	)
	defer span.End()

	var claim models.Claim
	err := s.claims.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&claim)

	if err == nil {
		observability.ClaimTransitions.WithLabelValues(string(to), "success").Inc()
		s.audit.Record(ctx, audit.Entry{
			Action:     audit.ActionTransition,
			Resource:   audit.ResourceClaim,
			ResourceID: id,
			Message:    auditMessage,
			Metadata:   map[string]string{"from": string(from), "to": string(to)},
		})
		s.logger.Info("claim transitioned",
			zap.String("claim_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return &claim, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to transition claim: %w", err)
	}

	// The guard did not match; a second read tells us why.
	var current models.Claim
	err = s.claims.FindOne(ctx, bson.M{"_id": id}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		observability.ClaimTransitions.WithLabelValues(string(to), "not_found").Inc()
		return nil, models.ErrClaimNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	observability.ClaimTransitions.WithLabelValues(string(to), "invalid_transition").Inc()
	return nil, &models.InvalidTransitionError{Current: current.Status, Target: to}
}
