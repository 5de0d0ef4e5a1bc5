package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/openrelief/aidtrack/internal/audit"
	"github.com/openrelief/aidtrack/internal/models"
	"github.com/openrelief/aidtrack/internal/services"
	"github.com/openrelief/aidtrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedCampaign(t *testing.T, st *store.Store, id string) {
	t.Helper()
	now := time.Now()
	_, err := st.Campaigns().InsertOne(context.Background(), models.Campaign{
		ID:        id,
		Name:      "Test Campaign",
		Status:    models.CampaignStatusActive,
		Budget:    10000,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestClaimLifecycle(t *testing.T) {
	st := setupStore(t)
	svc := services.NewClaimService(st, zap.NewNop(), audit.NopSink{})
	ctx := context.Background()

	seedCampaign(t, st, "camp-1")

	claim, err := svc.Create(ctx, models.CreateClaimRequest{
		CampaignID:   "camp-1",
		Amount:       floatPtr(250.75),
		RecipientRef: "recipient-1",
		EvidenceRef:  "evidence-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusRequested, claim.Status)
	assert.Equal(t, 250.75, claim.Amount)

	steps := []struct {
		op     func(context.Context, string) (*models.Claim, error)
		status models.ClaimStatus
	}{
		{svc.Verify, models.ClaimStatusVerified},
		{svc.Approve, models.ClaimStatusApproved},
		{svc.Disburse, models.ClaimStatusDisbursed},
		{svc.Archive, models.ClaimStatusArchived},
	}

	for _, step := range steps {
		updated, err := step.op(ctx, claim.ID)
		require.NoError(t, err)
		assert.Equal(t, step.status, updated.Status)
	}

	// The stored document reflects the terminal status
	final, err := svc.FindOne(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusArchived, final.Status)
}

func TestClaimCreate_UnknownCampaign(t *testing.T) {
	st := setupStore(t)
	svc := services.NewClaimService(st, zap.NewNop(), audit.NopSink{})

	_, err := svc.Create(context.Background(), models.CreateClaimRequest{
		CampaignID:   "missing",
		Amount:       floatPtr(10),
		RecipientRef: "recipient-1",
	})
	assert.ErrorIs(t, err, models.ErrCampaignNotFound)
}

func TestClaimTransition_OutOfOrder(t *testing.T) {
	st := setupStore(t)
	svc := services.NewClaimService(st, zap.NewNop(), audit.NopSink{})
	ctx := context.Background()

	seedCampaign(t, st, "camp-1")

	claim, err := svc.Create(ctx, models.CreateClaimRequest{
		CampaignID:   "camp-1",
		Amount:       floatPtr(10),
		RecipientRef: "recipient-1",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, claim.ID)
	var invalid *models.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.ClaimStatusRequested, invalid.Current)
	assert.Equal(t, models.ClaimStatusApproved, invalid.Target)

	// Status is unchanged after the rejected attempt
	current, err := svc.FindOne(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusRequested, current.Status)
}

func TestClaimTransition_NotFound(t *testing.T) {
	st := setupStore(t)
	svc := services.NewClaimService(st, zap.NewNop(), audit.NopSink{})

	_, err := svc.Verify(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrClaimNotFound)
}

func TestClaimApprove_Concurrent(t *testing.T) {
	st := setupStore(t)
	svc := services.NewClaimService(st, zap.NewNop(), audit.NopSink{})
	ctx := context.Background()

	seedCampaign(t, st, "camp-1")

	claim, err := svc.Create(ctx, models.CreateClaimRequest{
		CampaignID:   "camp-1",
		Amount:       floatPtr(10),
		RecipientRef: "recipient-1",
	})
	require.NoError(t, err)

	_, err = svc.Verify(ctx, claim.ID)
	require.NoError(t, err)

	// Two racing approvals: the store linearizes them, so exactly one
	// succeeds and the other observes the already-approved status.
	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Approve(ctx, claim.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	invalids := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var invalid *models.InvalidTransitionError
		if errors.As(err, &invalid) {
			assert.Equal(t, models.ClaimStatusApproved, invalid.Current)
			invalids++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, invalids)

	current, err := svc.FindOne(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusApproved, current.Status)
}

func TestClaimFindAll_SortedByCreation(t *testing.T) {
	st := setupStore(t)
	svc := services.NewClaimService(st, zap.NewNop(), audit.NopSink{})
	ctx := context.Background()

	seedCampaign(t, st, "camp-1")

	claims, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, claims)

	first, err := svc.Create(ctx, models.CreateClaimRequest{
		CampaignID:   "camp-1",
		Amount:       floatPtr(10),
		RecipientRef: "recipient-1",
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, models.CreateClaimRequest{
		CampaignID:   "camp-1",
		Amount:       floatPtr(20),
		RecipientRef: "recipient-2",
	})
	require.NoError(t, err)

	claims, err = svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	assert.Equal(t, first.ID, claims[0].ID)
	assert.Equal(t, second.ID, claims[1].ID)
}
