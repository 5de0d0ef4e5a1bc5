package services

import (
	"context"
	"testing"

	"github.com/openrelief/aidtrack/internal/audit"
	"github.com/openrelief/aidtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCreateClaim_NilAmount(t *testing.T) {
	// The binding layer enforces amount on the HTTP path; the engine API
	// must reject a nil amount instead of dereferencing it.
	s := &ClaimService{logger: zap.NewNop(), audit: audit.NopSink{}}

	_, err := s.Create(context.Background(), models.CreateClaimRequest{
		CampaignID:   "camp-1",
		RecipientRef: "recipient-1",
	})
	assert.ErrorIs(t, err, models.ErrAmountRequired)
}
