package integration

import (
	"context"
	"testing"
	"time"

	"github.com/openrelief/aidtrack/internal/config"
	"github.com/openrelief/aidtrack/internal/store"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// defaultTTL is the verification TTL used by integration tests
const defaultTTL = 10 * time.Minute

// setupStore starts MongoDB and Redis containers and opens a store on them
func setupStore(t *testing.T) *store.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7.0")
	require.NoError(t, err, "Failed to start MongoDB container")
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate MongoDB container: %v", err)
		}
	})

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() {
		if err := redisContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	})

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	redisURI, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get Redis connection string")

	cfg := &config.Config{
		MongoURI:               mongoURI,
		MongoDatabase:          "aidtrack_test",
		RedisURI:               redisURI,
		CampaignCollection:     "campaigns",
		ClaimCollection:        "claims",
		VerificationCollection: "verification_sessions",
		AuditLogsCollection:    "audit_logs",
		VerificationTTL:        defaultTTL,
	}

	st, err := store.Open(ctx, cfg)
	require.NoError(t, err, "Failed to open store")
	t.Cleanup(func() {
		if err := st.Close(context.Background()); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})

	return st
}
