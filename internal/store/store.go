package store

import (
	"context"
	"fmt"

	"github.com/openrelief/aidtrack/internal/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

// Store is the persistence gateway: a MongoDB database plus a Redis client,
// opened once at process start and passed into engine constructors.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
	Redis  *redis.Client

	cfg *config.Config
}

// Open connects to MongoDB and Redis and verifies both are reachable
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMonitor(otelmongo.NewMonitor())
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURI)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URI: %w", err)
	}
	if cfg.RedisPassword != "" {
		redisOpts.Password = cfg.RedisPassword
	}
	redisOpts.DB = cfg.RedisDB

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Store{
		Client: client,
		DB:     client.Database(cfg.MongoDatabase),
		Redis:  redisClient,
		cfg:    cfg,
	}, nil
}

// Close disconnects from MongoDB and Redis
func (s *Store) Close(ctx context.Context) error {
	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}
	if err := s.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

// Ping verifies both backing stores are reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	if err := s.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// Campaigns returns the campaign collection
func (s *Store) Campaigns() *mongo.Collection {
	return s.DB.Collection(s.cfg.CampaignCollection)
}

// Claims returns the claim collection
func (s *Store) Claims() *mongo.Collection {
	return s.DB.Collection(s.cfg.ClaimCollection)
}

// VerificationSessions returns the verification session collection
func (s *Store) VerificationSessions() *mongo.Collection {
	return s.DB.Collection(s.cfg.VerificationCollection)
}

// AuditLogs returns the audit log collection
func (s *Store) AuditLogs() *mongo.Collection {
	return s.DB.Collection(s.cfg.AuditLogsCollection)
}
