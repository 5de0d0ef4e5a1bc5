package audit

import (
	"context"
	"sync"
	"time"

	"github.com/openrelief/aidtrack/internal/observability"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	flushInterval = 100 * time.Millisecond
	maxBatchSize  = 100
	insertTimeout = 5 * time.Second
)

// MongoSink persists audit entries asynchronously through a worker pool,
// batching inserts for throughput. Entries are dropped, with a metric, when
// the buffer is full.
type MongoSink struct {
	collection *mongo.Collection
	logger     *zap.Logger
	entries    chan Entry
	wg         sync.WaitGroup

	closeOnce sync.Once
}

// NewMongoSink creates a Mongo-backed audit sink and starts its workers
func NewMongoSink(collection *mongo.Collection, logger *zap.Logger, workers, bufferSize int) *MongoSink {
	if workers < 1 {
		workers = 1
	}
	s := &MongoSink{
		collection: collection,
		logger:     logger,
		entries:    make(chan Entry, bufferSize),
	}

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer s.wg.Done()
			s.run()
		}()
	}

	logger.Info("audit sink started",
		zap.Int("workers", workers),
		zap.Int("buffer_size", bufferSize))
	return s
}

// Record enqueues the entry without blocking. Full buffer drops the entry.
func (s *MongoSink) Record(_ context.Context, e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	select {
	case s.entries <- e:
	default:
		observability.AuditDropped.Inc()
		s.logger.Warn("audit buffer full, dropping entry",
			zap.String("action", e.Action),
			zap.String("resource_id", e.ResourceID))
	}
}

// Stop flushes remaining entries and stops the workers
func (s *MongoSink) Stop() {
	s.closeOnce.Do(func() {
		close(s.entries)
	})
	s.wg.Wait()
}

func (s *MongoSink) run() {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	var batch []Entry
	for {
		select {
		case e, ok := <-s.entries:
			if !ok {
				s.flush(batch)
				return
			}
			batch = append(batch, e)
			if len(batch) >= maxBatchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *MongoSink) flush(batch []Entry) {
	if len(batch) == 0 {
		return
	}

	operations := make([]mongo.WriteModel, 0, len(batch))
	for _, e := range batch {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(e))
	}

	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := s.collection.BulkWrite(ctx, operations, opts); err != nil {
		s.logger.Error("failed to insert audit batch",
			zap.Error(err),
			zap.Int("batch_size", len(batch)))
	}
}
