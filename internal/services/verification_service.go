package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/openrelief/aidtrack/internal/audit"
	"github.com/openrelief/aidtrack/internal/models"
	"github.com/openrelief/aidtrack/internal/notifier"
	"github.com/openrelief/aidtrack/internal/observability"
	"github.com/openrelief/aidtrack/internal/store"
	"github.com/openrelief/aidtrack/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// VerificationService owns the OTP verification-session protocol: code
// issuance, expiry, resend throttling and one-time consumption. Completion
// and resend are compare-and-set updates so concurrent calls cannot consume
// a code twice or lose a resend count increment.
type VerificationService struct {
	sessions   *mongo.Collection
	logger     *zap.Logger
	audit      audit.Sink
	dispatcher notifier.Dispatcher

	ttl             time.Duration
	dispatchTimeout time.Duration
}

// NewVerificationService creates a new verification service
func NewVerificationService(st *store.Store, logger *zap.Logger, sink audit.Sink, dispatcher notifier.Dispatcher, ttl, dispatchTimeout time.Duration) *VerificationService {
	return &VerificationService{
		sessions:        st.VerificationSessions(),
		logger:          logger,
		audit:           sink,
		dispatcher:      dispatcher,
		ttl:             ttl,
		dispatchTimeout: dispatchTimeout,
	}
}

// Start issues a fresh code for the given channel and identifier and creates
// a pending session. Dispatch failures do not prevent session creation.
func (s *VerificationService) Start(ctx context.Context, req models.StartVerificationRequest) (*models.VerificationSession, error) {
	channel := models.VerificationChannel(req.Channel)
	identifier := req.Identifier()
	if channel == models.VerificationChannelPhone {
		identifier = normalizePhone(identifier)
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	session := models.VerificationSession{
		ID:          uuid.NewString(),
		Channel:     channel,
		Identifier:  identifier,
		Code:        code,
		Status:      models.VerificationStatusPending,
		ResendCount: 0,
		ExpiresAt:   now.Add(s.ttl),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.sessions.InsertOne(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create verification session: %w", err)
	}
	observability.VerificationOperations.WithLabelValues("start", "success").Inc()

	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionStart,
		Resource:   audit.ResourceVerificationSession,
		ResourceID: session.ID,
		Message:    "Verification session started",
		Metadata:   map[string]string{"channel": string(channel)},
	})

	s.dispatch(session)
	return &session, nil
}

// Complete consumes a code exactly once. The guard folds every precondition
// into one filter; a miss is classified by a second read so the caller gets
// the precise failure, in the order: exists, not completed, not expired,
// code match.
func (s *VerificationService) Complete(ctx context.Context, sessionID, code string) (*models.VerificationSession, error) {
	ctx, span := otel.Tracer("verification").Start(ctx, "verification.complete",
		trace.WithAttributes(attribute.String("session.id", sessionID)),
	)
	defer span.End()

	now := time.Now()
	var session models.VerificationSession
	err := s.sessions.FindOneAndUpdate(ctx,
		bson.M{
			"_id":        sessionID,
			"status":     models.VerificationStatusPending,
			"code":       code,
			"expires_at": bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{"status": models.VerificationStatusCompleted, "updated_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&session)

	if err == nil {
		observability.VerificationOperations.WithLabelValues("complete", "success").Inc()
		s.audit.Record(ctx, audit.Entry{
			Action:     audit.ActionComplete,
			Resource:   audit.ResourceVerificationSession,
			ResourceID: sessionID,
			Message:    "Verification session completed",
		})
		s.logger.Info("verification session completed", zap.String("session_id", sessionID))
		return &session, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to complete verification session: %w", err)
	}

	reason, err := s.classifyCompleteFailure(ctx, sessionID, now)
	if err != nil {
		return nil, err
	}
	observability.VerificationOperations.WithLabelValues("complete", reasonLabel(reason)).Inc()
	return nil, reason
}

// Resend issues a fresh code for a pending session, bounded by the resend
// limit. The old code stops matching as soon as the update lands.
func (s *VerificationService) Resend(ctx context.Context, sessionID string) (*models.VerificationSession, error) {
	ctx, span := otel.Tracer("verification").Start(ctx, "verification.resend",
		trace.WithAttributes(attribute.String("session.id", sessionID)),
	)
	defer span.End()

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	var session models.VerificationSession
	err = s.sessions.FindOneAndUpdate(ctx,
		bson.M{
			"_id":          sessionID,
			"status":       models.VerificationStatusPending,
			"resend_count": bson.M{"$lt": models.MaxResendCount},
		},
		bson.M{
			"$set": bson.M{"code": code, "expires_at": now.Add(s.ttl), "updated_at": now},
			"$inc": bson.M{"resend_count": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&session)

	if err == nil {
		observability.VerificationOperations.WithLabelValues("resend", "success").Inc()
		s.audit.Record(ctx, audit.Entry{
			Action:     audit.ActionResend,
			Resource:   audit.ResourceVerificationSession,
			ResourceID: sessionID,
			Message:    "Verification code resent",
			Metadata:   map[string]string{"resend_count": fmt.Sprintf("%d", session.ResendCount)},
		})
		s.dispatch(session)
		return &session, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to resend verification code: %w", err)
	}

	var current models.VerificationSession
	err = s.sessions.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		observability.VerificationOperations.WithLabelValues("resend", "not_found").Inc()
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification session: %w", err)
	}
	if current.Status == models.VerificationStatusCompleted {
		observability.VerificationOperations.WithLabelValues("resend", "already_completed").Inc()
		return nil, models.ErrSessionCompleted
	}
	observability.VerificationOperations.WithLabelValues("resend", "limit_exceeded").Inc()
	return nil, models.ErrResendLimitExceeded
}

// classifyCompleteFailure decides which precondition a failed Complete hit
func (s *VerificationService) classifyCompleteFailure(ctx context.Context, sessionID string, now time.Time) (error, error) {
	var session models.VerificationSession
	err := s.sessions.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return models.ErrSessionNotFound, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification session: %w", err)
	}
	if session.Status == models.VerificationStatusCompleted {
		return models.ErrSessionCompleted, nil
	}
	if session.Expired(now) {
		return models.ErrSessionExpired, nil
	}
	return models.ErrInvalidCode, nil
}

// dispatch sends the code to the session's identifier without blocking the
// caller. The send gets its own bounded context because the request context
// may be gone before it finishes.
func (s *VerificationService) dispatch(session models.VerificationSession) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
		defer cancel()

		if err := s.dispatcher.Send(ctx, session.Channel, session.Identifier, session.Code); err != nil {
			s.logger.Warn("failed to dispatch verification code",
				zap.String("session_id", session.ID),
				zap.String("channel", string(session.Channel)),
				zap.Error(err),
			)
		}
	}()
}

func reasonLabel(err error) string {
	switch err {
	case models.ErrSessionNotFound:
		return "not_found"
	case models.ErrSessionCompleted:
		return "already_completed"
	case models.ErrSessionExpired:
		return "expired"
	case models.ErrInvalidCode:
		return "invalid_code"
	}
	return "error"
}

// normalizePhone formats a parseable phone number as E.164 so the same
// number always maps to the same identifier. Unparseable input is kept
// as-is; the contract only requires a non-empty string.
func normalizePhone(phone string) string {
	num, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return phone
	}
	if !phonenumbers.IsValidNumber(num) {
		return phone
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
