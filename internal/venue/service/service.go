package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ploshtadka/internal/audit"
	"ploshtadka/internal/authz"
	"ploshtadka/internal/venue/metrics"
	"ploshtadka/internal/venue/models"
	dErrors "ploshtadka/pkg/domain-errors"
	"ploshtadka/pkg/platform/sentinel"
	"ploshtadka/pkg/requestcontext"
)

type VenueStore interface {
	Create(ctx context.Context, v *models.Venue) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Venue, error)
	VenueOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context, f models.Filters) ([]*models.ListItem, error)
	UpdateForOwner(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Venue) error) (*models.Venue, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, at time.Time) (*models.Venue, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error
}

type ImageStore interface {
	ListImages(ctx context.Context, venueID uuid.UUID) ([]*models.Image, error)
	CreateImage(ctx context.Context, img *models.Image) error
	UpdateImage(ctx context.Context, venueID, imageID uuid.UUID, mutate func(*models.Image) error) (*models.Image, error)
	DeleteImage(ctx context.Context, venueID, imageID uuid.UUID) error
	ReorderImages(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]*models.Image, error)
}

type UnavailabilityStore interface {
	ListUnavailabilities(ctx context.Context, venueID uuid.UUID) ([]*models.Unavailability, error)
	CreateUnavailability(ctx context.Context, u *models.Unavailability) error
	UpdateUnavailability(ctx context.Context, venueID, id uuid.UUID, mutate func(*models.Unavailability) error) (*models.Unavailability, error)
	DeleteUnavailability(ctx context.Context, venueID, id uuid.UUID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates venue management. Route-level scope checks happen in
// the handler; the service applies ownership rules once the target venue is
// known.
type Service struct {
	venues           VenueStore
	images           ImageStore
	unavailabilities UnavailabilityStore
	guard            *authz.Guard
	logger           *slog.Logger
	auditPublisher   AuditPublisher
	metrics          *metrics.Metrics
	tracer           trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service. The venue store doubles as the guard's owner
// lookup.
func New(venues VenueStore, images ImageStore, unavailabilities UnavailabilityStore, opts ...Option) *Service {
	s := &Service{
		venues:           venues,
		images:           images,
		unavailabilities: unavailabilities,
		guard:            authz.NewGuard(venues),
		logger:           slog.Default(),
		tracer:           otel.Tracer("ploshtadka/venue"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) startSpan(ctx context.Context, name string, venueID uuid.UUID) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{}
	if venueID != uuid.Nil {
		attrs = append(attrs, attribute.String("venue.id", venueID.String()))
	}
	return s.tracer.Start(ctx, "venue."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}

// assertOwns runs the ownership guard and counts denials.
func (s *Service) assertOwns(ctx context.Context, venueID uuid.UUID, p *authz.Principal) error {
	if err := s.guard.AssertOwnsVenue(ctx, venueID, p); err != nil {
		s.recordDenial(ctx, err, venueID, p)
		return err
	}
	return nil
}

func (s *Service) recordDenial(ctx context.Context, err error, venueID uuid.UUID, p *authz.Principal) {
	code := dErrors.CodeOf(err)
	if code != dErrors.CodeForbidden && code != dErrors.CodeNotFound {
		return
	}
	s.metrics.IncDenial(string(code))
	if code == dErrors.CodeForbidden {
		actor := uuid.Nil
		if p != nil {
			actor = p.ID
		}
		s.logger.WarnContext(ctx, "venue ownership check failed",
			"venue_id", venueID,
			"user_id", actor,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

// translate maps store facts onto client-facing errors. Coded errors pass
// through untouched.
func translate(err error, notFoundMsg, internalMsg string) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "conflicting change, retry the request")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
	}
}

func (s *Service) logStoreError(ctx context.Context, msg string, err error, args ...any) {
	if !dErrors.HasCode(err, dErrors.CodeInternal) {
		return
	}
	args = append(args, "error", err, "request_id", requestcontext.RequestID(ctx))
	s.logger.ErrorContext(ctx, msg, args...)
}

// logAudit records a successful mutation in the log and the audit trail.
// Audit failures never fail the request.
func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	s.metrics.IncMutation(string(event.Action))

	args := []any{
		"event", string(event.Action),
		"log_type", "audit",
		"venue_id", event.VenueID,
		"user_id", event.ActorID,
	}
	if event.TargetID != uuid.Nil {
		args = append(args, "target_id", event.TargetID)
	}
	if event.RequestID != "" {
		args = append(args, "request_id", event.RequestID)
	}
	s.logger.InfoContext(ctx, string(event.Action), args...)

	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish audit event",
			"event", string(event.Action),
			"error", err,
		)
	}
}
