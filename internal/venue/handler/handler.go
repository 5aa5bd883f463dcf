package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ploshtadka/internal/authz"
	"ploshtadka/internal/identity"
	"ploshtadka/internal/platform/metrics"
	"ploshtadka/internal/platform/middleware"
	"ploshtadka/internal/venue/models"
	dErrors "ploshtadka/pkg/domain-errors"
	"ploshtadka/pkg/platform/httputil"
)

// Service defines the venue operations exposed over HTTP.
type Service interface {
	CreateVenue(ctx context.Context, p *authz.Principal, req *models.CreateVenueRequest) (*models.Venue, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error)
	ListVenues(ctx context.Context, f models.Filters) ([]*models.ListItem, error)
	ListOwnVenues(ctx context.Context, p *authz.Principal, f models.Filters) ([]*models.ListItem, error)
	UpdateVenue(ctx context.Context, p *authz.Principal, id uuid.UUID, req *models.UpdateVenueRequest) (*models.Venue, error)
	UpdateVenueStatus(ctx context.Context, p *authz.Principal, id uuid.UUID, req *models.UpdateStatusRequest) (*models.Venue, error)
	DeleteVenue(ctx context.Context, p *authz.Principal, id uuid.UUID) error

	ListImages(ctx context.Context, p *authz.Principal, venueID uuid.UUID) ([]*models.Image, error)
	AddImage(ctx context.Context, p *authz.Principal, venueID uuid.UUID, req *models.CreateImageRequest) (*models.Image, error)
	UpdateImage(ctx context.Context, p *authz.Principal, venueID, imageID uuid.UUID, req *models.UpdateImageRequest) (*models.Image, error)
	DeleteImage(ctx context.Context, p *authz.Principal, venueID, imageID uuid.UUID) error
	ReorderImages(ctx context.Context, p *authz.Principal, venueID uuid.UUID, req *models.ReorderImagesRequest) ([]*models.Image, error)

	ListUnavailabilities(ctx context.Context, venueID uuid.UUID) ([]*models.Unavailability, error)
	AddUnavailability(ctx context.Context, p *authz.Principal, venueID uuid.UUID, req *models.CreateUnavailabilityRequest) (*models.Unavailability, error)
	UpdateUnavailability(ctx context.Context, p *authz.Principal, venueID, id uuid.UUID, req *models.UpdateUnavailabilityRequest) (*models.Unavailability, error)
	DeleteUnavailability(ctx context.Context, p *authz.Principal, venueID, id uuid.UUID) error
}

// Handler serves the /venues API.
type Handler struct {
	logger         *slog.Logger
	venues         Service
	metrics        *metrics.Metrics
	resolver       identity.Resolver
	requestTimeout time.Duration
}

type Option func(*Handler)

// WithRequestTimeout bounds each request's context.
func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.requestTimeout = d
	}
}

// New creates a new venue Handler.
func New(
	venues Service,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	resolver identity.Resolver,
	opts ...Option) *Handler {
	h := &Handler{
		logger:         logger,
		venues:         venues,
		metrics:        metrics,
		resolver:       resolver,
		requestTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the venue routes under /venues.
func (h *Handler) Register(r chi.Router) {
	venueRouter := chi.NewRouter()
	venueRouter.Use(middleware.Recovery(h.logger))
	venueRouter.Use(middleware.RequestID)
	venueRouter.Use(middleware.RequestTime)
	venueRouter.Use(middleware.ClientMetadata)
	venueRouter.Use(middleware.Logger(h.logger))
	venueRouter.Use(middleware.Timeout(h.requestTimeout))
	venueRouter.Use(middleware.ContentTypeJSON)
	venueRouter.Use(middleware.LatencyMiddleware(h.metrics))
	venueRouter.Use(identity.Authenticate(h.resolver, h.logger))

	venueRouter.Get("/", h.handleList)
	venueRouter.Post("/", h.handleCreate)
	venueRouter.Get("/me", h.handleListMine)
	venueRouter.Get("/{venue_id}", h.handleGet)
	venueRouter.Patch("/{venue_id}", h.handleUpdate)
	venueRouter.Delete("/{venue_id}", h.handleDelete)
	venueRouter.Patch("/{venue_id}/status", h.handleUpdateStatus)

	venueRouter.Get("/{venue_id}/images", h.handleListImages)
	venueRouter.Post("/{venue_id}/images", h.handleAddImage)
	venueRouter.Put("/{venue_id}/images/reorder", h.handleReorderImages)
	venueRouter.Patch("/{venue_id}/images/{image_id}", h.handleUpdateImage)
	venueRouter.Delete("/{venue_id}/images/{image_id}", h.handleDeleteImage)

	venueRouter.Get("/{venue_id}/unavailabilities", h.handleListUnavailabilities)
	venueRouter.Post("/{venue_id}/unavailabilities", h.handleAddUnavailability)
	venueRouter.Patch("/{venue_id}/unavailabilities/{unavailability_id}", h.handleUpdateUnavailability)
	venueRouter.Delete("/{venue_id}/unavailabilities/{unavailability_id}", h.handleDeleteUnavailability)

	r.Mount("/venues", venueRouter)
}

// authorize checks the route requirement against the authenticated caller.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, req authz.Requirement) (*authz.Principal, bool) {
	ctx := r.Context()
	p, ok := authz.PrincipalFrom(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "principal missing from context despite identity middleware",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Not authenticated"))
		return nil, false
	}
	if err := authz.Authorize(req, p); err != nil {
		h.logger.WarnContext(ctx, "request denied by scope policy",
			"user_id", p.ID,
			"path", r.URL.Path,
			"scopes", p.Scopes.Sorted(),
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	return p, true
}

// pathIDs parses the named UUID path parameters in order.
func (h *Handler) pathIDs(w http.ResponseWriter, r *http.Request, names ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, err := httputil.URLParamUUID(r, name)
		if err != nil {
			h.writeError(w, r, "invalid path parameter", err)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// writeError logs at a level matching the failure and renders it.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	args := []any{"error", err, "request_id", middleware.GetRequestID(ctx)}
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) filters(w http.ResponseWriter, r *http.Request) (models.Filters, bool) {
	in, err := parseFilterInput(r.URL.Query())
	if err != nil {
		h.writeError(w, r, "invalid venue search", err)
		return models.Filters{}, false
	}
	f, err := models.NewFilters(in)
	if err != nil {
		h.writeError(w, r, "invalid venue search", err)
		return models.Filters{}, false
	}
	return f, true
}

func decode[T any](h *Handler, w http.ResponseWriter, r *http.Request) (*T, bool) {
	ctx := r.Context()
	return httputil.DecodeAndPrepare[T](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
}
