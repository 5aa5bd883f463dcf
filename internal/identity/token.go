package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ploshtadka/internal/authz"
	dErrors "ploshtadka/pkg/domain-errors"
	"ploshtadka/pkg/platform/circuit"
)

// ProfilePath is the identity service endpoint returning the caller profile.
const ProfilePath = "/users/@me/get"

const maxProfileBytes = 1 << 20

// profile is the identity service response body.
type profile struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	IsActive *bool    `json:"is_active"`
	Scopes   []string `json:"scopes"`
}

// TokenResolver forwards the bearer token to the identity service.
type TokenResolver struct {
	baseURL string
	client  *http.Client
	metrics *Metrics
	tracer  trace.Tracer
	breaker *circuit.Breaker
}

type TokenOption func(*TokenResolver)

// WithBreaker replaces the default upstream circuit breaker.
func WithBreaker(b *circuit.Breaker) TokenOption {
	return func(t *TokenResolver) {
		if b != nil {
			t.breaker = b
		}
	}
}

// NewTokenResolver expects client to carry the request timeout. Calls are
// never retried; repeated transport or protocol failures open a breaker that
// fails requests fast until the identity service answers again.
func NewTokenResolver(baseURL string, client *http.Client, m *Metrics, opts ...TokenOption) *TokenResolver {
	t := &TokenResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		metrics: m,
		tracer:  otel.Tracer("ploshtadka/identity"),
		breaker: circuit.New("identity"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TokenResolver) Resolve(ctx context.Context, r *http.Request) (*authz.Principal, error) {
	token, err := bearerToken(r)
	if err != nil {
		t.metrics.IncResolution(StrategyToken, OutcomeUnauthenticated)
		return nil, err
	}

	ctx, span := t.tracer.Start(ctx, "identity.resolve_token",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("identity.base_url", t.baseURL)),
	)
	defer span.End()

	if !t.breaker.Allow() {
		t.metrics.IncResolution(StrategyToken, OutcomeUnavailable)
		span.SetAttributes(
			attribute.String("circuit.name", t.breaker.Name()),
			attribute.String("circuit.state", t.breaker.State().String()),
		)
		span.SetStatus(codes.Error, "circuit open")
		return nil, dErrors.New(dErrors.CodeUnavailable, "Identity service unavailable")
	}

	p, outcome, err := t.fetch(ctx, token)
	t.metrics.IncResolution(StrategyToken, outcome)
	switch outcome {
	case OutcomeCancelled:
		// Says nothing about upstream health.
	case OutcomeUnavailable, OutcomeProtocolError:
		if _, change := t.breaker.RecordFailure(); change.Opened {
			span.AddEvent("circuit opened", trace.WithAttributes(attribute.String("circuit.name", t.breaker.Name())))
		}
	default:
		t.breaker.RecordSuccess()
	}
	if err != nil {
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}
	span.SetAttributes(attribute.String("identity.user_id", p.ID.String()))
	return p, nil
}

func (t *TokenResolver) fetch(ctx context.Context, token string) (*authz.Principal, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+ProfilePath, nil)
	if err != nil {
		return nil, OutcomeUnavailable, dErrors.Wrap(err, dErrors.CodeUnavailable, "Identity service unavailable")
	}
	req.Header.Set("Authorization", bearerPrefix+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := t.client.Do(req)
	t.metrics.ObserveUpstream(start)
	if err != nil {
		// The caller went away or ran out of time; the upstream said nothing.
		if ctx.Err() != nil {
			return nil, OutcomeCancelled, dErrors.Wrap(err, dErrors.CodeTimeout, "Request cancelled before identity was resolved")
		}
		return nil, OutcomeUnavailable, dErrors.Wrap(err, dErrors.CodeUnavailable, "Identity service unavailable")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, OutcomeUnauthenticated, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token")
	default:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxProfileBytes))
		return nil, OutcomeProtocolError, dErrors.New(dErrors.CodeBadGateway, "Unexpected response from identity service")
	}

	var body profile
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBytes)).Decode(&body); err != nil {
		return nil, OutcomeProtocolError, dErrors.Wrap(err, dErrors.CodeBadGateway, "Malformed response from identity service")
	}
	id, err := uuid.Parse(body.ID)
	if err != nil {
		return nil, OutcomeProtocolError, dErrors.Wrap(err, dErrors.CodeBadGateway, "Malformed response from identity service")
	}

	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}
	return authz.NewPrincipal(id, body.Username, body.Scopes, active), OutcomeOK, nil
}
