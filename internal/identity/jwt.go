package identity

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ploshtadka/internal/authz"
	dErrors "ploshtadka/pkg/domain-errors"
)

// Claims is the signed token payload. Scopes may be given either as a
// space-separated "scope" string or a "scopes" array.
type Claims struct {
	Username string   `json:"username,omitempty"`
	Scope    string   `json:"scope,omitempty"`
	Scopes   []string `json:"scopes,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
	jwt.RegisteredClaims
}

// JWTResolver verifies HS256 tokens with a shared secret.
type JWTResolver struct {
	signingKey []byte
	parser     *jwt.Parser
	metrics    *Metrics
}

func NewJWTResolver(signingKey []byte, m *Metrics) (*JWTResolver, error) {
	if len(signingKey) == 0 {
		return nil, errors.New("jwt signing key is required")
	}
	return &JWTResolver{
		signingKey: signingKey,
		parser:     jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
		metrics:    m,
	}, nil
}

func (j *JWTResolver) Resolve(_ context.Context, r *http.Request) (*authz.Principal, error) {
	p, err := j.resolve(r)
	if err != nil {
		j.metrics.IncResolution(StrategyJWT, OutcomeUnauthenticated)
		return nil, err
	}
	j.metrics.IncResolution(StrategyJWT, OutcomeOK)
	return p, nil
}

func (j *JWTResolver) resolve(r *http.Request) (*authz.Principal, error) {
	tokenString, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	parsed, err := j.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return j.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}

	scopes := authz.ParseScopeList(claims.Scope)
	for s := range authz.NewScopeSet(claims.Scopes...) {
		scopes[s] = struct{}{}
	}
	active := true
	if claims.IsActive != nil {
		active = *claims.IsActive
	}
	return &authz.Principal{ID: id, Username: claims.Username, Scopes: scopes, Active: active}, nil
}

// Sign issues a token for claims. It exists for operators and tests that
// need to mint local tokens.
func (j *JWTResolver) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.signingKey)
}
