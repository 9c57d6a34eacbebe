package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/libauth/internal/common"
	"github.com/dmitrijs2005/libauth/internal/logging"
	"github.com/dmitrijs2005/libauth/internal/server/auth"
)

// TokenExtractor pulls the raw session token out of a request. It returns
// common.ErrTokenMissing when the request carries none.
type TokenExtractor interface {
	Extract(r *http.Request) (string, error)
}

// TokenVerifier validates a raw token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// HeaderExtractor reads "Authorization: Bearer <token>".
type HeaderExtractor struct{}

func (HeaderExtractor) Extract(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName))
	if header == "" {
		return "", common.ErrTokenMissing
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", common.ErrTokenMissing
	}
	return parts[1], nil
}

// CookieExtractor reads the token from the named cookie.
type CookieExtractor struct {
	Name string
}

func (c CookieExtractor) Extract(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", common.ErrTokenMissing
	}
	return strings.TrimSpace(cookie.Value), nil
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity attached by the gate.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

// Gate verifies the session token of incoming requests before they reach a
// protected handler.
type Gate struct {
	extractor TokenExtractor
	verifier  TokenVerifier
	logger    logging.Logger
}

func NewGate(extractor TokenExtractor, verifier TokenVerifier, logger logging.Logger) *Gate {
	return &Gate{extractor: extractor, verifier: verifier, logger: logger.With("module", "gate")}
}

// Authenticate runs the request through the gate and, on success, returns
// the request context augmented with the verified identity. It fails with
// common.ErrTokenMissing or a token error (common.ErrInvalidToken,
// common.ErrTokenExpired).
func (g *Gate) Authenticate(r *http.Request) (context.Context, error) {
	token, err := g.extractor.Extract(r)
	if err != nil {
		return r.Context(), err
	}

	id, err := g.verifier.Verify(token)
	if err != nil {
		return r.Context(), err
	}

	return WithIdentity(r.Context(), id), nil
}

// Require wraps next so that it only runs for requests with a valid token.
// A missing token is answered with 401, an invalid or expired one with 403.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, err := g.Authenticate(r)
		if err != nil {
			switch common.KindOf(err) {
			case common.KindTokenMissing:
				g.logger.Warn(r.Context(), "token missing", "path", r.URL.Path)
				writeMessage(w, http.StatusUnauthorized, "authentication required")
			default:
				g.logger.Warn(r.Context(), "token rejected", "path", r.URL.Path, "error", err)
				writeMessage(w, http.StatusForbidden, "invalid or expired token")
			}
			return
		}
		next(w, r.WithContext(ctx))
	}
}
