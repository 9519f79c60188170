package v1handler

import (
	"context"
	"errors"
	"linkguard/internal/config"
	"linkguard/pkg/domain"
	"linkguard/pkg/serrors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ctxKey string

// UserIDKey is the context key holding the authenticated domain.UserID.
const UserIDKey ctxKey = "userID"

// BearerAuth is the token extracted from the Authorization header.
type BearerAuth struct {
	Token string
}

// SecHandlerOptions configures SecHandler.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key used to verify RS256 tokens.
	PublicKey string
}

func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{
		PublicKey: cfg.JWT.PublicKey,
	}
}

// SecHandler authenticates requests carrying an RS256 signed JWT whose
// subject is the user ID. Without a configured key every request is rejected.
type SecHandler struct {
	parser *jwt.Parser
	keyFn  jwt.Keyfunc
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	s := &SecHandler{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
	if opts == nil || strings.TrimSpace(opts.PublicKey) == "" {
		return s, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not parse RSA public key")
	}
	s.keyFn = func(*jwt.Token) (any, error) { return key, nil }

	return s, nil
}

// HandleBearerAuth verifies t and stores the user ID of its subject in ctx.
func (s *SecHandler) HandleBearerAuth(
	ctx context.Context,
	operationName string,
	t BearerAuth) (context.Context, error) {
	if s.keyFn == nil {
		return ctx, serrors.With(serrors.ErrUnauthorized, "authentication is not configured")
	}

	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(t.Token, &claims, s.keyFn); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(userID)), nil
}

// Middleware authenticates the request before calling next.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := bearerToken(r)
		if err == nil {
			ctx, err = s.HandleBearerAuth(ctx, r.Pattern, BearerAuth{Token: token})
		}
		if err != nil {
			_, msg := publicError(err)
			WriteError(w, &ErrorStatusCode{
				StatusCode: http.StatusUnauthorized,
				Response: ErrorResponse{
					Code:    serrors.ErrUnauthorized.Error(),
					Message: msg,
				},
			})

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var errNoBearer = errors.New("missing bearer token")

func bearerToken(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", serrors.Wrap(serrors.ErrUnauthorized, errNoBearer, "missing bearer token")
	}

	return strings.TrimSpace(token), nil
}

// GetUserIDFromContext returns the user authenticated by SecHandler, or the
// zero UserID when the request was not authenticated.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	userID, _ := ctx.Value(UserIDKey).(domain.UserID)

	return userID
}
