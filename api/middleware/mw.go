package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tdp-hub/tdp-report-services/api/serializers"
	"github.com/tdp-hub/tdp-report-services/internal/authn"
	"github.com/tdp-hub/tdp-report-services/internal/authz"
	"github.com/tdp-hub/tdp-report-services/models"
)

type contextKey string
type tokenKey string

const ClaimsKey contextKey = "claims"
const UserKey contextKey = "user"
const TokenKey tokenKey = "token"

// STTVar is the route variable naming the targeted STT.
const STTVar = "stt"

// PermissionDenied is the body detail of every authorization denial.
const PermissionDenied = "You do not have permission to perform this action."

// MaxBodyBytes caps the request bodies inspected for authorization.
const MaxBodyBytes = 1 << 20

var ErrBodyTooLarge = errors.New("request body too large")

// UserLoader resolves a username to a stored user.
type UserLoader interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// JWTMiddleware parses the JWT token and adds claims to the request context.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).With().
				Str("handler", "JWTMiddleware").Logger()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug().Msg("authorization header missing")
				writeError(w, http.StatusUnauthorized, "authorization header missing")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				logger.Error().Msg("invalid token format")
				writeError(w, http.StatusUnauthorized, "invalid token format")
				return
			}

			claims, err := authn.ParseClaims(token)
			if err != nil {
				logger.Error().Err(err).Msg("invalid bearer jwt token")
				writeError(w, http.StatusUnauthorized, "invalid bearer jwt token")
				return
			}

			ctx := context.WithValue(r.Context(), TokenKey, token)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}

// WithUser resolves the claims' identity to a stored user. Callers the store
// does not know continue as the anonymous user.
func WithUser(users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				logger := zerolog.Ctx(r.Context())

				anonymous := models.AnonymousUser
				user := &anonymous
				if claims, ok := r.Context().Value(ClaimsKey).(authn.Claims); ok {
					found, err := users.GetUserByUsername(r.Context(), claims.Identity())
					if err != nil {
						logger.Error().Err(err).Msg("Failed to load user")
						writeError(w, http.StatusInternalServerError, "failed to load user")
						return
					}
					if found != nil {
						user = found
					} else {
						logger.Warn().Str("username", claims.Identity()).Msg("unknown user, continuing as anonymous")
					}
				}

				l := logger.With().Str("user", user.Username).Logger()
				ctx := context.WithValue(l.WithContext(r.Context()), UserKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// Require rejects requests that allowed denies. allowed is normally one of
// the methods of an authz.Authorizer.
func Require(allowed func(authz.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				logger := zerolog.Ctx(r.Context())

				req, err := AuthzRequest(r)
				if err != nil {
					logger.Warn().Err(err).Msg("Request cannot be authorized")
					writeError(w, http.StatusBadRequest, err.Error())
					return
				}

				if !allowed(req) {
					logger.Warn().Str("path", r.URL.Path).Msg("Access denied")
					writeError(w, http.StatusForbidden, PermissionDenied)
					return
				}

				next.ServeHTTP(w, r)
			},
		)
	}
}

// AuthzRequest collects what permissions inspect: the user, the STT route
// variable and the STT submitted in a JSON body. The body is left readable.
// A body that the serializers would not accept is an error, so the STT
// authorized here is the STT that gets stored.
func AuthzRequest(r *http.Request) (authz.Request, error) {
	req := authz.Request{User: UserFromContext(r.Context())}

	if raw, ok := mux.Vars(r)[STTVar]; ok {
		stt, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("invalid stt parameter: %w", err)
		}
		req.PathSTT = &stt
	}

	stt, err := peekBodySTT(r)
	if err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	req.BodySTT = stt
	return req, nil
}

// UserFromContext returns the user attached by WithUser, or the anonymous user.
func UserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(UserKey).(*models.User); ok && user != nil {
		return user
	}
	anonymous := models.AnonymousUser
	return &anonymous
}

func peekBodySTT(r *http.Request) (*int, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	r.Body.Close()
	if err != nil {
		return nil, err
	}
	if len(data) > MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	r.Body = io.NopCloser(bytes.NewReader(data))

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var payload struct {
		STT *int `json:"stt"`
	}
	if err := serializers.DecodeJSON(bytes.NewReader(data), &payload); err != nil {
		return nil, err
	}
	return payload.STT, nil
}

// WithLogger adds a logger to the context and logs request information.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			logger := log.With().
				Str("host", r.Host).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("remote_addr", r.RemoteAddr).
				Time("timestamp", time.Now()).
				Logger()

			ctx := logger.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}

func writeError(w http.ResponseWriter, statusCode int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(models.Response{Success: 0, ErrorDetails: detail})
}
