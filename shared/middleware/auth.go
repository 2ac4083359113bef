package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kudosboards/kudos/shared/domain"
	jwt_internal "github.com/kudosboards/kudos/shared/jwt"
	"github.com/kudosboards/kudos/shared/logger"
)

// UserLookup resolves a token subject to a registered user.
type UserLookup interface {
	GetUser(ctx context.Context, id domain.UserId) (*domain.User, error)
}

// Key to store the caller in the request context
type key int

const CallerKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt_internal.JwtService
	users      UserLookup
}

func NewAuth(jwtService jwt_internal.JwtService, users UserLookup) *Auth {
	return &Auth{
		jwtService: jwtService,
		users:      users,
	}
}

// OptionalAuth resolves the request caller. Any failure to identify the user
// (no token, bad token, unknown user, lookup error) leaves the caller anonymous.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := domain.Anonymous()
			user, err := a.extractUser(r)
			if err != nil {
				if err != errNoToken {
					logger.Log.Debug("request treated as anonymous", "reason", err)
				}
			} else {
				caller = domain.Authenticated(*user)
			}
			ctx := context.WithValue(r.Context(), CallerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractUser extracts and validates user from JWT token in request
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	// an explicit Authorization header wins over a cookie left behind by a browser
	var tokenString string
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	} else if accessCookie, err := r.Cookie("accessToken"); err == nil {
		tokenString = accessCookie.Value
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	uid, ok := jwt_internal.UserId(token)
	if !ok {
		return nil, errInvalidClaims
	}

	user, err := a.users.GetUser(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUnknownUser
	}
	return user, nil
}

// Sentinel errors for extractUser
var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
	errUnknownUser   = errorString("unknown user")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// CallerFromContext returns the caller stored by OptionalAuth, anonymous if none.
func CallerFromContext(r *http.Request) domain.Caller {
	caller, ok := r.Context().Value(CallerKey).(domain.Caller)
	if !ok {
		return domain.Anonymous()
	}
	return caller
}
