// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carterperez-dev/holidays-api/internal/core"
)

const (
	IdentityKey contextKey = "identity"
	ClaimsKey   contextKey = "jwt_claims"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	errMissingToken   = errors.New("missing authorization token")
	errMalformedToken = errors.New("malformed authorization header")
)

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

type AccessTokenClaims struct {
	UserID    int64
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Identity is the freshly loaded account behind a verified token.
type Identity struct {
	ID        int64
	Email     string
	Name      string
	Role      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// IdentityResolver loads the current account state for a token subject.
// It returns an error wrapping core.ErrNotFound when the account is gone.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, id int64) (*Identity, error)
}

func Authenticator(
	verifier TokenVerifier,
	resolver IdentityResolver,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, claims, err := authenticate(r, verifier, resolver)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			core.SetSpanAttributes(r.Context(), core.ActorAttributes(identity.ID, identity.Role)...)

			next.ServeHTTP(w, r.WithContext(withAuth(r.Context(), identity, claims)))
		})
	}
}

// OptionalAuth attaches an identity when the request carries a usable token
// and silently continues without one otherwise.
func OptionalAuth(
	verifier TokenVerifier,
	resolver IdentityResolver,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, claims, err := authenticate(r, verifier, resolver)
			if err == nil {
				r = r.WithContext(withAuth(r.Context(), identity, claims))
			}

			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(
	r *http.Request,
	verifier TokenVerifier,
	resolver IdentityResolver,
) (*Identity, *AccessTokenClaims, error) {
	token, err := ExtractToken(r)
	if err != nil {
		return nil, nil, err
	}

	claims, err := verifier.VerifyAccessToken(r.Context(), token)
	if err != nil {
		return nil, nil, err
	}

	identity, err := resolver.ResolveIdentity(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil, fmt.Errorf("resolve identity: %w", core.ErrUserNotFound)
		}
		return nil, nil, fmt.Errorf("resolve identity: %w", err)
	}

	if !identity.Active {
		return nil, nil, fmt.Errorf("resolve identity: %w", core.ErrAccountDeactivated)
	}

	return identity, claims, nil
}

func withAuth(
	ctx context.Context,
	identity *Identity,
	claims *AccessTokenClaims,
) context.Context {
	ctx = context.WithValue(ctx, IdentityKey, identity)
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return ctx
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			if identity == nil {
				core.Unauthorized(w, "Access denied. No token provided.")
				return
			}

			if _, ok := roleSet[identity.Role]; !ok {
				core.Forbidden(w, "Access denied. Admin privileges required.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(RoleAdmin)(next)
}

// RequireSelfOrRole lets a request through when the caller is the account
// named by the URL parameter param, or holds one of roles.
func RequireSelfOrRole(param string, roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				core.Unauthorized(w, "Access denied. No token provided.")
				return
			}

			if _, ok := roleSet[identity.Role]; ok {
				next.ServeHTTP(w, r)
				return
			}

			targetID, err := core.ParseIDParam(r, param, "user")
			if err != nil {
				core.JSONError(w, err)
				return
			}

			if targetID != identity.ID {
				core.Forbidden(w, "Access denied. You can only access your own data.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return RequireSelfOrRole(param, RoleAdmin)
}

// ExtractToken returns the credential from an "Authorization: Bearer <token>"
// header. The scheme is matched exactly.
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errMalformedToken
	}

	return parts[1], nil
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errMissingToken):
		core.Unauthorized(w, "Access denied. No token provided.")
	case errors.Is(err, errMalformedToken):
		core.Unauthorized(w, "Invalid token format. Use: Bearer <token>")
	case errors.Is(err, core.ErrTokenExpired),
		errors.Is(err, core.ErrTokenInvalid),
		errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrAccountDeactivated):
		core.JSONError(w, err)
	case core.IsAppError(err):
		core.JSONError(w, err)
	default:
		core.InternalServerError(w, err)
	}
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) int64 {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.ID
	}
	return 0
}

func GetUserRole(ctx context.Context) string {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.Role
	}
	return ""
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}

func IsAuthenticated(ctx context.Context) bool {
	return GetIdentity(ctx) != nil
}

func IsAdmin(ctx context.Context) bool {
	return GetIdentity(ctx).IsAdmin()
}
