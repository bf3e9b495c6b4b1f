package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"bookcal/pkg/logger"
	"bookcal/pkg/model"
)

const PrincipalKey contextKey = "principal"

// Authenticator verifies Bearer tokens and attaches the resolved principal
// to the request context. Routes opt in via Require; register/login and
// health stay public.
type Authenticator struct {
	secret []byte
	log    *logger.Logger
}

func NewAuthenticator(secret string, log *logger.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), log: log}
}

func (a *Authenticator) Require(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(w, "Missing or malformed Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			a.log.Warn("Rejected request with invalid token", "path", r.URL.Path, "error", err)
			writeUnauthorized(w, "Invalid or expired token")
			return
		}

		userID, _ := claims["user_id"].(string)
		email, _ := claims["email"].(string)
		if userID == "" {
			writeUnauthorized(w, "Invalid or expired token")
			return
		}

		principal := model.Principal{UserID: userID, Email: email}
		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		next(w, r.WithContext(ctx), ps)
	}
}

func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(model.Principal)
	return principal, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
