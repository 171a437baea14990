package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AdminMiddleware validates the admin JWT issued by the admin login route.
// The secret comes from the config so the sign and verify sides can never
// drift apart. Dashboard, export and email routes sit behind it.
func AdminMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			reqToken := r.Header.Get("Authorization")
			if !strings.HasPrefix(reqToken, "Bearer ") {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "unauthorized"}`))
				return
			}
			tokenString := strings.TrimPrefix(reqToken, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				zap.S().Errorw("invalid admin token",
					"url", r.URL,
					"error", err)
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "unauthorized"}`))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || claims["scope"] != "admin" {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error": "admin scope required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
