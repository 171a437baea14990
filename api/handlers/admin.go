package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/densahealth/phcu-report-api/api"
	"github.com/densahealth/phcu-report-api/config"
	"github.com/densahealth/phcu-report-api/databases"
)

// Admin handles the woreda admin login
type Admin struct {
	ADB    databases.AdminDatabase
	Config config.Config
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token string           `json:"token"`
	Admin adminLoginDetail `json:"admin"`
}

type adminLoginDetail struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// AdminLoginHandler checks an email/password pair against the admins
// collection and mints a 24h access token scoped for the dashboard routes.
// Bad credentials and unknown accounts return the same response so the
// handler never leaks which emails exist.
func (a Admin) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		config.ErrorStatus("email and password are required", http.StatusBadRequest, w,
			fmt.Errorf("missing credentials"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	admin, err := a.ADB.FindOne(ctx, bson.M{"email": req.Email, "active": true})
	if err != nil {
		config.ErrorStatus("invalid email or password", http.StatusUnauthorized, w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		config.ErrorStatus("invalid email or password", http.StatusUnauthorized, w, err)
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   admin.ID.Hex(),
		"email": admin.Email,
		"roles": admin.Roles,
		"scope": "admin",
		"typ":   "access",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.Config.JWTSecret))
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("admin logged in", "email", admin.Email)

	b, err := json.Marshal(adminLoginResponse{
		Token: token,
		Admin: adminLoginDetail{
			ID:    admin.ID.Hex(),
			Email: admin.Email,
			Roles: admin.Roles,
		},
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
