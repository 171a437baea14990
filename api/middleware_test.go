package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/densahealth/phcu-report-api/databases/mocks"
	"github.com/densahealth/phcu-report-api/models"
)

func reporterFixture(t *testing.T, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return &models.User{
		ID: "abc123",
		Details: models.UserDetails{
			Username: "reporter",
			Password: string(hash),
		},
	}
}

// tokenRoute wraps CreateToken the way the router does, so the basic
// strategy's bcrypt check always runs before a token is minted.
func tokenRoute(m MiddlewareDB) http.Handler {
	return Middleware(http.HandlerFunc(m.CreateToken))
}

func TestCreateTokenMissingBasicAuth(t *testing.T) {
	m := MiddlewareDB{DB: &mocks.UserDatabase{}}
	m.SetupGoGuardian()

	req, _ := http.NewRequest("POST", "/api/v1/auth/token", nil)
	rr := httptest.NewRecorder()

	tokenRoute(m).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected response code %d. Got %d\n", http.StatusUnauthorized, rr.Code)
	}
}

func TestCreateTokenUnknownUser(t *testing.T) {
	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("mongo: no documents in result"))

	m := MiddlewareDB{DB: userDB}
	m.SetupGoGuardian()

	req, _ := http.NewRequest("POST", "/api/v1/auth/token", nil)
	req.SetBasicAuth("nobody", "wrong")
	rr := httptest.NewRecorder()

	tokenRoute(m).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected response code %d. Got %d\n", http.StatusUnauthorized, rr.Code)
	}
}

func TestCreateTokenWrongPassword(t *testing.T) {
	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(reporterFixture(t, "correct-password"), nil)

	m := MiddlewareDB{DB: userDB}
	m.SetupGoGuardian()

	req, _ := http.NewRequest("POST", "/api/v1/auth/token", nil)
	req.SetBasicAuth("reporter", "totally-wrong-password")
	rr := httptest.NewRecorder()

	tokenRoute(m).ServeHTTP(rr, req)

	// a known username with the wrong password must never mint a token
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected response code %d. Got %d\n", http.StatusUnauthorized, rr.Code)
	}
	assert.NotContains(t, rr.Body.String(), "token")
}

func TestCreateTokenSuccess(t *testing.T) {
	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(reporterFixture(t, "s3cret"), nil)

	m := MiddlewareDB{DB: userDB}
	m.SetupGoGuardian()

	req, _ := http.NewRequest("POST", "/api/v1/auth/token", nil)
	req.SetBasicAuth("reporter", "s3cret")
	rr := httptest.NewRecorder()

	tokenRoute(m).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected response code %d. Got %d\n", http.StatusOK, rr.Code)
	}
	assert.Contains(t, rr.Body.String(), "token")
	assert.Contains(t, rr.Body.String(), "abc123")
}

func TestRevokeTokenMissingBearer(t *testing.T) {
	m := MiddlewareDB{DB: &mocks.UserDatabase{}}
	m.SetupGoGuardian()

	req, _ := http.NewRequest("DELETE", "/api/v1/auth/logout", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(RevokeToken).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected response code %d. Got %d\n", http.StatusBadRequest, rr.Code)
	}
}
