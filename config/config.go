package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/densahealth/phcu-report-api/models"
)

// Config holds the project config values
type Config struct {
	URL              string
	DatabaseName     string
	BaseURL          string
	Port             string
	JWTSecret        string
	SendgridAPIKey   string
	SummaryRecipient string
	CacheTTL         time.Duration
}

// New sets up all config related services. A local .env file is loaded first
// so existing environment variables always win.
func New() *Config {
	_ = godotenv.Load()

	logger, err := setLogger(os.Getenv("ENVIRONMENT"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	cacheTTL := 60 * time.Second
	if v, err := strconv.Atoi(os.Getenv("CACHE_TTL_SECONDS")); err == nil && v >= 0 {
		cacheTTL = time.Duration(v) * time.Second
	}

	return &Config{
		URL:              os.Getenv("DB_URI"),
		DatabaseName:     os.Getenv("DB_NAME"),
		BaseURL:          os.Getenv("BASE_URL"),
		Port:             os.Getenv("PORT"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SendgridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		SummaryRecipient: os.Getenv("SUMMARY_RECIPIENT"),
		CacheTTL:         cacheTTL,
	}
}

func setLogger(environment string) (*zap.Logger, error) {
	switch environment {
	case "development":
		return zap.NewDevelopment()
	case "production":
		return zap.NewProduction()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body
// for a given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errText}})
	w.Write(b)
}
