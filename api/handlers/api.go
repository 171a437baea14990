package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/densahealth/phcu-report-api/aggregation"
	"github.com/densahealth/phcu-report-api/api"
	"github.com/densahealth/phcu-report-api/api/scheduler"
	"github.com/densahealth/phcu-report-api/config"
	"github.com/densahealth/phcu-report-api/databases"
	"github.com/densahealth/phcu-report-api/mailer"
	"github.com/densahealth/phcu-report-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	dbHelper  databases.DatabaseHelper
	loader    *aggregation.Loader
	mailer    mailer.Mailer
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for the reporter routes
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	recordDB := databases.NewRecordDatabase(a.dbHelper)
	if a.loader == nil {
		a.loader = aggregation.NewLoader(recordDB, a.Config.CacheTTL)
	}

	rec := Record{DB: recordDB, Source: a.loader}
	d := Dashboard{Source: a.loader}
	ex := Export{Source: a.loader, Mailer: a.mailer}
	ad := Admin{ADB: databases.NewAdminDatabase(a.dbHelper), Config: a.Config}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/admin/login", http.HandlerFunc(ad.AdminLoginHandler)).Methods("POST")

	apiCreate.Handle("/schema", http.HandlerFunc(SchemaHandler)).Methods("GET")
	apiCreate.Handle("/institutions", http.HandlerFunc(InstitutionsHandler)).Methods("GET")

	apiCreate.Handle("/reports", api.Middleware(http.HandlerFunc(rec.CreateReportHandler))).Methods("POST")
	apiCreate.Handle("/reports/{report_id}", api.Middleware(http.HandlerFunc(rec.ReportByIDHandler))).Methods("GET")

	admin := api.AdminMiddleware(a.Config.JWTSecret)
	apiCreate.Handle("/dashboard/reports", admin(http.HandlerFunc(d.ReportsHandler))).Methods("GET")
	apiCreate.Handle("/dashboard/summary", admin(http.HandlerFunc(d.SummaryHandler))).Methods("GET")
	apiCreate.Handle("/dashboard/performance", admin(http.HandlerFunc(d.PerformanceHandler))).Methods("GET")
	apiCreate.Handle("/dashboard/export", admin(api.TimeoutMiddleware(30*time.Second)(http.HandlerFunc(ex.ExportHandler)))).Methods("GET")
	apiCreate.Handle("/dashboard/email", admin(api.TimeoutMiddleware(60*time.Second)(http.HandlerFunc(ex.EmailHandler)))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a
// router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("phcu-report-api has connected to the database")

	a.mailer = mailer.NewSendGrid(a.Config.SendgridAPIKey)
	a.loader = aggregation.NewLoader(databases.NewRecordDatabase(a.dbHelper), a.Config.CacheTTL)

	a.scheduler = scheduler.NewScheduler(a.loader, a.mailer, a.Config.SummaryRecipient)
	a.scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
