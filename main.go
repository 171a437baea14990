package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/densahealth/phcu-report-api/api/handlers"

	"go.uber.org/zap"

	"github.com/densahealth/phcu-report-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	err := a.Initialize() //initialize database, mailer, scheduler and router
	if err != nil {
		log.Fatal(err)
	}

	zap.S().Infow("phcu-report-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
